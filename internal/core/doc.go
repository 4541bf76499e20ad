// Package core provides the business logic for generating and exporting
// fake person records.
//
// This package is independent of HTTP. Web handlers parse requests into
// [GenerateParams] and call the [Service]; tests call it directly.
//
// # Generation
//
// A request names a region, an error rate, a seed text and a page number.
// [Service.Generate] turns that into a page of records:
//
//  1. The seed text is folded into a 32-bit seed with seed.Derive
//  2. The region's record source builds the full universe for that seed
//     (served from the cache when present)
//  3. The requested page is sliced out of the universe and copied
//  4. fullName, address and phone of each record are corrupted
//     independently with the region's alphabet
//
// The same region and seed always produce the same base records. With seeded
// errors enabled (the default) the corruption is reproducible too, because
// each field gets its own random stream derived from the seed, the record's
// position in the universe and the error rate.
//
// # Export
//
// [Service.ExportCSV] and [Service.ExportParquet] encode what the client sends
// back. Both run under the same [Limiter] as generation.
//
// # Error Handling
//
// Failures wrap one of the package sentinels. [Classify] maps them to stable
// codes for logging:
//
//   - GEN001-GEN006: request validation and generation
//   - EXP001: export
//   - REQ001-REQ002: cancellation and timeouts
//
// # Activity Log
//
// Every successful generate and export is recorded in the configured
// activity.Store. Recording is best effort and never fails the request.
package core
