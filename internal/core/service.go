package core

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/JonMunkholm/fakedata/internal/activity"
	"github.com/JonMunkholm/fakedata/internal/cache"
	"github.com/JonMunkholm/fakedata/internal/corrupt"
	"github.com/JonMunkholm/fakedata/internal/export"
	"github.com/JonMunkholm/fakedata/internal/logging"
	"github.com/JonMunkholm/fakedata/internal/records"
	"github.com/JonMunkholm/fakedata/internal/region"
	"github.com/JonMunkholm/fakedata/internal/seed"
)

// MaxErrors is the largest accepted error rate per field.
const MaxErrors = 1000

const (
	DefaultUniverseSize = 100
	DefaultPageSize     = 20
)

// Field positions mixed into per-field corruption seeds.
const (
	fieldFullName = iota
	fieldAddress
	fieldPhone
)

// Config holds generation settings.
type Config struct {
	UniverseSize int  // Records per (region, seed)
	PageSize     int  // Records per page
	SeededErrors bool // Reproducible corruption derived from the seed
}

// GenerateParams describes a page request. Generate validates it.
type GenerateParams struct {
	Region string
	Errors float64
	Seed   string
	Page   int
}

// Page is one page of corrupted records.
type Page struct {
	Region  region.Region    `json:"region"`
	Seed    int32            `json:"seed"`
	Number  int              `json:"page"`
	Records []records.Record `json:"data"`
}

// Service provides generation and export.
type Service struct {
	cfg      Config
	cache    cache.Cache
	activity activity.Store
	limiter  *Limiter

	sourceFor func(region.Region) (records.Source, error)
	errorRand func() corrupt.Rand
}

// NewService creates a Service. Nil collaborators fall back to no-op
// implementations and a default limiter.
func NewService(cfg Config, store activity.Store, c cache.Cache, limiter *Limiter) *Service {
	if cfg.UniverseSize <= 0 {
		cfg.UniverseSize = DefaultUniverseSize
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if store == nil {
		store = activity.Nop{}
	}
	if c == nil {
		c = cache.Nop{}
	}
	if limiter == nil {
		limiter = NewLimiter(0, 0)
	}

	return &Service{
		cfg:       cfg,
		cache:     c,
		activity:  store,
		limiter:   limiter,
		sourceFor: records.ForRegion,
		errorRand: corrupt.Global,
	}
}

// Config returns the effective configuration.
func (s *Service) Config() Config { return s.cfg }

// Limiter returns the service's concurrency limiter.
func (s *Service) Limiter() *Limiter { return s.limiter }

// Regions lists the supported regions.
func (s *Service) Regions() []region.Info { return region.All() }

// Generate returns one page of records for the request. It either returns a
// complete page or an error; a page past the end of the universe is empty.
func (s *Service) Generate(ctx context.Context, p GenerateParams) (*Page, error) {
	reg, err := validate(p)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	base := seed.Derive(p.Seed)

	universe, err := s.universe(ctx, reg, base)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Region:  reg,
		Seed:    base,
		Number:  p.Page,
		Records: []records.Record{},
	}

	injector := corrupt.Injector{Alphabet: reg.Alphabet(), Intensity: p.Errors}

	// Compare page indexes before multiplying so huge page numbers cannot overflow.
	if p.Page-1 <= len(universe)/s.cfg.PageSize {
		start := (p.Page - 1) * s.cfg.PageSize
		end := min(start+s.cfg.PageSize, len(universe))
		for i := start; i < end; i++ {
			rec := universe[i]
			if p.Errors > 0 {
				rec.FullName = injector.Corrupt(rec.FullName, s.fieldRand(base, i, fieldFullName, p.Errors))
				rec.Address = injector.Corrupt(rec.Address, s.fieldRand(base, i, fieldAddress, p.Errors))
				rec.Phone = injector.Corrupt(rec.Phone, s.fieldRand(base, i, fieldPhone, p.Errors))
			}
			page.Records = append(page.Records, rec)
		}
	}

	s.record(ctx, activity.Entry{
		Action: activity.ActionGenerate,
		Region: reg.String(),
		Seed:   p.Seed,
		Errors: p.Errors,
		Page:   p.Page,
		Rows:   len(page.Records),
	})

	return page, nil
}

// ExportCSV encodes rows as CSV.
func (s *Service) ExportCSV(ctx context.Context, rows []export.Row) ([]byte, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	var buf bytes.Buffer
	if err := export.EncodeCSV(&buf, rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}

	s.record(ctx, activity.Entry{Action: activity.ActionExportCSV, Rows: len(rows)})
	return buf.Bytes(), nil
}

// ExportParquet encodes records as a Parquet file.
func (s *Service) ExportParquet(ctx context.Context, recs []records.Record) ([]byte, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	var buf bytes.Buffer
	if err := export.EncodeParquet(&buf, recs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}

	s.record(ctx, activity.Entry{Action: activity.ActionExportParquet, Rows: len(recs)})
	return buf.Bytes(), nil
}

// RecentActivity returns up to limit activity entries, newest first.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]activity.Entry, error) {
	entries, err := s.activity.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	return entries, nil
}

func validate(p GenerateParams) (region.Region, error) {
	if strings.TrimSpace(p.Region) == "" || p.Seed == "" {
		return "", ErrMissingParameter
	}

	reg, err := region.Parse(p.Region)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidRegion, p.Region)
	}

	if math.IsNaN(p.Errors) || math.IsInf(p.Errors, 0) || p.Errors < 0 || p.Errors > MaxErrors {
		return "", fmt.Errorf("%w: %v", ErrInvalidIntensity, p.Errors)
	}

	if p.Page < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidPage, p.Page)
	}

	return reg, nil
}

// universe returns the base records for (region, seed), consulting the cache
// first. Cache failures are logged and fall through to the source.
func (s *Service) universe(ctx context.Context, reg region.Region, base int32) ([]records.Record, error) {
	key := cache.Key(reg, base, s.cfg.UniverseSize)
	logger := logging.WithFields(ctx, "region", reg, "key", key)

	recs, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("universe cache read failed", "error", err)
	}
	if ok && len(recs) == s.cfg.UniverseSize {
		return recs, nil
	}

	src, err := s.sourceFor(reg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	recs = src.Generate(base, s.cfg.UniverseSize)
	logger.Debug("universe generated", "records", len(recs))
	if len(recs) != s.cfg.UniverseSize {
		return nil, fmt.Errorf("%w: source returned %d records, want %d",
			ErrGeneration, len(recs), s.cfg.UniverseSize)
	}

	if err := s.cache.Set(ctx, key, recs); err != nil {
		logger.Warn("universe cache write failed", "error", err)
	}
	return recs, nil
}

// fieldRand returns the random stream used to corrupt one field of one record.
func (s *Service) fieldRand(base int32, index, field int, intensity float64) corrupt.Rand {
	if !s.cfg.SeededErrors {
		return s.errorRand()
	}
	sub := seed.Sub(base, index, field, int(math.Float64bits(intensity)))
	return rand.New(rand.NewSource(sub))
}

// record writes an activity entry, logging instead of failing on error.
func (s *Service) record(ctx context.Context, e activity.Entry) {
	e.IPAddress = IPAddressFromContext(ctx)
	e.UserAgent = UserAgentFromContext(ctx)

	if err := s.activity.Record(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("activity record failed",
			"action", e.Action,
			"error", err,
		)
	}
}
