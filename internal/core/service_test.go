package core

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/JonMunkholm/fakedata/internal/activity"
	"github.com/JonMunkholm/fakedata/internal/cache"
	"github.com/JonMunkholm/fakedata/internal/export"
	"github.com/JonMunkholm/fakedata/internal/records"
	"github.com/JonMunkholm/fakedata/internal/region"
	"github.com/JonMunkholm/fakedata/internal/seed"
)

func newTestService(store activity.Store, c cache.Cache) *Service {
	return NewService(Config{UniverseSize: 100, PageSize: 20, SeededErrors: true}, store, c, NewLimiter(4, time.Second))
}

func baseUniverse(t *testing.T, r region.Region, seedText string) []records.Record {
	t.Helper()
	src, err := records.ForRegion(r)
	if err != nil {
		t.Fatalf("ForRegion(%s): %v", r, err)
	}
	return src.Generate(seed.Derive(seedText), 100)
}

func TestGenerate_ZeroErrorsReturnsBaseRecords(t *testing.T) {
	svc := newTestService(nil, nil)

	page, err := svc.Generate(context.Background(), GenerateParams{Region: "de", Errors: 0, Seed: "12345", Page: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(page.Records) != 20 {
		t.Fatalf("got %d records, want 20", len(page.Records))
	}

	want := baseUniverse(t, region.DE, "12345")[:20]
	ids := make(map[string]bool)
	for i, rec := range page.Records {
		if rec != want[i] {
			t.Errorf("record %d = %+v, want unmodified %+v", i, rec, want[i])
		}
		if ids[rec.ID] {
			t.Errorf("duplicate id %s", rec.ID)
		}
		ids[rec.ID] = true
	}
	if page.Seed != seed.Derive("12345") {
		t.Errorf("Seed = %d, want %d", page.Seed, seed.Derive("12345"))
	}
}

func TestGenerate_Pagination(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()
	universe := baseUniverse(t, region.PL, "pages")

	tests := []struct {
		page      int
		wantCount int
		wantFirst int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{5, 20, 80},
		{6, 0, -1},
		{math.MaxInt, 0, -1},
	}

	for _, tt := range tests {
		got, err := svc.Generate(ctx, GenerateParams{Region: "pl", Seed: "pages", Page: tt.page})
		if err != nil {
			t.Fatalf("page %d: %v", tt.page, err)
		}
		if len(got.Records) != tt.wantCount {
			t.Errorf("page %d: got %d records, want %d", tt.page, len(got.Records), tt.wantCount)
			continue
		}
		if got.Records == nil {
			t.Errorf("page %d: Records must be non-nil", tt.page)
		}
		if tt.wantFirst >= 0 && got.Records[0] != universe[tt.wantFirst] {
			t.Errorf("page %d: first record = %+v, want universe[%d]", tt.page, got.Records[0], tt.wantFirst)
		}
	}
}

func TestGenerate_Validation(t *testing.T) {
	svc := newTestService(nil, nil)

	tests := []struct {
		name   string
		params GenerateParams
		want   error
	}{
		{"missing region", GenerateParams{Seed: "1", Page: 1}, ErrMissingParameter},
		{"missing seed", GenerateParams{Region: "de", Page: 1}, ErrMissingParameter},
		{"unknown region", GenerateParams{Region: "fr", Seed: "1", Page: 1}, ErrInvalidRegion},
		{"negative errors", GenerateParams{Region: "de", Errors: -1, Seed: "1", Page: 1}, ErrInvalidIntensity},
		{"NaN errors", GenerateParams{Region: "de", Errors: math.NaN(), Seed: "1", Page: 1}, ErrInvalidIntensity},
		{"too many errors", GenerateParams{Region: "de", Errors: 1000.5, Seed: "1", Page: 1}, ErrInvalidIntensity},
		{"page zero", GenerateParams{Region: "de", Seed: "1", Page: 0}, ErrInvalidPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.Generate(context.Background(), tt.params)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if page != nil {
				t.Errorf("page = %+v, want nil on error", page)
			}
		})
	}
}

func TestGenerate_SeededErrorsAreReproducible(t *testing.T) {
	svc := newTestService(nil, nil)
	params := GenerateParams{Region: "uz", Errors: 2.5, Seed: "repeat", Page: 2}

	first, err := svc.Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := svc.Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for i := range first.Records {
		if first.Records[i] != second.Records[i] {
			t.Errorf("record %d differs between identical requests", i)
		}
	}
}

func TestGenerate_CorruptionBounds(t *testing.T) {
	for _, seeded := range []bool{true, false} {
		svc := NewService(Config{SeededErrors: seeded}, nil, nil, nil)
		universe := baseUniverse(t, region.DE, "bounds")

		page, err := svc.Generate(context.Background(), GenerateParams{Region: "de", Errors: 5, Seed: "bounds", Page: 1})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}

		changed := 0
		for i, rec := range page.Records {
			base := universe[i]
			if rec.ID != base.ID {
				t.Errorf("record %d: id must never be corrupted", i)
			}
			for _, pair := range [][2]string{
				{base.FullName, rec.FullName},
				{base.Address, rec.Address},
				{base.Phone, rec.Phone},
			} {
				orig, got := utf8.RuneCountInString(pair[0]), utf8.RuneCountInString(pair[1])
				if 5*got > 6*orig {
					t.Errorf("seeded=%v: %q grew to %q", seeded, pair[0], pair[1])
				}
				if pair[0] != pair[1] {
					changed++
				}
			}
		}
		if changed == 0 {
			t.Errorf("seeded=%v: no field changed at 5 errors per field", seeded)
		}
	}
}

func TestGenerate_UsesAlphabetOfRegion(t *testing.T) {
	svc := newTestService(nil, nil)
	page, err := svc.Generate(context.Background(), GenerateParams{Region: "pl", Errors: 10, Seed: "latin", Page: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, rec := range page.Records {
		if strings.ContainsAny(rec.FullName, "АБВГДабвгд") {
			t.Errorf("Polish record contains Cyrillic: %q", rec.FullName)
		}
	}
}

type countingSource struct {
	records.Source
	calls int
}

func (c *countingSource) Generate(seed int32, n int) []records.Record {
	c.calls++
	return c.Source.Generate(seed, n)
}

func TestGenerate_UsesCache(t *testing.T) {
	mem := cache.NewMemory(time.Minute, 10)
	svc := newTestService(nil, mem)

	de, _ := records.ForRegion(region.DE)
	src := &countingSource{Source: de}
	svc.sourceFor = func(region.Region) (records.Source, error) { return src, nil }

	ctx := context.Background()
	params := GenerateParams{Region: "de", Seed: "cached", Page: 1}
	first, err := svc.Generate(ctx, params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	params.Page = 3
	if _, err := svc.Generate(ctx, params); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
	if mem.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", mem.Len())
	}

	params.Page = 1
	again, _ := svc.Generate(ctx, params)
	if again.Records[0] != first.Records[0] {
		t.Error("cached universe returned different records")
	}
}

func TestGenerate_SourceFailure(t *testing.T) {
	svc := newTestService(nil, nil)
	svc.sourceFor = func(region.Region) (records.Source, error) { return nil, records.ErrNoSource }

	_, err := svc.Generate(context.Background(), GenerateParams{Region: "de", Seed: "x", Page: 1})
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("err = %v, want ErrGeneration", err)
	}
	if Classify(err) != "GEN006" {
		t.Errorf("Classify = %q, want GEN006", Classify(err))
	}
}

func TestGenerate_Busy(t *testing.T) {
	limiter := NewLimiter(1, 10*time.Millisecond)
	svc := NewService(Config{}, nil, nil, limiter)

	if !limiter.TryAcquire() {
		t.Fatal("TryAcquire failed")
	}
	defer limiter.Release()

	_, err := svc.Generate(context.Background(), GenerateParams{Region: "de", Seed: "x", Page: 1})
	if !errors.Is(err, ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}
}

func TestGenerate_RecordsActivity(t *testing.T) {
	store := activity.NewMemoryStore(10)
	svc := newTestService(store, nil)

	ctx := ContextWithClient(context.Background(), "10.0.0.1", "test-agent")
	if _, err := svc.Generate(ctx, GenerateParams{Region: "pl", Errors: 1.5, Seed: "log", Page: 2}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	entries, err := svc.RecentActivity(ctx, 10)
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Action != activity.ActionGenerate || e.Region != "pl" || e.Seed != "log" ||
		e.Errors != 1.5 || e.Page != 2 || e.Rows != 20 {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.IPAddress != "10.0.0.1" || e.UserAgent != "test-agent" {
		t.Errorf("client metadata not recorded: %+v", e)
	}
}

type failingStore struct{ activity.Nop }

func (failingStore) Record(context.Context, activity.Entry) error {
	return errors.New("database unavailable")
}

func TestGenerate_ActivityFailureIsIgnored(t *testing.T) {
	svc := newTestService(failingStore{}, nil)

	if _, err := svc.Generate(context.Background(), GenerateParams{Region: "de", Seed: "x", Page: 1}); err != nil {
		t.Errorf("Generate failed because of activity store: %v", err)
	}
}

func TestExportCSV(t *testing.T) {
	store := activity.NewMemoryStore(10)
	svc := newTestService(store, nil)

	rows, err := export.DecodeRows(strings.NewReader(`{"data":[{"id":"1","fullName":"Jan"}]}`))
	if err != nil {
		t.Fatalf("DecodeRows: %v", err)
	}

	out, err := svc.ExportCSV(context.Background(), rows)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if got, want := string(out), "id,fullName\n1,Jan\n"; got != want {
		t.Errorf("csv = %q, want %q", got, want)
	}

	entries, _ := store.Recent(context.Background(), 1)
	if len(entries) != 1 || entries[0].Action != activity.ActionExportCSV || entries[0].Rows != 1 {
		t.Errorf("unexpected activity %+v", entries)
	}
}

func TestExportParquet(t *testing.T) {
	svc := newTestService(nil, nil)

	out, err := svc.ExportParquet(context.Background(), baseUniverse(t, region.DE, "pq")[:5])
	if err != nil {
		t.Fatalf("ExportParquet: %v", err)
	}
	if !strings.HasPrefix(string(out), "PAR1") {
		t.Errorf("output does not start with the Parquet magic: %q", out[:4])
	}
}

func TestRecentActivity_NopStoreReturnsEmpty(t *testing.T) {
	svc := newTestService(nil, nil)

	entries, err := svc.RecentActivity(context.Background(), 5)
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %#v, want empty non-nil", entries)
	}
}
