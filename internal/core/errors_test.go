package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"missing parameter", ErrMissingParameter, "GEN001"},
		{"wrapped region", fmt.Errorf("%w: %q", ErrInvalidRegion, "fr"), "GEN002"},
		{"intensity", fmt.Errorf("parse errors: %w", ErrInvalidIntensity), "GEN003"},
		{"page", ErrInvalidPage, "GEN004"},
		{"busy", ErrBusy, "GEN005"},
		{"generation", fmt.Errorf("%w: %w", ErrGeneration, errors.New("redis down")), "GEN006"},
		{"export", fmt.Errorf("%w: %w", ErrExport, errors.New("bad json")), "EXP001"},
		{"cancelled", fmt.Errorf("acquire: %w", context.Canceled), "REQ001"},
		{"deadline", context.DeadlineExceeded, "REQ002"},
		{"unknown error returns default", errors.New("boom"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if Classify(tt.err) != tt.wantCode {
				t.Errorf("Classify(%v) = %q, want %q", tt.err, Classify(tt.err), tt.wantCode)
			}
		})
	}
}

func TestMapError_FirstMatchWins(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrGeneration, context.Canceled)
	if got := Classify(err); got != "GEN006" {
		t.Errorf("Classify = %q, want GEN006", got)
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	want := "The server is busy (Code: GEN005). Please wait a moment and try again"
	if got := FormatUserError(ErrBusy); got != want {
		t.Errorf("FormatUserError = %q, want %q", got, want)
	}
}

func TestIsClientError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrInvalidPage, true},
		{ErrExport, true},
		{ErrBusy, false},
		{errors.New("boom"), false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsClientError(tt.err); got != tt.want {
			t.Errorf("IsClientError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
