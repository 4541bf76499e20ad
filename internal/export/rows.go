// Package export encodes records for download.
//
// CSV export accepts arbitrary JSON objects and keeps the key order of the
// request body, so the columns match what the client sent. Parquet export is
// typed and only accepts generated records.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNoData is returned when the request body has no data array.
var ErrNoData = errors.New("no data array in request body")

// Row is a JSON object that remembers the order its keys appeared in.
type Row struct {
	keys   []string
	values map[string]json.RawMessage
}

// Set adds or replaces a value. A replaced key keeps its original position.
func (r *Row) Set(key string, value json.RawMessage) {
	if r.values == nil {
		r.values = make(map[string]json.RawMessage)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the raw JSON value for key.
func (r Row) Get(key string) (json.RawMessage, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in source order.
func (r Row) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of keys.
func (r Row) Len() int { return len(r.keys) }

// DecodeRows parses a {"data":[{...},...]} body.
// A null data array yields no rows; a missing one is ErrNoData.
func DecodeRows(r io.Reader) ([]Row, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("request body: %w", err)
	}

	var (
		rows  []Row
		found bool
	)
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if key != "data" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			continue
		}

		found = true
		rows, err = decodeArray(dec)
		if err != nil {
			return nil, err
		}
	}

	if !found {
		return nil, ErrNoData
	}
	return rows, nil
}

func decodeArray(dec *json.Decoder) ([]Row, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("data: expected array, got %v", tok)
	}

	var rows []Row
	for i := 0; dec.More(); i++ {
		row, err := decodeRow(dec)
		if err != nil {
			return nil, fmt.Errorf("data[%d]: %w", i, err)
		}
		rows = append(rows, row)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	return rows, nil
}

func decodeRow(dec *json.Decoder) (Row, error) {
	var row Row
	if err := expectDelim(dec, '{'); err != nil {
		return row, err
	}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return row, err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return row, fmt.Errorf("field %q: %w", key, err)
		}
		row.Set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return row, err
	}
	return row, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

// compactJSON strips insignificant whitespace from nested values.
func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
