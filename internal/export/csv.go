package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// EncodeCSV writes rows as CSV. The header is the key list of the first row;
// later rows emit values for those keys only, with an empty cell for a
// missing key. No rows produces an empty document.
func EncodeCSV(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	header := rows[0].Keys()
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(header))
	for i, row := range rows {
		for j, key := range header {
			raw, ok := row.Get(key)
			if !ok {
				record[j] = ""
				continue
			}
			cell, err := formatCell(raw)
			if err != nil {
				return fmt.Errorf("row %d field %q: %w", i, key, err)
			}
			record[j] = cell
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// formatCell renders a JSON value the way a browser would stringify it.
// Objects and arrays are kept as compact JSON.
func formatCell(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "", nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return "", err
		}
		return s, nil
	case 'n':
		return "", nil
	case 't', 'f':
		return trimmed, nil
	case '{', '[':
		return compactJSON(raw), nil
	default:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return "", fmt.Errorf("invalid number %q: %w", trimmed, err)
		}
		return formatNumber(f), nil
	}
}

// formatNumber follows Number.prototype.toString for finite values:
// plain decimal between 1e-6 and 1e21, exponent form outside that range.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
