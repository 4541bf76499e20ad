package export

import (
	"fmt"
	"io"

	"github.com/segmentio/parquet-go"

	"github.com/JonMunkholm/fakedata/internal/records"
)

// EncodeParquet writes records as a single Parquet file using the parquet
// tags on records.Record.
func EncodeParquet(w io.Writer, recs []records.Record) error {
	pw := parquet.NewGenericWriter[records.Record](w, parquet.Compression(&parquet.Snappy))

	if _, err := pw.Write(recs); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
