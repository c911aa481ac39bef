// ABOUTME: Comma-separated export of metric tables.
// ABOUTME: Header row of column names followed by one line per table row.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/harperreed/move/internal/models"
)

// WriteCSV writes the header and every row of t to w.
func WriteCSV(w io.Writer, t *models.Table) error {
	cw := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Record(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV returns the table as UTF-8 CSV bytes.
func CSV(t *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
