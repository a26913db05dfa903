// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/danielhkuo/party-vote/models"
)

// Exportable reports whether table can be downloaded.
func Exportable(table string) bool {
	return models.ColumnsFor(table) != nil
}

// Filename is the attachment name for a table download.
func Filename(table string) string {
	return table + ".csv"
}

// CSV encodes a table as RFC 4180 CSV: the header row, then every row in
// insertion order.
func CSV(t models.Table) ([]byte, error) {
	columns := t.Columns
	if len(columns) == 0 {
		columns = models.ColumnsFor(t.Name)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range t.Rows {
		if err := w.Write(r); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
