// Package export serializes filtered record sets into downloadable
// artifacts: plain CSV, the Zenvia carrier SMS variant, and an Excel
// workbook. Chunked exports are exposed as a pager so the presentation
// layer can fetch and stagger one artifact at a time; no state is
// shared between chunk serializations.
package export

import (
	"strings"

	"github.com/ignite/campaign-insights/internal/domain"
)

// CSV serializes records into comma-separated text with a header row.
// An empty column list exports every column.
//
// A value is wrapped in quotes only when it contains a comma; embedded
// quotes are not escaped. That matches the writer the consuming systems
// were built against and is kept as a documented compatibility
// limitation rather than silently fixed.
func CSV(records []domain.Record, columns []string) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	if len(columns) == 0 {
		columns = AllColumns
	}

	var b strings.Builder
	b.WriteString(strings.Join(columns, ","))

	for _, rec := range records {
		b.WriteByte('\n')
		for i, col := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeCSV(value(rec, col)))
		}
	}

	return b.String(), nil
}

func escapeCSV(v string) string {
	if strings.Contains(v, ",") {
		return `"` + v + `"`
	}
	return v
}
