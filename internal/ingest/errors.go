package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when the input has no header or no data rows.
var ErrEmptyInput = errors.New("csv input is empty or has no data rows")

// FormatError is a fatal parse error: one or more mandatory columns
// could not be resolved from the header row. No partial dataset is
// returned alongside it.
type FormatError struct {
	Missing []Field
}

func (e *FormatError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("csv header is missing mandatory column(s): %s", strings.Join(names, ", "))
}
