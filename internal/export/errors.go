package export

import (
	"errors"
	"fmt"
)

// ErrNoRecords is returned when an export is requested over an empty
// record set. It is surfaced before any artifact is produced.
var ErrNoRecords = errors.New("no records to export")

// PageError is returned for an out-of-range chunk index.
type PageError struct {
	Page  int
	Pages int
}

func (e *PageError) Error() string {
	return fmt.Sprintf("export page %d out of range (1..%d)", e.Page, e.Pages)
}
