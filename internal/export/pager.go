package export

import "github.com/ignite/campaign-insights/internal/domain"

// Per-format ceilings on how many chunk files one export may produce.
const (
	MaxCSVFiles   = 100
	MaxExcelFiles = 50
)

// Pager slices a record set into fixed-size pages for chunked exports.
// Each page is serialized independently with its own header; any
// download staggering belongs to the caller.
type Pager struct {
	PerFile  int
	MaxFiles int
}

// NewPager clamps perFile and maxFiles to sane values for a format.
func NewPager(perFile, maxFiles int) Pager {
	if perFile < 1 {
		perFile = 1
	}
	if maxFiles < 1 {
		maxFiles = 1
	}
	return Pager{PerFile: perFile, MaxFiles: maxFiles}
}

// Pages returns how many chunk files a set of total records produces,
// capped at MaxFiles. Records beyond the cap are not exported; callers
// should surface the cap to the user.
func (p Pager) Pages(total int) int {
	if total <= 0 {
		return 0
	}
	pages := (total + p.PerFile - 1) / p.PerFile
	if pages > p.MaxFiles {
		pages = p.MaxFiles
	}
	return pages
}

// Page returns the records of 1-based page number. The returned slice
// aliases the input; serialization must not mutate it.
func (p Pager) Page(records []domain.Record, page int) ([]domain.Record, error) {
	pages := p.Pages(len(records))
	if page < 1 || page > pages {
		return nil, &PageError{Page: page, Pages: pages}
	}
	start := (page - 1) * p.PerFile
	end := start + p.PerFile
	if end > len(records) {
		end = len(records)
	}
	return records[start:end], nil
}
