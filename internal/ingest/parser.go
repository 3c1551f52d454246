// Package ingest turns raw CSV exports of campaign results into ordered
// slices of domain.Record.
//
// The read contract is tolerant by design: header names vary across
// export sources (resolved through the alias table in column_mapper.go),
// quoting is optional, and a malformed row drops with a diagnostic
// instead of failing the file. Only a missing mandatory column or an
// empty input aborts the parse.
package ingest

import (
	"io"
	"strings"
	"time"

	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/pkg/logger"
)

// unknownCampaign is the placeholder label for rows with a blank
// campaign column.
const unknownCampaign = "Unknown"

// RowIssue records one dropped data row.
type RowIssue struct {
	Line   int    `json:"line"` // 1-based line number in the input
	Reason string `json:"reason"`
}

// Report summarizes the outcome of one parse.
type Report struct {
	TotalRows   int        `json:"total_rows"` // data rows seen (blank lines excluded)
	ParsedRows  int        `json:"parsed_rows"`
	DroppedRows int        `json:"dropped_rows"`
	Issues      []RowIssue `json:"issues,omitempty"`
}

func (r *Report) drop(line int, reason string) {
	r.DroppedRows++
	r.Issues = append(r.Issues, RowIssue{Line: line, Reason: reason})
	logger.Warn("dropping csv row", "line", line, "reason", reason)
}

// Parser converts raw CSV text into records.
type Parser struct {
	// HeaderNorm selects the header normalization strictness.
	HeaderNorm HeaderNorm

	// Now supplies the fallback timestamp for unparseable dates.
	// Defaults to time.Now; injected in tests.
	Now func() time.Time
}

// New returns a Parser with default settings.
func New() *Parser {
	return &Parser{HeaderNorm: NormAlnum, Now: time.Now}
}

// Parse is a convenience wrapper over New().Parse for callers that need
// no custom settings.
func Parse(raw string) ([]domain.Record, *Report, error) {
	return New().Parse(raw)
}

// ParseReader reads the full input and parses it. The read is the only
// I/O this package performs; everything after it is pure.
func (p *Parser) ParseReader(r io.Reader) ([]domain.Record, *Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	return p.Parse(string(data))
}

// Parse converts raw CSV text into an ordered slice of records.
//
// Fatal conditions are ErrEmptyInput (no header or no data rows) and
// *FormatError (unresolvable mandatory column); in both cases no
// partial dataset is returned. Individual bad rows are dropped with a
// Report entry, never an error.
func (p *Parser) Parse(raw string) ([]domain.Record, *Report, error) {
	raw = stripBOM(raw)
	if strings.TrimSpace(raw) == "" {
		return nil, nil, ErrEmptyInput
	}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, nil, ErrEmptyInput
	}

	mapping, err := MapColumns(splitLine(lines[0]), p.HeaderNorm)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	report := &Report{}
	var records []domain.Record

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		report.TotalRows++
		line := i + 1 // 1-based, header included

		fields := splitLine(lines[i])
		if len(fields) < mapping.minWidth() {
			report.drop(line, "row has fewer fields than the mandatory columns require")
			continue
		}

		rec := p.buildRecord(fields, mapping, now)
		if rec.PhoneNumber == "" {
			report.drop(line, "blank phone number")
			continue
		}

		records = append(records, rec)
		report.ParsedRows++
	}

	if report.TotalRows == 0 {
		return nil, nil, ErrEmptyInput
	}

	logger.Info("csv parsed",
		"rows", report.TotalRows,
		"parsed", report.ParsedRows,
		"dropped", report.DroppedRows)

	return records, report, nil
}

func (p *Parser) buildRecord(fields []string, mapping *ColumnMapping, now func() time.Time) domain.Record {
	at := func(f Field) string {
		idx := mapping.ColumnOf(f)
		if idx < 0 || idx >= len(fields) {
			return ""
		}
		return fields[idx]
	}

	rec := domain.Record{
		PhoneNumber:   at(FieldPhone),
		CampaignLabel: at(FieldCampaign),
		Status:        NormalizeStatus(at(FieldStatus)),
		ContactName:   at(FieldName),
		ReplyText:     at(FieldReply),
		ReplyType:     at(FieldReplyType),
		SentAt:        normalizeDate(at(FieldSentAt), now),
	}
	if rec.CampaignLabel == "" {
		rec.CampaignLabel = unknownCampaign
	}
	return rec
}

// splitLine splits a CSV line on commas with quote awareness: a double
// quote toggles an "inside quotes" flag and commas inside quotes do not
// split. Fields are trimmed of surrounding whitespace. This mirrors the
// read contract of the exports this tool consumes, including their lack
// of quote escaping.
func splitLine(line string) []string {
	var result []string
	var current strings.Builder
	insideQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			insideQuotes = !insideQuotes
		case r == ',' && !insideQuotes:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	result = append(result, strings.TrimSpace(current.String()))
	return result
}

// statusKeywords maps substring families to canonical statuses, checked
// in order against the lowercased input.
var statusKeywords = []struct {
	keywords []string
	status   domain.DeliveryStatus
}{
	{[]string{"deliver"}, domain.StatusDelivered},
	{[]string{"read"}, domain.StatusRead},
	{[]string{"reply", "respond"}, domain.StatusReplied},
	{[]string{"fail", "error"}, domain.StatusFailed},
	{[]string{"pend"}, domain.StatusPending},
}

// NormalizeStatus maps a raw status value to the closed enum by
// case-insensitive substring match. Unrecognized values land in the
// StatusSent default bucket.
func NormalizeStatus(raw string) domain.DeliveryStatus {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, family := range statusKeywords {
		for _, kw := range family.keywords {
			if strings.Contains(lower, kw) {
				return family.status
			}
		}
	}
	return domain.StatusSent
}

// isoDateLayouts are tried in order for inputs with a YYYY-MM-DD prefix.
var isoDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// fallbackDateLayouts cover the remaining formats seen in real exports.
var fallbackDateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"01/02/2006 15:04:05", // US ordering, last resort
	time.RFC1123,
	time.ANSIC,
}

// normalizeDate parses a raw date value, preferring ISO 8601, then the
// Brazilian DD/MM/YYYY ordering, then a set of generic fallbacks. Any
// failure yields the current time rather than an error.
func normalizeDate(raw string, now func() time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now()
	}

	if isISOPrefixed(raw) {
		for _, layout := range isoDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}

	// DD/MM/YYYY is rewritten to ISO before parsing so the date part
	// never goes through the ambiguous generic path.
	if len(raw) >= 10 && raw[2] == '/' && raw[5] == '/' {
		iso := raw[6:10] + "-" + raw[3:5] + "-" + raw[0:2]
		rest := strings.TrimSpace(raw[10:])
		if rest != "" {
			iso += " " + rest
		}
		for _, layout := range isoDateLayouts {
			if t, err := time.Parse(layout, iso); err == nil {
				return t
			}
		}
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	return now()
}

func isISOPrefixed(s string) bool {
	if len(s) < 10 {
		return false
	}
	for i, r := range s[:10] {
		if i == 4 || i == 7 {
			if r != '-' {
				return false
			}
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// stripBOM removes a UTF-8 byte order mark if present.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
