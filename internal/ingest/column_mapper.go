package ingest

import "strings"

// Field is a canonical column name used across all export sources.
type Field string

const (
	FieldPhone     Field = "phone"
	FieldName      Field = "name"
	FieldCampaign  Field = "campaign"
	FieldStatus    Field = "status"
	FieldReply     Field = "reply"
	FieldReplyType Field = "reply_type"
	FieldSentAt    Field = "sent_at"
)

// mandatoryFields must all resolve for a parse to proceed.
var mandatoryFields = []Field{FieldPhone, FieldCampaign, FieldStatus}

// columnAliases maps normalized header names to canonical fields.
// Keys are in the fully stripped [a-z0-9] form; when multiple raw
// headers mean the same thing, they all map here. Real exports mix
// English and Portuguese names and vary separators freely, so
// resolution goes through NormalizeHeader rather than exact match.
var columnAliases = map[string]Field{
	// Phone
	"phone":       FieldPhone,
	"fullnumber":  FieldPhone,
	"phonenumber": FieldPhone,
	"telefone":    FieldPhone,

	// Contact name
	"name":        FieldName,
	"nome":        FieldName,
	"contactname": FieldName,

	// Campaign / template
	"templatetitle": FieldCampaign,
	"template":      FieldCampaign,
	"campanha":      FieldCampaign,
	"campaignlabel": FieldCampaign,

	// Delivery status
	"campaignmessagestatus": FieldStatus,
	"status":                FieldStatus,
	"deliverystatus":        FieldStatus,

	// Sent timestamp
	"campaignmessagecreatedat": FieldSentAt,
	"sentdate":                 FieldSentAt,
	"dataenvio":                FieldSentAt,
	"sentat":                   FieldSentAt,

	// Reply text
	"replymessagetext": FieldReply,
	"resposta":         FieldReply,
	"replytext":        FieldReply,

	// Reply type tag
	"replymessagetype": FieldReplyType,
	"tiporesposta":     FieldReplyType,
	"replytype":        FieldReplyType,
}

// HeaderNorm selects how aggressively header names are normalized
// before alias lookup. Both levels occur in real-world exports.
type HeaderNorm int

const (
	// NormAlnum lowercases and strips everything outside [a-z0-9], so
	// "Full Number", "full_number", and "FullNumber" all collapse to
	// "fullnumber".
	NormAlnum HeaderNorm = iota
	// NormAlnumUnderscore keeps underscores while stripping everything
	// else outside [a-z0-9_].
	NormAlnumUnderscore
)

// NormalizeHeader reduces a raw header name to its canonical lookup form.
func NormalizeHeader(raw string, mode HeaderNorm) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	lower = strings.Trim(lower, "\"'")

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' && mode == NormAlnumUnderscore:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ColumnMapping holds the resolved mapping from CSV column indices to
// canonical fields.
type ColumnMapping struct {
	Index    map[Field]int // canonical field -> column index
	RawNames []string      // original header names
}

// ColumnOf returns the column index for a field, or -1 when the field
// was not present in the header.
func (m *ColumnMapping) ColumnOf(f Field) int {
	if idx, ok := m.Index[f]; ok {
		return idx
	}
	return -1
}

// minWidth is the number of fields a data row must have to cover every
// mandatory column.
func (m *ColumnMapping) minWidth() int {
	max := -1
	for _, f := range mandatoryFields {
		if idx := m.ColumnOf(f); idx > max {
			max = idx
		}
	}
	return max + 1
}

// MapColumns resolves a raw header row against the alias table using
// first-match lookup. It returns a FormatError naming every mandatory
// column that could not be resolved.
func MapColumns(header []string, mode HeaderNorm) (*ColumnMapping, error) {
	m := &ColumnMapping{
		Index:    make(map[Field]int, len(header)),
		RawNames: header,
	}

	for i, h := range header {
		normalized := NormalizeHeader(h, mode)
		if mode == NormAlnumUnderscore {
			// Alias keys are stored in the stripped form; fold the
			// underscores away for lookup so both levels resolve alike.
			normalized = strings.ReplaceAll(normalized, "_", "")
		}
		field, ok := columnAliases[normalized]
		if !ok {
			continue
		}
		if _, taken := m.Index[field]; !taken {
			m.Index[field] = i
		}
	}

	var missing []Field
	for _, f := range mandatoryFields {
		if m.ColumnOf(f) < 0 {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &FormatError{Missing: missing}
	}

	return m, nil
}
