package export

import (
	"time"

	"github.com/ignite/campaign-insights/internal/domain"
)

// Column names accepted by the CSV formatter. They match the JSON field
// names of domain.Record so API callers can request columns by the same
// identifiers they see in responses.
const (
	ColPhoneNumber    = "phone_number"
	ColContactName    = "contact_name"
	ColCampaignLabel  = "campaign_label"
	ColDeliveryStatus = "delivery_status"
	ColReplyText      = "reply_text"
	ColReplyType      = "reply_type"
	ColSentAt         = "sent_at"
)

// AllColumns lists every exportable column in display order.
var AllColumns = []string{
	ColPhoneNumber, ColContactName, ColCampaignLabel,
	ColDeliveryStatus, ColReplyText, ColReplyType, ColSentAt,
}

// CSVOptions controls column selection for CSV exports. Chunking is
// handled separately by Pager.
type CSVOptions struct {
	OnlyPhoneNumber bool     `json:"only_phone_number"`
	IncludeNames    bool     `json:"include_names"`
	CustomColumns   []string `json:"custom_columns"`
}

// Columns resolves the column list for a CSV export. Precedence follows
// the original UI: only-phone, then phone+name, then custom columns,
// then everything.
func (o CSVOptions) Columns() []string {
	switch {
	case o.OnlyPhoneNumber:
		return []string{ColPhoneNumber}
	case o.IncludeNames:
		return []string{ColPhoneNumber, ColContactName}
	case len(o.CustomColumns) > 0:
		return o.CustomColumns
	default:
		return AllColumns
	}
}

// value extracts a column value from a record. Unknown column names
// yield an empty string, mirroring the permissive original exporter.
func value(rec domain.Record, column string) string {
	switch column {
	case ColPhoneNumber:
		return rec.PhoneNumber
	case ColContactName:
		return rec.ContactName
	case ColCampaignLabel:
		return rec.CampaignLabel
	case ColDeliveryStatus:
		return string(rec.Status)
	case ColReplyText:
		return rec.ReplyText
	case ColReplyType:
		return rec.ReplyType
	case ColSentAt:
		return rec.SentAt.Format(time.RFC3339)
	default:
		return ""
	}
}
