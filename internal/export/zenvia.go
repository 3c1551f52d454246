package export

import (
	"strings"

	"github.com/ignite/campaign-insights/internal/domain"
)

// zenviaHeader is the fixed two-column header of the carrier format.
const zenviaHeader = "celular;sms"

// Zenvia serializes records into the semicolon-delimited carrier SMS
// format: one `celular;sms` row per record, same message text for all.
// The leading + is stripped from phone numbers, and the message text is
// never quote-wrapped even when it contains semicolons or commas —
// that is the carrier's format requirement, not an oversight.
func Zenvia(records []domain.Record, messageText string) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}

	var b strings.Builder
	b.WriteString(zenviaHeader)
	for _, rec := range records {
		b.WriteByte('\n')
		b.WriteString(strings.TrimPrefix(rec.PhoneNumber, "+"))
		b.WriteByte(';')
		b.WriteString(messageText)
	}

	return b.String(), nil
}
