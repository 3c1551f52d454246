package domain

import "time"

// DeliveryStatus enumerates the delivery states of a campaign message.
type DeliveryStatus string

const (
	StatusDelivered DeliveryStatus = "delivered"
	StatusRead      DeliveryStatus = "read"
	StatusReplied   DeliveryStatus = "replied"
	StatusFailed    DeliveryStatus = "failed"
	StatusPending   DeliveryStatus = "pending"

	// StatusSent is the default bucket for unrecognized status input.
	// Earlier exports used an "unknown" bucket; this codebase standardizes
	// on "sent" so metrics and filters see one canonical default.
	StatusSent DeliveryStatus = "sent"
)

// AllStatuses lists every delivery status in display order.
var AllStatuses = []DeliveryStatus{
	StatusDelivered, StatusRead, StatusReplied, StatusFailed, StatusPending, StatusSent,
}

// Valid reports whether s is one of the closed enum values.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case StatusDelivered, StatusRead, StatusReplied, StatusFailed, StatusPending, StatusSent:
		return true
	}
	return false
}

// Record is one normalized row of campaign-message data.
//
// Records are treated as immutable snapshots once parsed: code that
// rewrites a field (phone correction in the filter engine) copies the
// record rather than mutating it in place.
type Record struct {
	PhoneNumber   string         `json:"phone_number"`
	ContactName   string         `json:"contact_name,omitempty"`
	CampaignLabel string         `json:"campaign_label"`
	Status        DeliveryStatus `json:"delivery_status"`
	ReplyText     string         `json:"reply_text,omitempty"`
	ReplyType     string         `json:"reply_type,omitempty"`
	SentAt        time.Time      `json:"sent_at"`
}

// HasReply reports whether the recipient replied to this message.
func (r Record) HasReply() bool {
	return r.ReplyText != ""
}

// CampaignLabels returns the unique campaign labels in first-seen order.
func CampaignLabels(records []Record) []string {
	seen := make(map[string]bool, len(records))
	var labels []string
	for _, r := range records {
		if !seen[r.CampaignLabel] {
			seen[r.CampaignLabel] = true
			labels = append(labels, r.CampaignLabel)
		}
	}
	return labels
}

// Statuses returns the unique delivery statuses in first-seen order.
func Statuses(records []Record) []DeliveryStatus {
	seen := make(map[DeliveryStatus]bool, len(AllStatuses))
	var statuses []DeliveryStatus
	for _, r := range records {
		if !seen[r.Status] {
			seen[r.Status] = true
			statuses = append(statuses, r.Status)
		}
	}
	return statuses
}

// ReplyTypes returns the unique non-empty reply types in first-seen order.
func ReplyTypes(records []Record) []string {
	seen := make(map[string]bool)
	var types []string
	for _, r := range records {
		if r.ReplyType != "" && !seen[r.ReplyType] {
			seen[r.ReplyType] = true
			types = append(types, r.ReplyType)
		}
	}
	return types
}
