package domain

import "time"

// ResponseMode selects which records survive based on reply presence.
type ResponseMode string

const (
	ResponseAll ResponseMode = "all"
	// ResponseResponded keeps records with a reply that is not an
	// unsubscribe request.
	ResponseResponded    ResponseMode = "responded"
	ResponseNotResponded ResponseMode = "not_responded"
	// ResponseUnsubscribedOnly keeps only unsubscribe replies.
	ResponseUnsubscribedOnly ResponseMode = "unsubscribed_only"
	// ResponseRespondedOrUnsubscribed keeps any record with a reply.
	ResponseRespondedOrUnsubscribed ResponseMode = "responded_or_unsubscribed"
)

// Valid reports whether m is a known response mode.
func (m ResponseMode) Valid() bool {
	switch m {
	case ResponseAll, ResponseResponded, ResponseNotResponded,
		ResponseUnsubscribedOnly, ResponseRespondedOrUnsubscribed:
		return true
	}
	return false
}

// DateWindow is an inclusive [Start, End] range. End is extended to
// 23:59:59.999 of its day when the window is evaluated.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Set reports whether both bounds are present.
func (w DateWindow) Set() bool {
	return !w.Start.IsZero() && !w.End.IsZero()
}

// EndOfDay returns the window's end extended to the last millisecond of
// its calendar day.
func (w DateWindow) EndOfDay() time.Time {
	y, m, d := w.End.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, w.End.Location())
}

// Contains reports whether t falls inside the window, end-of-day inclusive.
func (w DateWindow) Contains(t time.Time) bool {
	if !w.Set() {
		return true
	}
	return !t.Before(w.Start) && !t.After(w.EndOfDay())
}

// Criteria describes the active filtered view. Empty sets mean
// "no restriction" for their dimension.
type Criteria struct {
	Campaigns    []string         `json:"campaigns,omitempty"`
	Statuses     []DeliveryStatus `json:"statuses,omitempty"`
	ResponseMode ResponseMode     `json:"response_mode,omitempty"`
	ReplyTypes   []string         `json:"reply_types,omitempty"`
	DateWindow   *DateWindow      `json:"date_window,omitempty"`

	SuppressDuplicatePhones    bool `json:"suppress_duplicate_phones,omitempty"`
	NormalizeAndValidatePhones bool `json:"normalize_and_validate_phones,omitempty"`
	SuppressDisinterestReplies bool `json:"suppress_disinterest_replies,omitempty"`
}

// DefaultCriteria is the unrestricted view applied after every upload.
func DefaultCriteria() Criteria {
	return Criteria{ResponseMode: ResponseAll}
}

// Mode returns the response mode, defaulting to ResponseAll when unset.
func (c Criteria) Mode() ResponseMode {
	if c.ResponseMode == "" {
		return ResponseAll
	}
	return c.ResponseMode
}
