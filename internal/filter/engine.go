// Package filter derives a filtered view from a full record set by
// applying a fixed predicate pipeline.
//
// Apply is pure and order-preserving: the relative order of surviving
// records always matches the input, and the input slice is never
// mutated. The stage order is load-bearing — phone correction must run
// before the validity predicate, and deduplication must run last so it
// keys on corrected numbers.
package filter

import (
	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/phone"
	"github.com/ignite/campaign-insights/internal/response"
)

// Apply returns the records that satisfy every active criterion.
// Empty or nil input yields an empty result; it never fails.
func Apply(records []domain.Record, c domain.Criteria) []domain.Record {
	if len(records) == 0 {
		return []domain.Record{}
	}

	// Stage 1: phone correction. Produces fresh records so the caller's
	// snapshot stays untouched.
	working := records
	if c.NormalizeAndValidatePhones {
		working = make([]domain.Record, len(records))
		for i, rec := range records {
			rec.PhoneNumber = phone.CorrectMobile(rec.PhoneNumber)
			working[i] = rec
		}
	}

	// Stage 2: per-record predicate chain.
	campaigns := toSet(c.Campaigns)
	statuses := toSet(c.Statuses)
	replyTypes := toSet(c.ReplyTypes)

	result := make([]domain.Record, 0, len(working))
	for _, rec := range working {
		if !matches(rec, c, campaigns, statuses, replyTypes) {
			continue
		}
		result = append(result, rec)
	}

	// Stage 3: first occurrence wins on the (possibly corrected) phone.
	if c.SuppressDuplicatePhones {
		result = dedupeByPhone(result)
	}

	return result
}

func matches(rec domain.Record, c domain.Criteria, campaigns, statuses, replyTypes map[string]bool) bool {
	if len(campaigns) > 0 && !campaigns[rec.CampaignLabel] {
		return false
	}
	if len(statuses) > 0 && !statuses[string(rec.Status)] {
		return false
	}

	switch c.Mode() {
	case domain.ResponseResponded:
		if !rec.HasReply() || response.IsUnsubscribe(rec.ReplyText) {
			return false
		}
	case domain.ResponseNotResponded:
		if rec.HasReply() {
			return false
		}
	case domain.ResponseUnsubscribedOnly:
		if !rec.HasReply() || !response.IsUnsubscribe(rec.ReplyText) {
			return false
		}
	case domain.ResponseRespondedOrUnsubscribed:
		if !rec.HasReply() {
			return false
		}
	}

	// Records without a reply type never match a non-empty type set.
	if len(replyTypes) > 0 && !replyTypes[rec.ReplyType] {
		return false
	}

	if c.SuppressDisinterestReplies && rec.HasReply() && response.IsNoInterest(rec.ReplyText) {
		return false
	}

	if c.DateWindow != nil && c.DateWindow.Set() && !c.DateWindow.Contains(rec.SentAt) {
		return false
	}

	if c.NormalizeAndValidatePhones && !phone.IsValidMobile(rec.PhoneNumber) {
		return false
	}

	return true
}

func dedupeByPhone(records []domain.Record) []domain.Record {
	seen := make(map[string]bool, len(records))
	result := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if seen[rec.PhoneNumber] {
			continue
		}
		seen[rec.PhoneNumber] = true
		result = append(result, rec)
	}
	return result
}

func toSet[T ~string](values []T) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[string(v)] = true
	}
	return set
}
