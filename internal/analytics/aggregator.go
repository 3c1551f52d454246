// Package analytics computes aggregate metrics over a (full, filtered)
// record set pair.
package analytics

import (
	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/phone"
	"github.com/ignite/campaign-insights/internal/response"
)

// Compute derives metrics from the full dataset and its filtered view.
// It is pure: both inputs are read-only and absent inputs yield zeroed
// metrics. Invalid-number counting runs over the full set because it
// measures overall data quality, not the active view.
func Compute(full, filtered []domain.Record) domain.Metrics {
	m := domain.EmptyMetrics()
	m.TotalContacts = len(full)
	m.FilteredContacts = len(filtered)

	for _, rec := range filtered {
		m.StatusDistribution[rec.Status]++
		if rec.HasReply() {
			m.ResponseDistribution.Responded++
			if response.IsUnsubscribe(rec.ReplyText) {
				m.Unsubscribed++
			}
		} else {
			m.NotResponded++
		}
	}
	m.ResponseDistribution.NotResponded = m.NotResponded

	for _, rec := range full {
		if !phone.IsValidMobile(phone.CorrectMobile(rec.PhoneNumber)) {
			m.InvalidNumbers++
		}
	}

	return m
}
