package domain

// ResponseDistribution splits the filtered view by reply presence.
type ResponseDistribution struct {
	Responded    int `json:"responded"`
	NotResponded int `json:"not_responded"`
}

// Metrics holds the aggregate counts derived from a (full, filtered)
// record set pair. It is recomputed on every criteria change and never
// stored independently of the sets that produced it.
type Metrics struct {
	TotalContacts    int `json:"total_contacts"`
	FilteredContacts int `json:"filtered_contacts"`
	NotResponded     int `json:"not_responded"`
	Unsubscribed     int `json:"unsubscribed"`

	// InvalidNumbers is computed against the full set regardless of
	// active filters; it measures overall data quality, not the view.
	InvalidNumbers int `json:"invalid_numbers"`

	StatusDistribution   map[DeliveryStatus]int `json:"status_distribution"`
	ResponseDistribution ResponseDistribution   `json:"response_distribution"`
}

// EmptyMetrics returns zeroed metrics with an initialized distribution map.
func EmptyMetrics() Metrics {
	return Metrics{StatusDistribution: map[DeliveryStatus]int{}}
}
