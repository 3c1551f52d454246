package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/ingest"
)

func sampleRecords() []domain.Record {
	return []domain.Record{
		{PhoneNumber: "+5511987654321", CampaignLabel: "Promo", Status: domain.StatusDelivered},
		{PhoneNumber: "+5511987654322", CampaignLabel: "Promo", Status: domain.StatusRead, ReplyText: "sim", ReplyType: "text"},
		{PhoneNumber: "+5521998765432", CampaignLabel: "Launch", Status: domain.StatusFailed},
	}
}

func TestStoreCreateAppliesDefaultCriteria(t *testing.T) {
	st := NewStore(0)
	s := st.Create(sampleRecords(), ingest.Report{TotalRows: 3, ParsedRows: 3})

	require.NotEmpty(t, s.ID)
	assert.Equal(t, domain.DefaultCriteria(), s.Criteria)
	assert.Len(t, s.Filtered, 3)
	assert.Equal(t, 3, s.Metrics.TotalContacts)
	assert.Equal(t, 1, st.Len())
}

func TestStoreGetUnknownID(t *testing.T) {
	st := NewStore(0)
	_, ok := st.Get("nope")
	assert.False(t, ok)
}

func TestStoreUpdateCriteriaRecomputes(t *testing.T) {
	st := NewStore(0)
	s := st.Create(sampleRecords(), ingest.Report{})

	c := domain.DefaultCriteria()
	c.Campaigns = []string{"Promo"}
	updated, ok := st.UpdateCriteria(s.ID, c)
	require.True(t, ok)

	assert.Len(t, updated.Filtered, 2)
	assert.Equal(t, 2, updated.Metrics.FilteredContacts)
	// Full snapshot untouched.
	assert.Len(t, updated.Records, 3)
	assert.Equal(t, 3, updated.Metrics.TotalContacts)
}

func TestStoreDelete(t *testing.T) {
	st := NewStore(0)
	s := st.Create(sampleRecords(), ingest.Report{})

	assert.True(t, st.Delete(s.ID))
	assert.False(t, st.Delete(s.ID))
	assert.Equal(t, 0, st.Len())
}

func TestStoreSweepEvictsIdleSessions(t *testing.T) {
	st := NewStore(30 * time.Minute)
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return clock }

	stale := st.Create(sampleRecords(), ingest.Report{})
	clock = clock.Add(45 * time.Minute)
	fresh := st.Create(sampleRecords(), ingest.Report{})

	evicted := st.Sweep()
	assert.Equal(t, 1, evicted)

	_, ok := st.Get(stale.ID)
	assert.False(t, ok)
	_, ok = st.Get(fresh.ID)
	assert.True(t, ok)
}

func TestStoreSweepDisabledWithoutTTL(t *testing.T) {
	st := NewStore(0)
	st.Create(sampleRecords(), ingest.Report{})
	assert.Equal(t, 0, st.Sweep())
	assert.Equal(t, 1, st.Len())
}

func TestStoreGetRefreshesAccessTime(t *testing.T) {
	st := NewStore(30 * time.Minute)
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return clock }

	s := st.Create(sampleRecords(), ingest.Report{})

	clock = clock.Add(25 * time.Minute)
	_, ok := st.Get(s.ID)
	require.True(t, ok)

	clock = clock.Add(25 * time.Minute)
	assert.Equal(t, 0, st.Sweep(), "access should have reset the idle timer")
}

func TestSessionFacets(t *testing.T) {
	st := NewStore(0)
	s := st.Create(sampleRecords(), ingest.Report{})

	f := s.Facets()
	assert.Equal(t, []string{"Promo", "Launch"}, f.Campaigns)
	assert.Equal(t, []string{"delivered", "read", "failed"}, f.Statuses)
	assert.Equal(t, []string{"text"}, f.ReplyTypes)
}

func TestStoreListOrdersByCreation(t *testing.T) {
	st := NewStore(0)
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return clock }

	first := st.Create(sampleRecords(), ingest.Report{})
	clock = clock.Add(time.Minute)
	second := st.Create(sampleRecords(), ingest.Report{})

	list := st.List()
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestStoreCountCallback(t *testing.T) {
	st := NewStore(0)
	var last int
	st.OnCountChange(func(n int) { last = n })

	s := st.Create(sampleRecords(), ingest.Report{})
	assert.Equal(t, 1, last)
	st.Delete(s.ID)
	assert.Equal(t, 0, last)
}
