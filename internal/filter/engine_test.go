package filter

import (
	"testing"
	"time"

	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(phone, campaign string, status domain.DeliveryStatus, reply string) domain.Record {
	return domain.Record{
		PhoneNumber:   phone,
		CampaignLabel: campaign,
		Status:        status,
		ReplyText:     reply,
		SentAt:        time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestApplyNoCriteria(t *testing.T) {
	records := []domain.Record{
		rec("+5511988887777", "Promo", domain.StatusDelivered, ""),
		rec("+5511977776666", "Promo", domain.StatusRead, "oi"),
	}

	got := Apply(records, domain.DefaultCriteria())
	assert.Equal(t, records, got)
}

func TestApplyEmptyInput(t *testing.T) {
	assert.Empty(t, Apply(nil, domain.DefaultCriteria()))
	assert.Empty(t, Apply([]domain.Record{}, domain.Criteria{SuppressDuplicatePhones: true}))
}

func TestApplyCampaignAndStatus(t *testing.T) {
	records := []domain.Record{
		rec("+5511988887771", "Promo", domain.StatusDelivered, ""),
		rec("+5511988887772", "Welcome", domain.StatusDelivered, ""),
		rec("+5511988887773", "Promo", domain.StatusFailed, ""),
	}

	got := Apply(records, domain.Criteria{
		Campaigns: []string{"Promo"},
		Statuses:  []domain.DeliveryStatus{domain.StatusDelivered},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "+5511988887771", got[0].PhoneNumber)
}

func TestApplyResponseModes(t *testing.T) {
	noReply := rec("+5511988887771", "Promo", domain.StatusDelivered, "")
	plainReply := rec("+5511988887772", "Promo", domain.StatusReplied, "quero saber mais")
	unsubReply := rec("+5511988887773", "Promo", domain.StatusReplied, "PARE de enviar")
	records := []domain.Record{noReply, plainReply, unsubReply}

	tests := []struct {
		mode domain.ResponseMode
		want []string
	}{
		{domain.ResponseAll, []string{"+5511988887771", "+5511988887772", "+5511988887773"}},
		// responded excludes unsubscribe replies
		{domain.ResponseResponded, []string{"+5511988887772"}},
		{domain.ResponseNotResponded, []string{"+5511988887771"}},
		{domain.ResponseUnsubscribedOnly, []string{"+5511988887773"}},
		{domain.ResponseRespondedOrUnsubscribed, []string{"+5511988887772", "+5511988887773"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := Apply(records, domain.Criteria{ResponseMode: tt.mode})
			var phones []string
			for _, r := range got {
				phones = append(phones, r.PhoneNumber)
			}
			assert.Equal(t, tt.want, phones)
		})
	}
}

func TestApplyReplyTypes(t *testing.T) {
	typed := rec("+5511988887771", "Promo", domain.StatusReplied, "oi")
	typed.ReplyType = "text"
	untyped := rec("+5511988887772", "Promo", domain.StatusReplied, "oi")

	got := Apply([]domain.Record{typed, untyped}, domain.Criteria{ReplyTypes: []string{"text"}})
	require.Len(t, got, 1)
	assert.Equal(t, "+5511988887771", got[0].PhoneNumber)
}

func TestApplyDisinterestSuppression(t *testing.T) {
	interested := rec("+5511988887771", "Promo", domain.StatusReplied, "tenho interesse sim")
	disinterested := rec("+5511988887772", "Promo", domain.StatusReplied, "Não tenho interesse")

	got := Apply([]domain.Record{interested, disinterested}, domain.Criteria{SuppressDisinterestReplies: true})
	require.Len(t, got, 1)
	assert.Equal(t, "+5511988887771", got[0].PhoneNumber)
}

func TestApplyDateWindowEndOfDayInclusive(t *testing.T) {
	late := rec("+5511988887771", "Promo", domain.StatusDelivered, "")
	late.SentAt = time.Date(2024, 1, 31, 23, 30, 0, 0, time.UTC)
	outside := rec("+5511988887772", "Promo", domain.StatusDelivered, "")
	outside.SentAt = time.Date(2024, 2, 1, 0, 0, 1, 0, time.UTC)

	window := &domain.DateWindow{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	got := Apply([]domain.Record{late, outside}, domain.Criteria{DateWindow: window})
	require.Len(t, got, 1)
	assert.Equal(t, "+5511988887771", got[0].PhoneNumber)
}

func TestApplyPhoneCorrectionAndValidity(t *testing.T) {
	correctable := rec("+551188887777", "Promo", domain.StatusDelivered, "")
	uncorrectable := rec("+551133334444", "Promo", domain.StatusDelivered, "")
	records := []domain.Record{correctable, uncorrectable}

	got := Apply(records, domain.Criteria{NormalizeAndValidatePhones: true})
	require.Len(t, got, 1)
	assert.Equal(t, "+5511988887777", got[0].PhoneNumber)

	// The input snapshot must be untouched.
	assert.Equal(t, "+551188887777", records[0].PhoneNumber)
}

func TestApplyDedupKeepsFirst(t *testing.T) {
	first := rec("+5511988887777", "Promo", domain.StatusDelivered, "")
	first.ContactName = "Ana"
	second := rec("+5511988887777", "Welcome", domain.StatusRead, "")
	second.ContactName = "Bruna"

	got := Apply([]domain.Record{first, second}, domain.Criteria{SuppressDuplicatePhones: true})
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].ContactName)
}

func TestApplyDedupUsesCorrectedPhone(t *testing.T) {
	legacy := rec("+551188887777", "Promo", domain.StatusDelivered, "")
	modern := rec("+5511988887777", "Promo", domain.StatusRead, "")

	got := Apply([]domain.Record{legacy, modern}, domain.Criteria{
		NormalizeAndValidatePhones: true,
		SuppressDuplicatePhones:    true,
	})
	// Both collapse to the same corrected number; the first survives.
	require.Len(t, got, 1)
	assert.Equal(t, domain.StatusDelivered, got[0].Status)
}

func TestApplyOrderPreservation(t *testing.T) {
	var records []domain.Record
	phones := []string{
		"+5511988887775", "+5511988887771", "+5511988887779",
		"+5511988887773", "+5511988887777",
	}
	for _, p := range phones {
		records = append(records, rec(p, "Promo", domain.StatusDelivered, ""))
	}

	got := Apply(records, domain.Criteria{
		Campaigns:               []string{"Promo"},
		SuppressDuplicatePhones: true,
	})
	require.Len(t, got, len(phones))
	for i, p := range phones {
		assert.Equal(t, p, got[i].PhoneNumber)
	}
}

func TestApplyIdempotent(t *testing.T) {
	records := []domain.Record{
		rec("+551188887777", "Promo", domain.StatusDelivered, ""),
		rec("+5511988887777", "Promo", domain.StatusRead, "PARE"),
		rec("+5511977776666", "Welcome", domain.StatusReplied, "oi"),
		rec("+551133334444", "Promo", domain.StatusFailed, ""),
	}
	criteria := domain.Criteria{
		NormalizeAndValidatePhones: true,
		SuppressDuplicatePhones:    true,
		SuppressDisinterestReplies: true,
	}

	once := Apply(records, criteria)
	twice := Apply(once, criteria)
	assert.Equal(t, once, twice)
}
