package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentimentFor(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"long text is positive", strings.Repeat("a", 101), "Positive"},
		{"short text is negative", "Queue was too long.", "Negative"},
		{"mid-length text is neutral", strings.Repeat("a", 75), "Neutral"},
		{"boundary 100 is neutral", strings.Repeat("a", 100), "Neutral"},
		{"boundary 50 is neutral", strings.Repeat("a", 50), "Neutral"},
		{"boundary 49 is negative", strings.Repeat("a", 49), "Negative"},
		{"empty text is negative", "", "Negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SentimentFor(tt.text))
		})
	}
}

func TestSentimentScore(t *testing.T) {
	assert.Equal(t, 0.0, SentimentScore(""))
	assert.Equal(t, 0.5, SentimentScore(strings.Repeat("a", 50)))
	assert.Equal(t, 1.5, SentimentScore(strings.Repeat("a", 150)))
}

func TestDecodeRecords(t *testing.T) {
	when := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	rows := []Row{
		{
			ColID:            7,
			ColFirstName:     "Jane",
			ColLastName:      "Doe",
			ColMainCategory:  "Ticketing",
			ColSubCategory:   "Mobile Tickets",
			ColFeedbackText:  "Transfer failed.",
			ColContactUser:   "Yes",
			ColStatus:        StatusInProgress,
			ColDateSubmitted: when,
		},
		{
			// String-typed id and date, the way the file adapter delivers
			// them.
			ColID:            "12",
			ColDateSubmitted: "2026-03-14T09:30:00Z",
		},
		{
			// Unconvertible values degrade to zero values.
			ColID:            "not-a-number",
			ColDateSubmitted: "yesterday-ish",
		},
	}

	records := DecodeRecords(rows)
	require.Len(t, records, 3)

	assert.Equal(t, 7, records[0].ID)
	assert.Equal(t, "Jane", records[0].FirstName)
	assert.Equal(t, "Doe", records[0].LastName)
	assert.Equal(t, "Ticketing", records[0].MainCategory)
	assert.Equal(t, when, records[0].DateSubmitted)

	assert.Equal(t, 12, records[1].ID)
	assert.Equal(t, when, records[1].DateSubmitted)

	assert.Equal(t, 0, records[2].ID)
	assert.True(t, records[2].DateSubmitted.IsZero())
}

func TestDecodeRecordsAcceptsWarehouseDateFormat(t *testing.T) {
	records := DecodeRecords([]Row{{ColDateSubmitted: "2026-03-14 09:30:00"}})
	require.Len(t, records, 1)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), records[0].DateSubmitted)
}

func TestCopyRecordsIsIndependent(t *testing.T) {
	original := []FeedbackRecord{{ID: 1, Status: StatusNotStarted}}
	copied := CopyRecords(original)
	copied[0].Status = StatusCompleted
	assert.Equal(t, StatusNotStarted, original[0].Status)

	assert.Nil(t, CopyRecords(nil))
}

func TestRecordRowRoundTrip(t *testing.T) {
	rec := FeedbackRecord{
		ID:            3,
		FirstName:     "Aisha",
		MainCategory:  "Food & Beverage",
		FeedbackText:  "Great nachos, fair price.",
		ContactUser:   "No",
		DateSubmitted: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	decoded := DecodeRecords([]Row{rec.Row()})
	require.Len(t, decoded, 1)
	assert.Equal(t, rec, decoded[0])
}

func TestRecordRowOmitsEmptyOptionals(t *testing.T) {
	row := FeedbackRecord{ID: 1}.Row()
	_, hasSentiment := row[ColSentiment]
	_, hasUpdatedBy := row[ColLastUpdatedBy]
	assert.False(t, hasSentiment)
	assert.False(t, hasUpdatedBy)
}
