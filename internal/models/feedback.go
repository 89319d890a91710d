package models

import (
	"fmt"
	"strconv"
	"time"
)

// Row is a single record as delivered by a source adapter, keyed by whatever
// column names that source uses. The normalizer rewrites these keys to the
// canonical set below before anything downstream touches them.
type Row map[string]any

// Canonical column names produced by the normalizer.
const (
	ColID              = "id"
	ColFirstName       = "firstName"
	ColLastName        = "lastName"
	ColMainCategory    = "mainCategory"
	ColSubCategory     = "subCategory"
	ColFeedbackText    = "feedbackText"
	ColContactUser     = "contactUser"
	ColStatus          = "status"
	ColDateSubmitted   = "dateSubmitted"
	ColLastUpdatedBy   = "lastUpdatedBy"
	ColLastUpdatedTime = "lastUpdatedTime"
	ColSentiment       = "sentiment"
)

// Contact status values, meaningful only when ContactUser is "Yes".
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// FeedbackRecord is the canonical shape of one feedback entry after
// normalization.
type FeedbackRecord struct {
	ID              int       `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	MainCategory    string    `json:"mainCategory"`
	SubCategory     string    `json:"subCategory"`
	FeedbackText    string    `json:"feedbackText"`
	ContactUser     string    `json:"contactUser"`
	Status          string    `json:"status"`
	DateSubmitted   time.Time `json:"dateSubmitted"`
	LastUpdatedBy   string    `json:"lastUpdatedBy,omitempty"`
	LastUpdatedTime string    `json:"lastUpdatedTime,omitempty"`
	Sentiment       string    `json:"sentiment,omitempty"`
}

// Row converts the record back to its canonical row form.
func (r FeedbackRecord) Row() Row {
	row := Row{
		ColID:            r.ID,
		ColFirstName:     r.FirstName,
		ColLastName:      r.LastName,
		ColMainCategory:  r.MainCategory,
		ColSubCategory:   r.SubCategory,
		ColFeedbackText:  r.FeedbackText,
		ColContactUser:   r.ContactUser,
		ColStatus:        r.Status,
		ColDateSubmitted: r.DateSubmitted,
	}
	if r.LastUpdatedBy != "" {
		row[ColLastUpdatedBy] = r.LastUpdatedBy
	}
	if r.LastUpdatedTime != "" {
		row[ColLastUpdatedTime] = r.LastUpdatedTime
	}
	if r.Sentiment != "" {
		row[ColSentiment] = r.Sentiment
	}
	return row
}

// DecodeRecords converts canonical rows into typed records. It is total:
// values that fail to convert fall back to zero values, never errors.
func DecodeRecords(rows []Row) []FeedbackRecord {
	records := make([]FeedbackRecord, len(rows))
	for i, row := range rows {
		records[i] = FeedbackRecord{
			ID:              toInt(row[ColID]),
			FirstName:       toString(row[ColFirstName]),
			LastName:        toString(row[ColLastName]),
			MainCategory:    toString(row[ColMainCategory]),
			SubCategory:     toString(row[ColSubCategory]),
			FeedbackText:    toString(row[ColFeedbackText]),
			ContactUser:     toString(row[ColContactUser]),
			Status:          toString(row[ColStatus]),
			DateSubmitted:   toTime(row[ColDateSubmitted]),
			LastUpdatedBy:   toString(row[ColLastUpdatedBy]),
			LastUpdatedTime: toString(row[ColLastUpdatedTime]),
			Sentiment:       toString(row[ColSentiment]),
		}
	}
	return records
}

// CopyRecords returns an independent copy of a record slice. Records hold
// only value types and strings, so a slice copy is a full copy.
func CopyRecords(records []FeedbackRecord) []FeedbackRecord {
	if records == nil {
		return nil
	}
	out := make([]FeedbackRecord, len(records))
	copy(out, records)
	return out
}

// SentimentFor buckets feedback text by length. This is the placeholder
// heuristic the dashboard has always shipped with, not real analysis.
func SentimentFor(text string) string {
	switch {
	case len(text) > 100:
		return "Positive"
	case len(text) < 50:
		return "Negative"
	default:
		return "Neutral"
	}
}

// SentimentScore returns the length-based score used for the summary
// average.
func SentimentScore(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	return float64(len(text)) / 100
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
