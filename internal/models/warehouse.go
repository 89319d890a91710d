package models

import "time"

// FeedbackRow is the warehouse-side shape of a feedback record. Column
// names deliberately stay in the warehouse's snake_case dialect; the
// normalizer owns the mapping to canonical names.
type FeedbackRow struct {
	ID              int64     `gorm:"primarykey" json:"id"`
	CustomerName    string    `gorm:"column:customer_name" json:"customer_name"`
	MainCategory    string    `gorm:"column:main_category" json:"main_category"`
	SubCategory     string    `gorm:"column:sub_category" json:"sub_category"`
	FeedbackText    string    `gorm:"column:feedback_text;type:text" json:"feedback_text"`
	ContactUser     string    `gorm:"column:contact_user" json:"contact_user"`
	Status          string    `gorm:"column:status" json:"status"`
	CreatedDate     time.Time `gorm:"column:created_date" json:"created_date"`
	LastUpdatedBy   string    `gorm:"column:last_updated_by" json:"last_updated_by"`
	LastUpdatedTime string    `gorm:"column:last_updated_time" json:"last_updated_time"`
	Sentiment       string    `gorm:"column:sentiment" json:"sentiment"`
}

// TableName returns the warehouse table name.
func (FeedbackRow) TableName() string {
	return "fan_feedback"
}

// Row exposes the warehouse record under its native column names. Keys the
// warehouse has no value for are omitted so the normalizer can synthesize
// them.
func (r FeedbackRow) Row() Row {
	row := Row{
		"id":            r.ID,
		"customer_name": r.CustomerName,
		"main_category": r.MainCategory,
		"sub_category":  r.SubCategory,
		"feedback_text": r.FeedbackText,
		"contact_user":  r.ContactUser,
		"status":        r.Status,
		"created_date":  r.CreatedDate,
	}
	if r.LastUpdatedBy != "" {
		row["last_updated_by"] = r.LastUpdatedBy
	}
	if r.LastUpdatedTime != "" {
		row["last_updated_time"] = r.LastUpdatedTime
	}
	if r.Sentiment != "" {
		row["sentiment"] = r.Sentiment
	}
	return row
}

// EmailTracking records that an outreach email was sent for a feedback
// entry.
type EmailTracking struct {
	ID         int64     `gorm:"primarykey" json:"id"`
	FeedbackID int64     `gorm:"column:feedback_id;index" json:"feedback_id"`
	TrackingID string    `gorm:"column:tracking_id" json:"tracking_id"`
	SentTime   string    `gorm:"column:sent_time" json:"sent_time"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the tracking table name.
func (EmailTracking) TableName() string {
	return "email_tracking"
}
