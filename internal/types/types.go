// Package types holds the request/response shapes of the HTTP surface and
// the token claims shared between the auth service and middleware.
package types

import "github.com/fanpulse/backend/internal/models"

// TokenClaims is the identity carried inside a JWT.
type TokenClaims struct {
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	Role        string `json:"role"`
	Category    string `json:"category,omitempty"`
}

// LoginRequest is the login form body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the caller's identity.
type LoginResponse struct {
	Token string      `json:"token"`
	User  TokenClaims `json:"user"`
}

// DashboardQuery is the filter set accepted by the dashboard endpoint.
type DashboardQuery struct {
	DateRange string `form:"date_range"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Category  string `form:"category"`
}

// CountPercent is a count with its share of the total.
type CountPercent struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ResolutionStat is a contact-resolution bucket. Percentage is relative to
// records with ContactUser "Yes"; PercentageOfTotal to the whole set.
type ResolutionStat struct {
	Count             int     `json:"count"`
	Percentage        float64 `json:"percentage"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
}

// DailyCount is one day's feedback volume.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DateRange is the resolved window the dashboard filtered on.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DashboardResponse is the main dashboard payload.
type DashboardResponse struct {
	TotalFeedback         int                     `json:"total_feedback"`
	SentimentDistribution map[string]CountPercent `json:"sentiment_distribution"`
	SentimentCounts       map[string]int          `json:"sentiment_counts"`
	CategoryDistribution  map[string]int          `json:"category_distribution"`
	DailyFeedback         []DailyCount            `json:"daily_feedback"`
	ContactUserStats      map[string]CountPercent `json:"contact_user_stats"`
	ResolutionStats       map[string]ResolutionStat `json:"resolution_stats"`
	DateRange             DateRange               `json:"date_range"`
}

// SummaryResponse is the compact summary payload.
type SummaryResponse struct {
	TotalFeedback         int                       `json:"total_feedback"`
	CategoryCount         int                       `json:"category_count"`
	AvgSentiment          *float64                  `json:"avg_sentiment"`
	SentimentDistribution map[string]CountPercent   `json:"sentiment_distribution"`
	ContactUserStats      map[string]CountPercent   `json:"contact_user_stats"`
	ResolutionStats       map[string]ResolutionStat `json:"resolution_stats"`
}

// Pagination is the list-endpoint page metadata.
type Pagination struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// RecentFeedbackResponse is one page of records.
type RecentFeedbackResponse struct {
	Feedback   []models.FeedbackRecord `json:"feedback"`
	Pagination Pagination              `json:"pagination"`
}

// UpdateFeedbackRequest is the edit body. SubCategory is the only optional
// field.
type UpdateFeedbackRequest struct {
	ID          int    `json:"id"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
	ContactUser string `json:"contact_user"`
	Status      string `json:"status"`
	Sentiment   string `json:"sentiment"`
	UpdatedBy   string `json:"updated_by"`
	UpdatedTime string `json:"updated_time"`
}

// UpdateFeedbackResponse reports an edit's outcome and which store took the
// write.
type UpdateFeedbackResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	PersistedTo string `json:"persisted_to,omitempty"`
}

// EmailTrackingRequest records that an outreach email went out.
type EmailTrackingRequest struct {
	FeedbackID int    `json:"feedback_id"`
	TrackingID string `json:"tracking_id"`
	SentTime   string `json:"sent_time"`
}

// EmailTrackingResponse echoes the recorded ids.
type EmailTrackingResponse struct {
	Success    bool   `json:"success"`
	FeedbackID int    `json:"feedback_id"`
	TrackingID string `json:"tracking_id"`
}
