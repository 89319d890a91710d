package service

import (
	"context"

	"github.com/fanpulse/backend/internal/cache"
	"github.com/fanpulse/backend/internal/models"
	"github.com/fanpulse/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Login(email, password string) (*models.Identity, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IFeedbackService defines the interface for record listing and editing
type IFeedbackService interface {
	ListRecent(ctx context.Context, identity *models.Identity, page, pageSize int, category string) (*types.RecentFeedbackResponse, error)
	GetRecord(ctx context.Context, identity *models.Identity, id int) (*models.FeedbackRecord, error)
	UpdateRecord(ctx context.Context, identity *models.Identity, req *types.UpdateFeedbackRequest) (*types.UpdateFeedbackResponse, error)
	RecordEmailTracking(ctx context.Context, identity *models.Identity, req *types.EmailTrackingRequest) (*types.EmailTrackingResponse, error)
	Categories(ctx context.Context, identity *models.Identity) ([]string, error)
	SnapshotInfo() (cache.Snapshot, bool)
}

// IAnalyticsService defines the interface for the dashboard aggregations
type IAnalyticsService interface {
	Dashboard(ctx context.Context, identity *models.Identity, q *types.DashboardQuery) (*types.DashboardResponse, error)
	Summary(ctx context.Context, identity *models.Identity) (*types.SummaryResponse, error)
}
