package source

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fanpulse/backend/internal/models"
)

// DefaultFetchLimit caps the warehouse query when config does not say
// otherwise.
const DefaultFetchLimit = 1000

// WarehouseSource reads and writes the fan_feedback warehouse table.
type WarehouseSource struct {
	db    *gorm.DB
	limit int
}

// NewWarehouseSource creates a warehouse adapter. limit bounds the fetch;
// values <= 0 fall back to DefaultFetchLimit.
func NewWarehouseSource(db *gorm.DB, limit int) *WarehouseSource {
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	return &WarehouseSource{db: db, limit: limit}
}

// Name implements Fetcher.
func (s *WarehouseSource) Name() string { return "warehouse" }

// Fetch issues a bounded, descending-time-ordered query. Any database
// failure is surfaced as ErrSourceUnavailable so the chain falls through.
func (s *WarehouseSource) Fetch(ctx context.Context) ([]models.Row, error) {
	var rows []models.FeedbackRow
	err := s.db.WithContext(ctx).
		Order("created_date DESC").
		Limit(s.limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: warehouse query: %v", ErrSourceUnavailable, err)
	}

	out := make([]models.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Row()
	}
	return out, nil
}

// Update persists the editable fields of one record. A missing row counts
// as failure so the caller can fall back to the secondary store.
func (s *WarehouseSource) Update(ctx context.Context, rec models.FeedbackRecord) error {
	result := s.db.WithContext(ctx).
		Model(&models.FeedbackRow{}).
		Where("id = ?", rec.ID).
		Updates(map[string]any{
			"main_category":     rec.MainCategory,
			"sub_category":      rec.SubCategory,
			"contact_user":      rec.ContactUser,
			"status":            rec.Status,
			"sentiment":         rec.Sentiment,
			"last_updated_by":   rec.LastUpdatedBy,
			"last_updated_time": rec.LastUpdatedTime,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: warehouse update: %v", ErrSourceUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: warehouse has no row with id %d", ErrSourceUnavailable, rec.ID)
	}
	return nil
}

// SaveTracking records email-tracking metadata in the warehouse.
func (s *WarehouseSource) SaveTracking(ctx context.Context, tracking *models.EmailTracking) error {
	if err := s.db.WithContext(ctx).Create(tracking).Error; err != nil {
		return fmt.Errorf("%w: tracking insert: %v", ErrSourceUnavailable, err)
	}
	return nil
}
