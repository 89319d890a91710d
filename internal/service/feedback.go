package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fanpulse/backend/internal/access"
	"github.com/fanpulse/backend/internal/cache"
	"github.com/fanpulse/backend/internal/models"
	"github.com/fanpulse/backend/internal/source"
	"github.com/fanpulse/backend/internal/types"
)

// DefaultPageSize is used when the caller does not ask for one.
const DefaultPageSize = 50

// PersistedTo values reported by UpdateRecord.
const (
	PersistedToWarehouse = "warehouse"
	PersistedToFile      = "file"
)

// FeedbackService serves record listing, lookup and editing over the cached
// row-set. All reads pass through the access filter before anything else
// touches them.
type FeedbackService struct {
	cache     *cache.SnapshotCache
	warehouse *source.WarehouseSource
	file      *source.FileSource
	logger    *zap.Logger
}

// NewFeedbackService creates a new FeedbackService. warehouse may be nil
// when no warehouse is configured; file is the fallback write path.
func NewFeedbackService(c *cache.SnapshotCache, warehouse *source.WarehouseSource, file *source.FileSource, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		cache:     c,
		warehouse: warehouse,
		file:      file,
		logger:    logger,
	}
}

// ListRecent returns one page of the caller's visible records, newest
// first. A page beyond the last clamps to the last valid page.
func (s *FeedbackService) ListRecent(ctx context.Context, identity *models.Identity, page, pageSize int, category string) (*types.RecentFeedbackResponse, error) {
	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, err
	}

	visible := access.Filter(snap.Records, identity)
	if category != "" && category != "all" {
		narrowed := make([]models.FeedbackRecord, 0, len(visible))
		for _, rec := range visible {
			if rec.MainCategory == category {
				narrowed = append(narrowed, rec)
			}
		}
		visible = narrowed
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].DateSubmitted.After(visible[j].DateSubmitted)
	})

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(visible)
	totalPages := (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	pageRecords := models.CopyRecords(visible[start:end])
	for i := range pageRecords {
		if pageRecords[i].Sentiment == "" {
			pageRecords[i].Sentiment = models.SentimentFor(pageRecords[i].FeedbackText)
		}
	}

	return &types.RecentFeedbackResponse{
		Feedback: pageRecords,
		Pagination: types.Pagination{
			Page:         page,
			PageSize:     pageSize,
			TotalRecords: total,
			TotalPages:   totalPages,
		},
	}, nil
}

// GetRecord returns one record by id. Ids absent from the full set are
// ErrNotFound; ids outside the caller's partition are ErrAccessDenied, so a
// category user learns nothing about other partitions' records.
func (s *FeedbackService) GetRecord(ctx context.Context, identity *models.Identity, id int) (*models.FeedbackRecord, error) {
	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, err
	}

	rec, ok := findRecord(snap.Records, id)
	if !ok {
		return nil, ErrNotFound
	}
	if !access.CanSee(rec, identity) {
		return nil, ErrAccessDenied
	}
	if rec.Sentiment == "" {
		rec.Sentiment = models.SentimentFor(rec.FeedbackText)
	}
	return &rec, nil
}

// UpdateRecord edits one record in the in-memory row-set and persists it,
// warehouse first with file fallback. Concurrent edits are last-write-wins
// by design.
func (s *FeedbackService) UpdateRecord(ctx context.Context, identity *models.Identity, req *types.UpdateFeedbackRequest) (*types.UpdateFeedbackResponse, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range snap.Records {
		if snap.Records[i].ID == req.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	if !access.CanSee(snap.Records[idx], identity) {
		return nil, ErrAccessDenied
	}

	rec := &snap.Records[idx]
	rec.MainCategory = req.Category
	rec.SubCategory = req.SubCategory
	rec.ContactUser = req.ContactUser
	rec.Status = req.Status
	rec.Sentiment = req.Sentiment
	rec.LastUpdatedBy = req.UpdatedBy
	rec.LastUpdatedTime = req.UpdatedTime

	persistedTo, err := s.persist(ctx, snap.Records, *rec)
	if err != nil {
		return nil, err
	}
	s.cache.Replace(snap.Records)

	return &types.UpdateFeedbackResponse{
		Success:     true,
		Message:     "Feedback updated successfully",
		PersistedTo: persistedTo,
	}, nil
}

func (s *FeedbackService) persist(ctx context.Context, records []models.FeedbackRecord, rec models.FeedbackRecord) (string, error) {
	if s.warehouse != nil {
		if err := s.warehouse.Update(ctx, rec); err == nil {
			return PersistedToWarehouse, nil
		} else {
			s.logger.Warn("warehouse write failed, falling back to file",
				zap.Int("id", rec.ID),
				zap.Error(err))
		}
	}
	if s.file != nil {
		if err := s.file.WriteAll(records); err == nil {
			return PersistedToFile, nil
		} else {
			s.logger.Error("file write failed", zap.Int("id", rec.ID), zap.Error(err))
		}
	}
	return "", fmt.Errorf("no store accepted the write for record %d", rec.ID)
}

// RecordEmailTracking stores email-tracking metadata for a visible record.
// A blank tracking id is synthesized.
func (s *FeedbackService) RecordEmailTracking(ctx context.Context, identity *models.Identity, req *types.EmailTrackingRequest) (*types.EmailTrackingResponse, error) {
	if req.FeedbackID == 0 {
		return nil, fmt.Errorf("%w: missing required field: feedback_id", ErrValidation)
	}

	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	rec, ok := findRecord(snap.Records, req.FeedbackID)
	if !ok {
		return nil, ErrNotFound
	}
	if !access.CanSee(rec, identity) {
		return nil, ErrAccessDenied
	}

	trackingID := req.TrackingID
	if trackingID == "" {
		trackingID = uuid.NewString()
	}
	tracking := &models.EmailTracking{
		FeedbackID: int64(req.FeedbackID),
		TrackingID: trackingID,
		SentTime:   req.SentTime,
	}

	stored := false
	if s.warehouse != nil {
		if err := s.warehouse.SaveTracking(ctx, tracking); err == nil {
			stored = true
		} else {
			s.logger.Warn("warehouse tracking write failed, falling back to sidecar",
				zap.Int("feedback_id", req.FeedbackID),
				zap.Error(err))
		}
	}
	if !stored && s.file != nil {
		if err := s.file.AppendTracking(tracking); err == nil {
			stored = true
		} else {
			s.logger.Error("sidecar tracking write failed",
				zap.Int("feedback_id", req.FeedbackID),
				zap.Error(err))
		}
	}
	if !stored {
		return nil, fmt.Errorf("no store accepted tracking for record %d", req.FeedbackID)
	}

	return &types.EmailTrackingResponse{
		Success:    true,
		FeedbackID: req.FeedbackID,
		TrackingID: trackingID,
	}, nil
}

// Categories returns the caller's visible category values in first-seen
// order.
func (s *FeedbackService) Categories(ctx context.Context, identity *models.Identity) ([]string, error) {
	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, err
	}

	visible := access.Filter(snap.Records, identity)
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, rec := range visible {
		if rec.MainCategory == "" {
			continue
		}
		if _, ok := seen[rec.MainCategory]; ok {
			continue
		}
		seen[rec.MainCategory] = struct{}{}
		categories = append(categories, rec.MainCategory)
	}
	return categories, nil
}

// SnapshotInfo exposes the current snapshot's metadata for health checks.
func (s *FeedbackService) SnapshotInfo() (cache.Snapshot, bool) {
	return s.cache.Current()
}

func findRecord(records []models.FeedbackRecord, id int) (models.FeedbackRecord, bool) {
	for _, rec := range records {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.FeedbackRecord{}, false
}

func validateUpdate(req *types.UpdateFeedbackRequest) error {
	required := []struct {
		name  string
		value string
	}{
		{"category", req.Category},
		{"contact_user", req.ContactUser},
		{"sentiment", req.Sentiment},
		{"updated_by", req.UpdatedBy},
		{"updated_time", req.UpdatedTime},
	}
	if req.ID == 0 {
		return fmt.Errorf("%w: missing required field: id", ErrValidation)
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%w: missing required field: %s", ErrValidation, field.name)
		}
	}
	// Status only means anything when the fan asked to be contacted.
	if req.ContactUser == "Yes" && req.Status == "" {
		return fmt.Errorf("%w: missing required field: status", ErrValidation)
	}
	return nil
}
