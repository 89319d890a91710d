package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanpulse/backend/internal/models"
	"github.com/fanpulse/backend/internal/testhelpers"
)

func seedWarehouse(t *testing.T, src *WarehouseSource, rows []models.FeedbackRow) {
	t.Helper()
	for i := range rows {
		require.NoError(t, src.db.Create(&rows[i]).Error)
	}
}

func TestWarehouseFetchOrdersNewestFirst(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	src := NewWarehouseSource(db, 0)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedWarehouse(t, src, []models.FeedbackRow{
		{CustomerName: "Old Entry", MainCategory: "Ticketing", FeedbackText: "old", CreatedDate: base},
		{CustomerName: "New Entry", MainCategory: "Travel", FeedbackText: "new", CreatedDate: base.AddDate(0, 0, 5)},
		{CustomerName: "Mid Entry", MainCategory: "Merchandise", FeedbackText: "mid", CreatedDate: base.AddDate(0, 0, 2)},
	})

	rows, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "New Entry", rows[0]["customer_name"])
	assert.Equal(t, "Mid Entry", rows[1]["customer_name"])
	assert.Equal(t, "Old Entry", rows[2]["customer_name"])
}

func TestWarehouseFetchHonorsLimit(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	src := NewWarehouseSource(db, 2)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedWarehouse(t, src, []models.FeedbackRow{
		{CustomerName: "a", CreatedDate: base},
		{CustomerName: "b", CreatedDate: base.AddDate(0, 0, 1)},
		{CustomerName: "c", CreatedDate: base.AddDate(0, 0, 2)},
	})

	rows, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "c", rows[0]["customer_name"])
}

func TestWarehouseUpdate(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	src := NewWarehouseSource(db, 0)

	seedWarehouse(t, src, []models.FeedbackRow{
		{CustomerName: "Jane Doe", MainCategory: "Ticketing", ContactUser: "Yes", Status: models.StatusNotStarted, CreatedDate: time.Now()},
	})

	err := src.Update(context.Background(), models.FeedbackRecord{
		ID:              1,
		MainCategory:    "Ticketing",
		SubCategory:     "Box Office",
		ContactUser:     "Yes",
		Status:          models.StatusCompleted,
		Sentiment:       "Negative",
		LastUpdatedBy:   "admin@fanpulse.io",
		LastUpdatedTime: "2026-03-14 12:00:00",
	})
	require.NoError(t, err)

	var row models.FeedbackRow
	require.NoError(t, db.First(&row, 1).Error)
	assert.Equal(t, models.StatusCompleted, row.Status)
	assert.Equal(t, "Box Office", row.SubCategory)
	assert.Equal(t, "admin@fanpulse.io", row.LastUpdatedBy)
}

func TestWarehouseUpdateMissingRowIsUnavailable(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	src := NewWarehouseSource(db, 0)

	err := src.Update(context.Background(), models.FeedbackRecord{ID: 999, MainCategory: "Travel"})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestWarehouseSaveTracking(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	src := NewWarehouseSource(db, 0)

	tracking := &models.EmailTracking{FeedbackID: 4, TrackingID: "track-9", SentTime: "2026-03-14 12:00:00"}
	require.NoError(t, src.SaveTracking(context.Background(), tracking))

	var stored models.EmailTracking
	require.NoError(t, db.Where("feedback_id = ?", 4).First(&stored).Error)
	assert.Equal(t, "track-9", stored.TrackingID)
}
