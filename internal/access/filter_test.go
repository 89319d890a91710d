package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fanpulse/backend/internal/models"
)

var fixtureRecords = []models.FeedbackRecord{
	{ID: 1, MainCategory: "Ticketing"},
	{ID: 2, MainCategory: "Ticketing"},
	{ID: 3, MainCategory: "Travel"},
	{ID: 4, MainCategory: "Food & Beverage"},
	{ID: 5, MainCategory: ""},
}

func TestFilterSuperUserSeesEverything(t *testing.T) {
	identity := &models.Identity{Role: models.RoleSuperUser}
	assert.Equal(t, fixtureRecords, Filter(fixtureRecords, identity))
}

func TestFilterNilIdentitySeesEverything(t *testing.T) {
	assert.Equal(t, fixtureRecords, Filter(fixtureRecords, nil))
}

func TestFilterCategoryUserSeesOnlyOwnPartition(t *testing.T) {
	identity := &models.Identity{Role: models.RoleCategoryUser, Category: "Ticketing"}
	visible := Filter(fixtureRecords, identity)

	assert.Len(t, visible, 2)
	for _, rec := range visible {
		assert.Equal(t, "Ticketing", rec.MainCategory)
	}
}

func TestFilterCategoryComparisonIsCaseSensitive(t *testing.T) {
	identity := &models.Identity{Role: models.RoleCategoryUser, Category: "ticketing"}
	assert.Empty(t, Filter(fixtureRecords, identity))
}

func TestFilterCategoryUserWithoutCategorySeesNothing(t *testing.T) {
	identity := &models.Identity{Role: models.RoleCategoryUser}
	assert.Empty(t, Filter(fixtureRecords, identity))
}

func TestFilterUnknownRoleSeesNothing(t *testing.T) {
	identity := &models.Identity{Role: "auditor", Category: "Ticketing"}
	assert.Empty(t, Filter(fixtureRecords, identity))
}

func TestCanSee(t *testing.T) {
	ticketing := models.FeedbackRecord{ID: 1, MainCategory: "Ticketing"}
	travel := models.FeedbackRecord{ID: 3, MainCategory: "Travel"}

	superUser := &models.Identity{Role: models.RoleSuperUser}
	ticketingUser := &models.Identity{Role: models.RoleCategoryUser, Category: "Ticketing"}
	noCategory := &models.Identity{Role: models.RoleCategoryUser}

	assert.True(t, CanSee(ticketing, superUser))
	assert.True(t, CanSee(travel, superUser))
	assert.True(t, CanSee(ticketing, nil))

	assert.True(t, CanSee(ticketing, ticketingUser))
	assert.False(t, CanSee(travel, ticketingUser))
	assert.False(t, CanSee(ticketing, noCategory))
}
