package source

import (
	"context"
	"time"

	"github.com/fanpulse/backend/internal/models"
)

// Categories every mock row-set spans. These match the partitions the
// access filter is configured around.
var MockCategories = []string{
	"Ticketing",
	"Stadium Experience",
	"Food & Beverage",
	"Merchandise",
	"Travel",
}

type mockSeed struct {
	name     string
	category string
	sub      string
	feedback string
	contact  string
	status   string
	ageHours int
}

// Two records per category; feedback lengths chosen to land in each
// sentiment bucket. Timestamps are relative to generation time, so the
// shape is deterministic but the content is not.
var mockSeeds = []mockSeed{
	{"Jane Doe", "Ticketing", "Mobile Tickets", "The mobile ticket transfer failed twice before the gates opened and the support line kept me on hold for over forty minutes, which nearly made us miss kickoff entirely.", "Yes", models.StatusInProgress, 3},
	{"Prince", "Ticketing", "Box Office", "Queue was too long.", "No", "", 26},
	{"Maria Santos", "Stadium Experience", "Seating", "Seats in section 114 were sticky and the cup holders were broken, but the staff moved us quickly once we asked.", "Yes", models.StatusCompleted, 49},
	{"Liam O'Connor", "Stadium Experience", "Accessibility", "Ramp access on the east side was blocked by merchandising carts for most of the first half and nobody seemed responsible for moving them out of the way.", "Yes", models.StatusNotStarted, 74},
	{"Aisha Khan", "Food & Beverage", "Concessions", "Great nachos, fair price.", "No", "", 98},
	{"Tom Becker", "Food & Beverage", "Beverages", "Waited twenty-five minutes for two drinks at the north concourse stand while three registers sat closed, and by the time I got back the second quarter was over.", "Yes", models.StatusInProgress, 120},
	{"Yuki Tanaka", "Merchandise", "Apparel", "The jersey I bought faded after one wash even though I followed the care label exactly.", "Yes", models.StatusNotStarted, 146},
	{"Carlos Rivera", "Merchandise", "Collectibles", "Loved the retro pennants.", "No", "", 170},
	{"Emma Wilson", "Travel", "Parking", "Lot C exits were gridlocked for over an hour after the final whistle because only one of the four marked exits was actually open, and the signage sent everyone to the closed ones.", "Yes", models.StatusInProgress, 195},
	{"Noah Brown", "Travel", "Shuttle", "Shuttle was on time and the driver was friendly the whole ride.", "No", "", 219},
}

// MockSource fabricates a small, fully-populated row-set for use when no
// real backing store is reachable.
type MockSource struct {
	now func() time.Time
}

// NewMockSource creates the generator.
func NewMockSource() *MockSource {
	return &MockSource{now: time.Now}
}

// Name implements Fetcher.
func (s *MockSource) Name() string { return "mock" }

// Fetch implements Fetcher and never fails.
func (s *MockSource) Fetch(ctx context.Context) ([]models.Row, error) {
	return s.Generate(), nil
}

// Generate returns ten records spanning every category, with every required
// field populated so filters, grouping and pagination all have realistic
// input.
func (s *MockSource) Generate() []models.Row {
	now := s.now()
	rows := make([]models.Row, len(mockSeeds))
	for i, seed := range mockSeeds {
		rows[i] = models.Row{
			"Customer Name":  seed.name,
			"Main Category":  seed.category,
			"Sub Category":   seed.sub,
			"Feedback":       seed.feedback,
			"Contact User":   seed.contact,
			"Status":         seed.status,
			"Date Submitted": now.Add(-time.Duration(seed.ageHours) * time.Hour),
		}
	}
	return rows
}
