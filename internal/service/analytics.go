package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/fanpulse/backend/internal/access"
	"github.com/fanpulse/backend/internal/cache"
	"github.com/fanpulse/backend/internal/models"
	"github.com/fanpulse/backend/internal/types"
)

// AnalyticsService computes the dashboard aggregations over the caller's
// visible records.
type AnalyticsService struct {
	cache  *cache.SnapshotCache
	logger *zap.Logger
	now    func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(c *cache.SnapshotCache, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{cache: c, logger: logger, now: time.Now}
}

// Dashboard computes the main dashboard metrics. The category filter
// narrows within the caller's partition; it can never widen it.
func (s *AnalyticsService) Dashboard(ctx context.Context, identity *models.Identity, q *types.DashboardQuery) (*types.DashboardResponse, error) {
	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, err
	}

	records := access.Filter(snap.Records, identity)
	if q.Category != "" && q.Category != "all" {
		narrowed := make([]models.FeedbackRecord, 0, len(records))
		for _, rec := range records {
			if rec.MainCategory == q.Category {
				narrowed = append(narrowed, rec)
			}
		}
		records = narrowed
	}

	start, end := s.resolveDateRange(q.DateRange, q.StartDate, q.EndDate)
	records = filterByDate(records, start, end)

	total := len(records)
	sentimentCounts := make(map[string]int)
	categoryCounts := make(map[string]int)
	daily := make(map[string]int)
	for _, rec := range records {
		sentimentCounts[sentimentOf(rec)]++
		if rec.MainCategory != "" {
			categoryCounts[rec.MainCategory]++
		}
		if !rec.DateSubmitted.IsZero() {
			daily[rec.DateSubmitted.Format("2006-01-02")]++
		}
	}

	dailyFeedback := make([]types.DailyCount, 0, len(daily))
	for day, count := range daily {
		dailyFeedback = append(dailyFeedback, types.DailyCount{Date: day, Count: count})
	}
	sort.Slice(dailyFeedback, func(i, j int) bool {
		return dailyFeedback[i].Date < dailyFeedback[j].Date
	})

	return &types.DashboardResponse{
		TotalFeedback:         total,
		SentimentDistribution: distribution(sentimentCounts, total),
		SentimentCounts:       sentimentCounts,
		CategoryDistribution:  categoryCounts,
		DailyFeedback:         dailyFeedback,
		ContactUserStats:      contactStats(records),
		ResolutionStats:       resolutionStats(records),
		DateRange: types.DateRange{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
		},
	}, nil
}

// Summary computes the compact summary metrics over the caller's full
// visible set.
func (s *AnalyticsService) Summary(ctx context.Context, identity *models.Identity) (*types.SummaryResponse, error) {
	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, err
	}

	records := access.Filter(snap.Records, identity)
	total := len(records)

	sentimentCounts := make(map[string]int)
	seen := make(map[string]struct{})
	categoryCount := 0
	var scoreSum float64
	for _, rec := range records {
		sentimentCounts[sentimentOf(rec)]++
		scoreSum += models.SentimentScore(rec.FeedbackText)
		if rec.MainCategory != "" {
			if _, ok := seen[rec.MainCategory]; !ok {
				seen[rec.MainCategory] = struct{}{}
				categoryCount++
			}
		}
	}

	var avgSentiment *float64
	if total > 0 {
		avg := scoreSum / float64(total)
		avgSentiment = &avg
	}

	return &types.SummaryResponse{
		TotalFeedback:         total,
		CategoryCount:         categoryCount,
		AvgSentiment:          avgSentiment,
		SentimentDistribution: distribution(sentimentCounts, total),
		ContactUserStats:      contactStats(records),
		ResolutionStats:       resolutionStats(records),
	}, nil
}

// resolveDateRange turns a named range or custom bounds into concrete
// dates. Malformed custom dates fall back to the last-30-days window.
func (s *AnalyticsService) resolveDateRange(dateRange, startDate, endDate string) (time.Time, time.Time) {
	today := truncateToDay(s.now())

	if dateRange == "custom" && startDate != "" && endDate != "" {
		start, errStart := time.Parse("2006-01-02", startDate)
		end, errEnd := time.Parse("2006-01-02", endDate)
		if errStart == nil && errEnd == nil {
			return start, end
		}
		s.logger.Warn("malformed custom date range, falling back to last 30 days",
			zap.String("start_date", startDate),
			zap.String("end_date", endDate))
		return today.AddDate(0, 0, -30), today
	}

	switch dateRange {
	case "today":
		return today, today
	case "yesterday":
		yesterday := today.AddDate(0, 0, -1)
		return yesterday, yesterday
	case "last7":
		return today.AddDate(0, 0, -7), today
	default:
		return today.AddDate(0, 0, -30), today
	}
}

func filterByDate(records []models.FeedbackRecord, start, end time.Time) []models.FeedbackRecord {
	out := make([]models.FeedbackRecord, 0, len(records))
	for _, rec := range records {
		day := truncateToDay(rec.DateSubmitted)
		if day.Before(start) || day.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sentimentOf(rec models.FeedbackRecord) string {
	if rec.Sentiment != "" {
		return rec.Sentiment
	}
	return models.SentimentFor(rec.FeedbackText)
}

func distribution(counts map[string]int, total int) map[string]types.CountPercent {
	out := make(map[string]types.CountPercent, len(counts))
	for label, count := range counts {
		out[label] = types.CountPercent{
			Count:      count,
			Percentage: percentage(count, total),
		}
	}
	return out
}

func contactStats(records []models.FeedbackRecord) map[string]types.CountPercent {
	total := len(records)
	yes, no := 0, 0
	for _, rec := range records {
		switch rec.ContactUser {
		case "Yes":
			yes++
		case "No":
			no++
		}
	}
	return map[string]types.CountPercent{
		"Yes": {Count: yes, Percentage: percentage(yes, total)},
		"No":  {Count: no, Percentage: percentage(no, total)},
	}
}

func resolutionStats(records []models.FeedbackRecord) map[string]types.ResolutionStat {
	total := len(records)
	contactYes := 0
	statusCounts := make(map[string]int)
	for _, rec := range records {
		if rec.ContactUser != "Yes" {
			continue
		}
		contactYes++
		if rec.Status != "" {
			statusCounts[rec.Status]++
		}
	}

	out := make(map[string]types.ResolutionStat, len(statusCounts))
	for status, count := range statusCounts {
		out[status] = types.ResolutionStat{
			Count:             count,
			Percentage:        percentage(count, contactYes),
			PercentageOfTotal: percentage(count, total),
		}
	}
	return out
}

// percentage rounds to one decimal place, matching what the dashboard
// charts have always displayed.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
