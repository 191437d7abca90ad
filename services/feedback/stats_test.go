package feedback

import (
	"fab/models"
	"testing"
	"time"
)

func TestAggregateStatsEmptyStore(t *testing.T) {
	ref := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

	stats := aggregateStats(nil, ref)

	if stats.Total != 0 {
		t.Errorf("Total = %d, want 0", stats.Total)
	}
	if len(stats.RecentTrend) != 30 {
		t.Fatalf("trend length = %d, want 30", len(stats.RecentTrend))
	}
	for _, p := range stats.RecentTrend {
		if p.Count != 0 {
			t.Errorf("day %s count = %d, want 0", p.Date, p.Count)
		}
	}
	if stats.RecentTrend[29].Date != "2025-06-15" {
		t.Errorf("last trend day = %s, want 2025-06-15", stats.RecentTrend[29].Date)
	}
	if stats.RecentTrend[0].Date != "2025-05-17" {
		t.Errorf("first trend day = %s, want 2025-05-17", stats.RecentTrend[0].Date)
	}
}

func TestAggregateStatsHistogramsCarryEveryEnumKey(t *testing.T) {
	stats := aggregateStats(nil, time.Now().UTC())

	for _, k := range models.FeedbackStatuses {
		if _, ok := stats.ByStatus[k]; !ok {
			t.Errorf("byStatus missing key %q", k)
		}
	}
	for _, k := range models.FeedbackTypes {
		if _, ok := stats.ByType[k]; !ok {
			t.Errorf("byType missing key %q", k)
		}
	}
	for _, k := range models.FeedbackPriorities {
		if _, ok := stats.ByPriority[k]; !ok {
			t.Errorf("byPriority missing key %q", k)
		}
	}
}

func TestAggregateStatsTrendDatesAreConsecutive(t *testing.T) {
	stats := aggregateStats(nil, time.Date(2025, 3, 5, 0, 0, 1, 0, time.UTC))

	prev, err := time.Parse("2006-01-02", stats.RecentTrend[0].Date)
	if err != nil {
		t.Fatalf("unparseable trend date %q: %v", stats.RecentTrend[0].Date, err)
	}
	for _, p := range stats.RecentTrend[1:] {
		d, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			t.Fatalf("unparseable trend date %q: %v", p.Date, err)
		}
		if d.Sub(prev) != 24*time.Hour {
			t.Errorf("gap between %s and %s", prev.Format("2006-01-02"), p.Date)
		}
		prev = d
	}
}

func TestAggregateStatsCountsAndWindow(t *testing.T) {
	ref := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	records := []models.Feedback{
		{
			ID: "fb_1", Type: models.TypeBug, Title: "a", Description: "d",
			Status: models.StatusNew, Priority: models.PriorityMedium,
			CreatedAt: ref.Add(-1 * time.Hour), // today
		},
		{
			ID: "fb_2", Type: models.TypeBug, Title: "b", Description: "d",
			Status: models.StatusResolved, Priority: models.PriorityHigh,
			CreatedAt: ref.AddDate(0, 0, -29), // first day of the window
		},
		{
			ID: "fb_3", Type: models.TypeFeature, Title: "c", Description: "d",
			Status: models.StatusNew, Priority: models.PriorityMedium,
			CreatedAt: ref.AddDate(0, 0, -31), // outside the window
		},
	}

	stats := aggregateStats(records, ref)

	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.ByType[models.TypeBug] != 2 || stats.ByType[models.TypeFeature] != 1 {
		t.Errorf("byType = %v", stats.ByType)
	}
	if stats.ByStatus[models.StatusNew] != 2 || stats.ByStatus[models.StatusResolved] != 1 {
		t.Errorf("byStatus = %v", stats.ByStatus)
	}
	if stats.ByPriority[models.PriorityMedium] != 2 || stats.ByPriority[models.PriorityHigh] != 1 {
		t.Errorf("byPriority = %v", stats.ByPriority)
	}

	var trendTotal int
	for _, p := range stats.RecentTrend {
		trendTotal += p.Count
	}
	if trendTotal != 2 {
		t.Errorf("trend counts only in-window records: got %d, want 2", trendTotal)
	}
	if stats.RecentTrend[29].Count != 1 {
		t.Errorf("today count = %d, want 1", stats.RecentTrend[29].Count)
	}
	if stats.RecentTrend[0].Count != 1 {
		t.Errorf("window start count = %d, want 1", stats.RecentTrend[0].Count)
	}
}

func TestStatsOverStore(t *testing.T) {
	svc := NewService(openTestDB(t))

	for i := 0; i < 4; i++ {
		_, err := svc.Create(CreateFeedbackData{
			Type:        models.TypeBug,
			Title:       "Recent bug",
			Description: "details",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.ByStatus[models.StatusNew] != 4 {
		t.Errorf("byStatus[new] = %d, want 4", stats.ByStatus[models.StatusNew])
	}
	if got := stats.RecentTrend[29].Count; got != 4 {
		t.Errorf("today's trend count = %d, want 4", got)
	}
}
