package feedback

import (
	"fab/models"
	"log"
	"time"

	"github.com/jinzhu/now"
)

// trendDays is the fixed trailing window of the dashboard trend
const trendDays = 30

// TrendPoint is one calendar day of the creation trend
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats is the dashboard snapshot
type Stats struct {
	Total       int64          `json:"total"`
	ByStatus    map[string]int `json:"byStatus"`
	ByType      map[string]int `json:"byType"`
	ByPriority  map[string]int `json:"byPriority"`
	RecentTrend []TrendPoint   `json:"recentTrend"`
}

// Stats scans all records once and aggregates in memory, so the dashboard
// needs no pagination. Cost is linear in record count.
func (s *Service) Stats() (*Stats, error) {
	var records []models.Feedback
	if err := s.db.Find(&records).Error; err != nil {
		log.Printf("Failed to fetch feedback for stats: %v", err)
		return nil, errStore(CodeStatsError, "Failed to compute feedback statistics!")
	}
	return aggregateStats(records, time.Now().UTC()), nil
}

// aggregateStats builds the snapshot relative to ref. Histograms carry every
// enum member, and the trend covers each of the last trendDays calendar days
// ending on ref's day, zero-filled.
func aggregateStats(records []models.Feedback, ref time.Time) *Stats {
	stats := &Stats{
		Total:      int64(len(records)),
		ByStatus:   emptyHistogram(models.FeedbackStatuses),
		ByType:     emptyHistogram(models.FeedbackTypes),
		ByPriority: emptyHistogram(models.FeedbackPriorities),
	}

	windowStart := now.New(ref).BeginningOfDay().AddDate(0, 0, -(trendDays - 1))
	daily := make(map[string]int, trendDays)

	for i := range records {
		r := &records[i]
		if _, ok := stats.ByStatus[r.Status]; ok {
			stats.ByStatus[r.Status]++
		}
		if _, ok := stats.ByType[r.Type]; ok {
			stats.ByType[r.Type]++
		}
		if _, ok := stats.ByPriority[r.Priority]; ok {
			stats.ByPriority[r.Priority]++
		}
		if !r.CreatedAt.Before(windowStart) {
			daily[r.CreatedAt.Format("2006-01-02")]++
		}
	}

	stats.RecentTrend = make([]TrendPoint, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		day := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		stats.RecentTrend = append(stats.RecentTrend, TrendPoint{Date: day, Count: daily[day]})
	}

	return stats
}

func emptyHistogram(keys []string) map[string]int {
	h := make(map[string]int, len(keys))
	for _, k := range keys {
		h[k] = 0
	}
	return h
}
