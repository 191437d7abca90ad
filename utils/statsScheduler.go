package utils

import (
	"fab/database"
	feedbackService "fab/services/feedback"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[STATS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartStatsScheduler logs a daily statistics snapshot for operators.
// Enabled via STATS_SNAPSHOT_CRON.
func StartStatsScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 6 * * *", logStatsSnapshot); err != nil {
		logScheduler("Failed to register snapshot job: " + err.Error())
		return
	}

	c.Start()
	logScheduler("Daily stats snapshot scheduled")
}

func logStatsSnapshot() {
	svc := feedbackService.NewService(database.Database.Db)

	stats, err := svc.Stats()
	if err != nil {
		logScheduler("Snapshot failed: " + err.Error())
		return
	}

	logScheduler(fmt.Sprintf("Snapshot: total=%d new=%d in-progress=%d resolved=%d",
		stats.Total, stats.ByStatus["new"], stats.ByStatus["in-progress"], stats.ByStatus["resolved"]))
}
