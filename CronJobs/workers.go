package CronJobs

import (
	"log"
	"time"

	"DocTools/Models"
	"DocTools/SSE"

	"github.com/go-co-op/gocron"
)

const (
	// Windows that stop reporting for this long are considered closed.
	staleWindowAge = 5 * time.Minute
	// Delivery log rows older than this are purged.
	recordRetention = 90 * 24 * time.Hour
)

// NotificationMaintenance reaps dead window connections and trims the
// delivery log.
type NotificationMaintenance struct {
	Hub *SSE.WindowHub
}

// NewNotificationMaintenance creates a new maintenance service.
func NewNotificationMaintenance(hub *SSE.WindowHub) *NotificationMaintenance {
	return &NotificationMaintenance{
		Hub: hub,
	}
}

// StartMaintenanceCron starts the periodic maintenance jobs.
func (nm *NotificationMaintenance) StartMaintenanceCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(1).Minutes().Do(func() {
		if reaped := nm.Hub.ReapStale(staleWindowAge); reaped > 0 {
			log.Printf("Reaped %d stale window connections", reaped)
		}
	})

	scheduler.Every(1).Day().At("03:00").Do(func() {
		purged, err := Models.PurgeOldRecords(recordRetention)
		if err != nil {
			log.Printf("Error purging old notification records: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("Purged %d old notification records", purged)
		}
	})

	scheduler.StartAsync()
	log.Println("Notification maintenance cron jobs started")

	return scheduler
}
