package Models

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// NotificationRecord is the delivery log: one row per displayed notification.
// The click outcome is backfilled by the router when (and if) the user clicks.
type NotificationRecord struct {
	gorm.Model
	NotificationID string     `gorm:"size:36;unique" json:"notification_id"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	Tag            string     `json:"tag"`
	URL            string     `json:"url"`
	DisplayedAt    time.Time  `json:"displayed_at"`
	ClickedAt      *time.Time `json:"clicked_at"`
	// Action is "focused" or "opened" once clicked, empty until then.
	Action   string `json:"action"`
	WindowID string `json:"window_id"`
}

// RecordDisplayed logs a displayed notification. Delivery must not depend on
// the database, so failures (or a missing DB in tests) only log.
func RecordDisplayed(req DisplayRequest) {
	if DB == nil {
		return
	}
	record := NotificationRecord{
		NotificationID: req.ID,
		Title:          req.Title,
		Body:           req.Options.Body,
		Tag:            req.Options.Tag,
		URL:            req.Options.Data["url"],
		DisplayedAt:    time.Now(),
	}
	if err := DB.Create(&record).Error; err != nil {
		log.Printf("Failed to record displayed notification %s: %v", req.ID, err)
	}
}

// RecordClickOutcome backfills the routing outcome on the delivery row.
func RecordClickOutcome(notificationID string, action RoutingAction) {
	if DB == nil || notificationID == "" {
		return
	}
	now := time.Now()
	outcome := "opened"
	windowID := ""
	if !action.OpenNew {
		outcome = "focused"
		windowID = action.FocusWindowID
	}
	err := DB.Model(&NotificationRecord{}).
		Where("notification_id = ?", notificationID).
		Updates(map[string]interface{}{
			"clicked_at": &now,
			"action":     outcome,
			"window_id":  windowID,
		}).Error
	if err != nil {
		log.Printf("Failed to record click outcome for %s: %v", notificationID, err)
	}
}

// PurgeOldRecords deletes delivery rows older than the retention window and
// returns how many were removed.
func PurgeOldRecords(retention time.Duration) (int64, error) {
	if DB == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-retention)
	result := DB.Unscoped().Where("displayed_at < ?", cutoff).Delete(&NotificationRecord{})
	return result.RowsAffected, result.Error
}
