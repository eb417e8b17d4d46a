package utils

import (
	"fmt"
	"time"

	"tracker/logger"
	courseModels "tracker/models/course"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeEnrollmentScheduler starts the job that deactivates enrollments
// past their expiry date. The caller stops the returned cron on shutdown.
func InitializeEnrollmentScheduler(db *gorm.DB, log *logger.Logger, spec string) (*cron.Cron, error) {
	log = log.With("component", "enrollment-scheduler")
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		log.Debug("running enrollment expiry sweep")
		expired, err := ExpireEnrollments(db, time.Now())
		if err != nil {
			log.Error("enrollment expiry sweep failed", "error", err)
			return
		}
		if expired > 0 {
			log.Info("expired enrollments", "count", expired)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule enrollment sweep %q: %w", spec, err)
	}

	c.Start()
	log.Info("enrollment scheduler started", "spec", spec)
	return c, nil
}

// ExpireEnrollments marks active enrollments whose expiry day ended before at
// as inactive and returns how many rows changed
func ExpireEnrollments(db *gorm.DB, at time.Time) (int64, error) {
	result := db.Model(&courseModels.Enrollment{}).
		Where("is_active = ? AND is_deleted = ? AND expires_at IS NOT NULL AND expires_at < ?", true, false, courseModels.ExpiryCutoff(at)).
		Update("is_active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("expire enrollments: %w", result.Error)
	}
	return result.RowsAffected, nil
}
