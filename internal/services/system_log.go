package services

import (
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/logger"
	"gorm.io/gorm"
)

var globalDB *gorm.DB

func InitSystemLogger(db *gorm.DB) {
	globalDB = db
}

func LogInfo(module, action, message string, userID *uint, ip string, extra interface{}) {
	writeLog("info", module, action, message, userID, ip, extra)
}

func LogWarning(module, action, message string, userID *uint, ip string, extra interface{}) {
	writeLog("warning", module, action, message, userID, ip, extra)
}

func LogError(module, action, message string, userID *uint, ip string, extra interface{}) {
	writeLog("error", module, action, message, userID, ip, extra)
}

func writeLog(level, module, action, message string, userID *uint, ip string, extra interface{}) {
	if globalDB == nil {
		return
	}

	var extraStr string
	if extra != nil {
		if b, err := json.Marshal(extra); err == nil {
			extraStr = string(b)
		}
	}

	entry := &models.SystemLog{
		Level:     level,
		Module:    module,
		Action:    action,
		Message:   message,
		UserID:    userID,
		IP:        ip,
		Extra:     extraStr,
		CreatedAt: time.Now(),
	}
	globalDB.Create(entry)
}

// logRetentionDays controls how long operation log entries are kept.
const logRetentionDays = 30

var cleanupCron *cron.Cron

// StartLogCleanupScheduler removes expired system log entries once a day.
func StartLogCleanupScheduler(db *gorm.DB) {
	cleanupCron = cron.New()
	_, err := cleanupCron.AddFunc("0 3 * * *", func() {
		cutoff := time.Now().AddDate(0, 0, -logRetentionDays)
		result := db.Where("created_at < ?", cutoff).Delete(&models.SystemLog{})
		if result.Error != nil {
			logger.Error().Err(result.Error).Msg("system log cleanup failed")
			return
		}
		if result.RowsAffected > 0 {
			logger.Info().Int64("deleted", result.RowsAffected).Msg("system log cleanup")
		}
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to schedule system log cleanup")
		return
	}
	cleanupCron.Start()
}

// StopLogCleanupScheduler stops the cleanup scheduler.
func StopLogCleanupScheduler() {
	if cleanupCron != nil {
		cleanupCron.Stop()
	}
}
