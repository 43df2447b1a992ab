package services

import (
	"encoding/json"
	"time"

	"github.com/mvaldez/projecttracker/internal/models"
	"github.com/mvaldez/projecttracker/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ActivityService records domain events (project mutations, auth transitions)
// and prunes old entries on a daily schedule.
type ActivityService struct {
	db            *gorm.DB
	retentionDays int
	cronScheduler *cron.Cron
}

func NewActivityService(db *gorm.DB, retentionDays int) *ActivityService {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &ActivityService{db: db, retentionDays: retentionDays}
}

// Record writes one activity entry. Recording is best effort: a write failure
// is logged, never propagated to the triggering operation.
func (s *ActivityService) Record(level, module, action, message, username, ip string, extra interface{}) {
	if s.db == nil {
		return
	}

	var extraStr string
	if extra != nil {
		if b, err := json.Marshal(extra); err == nil {
			extraStr = string(b)
		}
	}

	entry := &models.ActivityLog{
		Level:     level,
		Module:    module,
		Action:    action,
		Message:   message,
		Username:  username,
		IP:        ip,
		Extra:     extraStr,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		logger.Warn().Err(err).Str("action", action).Msg("failed to record activity")
	}
}

type ActivityListRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	Level    string `form:"level"`
	Module   string `form:"module"`
	Username string `form:"username"`
}

type ActivityListResponse struct {
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Items    []models.ActivityLog `json:"items"`
}

// List returns paginated activity entries, newest first.
func (s *ActivityService) List(req *ActivityListRequest) (*ActivityListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var items []models.ActivityLog
	var total int64

	query := s.db.Model(&models.ActivityLog{})
	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}
	if req.Username != "" {
		query = query.Where("username = ?", req.Username)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return &ActivityListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// Cleanup deletes entries older than the retention window and returns the
// number removed.
func (s *ActivityService) Cleanup() (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	return result.RowsAffected, result.Error
}

// StartCleanupScheduler runs Cleanup daily at 03:30.
func (s *ActivityService) StartCleanupScheduler() {
	s.cronScheduler = cron.New()
	_, err := s.cronScheduler.AddFunc("30 3 * * *", func() {
		removed, err := s.Cleanup()
		if err != nil {
			logger.Warn().Err(err).Msg("activity cleanup failed")
			return
		}
		logger.Info().Int64("removed", removed).Msg("activity cleanup done")
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to schedule activity cleanup")
		return
	}
	s.cronScheduler.Start()
	logger.Info().Int("retention_days", s.retentionDays).Msg("activity cleanup scheduler started")
}

// StopCleanupScheduler stops the cleanup schedule.
func (s *ActivityService) StopCleanupScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}
