package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/models"
	"github.com/estilobarber/barberia-api/internal/notify"
)

// Sweeper periodically finds citas starting inside the lead window and
// fires one reminder per cita. Idempotency has two layers: the
// reminder_sent_at column is authoritative, and a redis SETNX lock keeps
// concurrent instances from racing on the same row.
type Sweeper struct {
	db       *gorm.DB
	rdb      *redis.Client
	notifier *notify.Dispatcher
	logger   *zap.Logger

	lead     time.Duration
	interval time.Duration
}

func NewSweeper(
	db *gorm.DB,
	rdb *redis.Client,
	notifier *notify.Dispatcher,
	logger *zap.Logger,
	lead time.Duration,
	interval time.Duration,
) *Sweeper {
	return &Sweeper{
		db:       db,
		rdb:      rdb,
		notifier: notifier,
		logger:   logger,
		lead:     lead,
		interval: interval,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("reminder sweeper started",
		zap.Duration("lead", s.lead), zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass. Exported so tests can drive it without the ticker.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := time.Now()

	var due []models.Appointment
	err := s.db.WithContext(ctx).
		Select("id").
		Where(
			"status IN ? AND reminder_sent_at IS NULL AND start_time > ? AND start_time <= ?",
			[]string{string(domain.StatusPendiente), string(domain.StatusConfirmada)},
			now, now.Add(s.lead),
		).
		Find(&due).Error
	if err != nil {
		s.logger.Error("reminder sweep query failed", zap.Error(err))
		return
	}

	for _, ap := range due {
		if !s.acquire(ctx, ap.ID) {
			continue
		}

		// The WHERE guard makes the mark idempotent: zero rows means some
		// other sweep got here first.
		res := s.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("id = ? AND reminder_sent_at IS NULL", ap.ID).
			Update("reminder_sent_at", now)
		if res.Error != nil {
			s.logger.Error("failed to mark reminder sent",
				zap.Uint("cita", ap.ID), zap.Error(res.Error))
			continue
		}
		if res.RowsAffected == 0 {
			continue
		}

		s.notifier.NotifyReminder(ap.ID)
	}
}

// acquire takes the per-cita redis lock. A redis outage degrades to the
// database flag alone.
func (s *Sweeper) acquire(ctx context.Context, appointmentID uint) bool {
	if s.rdb == nil {
		return true
	}

	key := fmt.Sprintf("recordatorio:cita:%d", appointmentID)
	ok, err := s.rdb.SetNX(ctx, key, 1, s.lead).Result()
	if err != nil {
		s.logger.Warn("redis reminder lock unavailable",
			zap.Uint("cita", appointmentID), zap.Error(err))
		return true
	}
	return ok
}
