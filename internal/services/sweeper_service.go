package services

import (
	"context"
	"fmt"
	"time"

	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RegistrationSweeper removes accounts that never confirmed their email.
type RegistrationSweeper struct {
	DB       *gorm.DB
	Events   events.Publisher
	Interval time.Duration
	MaxAge   time.Duration

	now func() time.Time
}

func NewRegistrationSweeper(db *gorm.DB, publisher events.Publisher, interval, maxAge time.Duration) *RegistrationSweeper {
	return &RegistrationSweeper{
		DB:       db,
		Events:   publisher,
		Interval: interval,
		MaxAge:   maxAge,
		now:      time.Now,
	}
}

// Start runs a purge immediately and then on every tick until ctx is done.
func (s *RegistrationSweeper) Start(ctx context.Context) {
	if s.Interval <= 0 {
		logrus.Warn("registration sweeper disabled (no interval)")
		return
	}

	ticker := time.NewTicker(s.Interval)
	go func() {
		defer ticker.Stop()
		s.runOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

func (s *RegistrationSweeper) runOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	var purged int64
	err := retry(ctx, 3, time.Second, func() error {
		n, err := s.PurgeStaleRegistrations(ctx)
		purged = n
		return err
	})
	if err != nil {
		logrus.WithError(err).Error("registration sweep failed")
		return
	}
	if purged > 0 {
		logrus.WithField("users", purged).Info("stale registrations purged")
		events.Emit(ctx, s.Events, events.StaleRegistrationsPurged, map[string]any{"users": purged})
	}
}

// PurgeStaleRegistrations deletes inactive users whose confirmation code
// expired more than MaxAge ago, and returns how many were removed.
func (s *RegistrationSweeper) PurgeStaleRegistrations(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.MaxAge).Unix()

	var purged int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userIDs []uint
		err := tx.Model(&models.EmailConfirmationCode{}).
			Joins("JOIN users ON users.id = email_confirmation_codes.user_id").
			Where("users.is_active = ? AND email_confirmation_codes.expiration < ?", false, cutoff).
			Distinct().
			Pluck("email_confirmation_codes.user_id", &userIDs).Error
		if err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}

		if err := tx.Where("user_id IN ?", userIDs).Delete(&models.EmailConfirmationCode{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", userIDs).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ? AND is_active = ?", userIDs, false).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		purged = res.RowsAffected
		return nil
	})
	return purged, err
}

// retry runs f up to attempts times, doubling the pause after each failure.
func retry(ctx context.Context, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		logrus.WithError(err).Warnf("attempt %d failed, retrying in %v", i+1, sleep)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
