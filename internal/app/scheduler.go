package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/service"
)

// Scheduler runs background jobs, currently the meeting reminder sweep.
type Scheduler struct {
	reminders *service.ReminderService
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewScheduler(reminders *service.ReminderService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		reminders: reminders,
		cron:      cron.New(),
		logger:    logger,
	}
}

// Start registers the reminder sweep every minute and launches the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.reminders.Run(ctx, time.Now()); err != nil {
			s.logger.Error("Reminder sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.logger.Info("Starting background scheduler")
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	<-s.cron.Stop().Done()
}
