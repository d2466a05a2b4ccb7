package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/repository"
	"github.com/meetsync/meetsync/internal/schedule"
)

// ReminderService emails participants shortly before their meetings start.
// Each meeting is reminded exactly once.
type ReminderService struct {
	meetings repository.MeetingRepository
	notifier Notifier
	lead     time.Duration
	logger   *zap.Logger
}

func NewReminderService(meetings repository.MeetingRepository, notifier Notifier, lead time.Duration, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		meetings: meetings,
		notifier: notifier,
		lead:     lead,
		logger:   logger,
	}
}

// Run sends reminders for today's meetings starting within the lead window.
// Meetings in the first minutes after midnight are picked up by the first
// run of the new day; the window never crosses into the next date.
func (s *ReminderService) Run(ctx context.Context, now time.Time) error {
	date := now.Format(schedule.DateLayout)
	fromMin := now.Hour()*60 + now.Minute()
	toMin := fromMin + int(s.lead.Minutes())
	if toMin > schedule.MinutesPerDay-1 {
		toMin = schedule.MinutesPerDay - 1
	}

	due, err := s.meetings.ListDueReminders(ctx, date, schedule.MinutesToTime(fromMin), schedule.MinutesToTime(toMin))
	if err != nil {
		return err
	}

	for _, meeting := range due {
		if err := s.meetings.MarkReminderSent(ctx, meeting.ID); err != nil {
			s.logger.Error("Failed to mark reminder sent",
				zap.String("meeting_id", meeting.ID),
				zap.Error(err),
			)
			continue
		}
		s.notifier.MeetingReminder(meeting)
	}

	if len(due) > 0 {
		s.logger.Info("Reminders dispatched", zap.Int("count", len(due)))
	}

	return nil
}
