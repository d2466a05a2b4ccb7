// Package notify fans meeting events out to the configured channels: email
// invitations through SendGrid, a Slack incoming webhook and optionally a
// Telegram announcement chat. Delivery is best effort and strictly after the
// booking commit: failures are logged, never retried and never surfaced to
// the booking caller.
package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/model"
)

const sendTimeout = 10 * time.Second

// Notifier dispatches meeting events. Any channel may be nil.
type Notifier struct {
	email    *EmailSender
	slack    *SlackWebhook
	telegram *TelegramAnnouncer
	logger   *zap.Logger
}

func NewNotifier(email *EmailSender, slack *SlackWebhook, telegram *TelegramAnnouncer, logger *zap.Logger) *Notifier {
	return &Notifier{
		email:    email,
		slack:    slack,
		telegram: telegram,
		logger:   logger,
	}
}

// MeetingBooked announces a new meeting and invites every participant.
func (n *Notifier) MeetingBooked(meeting *model.Meeting) {
	summary := fmt.Sprintf("New meeting: %s\nDate: %s %s-%s\nLink: %s",
		meeting.Title, meeting.Date, meeting.StartTime, meeting.EndTime, meeting.MeetingLink)

	subject := fmt.Sprintf("Meeting invitation: %s", meeting.Title)
	body := fmt.Sprintf(
		"Hello!\n\nYou are invited to the meeting %q.\n\nDate: %s\nTime: %s to %s\n\nJoin link: %s\n\n"+
			"Please add this appointment to your calendar.\n\nThis is an automatic invitation, do not reply to this email.",
		meeting.Title, meeting.Date, meeting.StartTime, meeting.EndTime, meeting.MeetingLink)

	n.dispatch(meeting, summary, subject, body)
}

// MeetingUpdated notifies participants about changed meeting details.
func (n *Notifier) MeetingUpdated(meeting *model.Meeting) {
	summary := fmt.Sprintf("Meeting updated: %s\nDate: %s %s-%s\nLink: %s",
		meeting.Title, meeting.Date, meeting.StartTime, meeting.EndTime, meeting.MeetingLink)

	subject := fmt.Sprintf("Meeting updated: %s", meeting.Title)
	body := fmt.Sprintf(
		"Hello!\n\nThe meeting %q has changed.\n\nNew date: %s\nNew time: %s to %s\n\nJoin link: %s",
		meeting.Title, meeting.Date, meeting.StartTime, meeting.EndTime, meeting.MeetingLink)

	n.dispatch(meeting, summary, subject, body)
}

// MeetingCancelled notifies participants that the meeting will not happen.
func (n *Notifier) MeetingCancelled(meeting *model.Meeting) {
	summary := fmt.Sprintf("Meeting cancelled: %s (%s %s-%s)",
		meeting.Title, meeting.Date, meeting.StartTime, meeting.EndTime)

	subject := fmt.Sprintf("Meeting cancelled: %s", meeting.Title)
	body := fmt.Sprintf(
		"Hello!\n\nThe meeting %q on %s from %s to %s has been cancelled.",
		meeting.Title, meeting.Date, meeting.StartTime, meeting.EndTime)

	n.dispatch(meeting, summary, subject, body)
}

// MeetingReminder reminds participants shortly before the start.
func (n *Notifier) MeetingReminder(meeting *model.Meeting) {
	subject := fmt.Sprintf("Reminder: %s starts at %s", meeting.Title, meeting.StartTime)
	body := fmt.Sprintf(
		"Hello!\n\nThe meeting %q starts today at %s.\n\nJoin link: %s",
		meeting.Title, meeting.StartTime, meeting.MeetingLink)

	// Reminders go to participants only, no channel announcement.
	n.dispatch(meeting, "", subject, body)
}

func (n *Notifier) dispatch(meeting *model.Meeting, summary, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if summary != "" && n.slack != nil {
			if err := n.slack.Send(ctx, summary); err != nil {
				n.logger.Error("Failed to send Slack message",
					zap.String("meeting_id", meeting.ID),
					zap.Error(err),
				)
			}
		}

		if summary != "" && n.telegram != nil {
			if err := n.telegram.Announce(ctx, summary); err != nil {
				n.logger.Error("Failed to send Telegram announcement",
					zap.String("meeting_id", meeting.ID),
					zap.Error(err),
				)
			}
		}

		if n.email != nil {
			for _, to := range meeting.ParticipantEmails {
				if err := n.email.Send(to, subject, body); err != nil {
					n.logger.Error("Failed to send email",
						zap.String("meeting_id", meeting.ID),
						zap.String("to", to),
						zap.Error(err),
					)
				}
			}
		}
	}()
}
