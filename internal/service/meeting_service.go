package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/meetlink"
	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository"
	"github.com/meetsync/meetsync/internal/schedule"
)

// Notifier fans out meeting events after a successful commit. Implementations
// must never block the caller; delivery is best effort.
type Notifier interface {
	MeetingBooked(meeting *model.Meeting)
	MeetingUpdated(meeting *model.Meeting)
	MeetingCancelled(meeting *model.Meeting)
	MeetingReminder(meeting *model.Meeting)
}

// MeetingService orchestrates the booking transaction: availability
// containment, the same-owner conflict scan and the transactional write.
type MeetingService struct {
	meetings repository.MeetingRepository
	users    repository.UserRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewMeetingService(
	meetings repository.MeetingRepository,
	users repository.UserRepository,
	notifier Notifier,
	logger *zap.Logger,
) *MeetingService {
	return &MeetingService{
		meetings: meetings,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// MeetingInput is the validated request for creating or editing a meeting.
type MeetingInput struct {
	ID                string // empty on create
	Title             string
	Description       string
	MeetingLink       string
	AutoGenerateLink  bool // generate a Meet-style link when MeetingLink is empty
	Date              string
	StartTime         string
	EndTime           string
	OwnerID           string
	ParticipantEmails []string
	GroupID           string
}

// validate checks field shapes and returns the interval as minute offsets.
func (in *MeetingInput) validate() (startMin, endMin int, err error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return 0, 0, fmt.Errorf("%w: missing owner id", ErrValidation)
	}
	if len(strings.TrimSpace(in.Title)) < 3 {
		return 0, 0, fmt.Errorf("%w: title must be at least 3 characters", ErrValidation)
	}
	if _, err := schedule.ParseDate(in.Date); err != nil {
		return 0, 0, err
	}
	startMin, err = schedule.TimeToMinutes(in.StartTime)
	if err != nil {
		return 0, 0, err
	}
	endMin, err = schedule.TimeToMinutes(in.EndTime)
	if err != nil {
		return 0, 0, err
	}
	if endMin <= startMin {
		return 0, 0, fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	return startMin, endMin, nil
}

// Create books a new meeting. It rejects intervals outside the owner's
// availability or overlapping another of the owner's scheduled meetings on
// the same date; the overlap check and the insert form one atomic unit.
// Notifications go out only after the commit and never affect the result.
func (s *MeetingService) Create(ctx context.Context, input MeetingInput) (*model.Meeting, error) {
	startMin, endMin, err := input.validate()
	if err != nil {
		return nil, err
	}

	rules, err := s.users.GetAvailability(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	ok, err := schedule.WithinAvailability(input.Date, startMin, endMin, rules)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOutsideAvailability
	}

	link := meetlink.Normalize(input.MeetingLink)
	if link == "" && input.AutoGenerateLink {
		link = meetlink.NewGoogleMeetLink()
	}

	meeting := &model.Meeting{
		ID:                uuid.NewString(),
		Title:             input.Title,
		Description:       input.Description,
		MeetingLink:       link,
		Date:              input.Date,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		OwnerID:           input.OwnerID,
		Participants:      model.NewInvitedParticipants(input.ParticipantEmails),
		ParticipantEmails: input.ParticipantEmails,
		Status:            model.MeetingStatusScheduled,
		GroupID:           input.GroupID,
	}

	err = s.meetings.CreateScheduled(ctx, meeting, s.overlapCheck(startMin, endMin, ""))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Meeting booked",
		zap.String("meeting_id", meeting.ID),
		zap.String("owner_id", meeting.OwnerID),
		zap.String("date", meeting.Date),
		zap.String("start", meeting.StartTime),
		zap.String("end", meeting.EndTime),
	)

	s.notifier.MeetingBooked(meeting)

	return meeting, nil
}

// Update edits a scheduled meeting. The conflict scan excludes the meeting's
// own id, and the transaction re-verifies existence and ownership at commit.
func (s *MeetingService) Update(ctx context.Context, input MeetingInput) (*model.Meeting, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("%w: missing meeting id", ErrValidation)
	}
	startMin, endMin, err := input.validate()
	if err != nil {
		return nil, err
	}

	rules, err := s.users.GetAvailability(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	ok, err := schedule.WithinAvailability(input.Date, startMin, endMin, rules)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOutsideAvailability
	}

	meeting := &model.Meeting{
		ID:                input.ID,
		Title:             input.Title,
		Description:       input.Description,
		MeetingLink:       meetlink.Normalize(input.MeetingLink),
		Date:              input.Date,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		OwnerID:           input.OwnerID,
		Participants:      model.NewInvitedParticipants(input.ParticipantEmails),
		ParticipantEmails: input.ParticipantEmails,
		Status:            model.MeetingStatusScheduled,
		GroupID:           input.GroupID,
	}

	err = s.meetings.UpdateScheduled(ctx, meeting, s.overlapCheck(startMin, endMin, input.ID))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Meeting updated",
		zap.String("meeting_id", meeting.ID),
		zap.String("owner_id", meeting.OwnerID),
	)

	s.notifier.MeetingUpdated(meeting)

	return meeting, nil
}

// Cancel marks a meeting cancelled. Only the owner may cancel; no
// availability or conflict checks apply.
func (s *MeetingService) Cancel(ctx context.Context, id, actingOwnerID string) error {
	meeting, err := s.meetings.Cancel(ctx, id, actingOwnerID)
	if err != nil {
		return err
	}

	s.logger.Info("Meeting cancelled",
		zap.String("meeting_id", id),
		zap.String("owner_id", actingOwnerID),
	)

	s.notifier.MeetingCancelled(meeting)

	return nil
}

// GetByID fetches a single meeting.
func (s *MeetingService) GetByID(ctx context.Context, id string) (*model.Meeting, error) {
	meeting, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, ErrNotFound
	}
	return meeting, nil
}

// ListForUser returns meetings where the user is the owner or a participant,
// each meeting exactly once.
func (s *MeetingService) ListForUser(ctx context.Context, userID, email string) ([]*model.Meeting, error) {
	return s.meetings.ListForUser(ctx, userID, email)
}

// overlapCheck builds the conflict check that runs inside the repository
// transaction: the proposed interval against every same-day scheduled
// meeting of the owner, skipping excludeID so an edit never conflicts with
// itself.
func (s *MeetingService) overlapCheck(startMin, endMin int, excludeID string) repository.ConflictCheck {
	return func(sameDay []*model.Meeting) error {
		for _, existing := range sameDay {
			if existing.ID == excludeID {
				continue
			}
			existingStart, err := schedule.TimeToMinutes(existing.StartTime)
			if err != nil {
				return fmt.Errorf("stored start time of %s: %w", existing.ID, err)
			}
			existingEnd, err := schedule.TimeToMinutes(existing.EndTime)
			if err != nil {
				return fmt.Errorf("stored end time of %s: %w", existing.ID, err)
			}
			if schedule.HasOverlap(startMin, endMin, existingStart, existingEnd) {
				return ErrConflict
			}
		}
		return nil
	}
}
