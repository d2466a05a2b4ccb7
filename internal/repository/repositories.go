package repository

import (
	"context"

	"github.com/meetsync/meetsync/internal/model"
)

// ConflictCheck inspects the owner's scheduled meetings for the booking date.
// It runs inside the booking transaction, after the day's rows are locked;
// returning an error aborts the write and the error surfaces unchanged.
type ConflictCheck func(sameDay []*model.Meeting) error

// MeetingRepository persists meetings. The three mutating calls each run as a
// single serializable unit: the same-day read, the caller's conflict check
// and the write cannot interleave with another booking for the same owner
// and date.
type MeetingRepository interface {
	GetByID(ctx context.Context, id string) (*model.Meeting, error)
	ListForUser(ctx context.Context, userID, email string) ([]*model.Meeting, error)
	CreateScheduled(ctx context.Context, meeting *model.Meeting, check ConflictCheck) error
	UpdateScheduled(ctx context.Context, meeting *model.Meeting, check ConflictCheck) error
	Cancel(ctx context.Context, id, ownerID string) (*model.Meeting, error)
	ListDueReminders(ctx context.Context, date string, fromTime, toTime string) ([]*model.Meeting, error)
	MarkReminderSent(ctx context.Context, id string) error
}

// UserRepository persists user profiles and their availability rule sets.
type UserRepository interface {
	Create(ctx context.Context, user *model.UserProfile) error
	GetByID(ctx context.Context, id string) (*model.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*model.UserProfile, error)
	UpdateProfile(ctx context.Context, id, name, photoURL string) error
	GetAvailability(ctx context.Context, userID string) ([]model.AvailabilityRule, error)
	SaveAvailability(ctx context.Context, userID string, rules []model.AvailabilityRule) error
}

// GroupRepository persists groups and their memberships.
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id string) (*model.Group, error)
	ListForUser(ctx context.Context, userID string) ([]*model.Group, error)
	Update(ctx context.Context, id, name, description string) error
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, groupID, userID, role string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	SetMemberRole(ctx context.Context, groupID, userID, role string) error
}
