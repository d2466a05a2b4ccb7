// Package memory holds mutex-guarded in-process implementations of the
// repository interfaces. They back the service tests and the single-node
// dev mode; the whole check-then-write booking unit runs under one lock,
// which gives the same serialization the Postgres advisory lock provides.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository"
)

type MeetingRepository struct {
	mu       sync.Mutex
	meetings map[string]*model.Meeting
}

func NewMeetingRepository() *MeetingRepository {
	return &MeetingRepository{meetings: make(map[string]*model.Meeting)}
}

func (r *MeetingRepository) GetByID(_ context.Context, id string) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meeting, ok := r.meetings[id]
	if !ok {
		return nil, nil
	}
	return cloneMeeting(meeting), nil
}

func (r *MeetingRepository) ListForUser(_ context.Context, userID, email string) ([]*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Meeting
	for _, meeting := range r.meetings {
		if meeting.OwnerID == userID || (email != "" && containsString(meeting.ParticipantEmails, email)) {
			out = append(out, cloneMeeting(meeting))
		}
	}
	sortMeetings(out)
	return out, nil
}

func (r *MeetingRepository) CreateScheduled(_ context.Context, meeting *model.Meeting, check repository.ConflictCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := check(r.scheduledForDayLocked(meeting.OwnerID, meeting.Date)); err != nil {
		return err
	}

	now := time.Now()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now
	r.meetings[meeting.ID] = cloneMeeting(meeting)
	return nil
}

func (r *MeetingRepository) UpdateScheduled(_ context.Context, meeting *model.Meeting, check repository.ConflictCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.meetings[meeting.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if current.OwnerID != meeting.OwnerID {
		return repository.ErrNotOwner
	}
	if current.Status == model.MeetingStatusCancelled {
		return repository.ErrAlreadyCancelled
	}

	if err := check(r.scheduledForDayLocked(meeting.OwnerID, meeting.Date)); err != nil {
		return err
	}

	meeting.Status = current.Status
	meeting.CreatedAt = current.CreatedAt
	meeting.UpdatedAt = time.Now()
	r.meetings[meeting.ID] = cloneMeeting(meeting)
	return nil
}

func (r *MeetingRepository) Cancel(_ context.Context, id, ownerID string) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meeting, ok := r.meetings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if meeting.OwnerID != ownerID {
		return nil, repository.ErrNotOwner
	}
	if meeting.Status == model.MeetingStatusCancelled {
		return nil, repository.ErrAlreadyCancelled
	}

	meeting.Status = model.MeetingStatusCancelled
	meeting.UpdatedAt = time.Now()
	return cloneMeeting(meeting), nil
}

func (r *MeetingRepository) ListDueReminders(_ context.Context, date, fromTime, toTime string) ([]*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Meeting
	for _, meeting := range r.meetings {
		if meeting.Date != date || meeting.Status != model.MeetingStatusScheduled || meeting.ReminderSent {
			continue
		}
		if meeting.StartTime >= fromTime && meeting.StartTime <= toTime {
			out = append(out, cloneMeeting(meeting))
		}
	}
	sortMeetings(out)
	return out, nil
}

func (r *MeetingRepository) MarkReminderSent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if meeting, ok := r.meetings[id]; ok {
		meeting.ReminderSent = true
	}
	return nil
}

func (r *MeetingRepository) scheduledForDayLocked(ownerID, date string) []*model.Meeting {
	var out []*model.Meeting
	for _, meeting := range r.meetings {
		if meeting.OwnerID == ownerID && meeting.Date == date && meeting.Status == model.MeetingStatusScheduled {
			out = append(out, cloneMeeting(meeting))
		}
	}
	return out
}

func cloneMeeting(m *model.Meeting) *model.Meeting {
	cp := *m
	cp.Participants = append([]model.Participant(nil), m.Participants...)
	cp.ParticipantEmails = append([]string(nil), m.ParticipantEmails...)
	return &cp
}

func sortMeetings(list []*model.Meeting) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		return list[i].StartTime < list[j].StartTime
	})
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
