package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository/memory"
)

type fakeNotifier struct {
	mu        sync.Mutex
	booked    int
	updated   int
	cancelled int
	reminded  int
}

func (n *fakeNotifier) MeetingBooked(*model.Meeting)    { n.mu.Lock(); n.booked++; n.mu.Unlock() }
func (n *fakeNotifier) MeetingUpdated(*model.Meeting)   { n.mu.Lock(); n.updated++; n.mu.Unlock() }
func (n *fakeNotifier) MeetingCancelled(*model.Meeting) { n.mu.Lock(); n.cancelled++; n.mu.Unlock() }
func (n *fakeNotifier) MeetingReminder(*model.Meeting)  { n.mu.Lock(); n.reminded++; n.mu.Unlock() }

func newMeetingFixture(t *testing.T) (*MeetingService, *memory.UserRepository, *fakeNotifier) {
	t.Helper()
	users := memory.NewUserRepository()
	meetings := memory.NewMeetingRepository()
	notifier := &fakeNotifier{}
	svc := NewMeetingService(meetings, users, notifier, zap.NewNop())
	return svc, users, notifier
}

func addUser(t *testing.T, users *memory.UserRepository, id string, rules []model.AvailabilityRule) {
	t.Helper()
	err := users.Create(context.Background(), &model.UserProfile{
		ID:           id,
		Name:         "Test User",
		Email:        id + "@example.com",
		Availability: rules,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
}

func baseInput(ownerID string) MeetingInput {
	return MeetingInput{
		Title:     "Planning sync",
		Date:      "2024-01-08", // Monday
		StartTime: "10:00",
		EndTime:   "11:00",
		OwnerID:   ownerID,
	}
}

func TestCreateMeeting(t *testing.T) {
	svc, users, notifier := newMeetingFixture(t)
	addUser(t, users, "owner-1", nil)

	meeting, err := svc.Create(context.Background(), baseInput("owner-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if meeting.ID == "" {
		t.Error("expected generated meeting id")
	}
	if meeting.Status != model.MeetingStatusScheduled {
		t.Errorf("status = %q, want scheduled", meeting.Status)
	}
	if notifier.booked != 1 {
		t.Errorf("booked notifications = %d, want 1", notifier.booked)
	}
}

func TestCreateMeetingValidation(t *testing.T) {
	svc, users, _ := newMeetingFixture(t)
	addUser(t, users, "owner-1", nil)

	cases := []struct {
		name   string
		mutate func(*MeetingInput)
	}{
		{"short title", func(in *MeetingInput) { in.Title = "ab" }},
		{"bad date", func(in *MeetingInput) { in.Date = "08-01-2024" }},
		{"bad start time", func(in *MeetingInput) { in.StartTime = "9:00" }},
		{"bad end time", func(in *MeetingInput) { in.EndTime = "25:00" }},
		{"end before start", func(in *MeetingInput) { in.StartTime = "11:00"; in.EndTime = "10:00" }},
		{"zero length", func(in *MeetingInput) { in.EndTime = in.StartTime }},
		{"missing owner", func(in *MeetingInput) { in.OwnerID = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := baseInput("owner-1")
			tc.mutate(&input)
			if _, err := svc.Create(context.Background(), input); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestCreateMeetingOutsideAvailability(t *testing.T) {
	svc, users, _ := newMeetingFixture(t)
	addUser(t, users, "owner-1", []model.AvailabilityRule{
		{Weekday: 1, Windows: []model.AvailabilityWindow{{Start: "09:00", End: "12:00"}}, Enabled: true},
	})

	input := baseInput("owner-1")
	input.StartTime = "11:30"
	input.EndTime = "12:30"
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrOutsideAvailability) {
		t.Fatalf("err = %v, want ErrOutsideAvailability", err)
	}

	// Fully inside the window still books.
	input.StartTime = "09:00"
	input.EndTime = "12:00"
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("create inside window: %v", err)
	}
}

func TestCreateMeetingConflict(t *testing.T) {
	svc, users, _ := newMeetingFixture(t)
	addUser(t, users, "owner-1", nil)

	if _, err := svc.Create(context.Background(), baseInput("owner-1")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	overlapping := baseInput("owner-1")
	overlapping.StartTime = "10:30"
	overlapping.EndTime = "11:30"
	if _, err := svc.Create(context.Background(), overlapping); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	// Back to back is allowed.
	adjacent := baseInput("owner-1")
	adjacent.StartTime = "11:00"
	adjacent.EndTime = "12:00"
	if _, err := svc.Create(context.Background(), adjacent); err != nil {
		t.Fatalf("adjacent create: %v", err)
	}

	// Same interval, different owner: no conflict.
	addUser(t, users, "owner-2", nil)
	if _, err := svc.Create(context.Background(), baseInput("owner-2")); err != nil {
		t.Fatalf("other owner create: %v", err)
	}

	// Same interval, different date: no conflict.
	nextDay := baseInput("owner-1")
	nextDay.Date = "2024-01-09"
	if _, err := svc.Create(context.Background(), nextDay); err != nil {
		t.Fatalf("other date create: %v", err)
	}
}

func TestCreateMeetingConcurrent(t *testing.T) {
	svc, users, _ := newMeetingFixture(t)
	addUser(t, users, "owner-1", nil)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), baseInput("owner-1"))
		}(i)
	}
	wg.Wait()

	var created, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Errorf("created = %d, want exactly 1", created)
	}
	if conflicted != attempts-1 {
		t.Errorf("conflicted = %d, want %d", conflicted, attempts-1)
	}
}

func TestUpdateMeeting(t *testing.T) {
	svc, users, notifier := newMeetingFixture(t)
	addUser(t, users, "owner-1", nil)

	meeting, err := svc.Create(context.Background(), baseInput("owner-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Shifting within the same slot must not conflict with itself.
	input := baseInput("owner-1")
	input.ID = meeting.ID
	input.StartTime = "10:30"
	input.EndTime = "11:30"
	updated, err := svc.Update(context.Background(), input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.StartTime != "10:30" || updated.EndTime != "11:30" {
		t.Errorf("interval = %s-%s, want 10:30-11:30", updated.StartTime, updated.EndTime)
	}
	if notifier.updated != 1 {
		t.Errorf("updated notifications = %d, want 1", notifier.updated)
	}

	// Moving onto another meeting conflicts.
	other := baseInput("owner-1")
	other.StartTime = "14:00"
	other.EndTime = "15:00"
	if _, err := svc.Create(context.Background(), other); err != nil {
		t.Fatalf("second create: %v", err)
	}
	input.StartTime = "14:30"
	input.EndTime = "15:30"
	if _, err := svc.Update(context.Background(), input); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestUpdateMeetingOwnership(t *testing.T) {
	svc, users, _ := newMeetingFixture(t)
	addUser(t, users, "owner-1", nil)
	addUser(t, users, "intruder", nil)

	meeting, err := svc.Create(context.Background(), baseInput("owner-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	input := baseInput("intruder")
	input.ID = meeting.ID
	if _, err := svc.Update(context.Background(), input); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}

	input.ID = "missing"
	input.OwnerID = "owner-1"
	if _, err := svc.Update(context.Background(), input); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCancelMeeting(t *testing.T) {
	svc, users, notifier := newMeetingFixture(t)
	addUser(t, users, "owner-1", nil)
	addUser(t, users, "intruder", nil)

	meeting, err := svc.Create(context.Background(), baseInput("owner-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Cancel(context.Background(), meeting.ID, "intruder"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	got, err := svc.GetByID(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.MeetingStatusScheduled {
		t.Errorf("status after failed cancel = %q, want scheduled", got.Status)
	}

	if err := svc.Cancel(context.Background(), meeting.ID, "owner-1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if notifier.cancelled != 1 {
		t.Errorf("cancelled notifications = %d, want 1", notifier.cancelled)
	}

	if err := svc.Cancel(context.Background(), meeting.ID, "owner-1"); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("err = %v, want ErrAlreadyCancelled", err)
	}

	if err := svc.Cancel(context.Background(), "missing", "owner-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCancelledSlotIsFree(t *testing.T) {
	svc, users, _ := newMeetingFixture(t)
	addUser(t, users, "owner-1", nil)

	meeting, err := svc.Create(context.Background(), baseInput("owner-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Cancel(context.Background(), meeting.ID, "owner-1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := svc.Create(context.Background(), baseInput("owner-1")); err != nil {
		t.Fatalf("rebook cancelled slot: %v", err)
	}
}

func TestListForUser(t *testing.T) {
	svc, users, _ := newMeetingFixture(t)
	addUser(t, users, "owner-1", nil)

	input := baseInput("owner-1")
	input.ParticipantEmails = []string{"owner-1@example.com", "guest@example.com"}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Owner who is also a participant sees the meeting exactly once.
	meetings, err := svc.ListForUser(context.Background(), "owner-1", "owner-1@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(meetings) != 1 {
		t.Fatalf("len = %d, want 1", len(meetings))
	}

	// A participant sees it by email alone.
	meetings, err = svc.ListForUser(context.Background(), "guest-user", "guest@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(meetings) != 1 {
		t.Fatalf("participant len = %d, want 1", len(meetings))
	}

	// A stranger sees nothing.
	meetings, err = svc.ListForUser(context.Background(), "stranger", "stranger@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(meetings) != 0 {
		t.Fatalf("stranger len = %d, want 0", len(meetings))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _ := newMeetingFixture(t)
	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
