package model

import "time"

type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCancelled MeetingStatus = "cancelled" // terminal, meetings are never deleted
)

// Meeting is a single booked meeting on its owner's calendar.
// Date is "YYYY-MM-DD", StartTime/EndTime are zero-padded "HH:MM".
// All times are naive local time of the owner.
type Meeting struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description,omitempty"`
	MeetingLink       string        `json:"meeting_link,omitempty"`
	Date              string        `json:"date"`
	StartTime         string        `json:"start_time"`
	EndTime           string        `json:"end_time"`
	OwnerID           string        `json:"owner_id"`
	Participants      []Participant `json:"participants"`
	ParticipantEmails []string      `json:"participant_emails"`
	Status            MeetingStatus `json:"status"`
	GroupID           string        `json:"group_id,omitempty"`
	ReminderSent      bool          `json:"-"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
