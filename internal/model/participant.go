package model

type ParticipantStatus string

const (
	ParticipantStatusInvited  ParticipantStatus = "invited"
	ParticipantStatusAccepted ParticipantStatus = "accepted"
	ParticipantStatusDeclined ParticipantStatus = "declined"
)

// Participant is an invited attendee, tracked by email. UID is set only
// when the email belongs to a registered user.
type Participant struct {
	UID    string            `json:"uid,omitempty"`
	Email  string            `json:"email"`
	Status ParticipantStatus `json:"status"`
}

// NewInvitedParticipants builds invited participants from a list of emails.
func NewInvitedParticipants(emails []string) []Participant {
	participants := make([]Participant, 0, len(emails))
	for _, email := range emails {
		participants = append(participants, Participant{
			Email:  email,
			Status: ParticipantStatusInvited,
		})
	}
	return participants
}
