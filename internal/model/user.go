package model

import "time"

// UserProfile is the account document behind authentication. Availability
// holds the owner's recurring weekly windows, at most one rule per weekday.
type UserProfile struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"-"`
	PhotoURL     string             `json:"photo_url,omitempty"`
	Availability []AvailabilityRule `json:"availability"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
