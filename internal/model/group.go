package model

import "time"

const (
	GroupRoleMember = "member"
	GroupRoleAdmin  = "admin"
)

// Group is a named set of users. Meetings may optionally belong to a group.
type Group struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	CreatedBy   string        `json:"created_by"`
	Members     []GroupMember `json:"members"`
	CreatedAt   time.Time     `json:"created_at"`
}

// GroupMember binds a user to a group with a per-group role.
type GroupMember struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
