package users

import "time"

// Status enumerates user account states. Only ACTIVE users may log in.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusPending  Status = "PENDING"
	StatusBanned   Status = "BANNED"
)

// Valid reports whether the value is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending, StatusBanned:
		return true
	}
	return false
}

// User is a managed account. RoleID is a non-owning reference to a role and
// is not validated against the role registry by default.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	RoleID    string     `json:"roleId"`
	Status    Status     `json:"status"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}
