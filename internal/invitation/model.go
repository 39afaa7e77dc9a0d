package invitation

import (
	"time"

	"github.com/google/uuid"
)

// placeholderPrefix marks member ids that stand in for invited-but-
// unregistered people until the identity provider resolves them.
const placeholderPrefix = "inv_"

// Invitation records an invited-but-unregistered group member. The
// Placeholder id sits in the group's membership (and may appear on
// expenses and allocation lines) until the invitee signs up, at which
// point every reference is rewritten to the resolved user id and the
// invitation is removed.
type Invitation struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Placeholder string    `json:"placeholder"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPlaceholderID generates a fresh placeholder member id.
func NewPlaceholderID() string {
	return placeholderPrefix + uuid.NewString()
}

// IsPlaceholderID reports whether id denotes an unresolved invitee.
func IsPlaceholderID(id string) bool {
	return len(id) > len(placeholderPrefix) && id[:len(placeholderPrefix)] == placeholderPrefix
}
