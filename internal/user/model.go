package user

import "time"

// User is a locally mirrored identity-provider account. Records are
// created and updated exclusively through provider webhooks; the service
// never owns registration or credentials itself.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
