package group

import "time"

// Group is a named collection of participants who share expenses.
// MemberIDs keeps insertion order for display; semantically the
// membership is a set. A group always has at least one member (the
// creator). Member ids are identity-provider user ids or invitation
// placeholder ids.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	MemberIDs []string  `json:"member_ids"`
}
