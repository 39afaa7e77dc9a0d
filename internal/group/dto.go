package group

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=3,max=50"`
}

// InviteMemberRequest represents the request to add a member by invitation
type InviteMemberRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// MemberResponse is one group participant: either a resolved identity or
// a pending invitee still represented by a placeholder id
type MemberResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Pending   bool    `json:"pending"`
}

// GroupResponse represents the response for a group with its members
type GroupResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatedBy string            `json:"created_by"`
	CreatedAt string            `json:"created_at"`
	Members   []*MemberResponse `json:"members"`
}

// MemberBalanceResponse is one member's derived financial position
type MemberBalanceResponse struct {
	MemberResponse
	Balance    float64 `json:"balance"`
	TotalSpend float64 `json:"total_spend"`
}

// BalancesResponse reports every member's balance and whether the whole
// group is settled
type BalancesResponse struct {
	Settled  bool                     `json:"settled"`
	Balances []*MemberBalanceResponse `json:"balances"`
}
