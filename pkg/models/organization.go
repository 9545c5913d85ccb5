package models

import "time"

// Organization is a named group joined via a shared invite code. The creator
// is the implicit admin. JSON tags match the legacy collection layout.
type Organization struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"inviteCode"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	Members    []string  `json:"members"`
}

// HasMember reports whether email is already a member.
func (o *Organization) HasMember(email string) bool {
	for _, m := range o.Members {
		if m == email {
			return true
		}
	}
	return false
}

// MemberProfile is the derived per-member view shown in the member list.
// Online is a deterministic presence stub, not a real signal.
type MemberProfile struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	IsAdmin           bool   `json:"is_admin"`
	IsOnline          bool   `json:"is_online"`
	TodayPublicEvents int    `json:"today_public_events"`
}

// CreateOrganizationRequest is the payload for creating an organization.
// When GenerateCode is set the server picks a random invite code.
type CreateOrganizationRequest struct {
	Name         string `json:"name"`
	InviteCode   string `json:"invite_code"`
	GenerateCode bool   `json:"generate_code"`
}

// JoinOrganizationRequest is the payload for joining by invite code
type JoinOrganizationRequest struct {
	InviteCode string `json:"invite_code"`
}
