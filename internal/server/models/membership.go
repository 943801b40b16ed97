package models

import "time"

// MembershipRole enumerates roles a user can hold in a team. Only OWNER is
// assigned by the provisioning flow; other roles are managed elsewhere.
type MembershipRole string

const (
	RoleOwner MembershipRole = "OWNER"
)

type TeamMembership struct {
	ID        string
	UserID    string
	TeamID    string
	Role      MembershipRole
	CreatedAt time.Time
}
