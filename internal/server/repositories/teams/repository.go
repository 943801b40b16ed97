// Package teams declares the repository contract for teams and team
// memberships.
package teams

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Repository interface {
	// CreateTeam stores a new team.
	CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error)

	// CreateMembership stores a new team membership. Implementations return
	// ErrorAlreadyExists when the user already belongs to the team.
	CreateMembership(ctx context.Context, m *models.TeamMembership) (*models.TeamMembership, error)

	// FindDefaultTeam returns the team of the user's earliest-created
	// membership, or ErrorNotFound when the user belongs to no team.
	FindDefaultTeam(ctx context.Context, userID string) (*models.Team, error)
}
