package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {

	if team.ID == "" {
		team.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO teams (id, name)
         VALUES ($1, $2)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, team.ID, team.Name).Scan(&team.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return team, nil
}

func (r *PostgresRepository) CreateMembership(ctx context.Context, m *models.TeamMembership) (*models.TeamMembership, error) {

	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO team_memberships (id, user_id, team_id, role)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		m.ID, m.UserID, m.TeamID, m.Role).Scan(&m.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("membership of user %s in team %s: %w", m.UserID, m.TeamID, common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

// FindDefaultTeam orders by membership creation time so that repeated calls
// pick the same team even when the user holds several memberships.
func (r *PostgresRepository) FindDefaultTeam(ctx context.Context, userID string) (*models.Team, error) {

	query :=
		`SELECT t.id, t.name, t.created_at
		 FROM team_memberships m
		 JOIN teams t ON t.id = m.team_id
		 WHERE m.user_id = $1
		 ORDER BY m.created_at, m.id
		 LIMIT 1
		 `

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&team.ID, &team.Name, &team.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return team, nil
}
