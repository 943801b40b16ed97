package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
)

type TeamService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewTeamService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *TeamService {
	return &TeamService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "team_service"),
	}
}

// defaultTeamName derives the team name from the owner's email: the
// local-part with its first character upper-cased, suffixed with "'s Team".
// Only the first character changes case, the rest is preserved verbatim.
func defaultTeamName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "'s Team"
	}
	r := []rune(local)
	r[0] = unicode.ToUpper(r[0])
	return string(r) + "'s Team"
}

// FindOrCreateDefaultTeam ensures userID belongs to a team. An existing
// membership wins: the team of the earliest-created one is returned
// unchanged. Otherwise a new team and an OWNER membership are created in one
// transaction, so a team without a membership is never observable.
//
// The user must already exist; calling this with an unknown id is a caller
// bug and fails with a not-found error naming the id.
func (s *TeamService) FindOrCreateDefaultTeam(ctx context.Context, userID string) (*models.Team, error) {

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("user with id %s: %w", userID, common.ErrorNotFound)
		}
		s.logger.Error(ctx, "Error looking up user", "user_id", userID, "error", err)
		return nil, err
	}

	team, err := s.repomanager.Teams(s.db).FindDefaultTeam(ctx, userID)
	if err == nil {
		return team, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "Error looking up default team", "user_id", userID, "error", err)
		return nil, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Teams(tx)

		team, err = repo.CreateTeam(ctx, &models.Team{Name: defaultTeamName(user.Email)})
		if err != nil {
			return fmt.Errorf("error creating team: %w", err)
		}

		_, err = repo.CreateMembership(ctx, &models.TeamMembership{
			UserID: userID,
			TeamID: team.ID,
			Role:   models.RoleOwner,
		})
		if err != nil {
			return fmt.Errorf("error creating membership: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "Error provisioning default team", "user_id", userID, "error", err)
		return nil, err
	}

	return team, nil
}
