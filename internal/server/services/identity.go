package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
)

type IdentityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *IdentityService {
	return &IdentityService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "identity_service"),
	}
}

// VerifyAndResolve validates an email+otp pair, consumes the matching token
// and resolves the user record, creating one for a previously-unseen email.
//
// A nil user with a nil error means verification failed: no token, wrong
// code, or expired code. The result never distinguishes between those cases.
// Mismatched or expired rows are left untouched.
//
// The whole sequence runs in one serializable transaction, and consumption is
// a conditional delete checked by rows-affected: of N concurrent calls with
// the same valid pair, exactly one observes the deleted row and resolves a
// user, the rest get a nil result.
func (s *IdentityService) VerifyAndResolve(ctx context.Context, email string, otp string) (*models.User, error) {

	var user *models.User

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	err := dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		tokenRepo := s.repomanager.Tokens(tx)

		token, err := tokenRepo.FindValid(ctx, email, otp, time.Now())
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil
			}
			return fmt.Errorf("error matching token: %w", err)
		}

		// Single-use enforcement: the delete must land before user
		// resolution, and a concurrent verifier that lost the race must
		// see zero affected rows here.
		consumed, err := tokenRepo.Consume(ctx, token.ID)
		if err != nil {
			return fmt.Errorf("error consuming token: %w", err)
		}
		if !consumed {
			return nil
		}

		user, err = s.resolveUser(ctx, tx, email)
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "Error verifying OTP", "error", err)
		return nil, err
	}

	return user, nil
}

// resolveUser finds the user by email or creates one. A concurrent creation
// of the same email surfaces as a unique violation, in which case the
// existing row is fetched instead: the upsert never duplicates an email.
func (s *IdentityService) resolveUser(ctx context.Context, tx dbx.DBTX, email string) (*models.User, error) {
	repo := s.repomanager.Users(tx)

	user, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	user, err = repo.Create(ctx, &models.User{Email: email})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			user, err = repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("error re-fetching user: %w", err)
			}
			return user, nil
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}
