package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) Create(ctx context.Context, token *models.VerificationToken) (*models.VerificationToken, error) {

	if token.ID == "" {
		token.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO verification_tokens (id, identifier, token, expires)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		token.ID, token.Identifier, token.Token, token.Expires).Scan(&token.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

func (r *PostgresRepository) DeleteByIdentifier(ctx context.Context, identifier string) error {

	query :=
		`DELETE FROM verification_tokens
		 WHERE identifier = $1
		 `

	_, err := r.db.ExecContext(ctx, query, identifier)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindValid(ctx context.Context, identifier, token string, now time.Time) (*models.VerificationToken, error) {

	query :=
		`SELECT id, identifier, token, expires, created_at FROM verification_tokens
		 WHERE identifier = $1 AND token = $2 AND expires > $3
		 `

	vt := &models.VerificationToken{}
	err := r.db.QueryRowContext(ctx, query, identifier, token, now).
		Scan(&vt.ID, &vt.Identifier, &vt.Token, &vt.Expires, &vt.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vt, nil
}

func (r *PostgresRepository) Consume(ctx context.Context, id string) (bool, error) {

	query :=
		`DELETE FROM verification_tokens
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected == 1, nil
}
