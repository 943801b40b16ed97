// Package tokens declares the repository contract for OTP verification
// tokens in persistent storage.
package tokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository defines operations for issuing, matching, and consuming
// verification tokens. Expired rows are never matched and never swept here;
// they are simply dead data.
type Repository interface {
	// Create stores a new verification token.
	Create(ctx context.Context, token *models.VerificationToken) (*models.VerificationToken, error)

	// DeleteByIdentifier removes every token issued for identifier.
	// Deleting zero rows is not an error.
	DeleteByIdentifier(ctx context.Context, identifier string) error

	// FindValid looks up a token matching identifier and token value whose
	// expiry is after now. Implementations return ErrorNotFound when nothing
	// matches; mismatched or expired rows are left untouched.
	FindValid(ctx context.Context, identifier, token string, now time.Time) (*models.VerificationToken, error)

	// Consume deletes a token by id and reports whether a row was actually
	// deleted. Under concurrent verification only one caller observes true.
	Consume(ctx context.Context, id string) (bool, error)
}
