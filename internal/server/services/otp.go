// Package services implements the core authentication flows: OTP issuance,
// OTP verification with identity resolution, and default team provisioning.
// Cross-row invariants are enforced with store-level transactions, never with
// in-process locks: callers may run in several processes at once.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/notify"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
)

// otpLength is the number of hex characters in a one-time password.
const otpLength = 6

// otpRandBytes is how many random bytes feed one OTP. Twice the needed hex
// characters, so truncation never consumes more entropy than was generated.
const otpRandBytes = 8

type OTPService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    notify.Notifier
	logger      logging.Logger
	baseURL     string
	emailFrom   string
	otpValidity time.Duration
}

func NewOTPService(db *sql.DB, m repomanager.RepositoryManager, n notify.Notifier, l logging.Logger, cfg *config.Config) *OTPService {
	return &OTPService{
		db:          db,
		repomanager: m,
		notifier:    n,
		logger:      l.With("module", "otp_service"),
		baseURL:     cfg.BaseURL,
		emailFrom:   cfg.EmailFrom,
		otpValidity: cfg.OTPValidityDuration,
	}
}

func (s *OTPService) generateOTP() (string, error) {
	otp, err := common.MakeRandHexString(otpRandBytes)
	if err != nil {
		return "", err
	}
	return otp[:otpLength], nil
}

// deploymentHost extracts the host from the configured base URL. The host
// identifies the deployment in the notification body and subject.
func (s *OTPService) deploymentHost() (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("base_url %q is not a valid URL: %w", s.baseURL, common.ErrorConfiguration)
	}
	return u.Host, nil
}

// RequestOTP issues a fresh one-time password for email: any prior tokens for
// the identifier are removed and the new one inserted as a single atomic
// unit, then the code is dispatched through the configured notifier.
//
// The token is committed before dispatch, so a delivery failure leaves it
// usable; the caller simply requests a fresh code if the email never arrives.
func (s *OTPService) RequestOTP(ctx context.Context, email string) error {

	if s.baseURL == "" {
		return fmt.Errorf("base_url is not set: %w", common.ErrorConfiguration)
	}
	if s.emailFrom == "" {
		return fmt.Errorf("email_from is not set: %w", common.ErrorConfiguration)
	}

	host, err := s.deploymentHost()
	if err != nil {
		return err
	}

	otp, err := s.generateOTP()
	if err != nil {
		return fmt.Errorf("error generating otp: %w", err)
	}

	expires := time.Now().Add(s.otpValidity)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tokens(tx)

		if err := repo.DeleteByIdentifier(ctx, email); err != nil {
			return fmt.Errorf("error invalidating prior tokens: %w", err)
		}

		_, err := repo.Create(ctx, &models.VerificationToken{
			Identifier: email,
			Token:      otp,
			Expires:    expires,
		})
		if err != nil {
			return fmt.Errorf("error storing token: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "Error issuing OTP", "error", err)
		return err
	}

	msg := notify.Message{
		From:    s.emailFrom,
		To:      email,
		Subject: fmt.Sprintf("Your One-Time Password for %s", host),
		HTML: fmt.Sprintf("Your one-time password is: <strong>%s</strong>. It will expire in %.f minutes.",
			otp, s.otpValidity.Minutes()),
	}

	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error(ctx, "Error dispatching OTP", "to", email, "error", err)
		return err
	}

	return nil
}
