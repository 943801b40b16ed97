package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// OTPRequester issues a fresh one-time password for an email.
type OTPRequester interface {
	RequestOTP(ctx context.Context, email string) error
}

// IdentityResolver validates an email+otp pair and resolves the user.
// A nil user with a nil error means verification failed.
type IdentityResolver interface {
	VerifyAndResolve(ctx context.Context, email string, otp string) (*models.User, error)
}

// TeamProvisioner ensures a user has a default team.
type TeamProvisioner interface {
	FindOrCreateDefaultTeam(ctx context.Context, userID string) (*models.Team, error)
}

// The email field carries no format tag on purpose: the address is trimmed
// first and the trimmed value validated, so padded input is accepted.
type requestOTPInput struct {
	Email string `json:"email" binding:"required"`
}

type verifyOTPInput struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

func (s *HTTPServer) requestOTP(c *gin.Context) {

	var in requestOTPInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}
	email := strings.TrimSpace(in.Email)
	if !emailValid(email) {
		c.JSON(http.StatusBadRequest, errorResult("email", msgInvalidEmail))
		return
	}

	if err := s.otp.RequestOTP(c.Request.Context(), email); err != nil {
		s.logger.Error(c.Request.Context(), "Failed to send OTP", "error", err)
		c.JSON(http.StatusInternalServerError, storeErrors(err, "email"))
		return
	}

	c.JSON(http.StatusOK, successResult())
}

func (s *HTTPServer) verifyOTP(c *gin.Context) {

	var in verifyOTPInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}
	email := strings.TrimSpace(in.Email)
	if !emailValid(email) {
		c.JSON(http.StatusBadRequest, errorResult("email", msgInvalidEmail))
		return
	}

	ctx := c.Request.Context()

	user, err := s.identity.VerifyAndResolve(ctx, email, in.OTP)
	if err != nil {
		s.logger.Error(ctx, "Failed to verify OTP", "error", err)
		c.JSON(http.StatusInternalServerError, errorResult(rootField, msgVerifyFailed))
		return
	}
	if user == nil {
		// Wrong, expired and unknown all look the same on purpose: the
		// response must not allow enumeration of valid emails.
		c.JSON(http.StatusUnauthorized, errorResult(rootField, msgVerifyFailed))
		return
	}

	// Provisioning runs before the session cookie is written: a sign-in
	// must not silently produce a user with no team.
	if _, err := s.teams.FindOrCreateDefaultTeam(ctx, user.ID); err != nil {
		s.logger.Error(ctx, "Failed to provision default team", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, errorResult(rootField, msgSignInFailed))
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.sessionValidity)
	if err != nil {
		s.logger.Error(ctx, "Failed to issue session token", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, errorResult(rootField, msgSignInFailed))
		return
	}

	setSessionCookie(c.Writer, token, s.sessionValidity, s.secureCookies)
	s.logger.Info(ctx, "Signed in", "user_id", user.ID)

	c.JSON(http.StatusOK, successResult())
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (s *HTTPServer) session(c *gin.Context) {
	identity := sessionFromContext(c)

	c.JSON(http.StatusOK, gin.H{
		"user": sessionUser{ID: identity.UserID, Email: identity.Email},
	})
}

func (s *HTTPServer) signOut(c *gin.Context) {
	clearSessionCookie(c.Writer, s.secureCookies)
	c.JSON(http.StatusOK, successResult())
}

func (s *HTTPServer) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
