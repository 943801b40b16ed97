// Package httpapi exposes the authentication flows over an HTTP/JSON API
// consumed by the web UI.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
)

type HTTPServer struct {
	address         string
	logger          logging.Logger
	otp             OTPRequester
	identity        IdentityResolver
	teams           TeamProvisioner
	jwtSecret       []byte
	sessionValidity time.Duration
	secureCookies   bool
}

func NewHTTPServer(l logging.Logger, otp OTPRequester, identity IdentityResolver, teams TeamProvisioner, cfg *config.Config) *HTTPServer {
	return &HTTPServer{
		address:         cfg.EndpointAddr,
		logger:          l.With("module", "http_server"),
		otp:             otp,
		identity:        identity,
		teams:           teams,
		jwtSecret:       []byte(cfg.SessionSecret),
		sessionValidity: cfg.SessionValidityDuration,
		secureCookies:   !cfg.DevMode,
	}
}

func (s *HTTPServer) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ping", s.ping)

	api := r.Group("/api/auth")
	api.POST("/otp/request", s.requestOTP)
	api.POST("/otp/verify", s.verifyOTP)
	api.POST("/sign-out", s.signOut)
	api.GET("/session", s.sessionMiddleware, s.session)

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
