// Package server initializes and runs the authentication server. It loads
// configuration, connects to storage, applies migrations, selects the OTP
// notifier, and starts the HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/authkeeper/internal/server/notify"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	otpService      *services.OTPService
	identityService *services.IdentityService
	teamService     *services.TeamService
}

// selectNotifier picks the delivery strategy once at wiring time: services
// never branch on the operating mode themselves.
func selectNotifier(cfg *config.Config, logger logging.Logger) (notify.Notifier, error) {
	if cfg.DevMode {
		return notify.NewLogNotifier(logger), nil
	}
	if cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("resend_api_key is not set: %w", common.ErrorConfiguration)
	}
	return notify.NewResendNotifier(cfg.ResendAPIKey), nil
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	// Config-only failures happen before the database is touched.
	notifier, err := selectNotifier(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("notifier init error: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.Error(ctx, "Error closing db", "error", cerr)
		}
		return nil, fmt.Errorf("migration error: %w", err)
	}

	ots := services.NewOTPService(db, rm, notifier, logger, cfg)
	is := services.NewIdentityService(db, rm, logger)
	ts := services.NewTeamService(db, rm, logger)

	return &App{
		config:          cfg,
		logger:          logger,
		db:              db,
		otpService:      ots,
		identityService: is,
		teamService:     ts,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.logger, app.otpService, app.identityService, app.teamService, app.config)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "Error closing db", "error", err)
	}
}
