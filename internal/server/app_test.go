package server

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/notify"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func TestSelectNotifier(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		want    any
		wantErr error
	}{
		{"dev mode logs", &config.Config{DevMode: true}, &notify.LogNotifier{}, nil},
		{"prod with key sends", &config.Config{ResendAPIKey: "re_123"}, &notify.ResendNotifier{}, nil},
		{"prod without key fails", &config.Config{}, nil, common.ErrorConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := selectNotifier(tt.cfg, testLogger())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("selectNotifier error: %v", err)
			}

			switch tt.want.(type) {
			case *notify.LogNotifier:
				if _, ok := n.(*notify.LogNotifier); !ok {
					t.Fatalf("expected LogNotifier, got %T", n)
				}
			case *notify.ResendNotifier:
				if _, ok := n.(*notify.ResendNotifier); !ok {
					t.Fatalf("expected ResendNotifier, got %T", n)
				}
			}
		})
	}
}

func TestNewApp_NotifierConfigError(t *testing.T) {
	cfg := &config.Config{DevMode: false}

	app, err := NewApp(context.Background(), cfg)
	if !errors.Is(err, common.ErrorConfiguration) {
		t.Fatalf("want common.ErrorConfiguration, got %v", err)
	}
	if app != nil {
		t.Fatalf("expected nil app, got %+v", app)
	}
}
