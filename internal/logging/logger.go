// Package logging defines the structured-logging contract the AuthKeeper
// services and HTTP server log through. The concrete backend is slog; the
// interface keeps it swappable.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs:
//
//	log.Info(ctx, "Starting HTTP server", "address", addr)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)

	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs. Services use it to tag every line with their module name.
	With(args ...any) Logger
}
