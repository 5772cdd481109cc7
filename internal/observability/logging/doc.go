// Package logging builds the application's slog loggers and carries them
// through request contexts.
package logging
