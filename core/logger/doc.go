// Package logger provides slog-based structured logging helpers shared by the
// session toolkit packages.
//
// It offers a small constructor for building a configured *slog.Logger and a
// set of nil-safe slog.Attr helpers so call sites can log errors and common
// fields without explicit nil checks:
//
//	log := logger.New(logger.Config{Format: "json", Level: "info"})
//	log.Info("refresh completed", logger.Component("authclient"), logger.Error(err))
//
// Helpers return an empty slog.Attr for zero values, which slog drops from
// the output.
package logger
