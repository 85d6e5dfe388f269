// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase along
// with helper constructors so log call sites stay consistent:
//
//	logger.Info("guilds loaded",
//	    logging.Operation("load_guilds"),
//	    logging.UserHash(session.UserID),
//	    logging.Status(logging.StatusSuccess))
//
// Discord user IDs are anonymized before logging and access tokens are
// never logged in full; use SanitizeToken when a token must be referenced.
package logging
