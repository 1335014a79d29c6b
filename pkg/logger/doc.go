// Package logger builds log/slog loggers with request-scoped attributes and
// optional Sentry forwarding.
//
// Context extractors run for every record and pull values such as the request
// ID out of the record's context:
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithContextExtractors(middlewares.RequestIDExtractor()),
//	)
//	log.InfoContext(ctx, "cookie added", logger.CookieName("visits"))
//
// With a Sentry DSN, records go to stdout and to Sentry. Errors create
// issues; warnings and errors are stored as logs:
//
//	log := logger.New(logger.WithSentry(logger.SentryConfig{
//	    DSN:         os.Getenv("SENTRY_DSN"),
//	    Environment: "staging",
//	}))
//
// An empty DSN leaves Sentry disabled.
package logger
