// Package logger builds the slog loggers used across hyraft.
//
// New returns a JSON or text logger with a minimum level, optional context
// extractors and an optional Sentry fan-out:
//
//	log, err := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithExtractors(middlewares.RequestIDExtractor()),
//		logger.WithSentry(logger.SentryConfig{DSN: dsn, Environment: "production"}),
//	)
//
// Extractors run on every record, so request-scoped values such as the
// request id end up on every line logged with that context:
//
//	log.InfoContext(r.Context(), "page rendered", slog.String("template", name))
//	// {"level":"INFO","msg":"page rendered","template":"home/index","request_id":"..."}
//
// Without a DSN the Sentry option is a no-op. When Sentry fails to start
// the logger keeps writing locally and New returns the init error joined
// with ErrSentryInit alongside the working logger.
//
// NewNope discards everything and is meant for tests.
package logger
