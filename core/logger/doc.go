// Package logger provides structured logging utilities built on Go's
// standard slog package: a factory with environment-specific presets and a
// set of nil-safe attribute helpers for common logging scenarios.
//
//	log := logger.New(logger.WithDevelopment("filebox"))
//	log.Info("server starting",
//		logger.Component("server"),
//		logger.Event("startup"),
//	)
//
// Production setups typically use JSON output:
//
//	log := logger.New(logger.WithProduction("filebox"))
package logger
