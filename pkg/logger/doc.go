// Package logger provides a context-aware wrapper around Go's slog package
// with functional options and attribute helpers shared by the validator,
// i18n and lookup packages.
//
// New creates a *slog.Logger configured by Option functions:
//
//   - WithDevelopment / WithProduction – text at debug level or JSON at info level.
//   - WithFormat / WithTextFormatter / WithJSONFormatter – override output format.
//   - WithLevel / WithHandlerOptions – tune the handler.
//   - WithAttr – attach static attributes.
//   - WithContextExtractors / WithContextValue – inject attributes from context.
//
// Discard returns a logger that drops every record; it is the default for
// components that accept an optional logger.
//
// # Architecture
//
// New picks slog.NewTextHandler or slog.NewJSONHandler and wraps it with
// LogHandlerDecorator, which runs the registered ContextExtractor callbacks
// for every record before delegating to the underlying handler.
//
// Helper constructors in attr.go keep attribute keys consistent:
// Property, Check, ErrorCount, PropertyCount, Duration, Locale, Error and
// friends.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("signup-api"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//
//	v := validator.New(validator.WithLogger(log))
//
// # Error Handling
//
// Error and Errors produce attributes only for non-nil errors, so
//
//	log.Info("lookup finished", logger.Error(err))
//
// needs no additional nil check.
package logger
