package validator

import "errors"

// Configuration and wiring errors. They abort Validate and no Result is returned.
// Data that fails validation never produces one of these; it is reported
// through the Result instead.
var (
	// ErrNilRule is returned when a rule tree contains a nil rule.
	ErrNilRule = errors.New("rule is nil")

	// ErrUnknownKind is returned for a rule whose variant the validator cannot evaluate.
	ErrUnknownKind = errors.New("unknown rule kind")

	// ErrInvalidRule is returned for rules built with missing or contradictory options.
	ErrInvalidRule = errors.New("invalid rule")

	// ErrUnknownCheck is returned when a named check is not registered.
	ErrUnknownCheck = errors.New("unknown check")

	// ErrInvalidCheck is returned when registering an unnamed or nil check.
	ErrInvalidCheck = errors.New("invalid check")

	// ErrCheckFailed wraps an error returned by a check implementation.
	ErrCheckFailed = errors.New("check failed")

	// ErrMaxDepthExceeded is returned when Each and Nested rules nest deeper than allowed.
	ErrMaxDepthExceeded = errors.New("maximum validation depth exceeded")

	// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
	ErrParsingConfig = errors.New("failed to parse validator config")

	// ErrLoadingEnvFiles is returned when explicitly requested .env files cannot be loaded.
	ErrLoadingEnvFiles = errors.New("failed to load env files")
)
