package lookup

import "errors"

var (
	ErrNoDatabase   = errors.New("lookup: no database configured")
	ErrNoRedis      = errors.New("lookup: no redis client configured")
	ErrMissingTable = errors.New("lookup: table and column are required")
	ErrMissingKey   = errors.New("lookup: set key is required")
	ErrQueryFailed  = errors.New("lookup: query failed")

	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrFailedToParseRedisURL    = errors.New("failed to parse redis connection string")
	ErrRedisNotReady            = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
)
