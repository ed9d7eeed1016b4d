package validator

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds validator defaults read from the environment.
type Config struct {
	// SkipOnEmpty makes rules without an explicit skip-on-empty setting skip empty values.
	SkipOnEmpty bool `env:"VALIDATOR_SKIP_ON_EMPTY" envDefault:"false"`

	// MaxDepth limits the nesting of Each and Nested rules.
	MaxDepth int `env:"VALIDATOR_MAX_DEPTH" envDefault:"64"`
}

// LoadConfig parses Config from the environment.
//
// When files are given they are loaded first and must exist. Without files
// the default .env file is loaded if present. Variables already set in the
// process environment take precedence over file values.
func LoadConfig(files ...string) (Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Config{}, errors.Join(ErrLoadingEnvFiles, err)
		}
	} else {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoadConfig works like LoadConfig but panics on failure.
func MustLoadConfig(files ...string) Config {
	cfg, err := LoadConfig(files...)
	if err != nil {
		panic(fmt.Sprintf("Failed to load validator configuration: %v", err))
	}
	return cfg
}
