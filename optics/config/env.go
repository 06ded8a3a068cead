package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Service holds settings for talking to remote filter services and for
// locating data files.
type Service struct {
	SVOTimeout  time.Duration `env:"ETC_SVO_TIMEOUT" envDefault:"10s"`
	SVORetries  uint          `env:"ETC_SVO_RETRIES" envDefault:"2"`
	DataDirs    []string      `env:"ETC_DATA_DIRS" envSeparator:":"`
	LogLevel    string        `env:"ETC_LOG_LEVEL" envDefault:"info"`
	Development bool          `env:"ETC_LOG_DEVELOPMENT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ServiceFromEnv reads [Service] from the environment.
func ServiceFromEnv() (Service, error) {
	var s Service
	if err := ParseEnv(&s); err != nil {
		return Service{}, err
	}
	return s, nil
}
