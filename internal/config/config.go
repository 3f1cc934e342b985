package config

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var currentEnvironment = ""

const (
	DefaultEnvironment     = DevelopmentEnvironment
	DevelopmentEnvironment = "development"
	StagingEnvironment     = "staging"
	ProductionEnvironment  = "production"
)

// envOnce is used to ensure concurrent tests only pull the value once at startup. While it is
// mainly used for tests, it also ensures safely with the chance the value is overwritten during
// runtime.
var envOnce sync.Once

// GetCurrentEnvironment returns the environment the services are running in
// based on the `environment` variable, defaulting to development.
func GetCurrentEnvironment() string {
	envOnce.Do(func() {
		currentEnvironment = os.Getenv("environment")

		for _, s := range []string{StagingEnvironment, ProductionEnvironment, DevelopmentEnvironment} {
			if currentEnvironment == s {
				return
			}
		}

		currentEnvironment = DefaultEnvironment
	})

	return currentEnvironment
}

// ConfigureLogging sets the global logger. Development gets a human readable
// console output, every other environment logs JSON at info level.
func ConfigureLogging(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(LogLevel(GetCurrentEnvironment(), verbose))

	if GetCurrentEnvironment() == DevelopmentEnvironment {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// LogLevel resolves the global log level for the environment.
func LogLevel(environment string, verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}

	if environment == DevelopmentEnvironment {
		return zerolog.InfoLevel
	}

	return zerolog.WarnLevel
}
