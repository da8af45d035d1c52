package config

import (
	"os"
	"time"

	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
	"github.com/joho/godotenv"
)

const configFileEnvVar = "FIXONCALL_CONFIG"

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
	LogConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
}

type APIConfig interface {
	GetAPIURL() string
	GetTimeout() time.Duration
}

type StorageConfig interface {
	GetStorageDriver() StorageDriver
	GetSessionFile() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisPrefix() string
	GetRedisTTL() time.Duration
}

type LogConfig interface {
	GetLogLevel() string
	GetLogFile() string
}

type mainConfig struct {
	EnvVars
	API
	Storage
	Log
}

// New returns a configuration backed by environment variables only.
func New() Config {
	return newConfig(&source{})
}

// Load reads an optional .env file from the working directory and the YAML file named
// by FIXONCALL_CONFIG, if set. Environment variables win over both.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, apperrors.Wrapf(err, "[config.Load] reading .env")
	}

	src := &source{}
	if path := os.Getenv(configFileEnvVar); path != "" {
		values, err := readFile(path)
		if err != nil {
			return nil, err
		}
		src.file = values
	}

	return newConfig(src), nil
}

func newConfig(src *source) Config {
	return mainConfig{
		EnvVars: EnvVars{src: src},
		API:     API{src: src},
		Storage: Storage{src: src},
		Log:     Log{src: src},
	}
}

// source resolves a setting from the environment first, then the config file.
type source struct {
	file map[string]string
}

func (s *source) get(envVar, defaultValue string) string {
	if s != nil {
		if value := s.file[envVar]; value != "" {
			defaultValue = value
		}
	}
	return GetEnv(envVar, defaultValue)
}

func (s *source) duration(envVar string, defaultValue time.Duration) time.Duration {
	raw := s.get(envVar, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}

// GetEnv returns the environment variable envVar, or defaultValue when it is unset or empty.
func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
