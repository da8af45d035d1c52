package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

type StorageDriver string

const (
	StorageFile   StorageDriver = "file"
	StorageRedis  StorageDriver = "redis"
	StorageMemory StorageDriver = "memory"
)

const (
	storageEnvVar       = "FIXONCALL_STORAGE"
	sessionFileEnvVar   = "FIXONCALL_SESSION_FILE"
	redisAddrEnvVar     = "FIXONCALL_REDIS_ADDR"
	redisPasswordEnvVar = "FIXONCALL_REDIS_PASSWORD"
	redisPrefixEnvVar   = "FIXONCALL_REDIS_PREFIX"
	redisTTLEnvVar      = "FIXONCALL_REDIS_TTL"

	defaultRedisAddr   = "localhost:6379"
	defaultRedisPrefix = "fixoncall:session:"
)

type Storage struct {
	src *source
}

var _ StorageConfig = Storage{}

// GetStorageDriver falls back to the file driver for unknown values.
func (s Storage) GetStorageDriver() StorageDriver {
	switch d := StorageDriver(strings.ToLower(s.src.get(storageEnvVar, string(StorageFile)))); d {
	case StorageFile, StorageRedis, StorageMemory:
		return d
	default:
		return StorageFile
	}
}

func (s Storage) GetSessionFile() string {
	return s.src.get(sessionFileEnvVar, defaultSessionFile())
}

func (s Storage) GetRedisAddr() string {
	return s.src.get(redisAddrEnvVar, defaultRedisAddr)
}

func (s Storage) GetRedisPassword() string {
	return s.src.get(redisPasswordEnvVar, "")
}

func (s Storage) GetRedisPrefix() string {
	return s.src.get(redisPrefixEnvVar, defaultRedisPrefix)
}

// GetRedisTTL is zero (no expiry) unless configured.
func (s Storage) GetRedisTTL() time.Duration {
	return s.src.duration(redisTTLEnvVar, 0)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".fixoncall", "session.json")
	}
	return filepath.Join(home, ".fixoncall", "session.json")
}
