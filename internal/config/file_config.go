package config

import (
	"os"

	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
	"gopkg.in/yaml.v3"
)

type APIFileConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

type RedisFileConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Prefix   string `yaml:"prefix"`
	TTL      string `yaml:"ttl"`
}

type StorageFileConfig struct {
	Driver string          `yaml:"driver"`
	File   string          `yaml:"file"`
	Redis  RedisFileConfig `yaml:"redis"`
}

type LogFileConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConfigFile is the YAML layout accepted through FIXONCALL_CONFIG.
type ConfigFile struct {
	AppName string            `yaml:"app_name"`
	Env     string            `yaml:"env"`
	API     APIFileConfig     `yaml:"api"`
	Storage StorageFileConfig `yaml:"storage"`
	Log     LogFileConfig     `yaml:"log"`
}

func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[config.readFile] reading %s", path)
	}

	var cf ConfigFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "[config.readFile] parsing %s: %v", path, err)
	}
	return cf.values(), nil
}

// values keys each setting by the environment variable that overrides it.
func (cf ConfigFile) values() map[string]string {
	return map[string]string{
		appNameVar:          cf.AppName,
		envVar:              cf.Env,
		apiURLEnvVar:        cf.API.URL,
		timeoutEnvVar:       cf.API.Timeout,
		storageEnvVar:       cf.Storage.Driver,
		sessionFileEnvVar:   cf.Storage.File,
		redisAddrEnvVar:     cf.Storage.Redis.Addr,
		redisPasswordEnvVar: cf.Storage.Redis.Password,
		redisPrefixEnvVar:   cf.Storage.Redis.Prefix,
		redisTTLEnvVar:      cf.Storage.Redis.TTL,
		logLevelEnvVar:      cf.Log.Level,
		logFileEnvVar:       cf.Log.File,
	}
}
