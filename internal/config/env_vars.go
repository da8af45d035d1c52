package config

import "strings"

const (
	appNameVar = "APP_NAME"
	envVar     = "ENV"
)

type EnvVars struct {
	src *source
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.src.get(appNameVar, "Fix On Call")
}

// GetEnv returns the deployment environment, DEV when unset.
func (e EnvVars) GetEnv() string {
	return strings.ToUpper(e.src.get(envVar, "DEV"))
}
