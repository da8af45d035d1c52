package config

import "strings"

const (
	logLevelEnvVar = "FIXONCALL_LOG_LEVEL"
	logFileEnvVar  = "FIXONCALL_LOG_FILE"
)

type Log struct {
	src *source
}

var _ LogConfig = Log{}

func (l Log) GetLogLevel() string {
	return strings.ToLower(l.src.get(logLevelEnvVar, "info"))
}

// GetLogFile is empty when logs should only go to stderr.
func (l Log) GetLogFile() string {
	return l.src.get(logFileEnvVar, "")
}
