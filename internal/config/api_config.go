package config

import (
	"strings"
	"time"
)

const (
	apiURLEnvVar  = "FIXONCALL_API_URL"
	timeoutEnvVar = "FIXONCALL_TIMEOUT"

	defaultAPIURL  = "http://localhost:5000/api"
	defaultTimeout = 15 * time.Second
)

type API struct {
	src *source
}

var _ APIConfig = API{}

// GetAPIURL returns the remote service base URL without a trailing slash.
func (a API) GetAPIURL() string {
	return strings.TrimRight(a.src.get(apiURLEnvVar, defaultAPIURL), "/")
}

func (a API) GetTimeout() time.Duration {
	return a.src.duration(timeoutEnvVar, defaultTimeout)
}
