package gateway

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries a per-request identifier the remote service can log.
const RequestIDHeader = "X-Request-ID"

// Stage wraps a RoundTripper with extra behaviour.
type Stage func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain builds a pipeline ending in base. The first stage sees the request first and
// the response last. A nil base means http.DefaultTransport.
func Chain(base http.RoundTripper, stages ...Stage) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	chained := base
	// Apply stages in reverse order
	for i := len(stages) - 1; i >= 0; i-- {
		chained = stages[i](chained)
	}
	return chained
}

// RequestID sets X-Request-ID on requests that do not already carry one.
func RequestID() Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(r)
			}
			out := r.Clone(r.Context())
			out.Header.Set(RequestIDHeader, uuid.NewString())
			return next.RoundTrip(out)
		})
	}
}

// Logging logs each exchange at debug level and transport failures at warn. Headers
// are never logged, so credentials stay out of the logs.
func Logging(logger zerolog.Logger) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			event := logger.Debug()
			if err != nil {
				event = logger.Warn().Err(err)
			}
			event = event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("request_id", r.Header.Get(RequestIDHeader)).
				Dur("duration", time.Since(start))
			if resp != nil {
				event = event.Int("status", resp.StatusCode)
			}
			event.Msg("api request")

			return resp, err
		})
	}
}
