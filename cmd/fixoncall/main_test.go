package main

import (
	"io"
	"net/http"
	"testing"

	"github.com/fixoncall/fixoncall-client/api"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "remote message",
			err:  errors.Wrap(&api.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}, "[Login] request failed"),
			want: "Invalid email or password",
		},
		{
			name: "local failure",
			err:  errors.Wrap(io.ErrUnexpectedEOF, "[Login] request failed"),
			want: "[Login] request failed: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, describe(tt.err))
		})
	}
}
