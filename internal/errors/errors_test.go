package errors_test

import (
	"io"
	"testing"

	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.NoError(t, apperrors.Wrapf(nil, "reading %s", "token"))

	err := apperrors.Wrapf(io.ErrUnexpectedEOF, "reading %s", "token")
	require.EqualError(t, err, "reading token: unexpected EOF")
	require.True(t, apperrors.Is(err, io.ErrUnexpectedEOF))
}
