package sessions_test

import (
	"testing"

	"github.com/fixoncall/fixoncall-client/sessions"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	m := sessions.NewMemoryStorage()

	_, found, err := m.Get(sessions.TokenKey)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, m.Set(sessions.TokenKey, "tok"))
	value, found, err := m.Get(sessions.TokenKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "tok", value)

	require.NoError(t, m.Clear(sessions.TokenKey))
	require.NoError(t, m.Clear(sessions.TokenKey))
	_, found, _ = m.Get(sessions.TokenKey)
	require.False(t, found)
}
