package utils_test

import (
	"testing"

	"github.com/fixoncall/fixoncall-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestNonZero(t *testing.T) {
	require.Nil(t, utils.NonZero(""))
	require.Nil(t, utils.NonZero(0))
	require.Equal(t, "0722", *utils.NonZero("0722"))
}

func TestValue(t *testing.T) {
	require.Equal(t, "", utils.Value[string](nil))
	require.Equal(t, 6, utils.Value(utils.Ptr(6)))
}
