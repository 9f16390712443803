package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFailure(t *testing.T) {
	i, f, err := parseFailure("1:4001:User rejected: twice")
	require.NoError(t, err)
	require.Equal(t, 1, i)
	require.Equal(t, int64(4001), f.Code)
	require.Equal(t, "User rejected: twice", f.Message)

	for _, bad := range []string{"1:4001", "x:1:m", "-1:1:m", "0:code:m"} {
		_, _, err := parseFailure(bad)
		require.Error(t, err, bad)
	}
}
