package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseActions(t *testing.T) {
	got, err := parseActions([]string{
		"eth_requestAccounts",
		`personal_sign=["0x68656c6c6f","0xabc"]`,
		`wallet_watchAsset?={"type":"ERC20"}`,
	})
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Equal(t, "eth_requestAccounts", got[0].Method)
	require.Nil(t, got[0].Params)
	require.False(t, got[0].Optional)

	require.Equal(t, "personal_sign", got[1].Method)
	require.JSONEq(t, `["0x68656c6c6f","0xabc"]`, string(got[1].Params))

	require.Equal(t, "wallet_watchAsset", got[2].Method)
	require.True(t, got[2].Optional)
}

func TestParseActions_Rejects(t *testing.T) {
	for _, arg := range []string{"", "?", "=[]", "eth_sign={not json"} {
		_, err := parseActions([]string{arg})
		require.Error(t, err, arg)
	}
}
