package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"walletsegue/internal/domain"
)

// parseActions reads actions written as method[?][=params].
//
//	eth_requestAccounts
//	personal_sign='["0x68656c6c6f","0xabc..."]'
//	wallet_watchAsset?='{"type":"ERC20"}'
//
// A trailing "?" on the method marks the action optional. Params must be
// valid JSON and are forwarded untouched.
func parseActions(args []string) ([]domain.Action, error) {
	out := make([]domain.Action, 0, len(args))
	for _, arg := range args {
		method, params, hasParams := strings.Cut(arg, "=")
		method = strings.TrimSpace(method)
		optional := strings.HasSuffix(method, "?")
		method = strings.TrimSuffix(method, "?")
		if method == "" {
			return nil, fmt.Errorf("action %q: missing method", arg)
		}

		a := domain.Action{Method: method, Optional: optional}
		if hasParams {
			if !json.Valid([]byte(params)) {
				return nil, fmt.Errorf("action %q: params are not valid json", method)
			}
			a.Params = json.RawMessage(params)
		}
		out = append(out, a)
	}
	return out, nil
}
