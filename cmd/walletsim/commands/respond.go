package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"walletsegue/internal/domain"
	"walletsegue/internal/peer"
)

// respond <url>: approve a request, optionally failing chosen actions.
func respondCmd() *cobra.Command {
	var (
		value string
		fails []string
	)
	cmd := &cobra.Command{
		Use:   "respond <request-url>",
		Short: "Answer a request with per-action results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(value)) {
				return fmt.Errorf("--value must be valid json")
			}
			in, err := wallet.Decode([]byte(args[0]))
			if err != nil {
				return err
			}
			printIncoming(in)

			results := peer.Succeed(in.Actions, value)
			for _, f := range fails {
				i, failure, err := parseFailure(f)
				if err != nil {
					return err
				}
				if i >= len(results) {
					return fmt.Errorf("--fail %q: request has %d action(s)", f, len(results))
				}
				results[i] = failure
			}

			u, err := wallet.Respond(in, results)
			if err != nil {
				return err
			}
			if in.Handshake {
				if err := saveWallet(wallet); err != nil {
					return err
				}
			}
			log.Debug().Str("request_id", in.Request.RequestID.String()).Bool("handshake", in.Handshake).Msg("responded")
			pterm.Println(u)
			return nil
		},
	}
	cmd.Flags().StringVar(&value, "value", `"0x1"`, "json value returned by every successful action")
	cmd.Flags().StringArrayVar(&fails, "fail", nil, "fail an action: index:code:message (repeatable)")
	return cmd
}

// reject <url> <description>: refuse the whole request.
func rejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <request-url> <description>",
		Short: "Refuse a request without per-action results",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := wallet.Decode([]byte(args[0]))
			if err != nil {
				return err
			}
			printIncoming(in)
			u, err := wallet.Reject(in, args[1])
			if err != nil {
				return err
			}
			pterm.Println(u)
			return nil
		},
	}
}

func parseFailure(s string) (int, domain.ActionFailure, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return 0, domain.ActionFailure{}, fmt.Errorf("--fail %q: expected index:code:message", s)
	}
	i, err := strconv.Atoi(parts[0])
	if err != nil || i < 0 {
		return 0, domain.ActionFailure{}, fmt.Errorf("--fail %q: bad index", s)
	}
	code, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, domain.ActionFailure{}, fmt.Errorf("--fail %q: bad code", s)
	}
	return i, domain.ActionFailure{Code: code, Message: parts[2]}, nil
}

func printIncoming(in peer.Incoming) {
	kind := "request"
	if in.Handshake {
		kind = "handshake"
	}
	pterm.Info.Printf("%s %s from %s\n", kind, in.Request.RequestID, in.Request.AppID)
	data := pterm.TableData{{"#", "method", "params", "optional"}}
	for i, a := range in.Actions {
		data = append(data, []string{strconv.Itoa(i), a.Method, string(a.Params), strconv.FormatBool(a.Optional)})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
