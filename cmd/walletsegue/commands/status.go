package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session state and outstanding requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := appCtx.Client
			peer, ok := c.PeerFingerprint()
			if !ok {
				peer = "-"
			}
			items := []pterm.BulletListItem{
				{Level: 0, Text: "state: " + c.State().String()},
				{Level: 0, Text: "session: " + c.SessionID().String()},
				{Level: 0, Text: "local key: " + c.Fingerprint().String()},
				{Level: 0, Text: "wallet key: " + peer.String()},
			}
			if err := pterm.DefaultBulletList.WithItems(items).Render(); err != nil {
				return err
			}

			pending := c.Pending()
			if len(pending) == 0 {
				pterm.Info.Println("no outstanding requests")
				return nil
			}
			data := pterm.TableData{{"request", "kind", "actions", "age"}}
			for _, p := range pending {
				kind := "request"
				if p.Handshake {
					kind = "handshake"
				}
				age := time.Since(time.Unix(p.CreatedUTC, 0)).Truncate(time.Second)
				methods := ""
				for i, a := range p.Actions {
					if i > 0 {
						methods += ","
					}
					methods += a.Method
				}
				data = append(data, []string{p.RequestID.String(), kind, methods, age.String()})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}
