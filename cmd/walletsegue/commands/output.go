package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"walletsegue/internal/app"
	"walletsegue/internal/domain"
	"walletsegue/internal/services/segue"
)

func printOutbound(kind string, out segue.Outbound) {
	pterm.Success.Printf("%s %s dispatched\n", kind, out.RequestID)
	pterm.Println(out.URL)
}

func printResults(results []domain.ActionResult) {
	pterm.Success.Printf("request resolved with %d result(s)\n", len(results))
	printResultTable(results)
}

func printResultTable(results []domain.ActionResult) {
	data := pterm.TableData{{"#", "status", "value"}}
	for i, r := range results {
		switch v := r.(type) {
		case domain.ActionSuccess:
			data = append(data, []string{fmt.Sprint(i), "success", string(v.Value)})
		case domain.ActionFailure:
			data = append(data, []string{fmt.Sprint(i), "failure", fmt.Sprintf("%d %s", v.Code, v.Message)})
		}
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printFailure(err error) {
	var batch *domain.BatchError
	var peer *domain.PeerError
	switch {
	case errors.As(err, &batch):
		pterm.Error.Println(batch.Error())
		printResultTable(batch.Results)
	case errors.As(err, &peer):
		pterm.Error.Printf("wallet rejected %s: %s\n", peer.RequestID, peer.Description)
	case errors.Is(err, domain.ErrCancelled):
		pterm.Warning.Println(err)
	default:
		pterm.Error.Println(err)
	}
}

// printMetrics renders every counter and gauge in the wire's registry.
func printMetrics(w *app.Wire) {
	families, err := w.Registry.Gather()
	if err != nil {
		pterm.Warning.Printf("gather metrics: %v\n", err)
		return
	}
	var rows [][]string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			value := m.GetCounter().GetValue()
			if m.GetGauge() != nil {
				value = m.GetGauge().GetValue()
			}
			rows = append(rows, []string{mf.GetName(), strings.Join(labels, ","), fmt.Sprint(value)})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0]+rows[i][1] < rows[j][0]+rows[j][1] })
	data := append(pterm.TableData{{"metric", "labels", "value"}}, rows...)
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
