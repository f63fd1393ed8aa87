package screens

import (
	"context"

	"tradebot-client-go/internal/metrics"
)

// historyScreen renders the trade ledger and accepts the export command.
func (a *App) historyScreen(ctx context.Context) {
	a.showHistory(ctx)

	for {
		line, ok := a.readLine("history> refresh | export | back: ")
		if !ok {
			return
		}

		switch line {
		case "refresh":
			a.showHistory(ctx)
		case "export":
			a.exportHistory(ctx)
		case "back", "":
			return
		default:
			a.println("Unknown command: " + line)
		}
	}
}

// showHistory loads the ledger and renders entries in backend order followed
// by the trade summary.
func (a *App) showHistory(ctx context.Context) {
	res, err := a.client.History(ctx)
	if err != nil {
		a.showTransportError("history", err)
		return
	}
	if res.Detail != "" {
		a.println(res.Detail)
		return
	}

	for _, e := range res.History {
		pnl := 0.0
		if e.ProfitLoss != nil {
			pnl = *e.ProfitLoss
		}
		a.printf("%s  %-4s  price=%.2f  qty=%.4f  pnl=%+.2f  %s\n",
			e.Time, e.Action, e.Price, e.Quantity, pnl, e.EventType)
	}

	summary := metrics.SummarizeHistory(res.History)
	a.printf("trades: %d  net pnl: %+.2f\n", summary.TotalTrades, summary.NetPnL)
}

// exportHistory triggers server-side CSV generation.
func (a *App) exportHistory(ctx context.Context) {
	ack, err := a.client.Export(ctx)
	if err != nil {
		a.showTransportError("history", err)
		return
	}
	a.ackOK(ack, "Export started")
}
