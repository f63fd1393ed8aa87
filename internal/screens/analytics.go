package screens

import (
	"context"
	"fmt"

	"tradebot-client-go/internal/metrics"
)

// showAnalytics loads the analytics bundle and renders the derived readouts
// alongside the backend's point predictions.
func (a *App) showAnalytics(ctx context.Context) {
	bundle, err := a.client.Analytics(ctx)
	if err != nil {
		a.showTransportError("analytics", err)
		return
	}
	if bundle.Detail != "" {
		a.println(bundle.Detail)
		return
	}

	readout := metrics.ClassifyBundle(bundle)

	roi := "n/a"
	if bundle.ROI.ROIPercent != nil {
		roi = fmt.Sprintf("%.2f%%", *bundle.ROI.ROIPercent)
	}

	a.printf("roi: %s (%s)\n", roi, readout.ROI)
	a.printf("price trend: %s\n", readout.PriceTrend)
	a.printf("rsi zone: %s (buy<%.0f sell>%.0f)\n",
		readout.RSIZone, bundle.RSIVsTime.Thresholds.Buy, bundle.RSIVsTime.Thresholds.Sell)
	a.printf("pnl trend: %s\n", readout.PnLTrend)
	a.printf("next price: %.2f  next rsi: %.1f\n",
		bundle.NextPrice.EstimatedPrice, bundle.NextRSI.EstimatedRSI)
}
