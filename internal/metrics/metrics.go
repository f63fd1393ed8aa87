// Package metrics derives human-readable classifications and aggregates from
// backend-supplied time series. Every function is pure and total: short,
// empty, or absent input degrades to Unclassified instead of failing.
package metrics

import "tradebot-client-go/internal/botapi"

// Unclassified is returned when the input is too short or absent to classify.
const Unclassified = "—"

// ROI classifications.
const (
	ROIPositive  = "Positive Return"
	ROINegative  = "Negative Return"
	ROIBreakEven = "Break Even"
)

// Price trend classifications.
const (
	TrendUp       = "UP"
	TrendDown     = "DOWN"
	TrendSideways = "SIDEWAYS"
)

// RSI zone classifications.
const (
	ZoneOversold   = "OVERSOLD"
	ZoneOverbought = "OVERBOUGHT"
	ZoneNeutral    = "NEUTRAL"
)

// PnL trend classifications.
const (
	PnLImproving = "IMPROVING"
	PnLDeclining = "DECLINING"
	PnLFlat      = "FLAT"
)

// ClassifyROI labels a return-on-investment percentage.
func ClassifyROI(roiPercent *float64) string {
	if roiPercent == nil {
		return Unclassified
	}
	switch {
	case *roiPercent > 0:
		return ROIPositive
	case *roiPercent < 0:
		return ROINegative
	default:
		return ROIBreakEven
	}
}

// PriceTrend compares the first and last elements of an ordered price series.
func PriceTrend(prices []float64) string {
	if len(prices) < 2 {
		return Unclassified
	}
	first, last := prices[0], prices[len(prices)-1]
	switch {
	case last > first:
		return TrendUp
	case last < first:
		return TrendDown
	default:
		return TrendSideways
	}
}

// RSIZone classifies the last value of an RSI series against the buy (lower)
// and sell (upper) thresholds. Values on a threshold are NEUTRAL.
func RSIZone(rsi []float64, buy, sell float64) string {
	if len(rsi) == 0 {
		return Unclassified
	}
	last := rsi[len(rsi)-1]
	switch {
	case last < buy:
		return ZoneOversold
	case last > sell:
		return ZoneOverbought
	default:
		return ZoneNeutral
	}
}

// PnLTrend compares the first and last elements of an ordered PnL series.
func PnLTrend(pnl []float64) string {
	if len(pnl) < 2 {
		return Unclassified
	}
	first, last := pnl[0], pnl[len(pnl)-1]
	switch {
	case last > first:
		return PnLImproving
	case last < first:
		return PnLDeclining
	default:
		return PnLFlat
	}
}

// Summary aggregates a trade history ledger.
type Summary struct {
	TotalTrades int
	NetPnL      float64
}

// SummarizeHistory counts entries and sums profit/loss, treating an absent
// profit_loss field as zero. Both aggregates are order-independent.
func SummarizeHistory(entries []botapi.HistoryEntry) Summary {
	s := Summary{TotalTrades: len(entries)}
	for _, e := range entries {
		if e.ProfitLoss != nil {
			s.NetPnL += *e.ProfitLoss
		}
	}
	return s
}

// Readout holds the four classifications derived from an analytics bundle.
type Readout struct {
	ROI        string
	PriceTrend string
	RSIZone    string
	PnLTrend   string
}

// ClassifyBundle derives all four readouts from an analytics bundle.
func ClassifyBundle(b *botapi.AnalyticsBundle) Readout {
	return Readout{
		ROI:        ClassifyROI(b.ROI.ROIPercent),
		PriceTrend: PriceTrend(b.PriceVsTime.Values()),
		RSIZone:    RSIZone(b.RSIVsTime.Values(), b.RSIVsTime.Thresholds.Buy, b.RSIVsTime.Thresholds.Sell),
		PnLTrend:   PnLTrend(b.ProfitVsLoss.Values()),
	}
}
