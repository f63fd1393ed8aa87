package screens

import (
	"context"
	"strconv"
	"strings"

	"tradebot-client-go/internal/botapi"
)

// settingsScreen shows the current bot configuration and applies changes.
// Every change is validated locally before a request is issued; the asset
// switch additionally requires explicit confirmation because the backend
// liquidates the current position when it changes asset.
func (a *App) settingsScreen(ctx context.Context) {
	a.showSettings(ctx)

	for {
		line, ok := a.readLine("settings> show | asset <SYM> | risk <LOW|MEDIUM|HIGH> | thresholds <buy> <sell> | candles <n> | back: ")
		if !ok {
			return
		}

		cmd, arg := splitCommand(line)
		switch cmd {
		case "show":
			a.showSettings(ctx)
		case "asset":
			a.changeAsset(ctx, arg)
		case "risk":
			a.applyRisk(ctx, arg)
		case "thresholds":
			a.applyThresholds(ctx, arg)
		case "candles":
			a.applyCandles(ctx, arg)
		case "back", "":
			return
		default:
			a.println("Unknown command: " + cmd)
		}
	}
}

func (a *App) showSettings(ctx context.Context) {
	state, err := a.client.State(ctx)
	if err != nil {
		a.showTransportError("settings", err)
		return
	}
	if state.Detail != "" {
		a.println(state.Detail)
		return
	}
	a.renderState(state)
}

// changeAsset switches the active trading asset after confirmation.
func (a *App) changeAsset(ctx context.Context, symbol string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		a.println("Asset symbol is required")
		return
	}

	if !a.confirm("Switch asset to " + symbol + "? The current position will be closed.") {
		return
	}

	ack, err := a.client.ChangeAsset(ctx, symbol)
	if err != nil {
		a.showTransportError("settings", err)
		return
	}
	a.ackOK(ack, "Asset changed to "+symbol)
}

// applyRisk updates the bot risk level. Only the three known levels are
// accepted locally.
func (a *App) applyRisk(ctx context.Context, level string) {
	level = strings.ToUpper(strings.TrimSpace(level))
	switch level {
	case botapi.RiskLow, botapi.RiskMedium, botapi.RiskHigh:
	default:
		a.println("Risk level must be LOW, MEDIUM or HIGH")
		return
	}

	ack, err := a.client.SetRiskLevel(ctx, level)
	if err != nil {
		a.showTransportError("settings", err)
		return
	}
	a.ackOK(ack, "Risk level set to "+level)
}

// applyThresholds parses "<buy> <sell>" and updates the RSI thresholds.
// The buy threshold must be strictly below the sell threshold; nothing is
// sent otherwise.
func (a *App) applyThresholds(ctx context.Context, arg string) {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		a.println("Usage: thresholds <buy> <sell>")
		return
	}

	buy, err1 := strconv.ParseFloat(fields[0], 64)
	sell, err2 := strconv.ParseFloat(fields[1], 64)
	if err1 != nil || err2 != nil {
		a.println("Thresholds must be numbers")
		return
	}
	if buy >= sell {
		a.println("Buy threshold must be below sell threshold")
		return
	}

	ack, err := a.client.SetThresholds(ctx, buy, sell)
	if err != nil {
		a.showTransportError("settings", err)
		return
	}
	a.ackOK(ack, "Thresholds updated")
}

// applyCandles updates the candle evaluation window.
func (a *App) applyCandles(ctx context.Context, arg string) {
	limit, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || limit <= 0 {
		a.println("Candle limit must be a positive integer")
		return
	}

	ack, err := a.client.SetCandleLimit(ctx, limit)
	if err != nil {
		a.showTransportError("settings", err)
		return
	}
	a.ackOK(ack, "Candle limit updated")
}
