package screens

import (
	"context"
	"strconv"
	"strings"
	"time"

	"tradebot-client-go/internal/botapi"
	"tradebot-client-go/internal/metrics"

	"go.uber.org/zap"
)

// dashboard is the main screen after authentication. It loads the bot state
// and market snapshot on entry, refreshes the state on a fixed interval in
// the background, and dispatches to the other screens. Returns true when the
// whole application should exit.
func (a *App) dashboard(ctx context.Context) bool {
	a.refreshDashboard(ctx)

	// The poller lives exactly as long as this screen.
	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.pollState(pollCtx)

	for {
		if ctx.Err() != nil {
			return true
		}

		line, ok := a.readLine("dashboard> refresh | start | stop | buy <qty> | sell <qty> | history | analytics | settings | logout | quit: ")
		if !ok {
			return true
		}

		cmd, arg := splitCommand(line)
		switch cmd {
		case "refresh":
			a.refreshDashboard(ctx)
		case "start":
			a.toggleBot(ctx, true)
		case "stop":
			a.toggleBot(ctx, false)
		case "buy":
			a.trade(ctx, botapi.ActionBuy, arg)
		case "sell":
			a.trade(ctx, botapi.ActionSell, arg)
		case "history":
			a.historyScreen(ctx)
		case "analytics":
			a.showAnalytics(ctx)
		case "settings":
			a.settingsScreen(ctx)
		case "logout":
			if a.logout(ctx) {
				return false
			}
		case "quit", "exit":
			return true
		case "":
		default:
			a.println("Unknown command: " + cmd)
		}
	}
}

// refreshDashboard loads and renders the bot state and the market snapshot.
func (a *App) refreshDashboard(ctx context.Context) {
	state, err := a.client.State(ctx)
	if err != nil {
		a.showTransportError("dashboard", err)
		return
	}
	if state.Detail != "" {
		a.println(state.Detail)
		return
	}
	a.renderState(state)

	market, err := a.client.MarketData(ctx)
	if err != nil {
		a.showTransportError("dashboard", err)
		return
	}
	if market.Detail != "" {
		a.println(market.Detail)
		return
	}
	a.printf("price: %.2f  trend: %s\n", market.CurrentPrice(), metrics.PriceTrend(market.Prices))
}

// pollState refreshes the bot state on the configured interval until the
// dashboard is left. Poll failures are logged and skipped; the next tick
// tries again.
func (a *App) pollState(ctx context.Context) {
	interval := time.Duration(a.cfg.Screens.PollInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.logger.Debug("Starting state poller", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("State poller stopped")
			return
		case <-ticker.C:
			state, err := a.client.State(ctx)
			if err != nil {
				a.logger.Warn("State poll failed", zap.Error(err))
				continue
			}
			if state.Detail != "" {
				a.logger.Warn("State poll rejected", zap.String("detail", state.Detail))
				continue
			}
			a.renderState(state)
		}
	}
}

func (a *App) renderState(state *botapi.BotState) {
	running := "STOPPED"
	if state.BotRunning {
		running = "RUNNING"
	}
	a.printf("[%s] bot %s  asset=%s  risk=%s  rsi=%.0f/%.0f  candles=%d\n",
		state.Username, running, state.Asset, state.RiskLevel,
		state.BuyRSI, state.SellRSI, state.CandleLimit)
}

// toggleBot starts or stops the backend trading loop.
func (a *App) toggleBot(ctx context.Context, start bool) {
	var ack *botapi.Ack
	var err error
	if start {
		ack, err = a.client.StartBot(ctx)
	} else {
		ack, err = a.client.StopBot(ctx)
	}
	if err != nil {
		a.showTransportError("dashboard", err)
		return
	}
	if start {
		a.ackOK(ack, "Bot started")
	} else {
		a.ackOK(ack, "Bot stopped")
	}
}

// trade validates the quantity locally and places a manual order. No request
// is sent for malformed or non-positive quantities.
func (a *App) trade(ctx context.Context, action, qtyArg string) {
	qty, err := strconv.ParseFloat(qtyArg, 64)
	if err != nil || qty <= 0 {
		a.println("Quantity must be a positive number")
		return
	}

	var ack *botapi.Ack
	if action == botapi.ActionBuy {
		ack, err = a.client.Buy(ctx, qty)
	} else {
		ack, err = a.client.Sell(ctx, qty)
	}
	if err != nil {
		a.showTransportError("dashboard", err)
		return
	}
	a.ackOK(ack, action+" order placed")
}

// logout asks for confirmation, notifies the backend, and clears the local
// session. The store is cleared even if the backend call fails, matching the
// staleness policy: a dead token is only ever discovered server-side.
func (a *App) logout(ctx context.Context) bool {
	if !a.confirm("Log out?") {
		return false
	}

	if _, err := a.client.Logout(ctx); err != nil {
		a.showTransportError("logout", err)
	}

	if err := a.store.Clear(); err != nil {
		a.logger.Error("Failed to clear session", zap.Error(err))
		a.println("Failed to clear session")
		return false
	}

	a.println("Logged out")
	return true
}

// splitCommand separates a command word from the rest of the line.
func splitCommand(line string) (string, string) {
	cmd, arg, _ := strings.Cut(line, " ")
	return cmd, strings.TrimSpace(arg)
}
