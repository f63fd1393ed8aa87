// Package screens implements the terminal screens of the client: login,
// register, dashboard, trade history, analytics, and settings. Each screen
// loads data through the backend client and renders it; every failure is
// converted to a single user-visible line and never retried automatically.
package screens

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"tradebot-client-go/internal/botapi"
	"tradebot-client-go/internal/config"
	"tradebot-client-go/internal/session"

	"go.uber.org/zap"
)

// msgNetworkFailed is shown for any transport-level failure.
const msgNetworkFailed = "Network Connection Failed"

// App drives the screen flow. A single App is live per process; the only
// state shared between screens is the session store.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	client botapi.Client
	store  session.Store
	in     *bufio.Scanner
	out    io.Writer

	mu sync.Mutex // guards writes to out from the poller
}

// NewApp creates the screen application.
func NewApp(cfg *config.Config, logger *zap.Logger, client botapi.Client, store session.Store, in io.Reader, out io.Writer) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		client: client,
		store:  store,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run is the top-level screen loop. An existing session skips straight to
// the dashboard; otherwise the user authenticates first.
func (a *App) Run(ctx context.Context) error {
	token, err := a.store.Read()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	if token != "" {
		a.logger.Info("Existing session found, opening dashboard")
		if done := a.dashboard(ctx); done {
			return nil
		}
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, ok := a.readLine("auth> login | register | quit: ")
		if !ok {
			return nil
		}

		switch line {
		case "login":
			if a.loginScreen(ctx) {
				if done := a.dashboard(ctx); done {
					return nil
				}
			}
		case "register":
			if a.registerScreen(ctx) {
				if done := a.dashboard(ctx); done {
					return nil
				}
			}
		case "quit", "exit":
			return nil
		case "":
		default:
			a.println("Unknown command: " + line)
		}
	}
}

// readLine prompts and reads one trimmed input line. ok is false on EOF.
func (a *App) readLine(prompt string) (string, bool) {
	a.print(prompt)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// confirm asks a yes/no question. Anything but "y"/"yes" declines.
func (a *App) confirm(prompt string) bool {
	line, ok := a.readLine(prompt + " [y/N]: ")
	if !ok {
		return false
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes"
}

func (a *App) print(s string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprint(a.out, s)
}

func (a *App) println(s string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintln(a.out, s)
}

func (a *App) printf(format string, args ...interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

// showTransportError logs the error and shows the generic network message.
func (a *App) showTransportError(screen string, err error) {
	a.logger.Warn("Request failed", zap.String("screen", screen), zap.Error(err))
	a.println(msgNetworkFailed)
}

// ackOK reports whether the backend acknowledged the call; a populated
// detail is shown verbatim, otherwise the success line is printed.
func (a *App) ackOK(ack *botapi.Ack, success string) bool {
	if ack.Detail != "" {
		a.println(ack.Detail)
		return false
	}
	if success != "" {
		a.println(success)
	}
	return true
}

// orDefault returns s unless it is empty.
func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
