package screens

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// loginScreen prompts for credentials and attempts a login.
func (a *App) loginScreen(ctx context.Context) bool {
	phone, ok := a.readLine("phone: ")
	if !ok {
		return false
	}
	password, ok := a.readLine("password: ")
	if !ok {
		return false
	}
	return a.login(ctx, phone, password)
}

// login validates input, performs the login call, and persists the token.
// Reports whether the user is now authenticated.
func (a *App) login(ctx context.Context, phone, password string) bool {
	if strings.TrimSpace(phone) == "" || password == "" {
		a.println("Phone and password are required")
		return false
	}

	res, err := a.client.Login(ctx, phone, password)
	if err != nil {
		a.showTransportError("login", err)
		return false
	}
	if res.Token == "" {
		a.println(orDefault(res.Detail, "Authentication Failed"))
		return false
	}

	if err := a.store.Save(res.Token); err != nil {
		a.logger.Error("Failed to persist session token", zap.Error(err))
		a.println("Failed to save session")
		return false
	}

	a.logger.Info("Login successful")
	return true
}

// registerScreen prompts for account details and attempts a registration.
func (a *App) registerScreen(ctx context.Context) bool {
	name, ok := a.readLine("name: ")
	if !ok {
		return false
	}
	phone, ok := a.readLine("phone: ")
	if !ok {
		return false
	}
	password, ok := a.readLine("password: ")
	if !ok {
		return false
	}
	return a.register(ctx, name, phone, password)
}

// register validates input, performs the register call, and persists the
// token. Reports whether the user is now authenticated.
func (a *App) register(ctx context.Context, name, phone, password string) bool {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" || password == "" {
		a.println("Name, phone and password are required")
		return false
	}

	res, err := a.client.Register(ctx, name, phone, password)
	if err != nil {
		a.showTransportError("register", err)
		return false
	}
	if res.Token == "" {
		a.println(orDefault(res.Detail, "Registration Failed"))
		return false
	}

	if err := a.store.Save(res.Token); err != nil {
		a.logger.Error("Failed to persist session token", zap.Error(err))
		a.println("Failed to save session")
		return false
	}

	a.logger.Info("Registration successful")
	return true
}
