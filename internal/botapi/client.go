package botapi

import (
	"context"
	"encoding/json"
	"fmt"

	"tradebot-client-go/internal/config"
	"tradebot-client-go/internal/session"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client defines the interface for the trading-bot backend API.
type Client interface {
	Login(ctx context.Context, phone, password string) (*AuthResponse, error)
	Register(ctx context.Context, name, phone, password string) (*AuthResponse, error)
	Logout(ctx context.Context) (*Ack, error)
	State(ctx context.Context) (*BotState, error)
	MarketData(ctx context.Context) (*MarketSnapshot, error)
	StartBot(ctx context.Context) (*Ack, error)
	StopBot(ctx context.Context) (*Ack, error)
	Buy(ctx context.Context, quantity float64) (*Ack, error)
	Sell(ctx context.Context, quantity float64) (*Ack, error)
	History(ctx context.Context) (*HistoryResponse, error)
	Export(ctx context.Context) (*Ack, error)
	Analytics(ctx context.Context) (*AnalyticsBundle, error)
	ChangeAsset(ctx context.Context, assetSymbol string) (*Ack, error)
	SetRiskLevel(ctx context.Context, riskLevel string) (*Ack, error)
	SetThresholds(ctx context.Context, buyRSI, sellRSI float64) (*Ack, error)
	SetCandleLimit(ctx context.Context, candleLimit int) (*Ack, error)
}

// RestClient is a client for the trading-bot backend API.
// It implements the Client interface.
type RestClient struct {
	client  *resty.Client
	store   session.Store
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure RestClient implements the interface
var _ Client = (*RestClient)(nil)

// NewRestClient creates a new backend API client.
func NewRestClient(cfg *config.Server, store session.Store, logger *zap.Logger) *RestClient {
	client := resty.New().SetBaseURL(cfg.BaseURL)

	// Initialize the rate limiter
	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	logger.Info("Using trading-bot backend", zap.String("base_url", cfg.BaseURL))

	return &RestClient{
		client:  client,
		store:   store,
		logger:  logger,
		limiter: limiter,
	}
}

// post issues a single POST request with a JSON body and decodes the JSON
// response into out. The response body is decoded regardless of HTTP status:
// the backend reports failures through a "detail" field in the payload, so
// callers must inspect the decoded value. A request is never retried.
func (c *RestClient) post(ctx context.Context, endpoint string, body interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}

	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)

	// The token is attached to every endpoint except login and register.
	if !publicEndpoints[endpoint] {
		token, err := c.store.Read()
		if err != nil {
			return fmt.Errorf("failed to read session token: %w", err)
		}
		if token != "" {
			req.SetHeader("Authorization", "Token "+token)
		}
	}

	c.logger.Debug("Executing request", zap.String("endpoint", c.client.BaseURL+endpoint))
	resp, err := req.Post(endpoint)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login authenticates with phone and password. A populated Token means
// success; a populated Detail carries the backend's rejection message.
func (c *RestClient) Login(ctx context.Context, phone, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, EndpointLogin, loginRequest{Phone: phone, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register creates an account and authenticates in one step.
func (c *RestClient) Register(ctx context.Context, name, phone, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, EndpointRegister, registerRequest{Name: name, Phone: phone, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the session on the backend. The caller is responsible
// for clearing the local session store.
func (c *RestClient) Logout(ctx context.Context) (*Ack, error) {
	var out Ack
	if err := c.post(ctx, EndpointLogout, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// State fetches the current bot configuration snapshot.
func (c *RestClient) State(ctx context.Context) (*BotState, error) {
	var out BotState
	if err := c.post(ctx, EndpointState, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarketData fetches the recent price series for the active asset.
func (c *RestClient) MarketData(ctx context.Context) (*MarketSnapshot, error) {
	var out MarketSnapshot
	if err := c.post(ctx, EndpointMarketData, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartBot resumes the trading loop on the backend.
func (c *RestClient) StartBot(ctx context.Context) (*Ack, error) {
	var out Ack
	if err := c.post(ctx, EndpointStartBot, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StopBot pauses the trading loop on the backend.
func (c *RestClient) StopBot(ctx context.Context) (*Ack, error) {
	var out Ack
	if err := c.post(ctx, EndpointStopBot, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type orderRequest struct {
	Quantity float64 `json:"quantity"`
}

// Buy places a manual market buy order for the active asset.
func (c *RestClient) Buy(ctx context.Context, quantity float64) (*Ack, error) {
	var out Ack
	if err := c.post(ctx, EndpointBuy, orderRequest{Quantity: quantity}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sell places a manual market sell order for the active asset.
func (c *RestClient) Sell(ctx context.Context, quantity float64) (*Ack, error) {
	var out Ack
	if err := c.post(ctx, EndpointSell, orderRequest{Quantity: quantity}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History fetches the trade ledger in backend order.
func (c *RestClient) History(ctx context.Context) (*HistoryResponse, error) {
	var out HistoryResponse
	if err := c.post(ctx, EndpointHistory, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export triggers server-side CSV generation of the trade ledger.
func (c *RestClient) Export(ctx context.Context) (*Ack, error) {
	var out Ack
	if err := c.post(ctx, EndpointExport, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analytics fetches the full analytics bundle.
func (c *RestClient) Analytics(ctx context.Context) (*AnalyticsBundle, error) {
	var out AnalyticsBundle
	if err := c.post(ctx, EndpointAnalytics, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type changeAssetRequest struct {
	AssetSymbol string `json:"asset_symbol"`
}

// ChangeAsset switches the bot's active trading asset.
func (c *RestClient) ChangeAsset(ctx context.Context, assetSymbol string) (*Ack, error) {
	var out Ack
	if err := c.post(ctx, EndpointChangeAsset, changeAssetRequest{AssetSymbol: assetSymbol}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type riskRequest struct {
	RiskLevel string `json:"risk_level"`
}

// SetRiskLevel updates the bot's risk level.
func (c *RestClient) SetRiskLevel(ctx context.Context, riskLevel string) (*Ack, error) {
	var out Ack
	if err := c.post(ctx, EndpointRisk, riskRequest{RiskLevel: riskLevel}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type thresholdsRequest struct {
	BuyRSI  float64 `json:"buy_rsi"`
	SellRSI float64 `json:"sell_rsi"`
}

// SetThresholds updates the bot's RSI buy and sell thresholds. Callers
// validate buy < sell before submitting; the client sends what it is given.
func (c *RestClient) SetThresholds(ctx context.Context, buyRSI, sellRSI float64) (*Ack, error) {
	var out Ack
	if err := c.post(ctx, EndpointThresholds, thresholdsRequest{BuyRSI: buyRSI, SellRSI: sellRSI}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type candlesRequest struct {
	CandleLimit int `json:"candle_limit"`
}

// SetCandleLimit updates the number of candles the bot evaluates.
func (c *RestClient) SetCandleLimit(ctx context.Context, candleLimit int) (*Ack, error) {
	var out Ack
	if err := c.post(ctx, EndpointCandles, candlesRequest{CandleLimit: candleLimit}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
