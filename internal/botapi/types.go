package botapi

// Backend endpoint paths. All endpoints take a POST with a JSON body.
const (
	EndpointLogin       = "/login/"
	EndpointRegister    = "/register/"
	EndpointLogout      = "/logout/"
	EndpointState       = "/state/"
	EndpointMarketData  = "/market-data/"
	EndpointStartBot    = "/start-bot/"
	EndpointStopBot     = "/stop-bot/"
	EndpointBuy         = "/buy/"
	EndpointSell        = "/sell/"
	EndpointHistory     = "/history/"
	EndpointExport      = "/export/"
	EndpointAnalytics   = "/analytics/"
	EndpointChangeAsset = "/wallet/change-asset/"
	EndpointRisk        = "/bot/risk/"
	EndpointThresholds  = "/bot/thresholds/"
	EndpointCandles     = "/bot/candles/"
)

// publicEndpoints must never carry an Authorization header.
var publicEndpoints = map[string]bool{
	EndpointLogin:    true,
	EndpointRegister: true,
}

// Risk levels accepted by the backend.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// Trade actions as they appear in history entries.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// AuthResponse is returned by login and register. Exactly one of Token and
// Detail is populated.
type AuthResponse struct {
	Token  string `json:"token"`
	Detail string `json:"detail"`
}

// Ack is the generic acknowledgement for state-changing endpoints. A
// populated Detail signals a backend-reported failure.
type Ack struct {
	Detail string `json:"detail"`
}

// BotState is the backend-owned bot configuration snapshot.
type BotState struct {
	BotRunning  bool    `json:"bot_running"`
	Asset       string  `json:"asset"`
	RiskLevel   string  `json:"risk_level"`
	BuyRSI      float64 `json:"buy_rsi"`
	SellRSI     float64 `json:"sell_rsi"`
	CandleLimit int     `json:"candle_limit"`
	Username    string  `json:"username"`
	Detail      string  `json:"detail"`
}

// MarketSnapshot carries the recent price series, most-recent-last.
type MarketSnapshot struct {
	Prices []float64 `json:"prices"`
	Detail string    `json:"detail"`
}

// CurrentPrice returns the most recent price, or 0 if the series is empty.
func (m *MarketSnapshot) CurrentPrice() float64 {
	if len(m.Prices) == 0 {
		return 0
	}
	return m.Prices[len(m.Prices)-1]
}

// HistoryEntry is a single immutable ledger event. ProfitLoss is a pointer
// because the backend omits it on non-closing events.
type HistoryEntry struct {
	Time       string   `json:"time"`
	Action     string   `json:"action"`
	Price      float64  `json:"price"`
	Quantity   float64  `json:"quantity"`
	ProfitLoss *float64 `json:"profit_loss"`
	EventType  string   `json:"event_type"`
}

// HistoryResponse is returned by the history endpoint, in backend order.
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
	Detail  string         `json:"detail"`
}

// ROISummary is the return-on-investment figure. ROIPercent is a pointer
// because the backend omits it before the first closed trade.
type ROISummary struct {
	ROIPercent *float64 `json:"roi_percent"`
}

// PricePoint is one element of the price-over-time series.
type PricePoint struct {
	Price float64 `json:"price"`
}

// RSIPoint is one element of the RSI-over-time series.
type RSIPoint struct {
	RSI float64 `json:"rsi"`
}

// PnLPoint is one element of the profit-vs-loss series.
type PnLPoint struct {
	PnL float64 `json:"pnl"`
}

// RSIThresholds are the bot's configured buy (lower) and sell (upper) bounds.
type RSIThresholds struct {
	Buy  float64 `json:"buy"`
	Sell float64 `json:"sell"`
}

// PriceSeries wraps the price-over-time data points.
type PriceSeries struct {
	Data []PricePoint `json:"data"`
}

// Values returns the raw price values in series order.
func (s PriceSeries) Values() []float64 {
	out := make([]float64, len(s.Data))
	for i, p := range s.Data {
		out[i] = p.Price
	}
	return out
}

// RSISeries wraps the RSI-over-time data points and the active thresholds.
type RSISeries struct {
	Data       []RSIPoint    `json:"data"`
	Thresholds RSIThresholds `json:"thresholds"`
}

// Values returns the raw RSI values in series order.
func (s RSISeries) Values() []float64 {
	out := make([]float64, len(s.Data))
	for i, p := range s.Data {
		out[i] = p.RSI
	}
	return out
}

// PnLSeries wraps the profit-vs-loss data points.
type PnLSeries struct {
	Data []PnLPoint `json:"data"`
}

// Values returns the raw PnL values in series order.
func (s PnLSeries) Values() []float64 {
	out := make([]float64, len(s.Data))
	for i, p := range s.Data {
		out[i] = p.PnL
	}
	return out
}

// PricePrediction is the backend's next-price point estimate.
type PricePrediction struct {
	EstimatedPrice float64 `json:"estimated_price"`
}

// RSIPrediction is the backend's next-RSI point estimate.
type RSIPrediction struct {
	EstimatedRSI float64 `json:"estimated_rsi"`
}

// AnalyticsBundle aggregates the four analytics series and the two point
// predictions returned by the analytics endpoint.
type AnalyticsBundle struct {
	ROI          ROISummary      `json:"roi"`
	PriceVsTime  PriceSeries     `json:"price_vs_time"`
	RSIVsTime    RSISeries       `json:"rsi_vs_time"`
	ProfitVsLoss PnLSeries       `json:"profit_vs_loss"`
	NextPrice    PricePrediction `json:"next_price"`
	NextRSI      RSIPrediction   `json:"next_rsi"`
	Detail       string          `json:"detail"`
}
