package botapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// memStore is an in-memory session.Store for tests.
type memStore struct {
	token string
}

func (m *memStore) Save(token string) error { m.token = token; return nil }
func (m *memStore) Read() (string, error)   { return m.token, nil }
func (m *memStore) Clear() error            { m.token = ""; return nil }

// setupTestServer creates a new test server and a RestClient configured to use it.
func setupTestServer(handler http.Handler, token string) (*RestClient, *httptest.Server) {
	server := httptest.NewServer(handler)

	client := resty.New().SetBaseURL(server.URL)
	logger := zap.NewNop() // Use a no-op logger for tests

	rc := &RestClient{
		client:  client,
		store:   &memStore{token: token},
		logger:  logger,
		limiter: rate.NewLimiter(rate.Inf, 1), // Allow all requests in tests
	}

	return rc, server
}

func TestAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		call       func(ctx context.Context, rc *RestClient) error
		wantPath   string
		wantHeader string
	}{
		{
			name:  "LoginNeverCarriesToken",
			token: "abc",
			call: func(ctx context.Context, rc *RestClient) error {
				_, err := rc.Login(ctx, "555", "x")
				return err
			},
			wantPath:   "/login/",
			wantHeader: "",
		},
		{
			name:  "RegisterNeverCarriesToken",
			token: "abc",
			call: func(ctx context.Context, rc *RestClient) error {
				_, err := rc.Register(ctx, "name", "555", "x")
				return err
			},
			wantPath:   "/register/",
			wantHeader: "",
		},
		{
			name:  "StateCarriesToken",
			token: "abc",
			call: func(ctx context.Context, rc *RestClient) error {
				_, err := rc.State(ctx)
				return err
			},
			wantPath:   "/state/",
			wantHeader: "Token abc",
		},
		{
			name:  "StateOmitsHeaderWhenNoToken",
			token: "",
			call: func(ctx context.Context, rc *RestClient) error {
				_, err := rc.State(ctx)
				return err
			},
			wantPath:   "/state/",
			wantHeader: "",
		},
		{
			name:  "HistoryCarriesToken",
			token: "xyz",
			call: func(ctx context.Context, rc *RestClient) error {
				_, err := rc.History(ctx)
				return err
			},
			wantPath:   "/history/",
			wantHeader: "Token xyz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotHeader string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotHeader = r.Header.Get("Authorization")
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{}`))
			})

			rc, server := setupTestServer(handler, tt.token)
			defer server.Close()

			err := tt.call(context.Background(), rc)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, tt.wantHeader, gotHeader)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotBody map[string]string
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/login/", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token": "abc"}`))
		})

		rc, server := setupTestServer(handler, "")
		defer server.Close()

		resp, err := rc.Login(context.Background(), "555", "x")

		assert.NoError(t, err)
		assert.Equal(t, "abc", resp.Token)
		assert.Empty(t, resp.Detail)
		assert.Equal(t, map[string]string{"phone": "555", "password": "x"}, gotBody)
	})

	t.Run("Rejected", func(t *testing.T) {
		// The backend rejects with a detail payload and a non-2xx status.
		// The client decodes the body regardless of status and returns no error.
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "Invalid credentials"}`))
		})

		rc, server := setupTestServer(handler, "")
		defer server.Close()

		resp, err := rc.Login(context.Background(), "555", "wrong")

		assert.NoError(t, err)
		assert.Empty(t, resp.Token)
		assert.Equal(t, "Invalid credentials", resp.Detail)
	})
}

func TestState(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/state/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"bot_running": true,
			"asset": "BTCUSDT",
			"risk_level": "MEDIUM",
			"buy_rsi": 30,
			"sell_rsi": 70,
			"candle_limit": 100,
			"username": "alice"
		}`))
	})

	rc, server := setupTestServer(handler, "abc")
	defer server.Close()

	state, err := rc.State(context.Background())

	assert.NoError(t, err)
	assert.True(t, state.BotRunning)
	assert.Equal(t, "BTCUSDT", state.Asset)
	assert.Equal(t, RiskMedium, state.RiskLevel)
	assert.Equal(t, 30.0, state.BuyRSI)
	assert.Equal(t, 70.0, state.SellRSI)
	assert.Equal(t, 100, state.CandleLimit)
	assert.Equal(t, "alice", state.Username)
}

func TestMarketData(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prices": [101.5, 102.0, 99.8]}`))
	})

	rc, server := setupTestServer(handler, "abc")
	defer server.Close()

	market, err := rc.MarketData(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []float64{101.5, 102.0, 99.8}, market.Prices)
	assert.Equal(t, 99.8, market.CurrentPrice())
}

func TestBuySendsQuantity(t *testing.T) {
	var gotBody map[string]float64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buy/", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	rc, server := setupTestServer(handler, "abc")
	defer server.Close()

	ack, err := rc.Buy(context.Background(), 2.5)

	assert.NoError(t, err)
	assert.Empty(t, ack.Detail)
	assert.Equal(t, map[string]float64{"quantity": 2.5}, gotBody)
}

func TestHistory(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"history": [
			{"time": "2026-01-02 10:00:00", "action": "BUY", "price": 100, "quantity": 1, "event_type": "order"},
			{"time": "2026-01-02 11:00:00", "action": "SELL", "price": 110, "quantity": 1, "profit_loss": 10, "event_type": "order"}
		]}`))
	})

	rc, server := setupTestServer(handler, "abc")
	defer server.Close()

	resp, err := rc.History(context.Background())

	assert.NoError(t, err)
	assert.Len(t, resp.History, 2)
	assert.Equal(t, ActionBuy, resp.History[0].Action)
	assert.Nil(t, resp.History[0].ProfitLoss)
	assert.Equal(t, ActionSell, resp.History[1].Action)
	if assert.NotNil(t, resp.History[1].ProfitLoss) {
		assert.Equal(t, 10.0, *resp.History[1].ProfitLoss)
	}
}

func TestAnalytics(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"roi": {"roi_percent": 4.2},
			"price_vs_time": {"data": [{"price": 100}, {"price": 105}]},
			"rsi_vs_time": {"data": [{"rsi": 40}, {"rsi": 62}], "thresholds": {"buy": 30, "sell": 70}},
			"profit_vs_loss": {"data": [{"pnl": -2}, {"pnl": 5}]},
			"next_price": {"estimated_price": 106.3},
			"next_rsi": {"estimated_rsi": 58.1}
		}`))
	})

	rc, server := setupTestServer(handler, "abc")
	defer server.Close()

	bundle, err := rc.Analytics(context.Background())

	assert.NoError(t, err)
	if assert.NotNil(t, bundle.ROI.ROIPercent) {
		assert.Equal(t, 4.2, *bundle.ROI.ROIPercent)
	}
	assert.Equal(t, []float64{100, 105}, bundle.PriceVsTime.Values())
	assert.Equal(t, []float64{40, 62}, bundle.RSIVsTime.Values())
	assert.Equal(t, 30.0, bundle.RSIVsTime.Thresholds.Buy)
	assert.Equal(t, 70.0, bundle.RSIVsTime.Thresholds.Sell)
	assert.Equal(t, []float64{-2, 5}, bundle.ProfitVsLoss.Values())
	assert.Equal(t, 106.3, bundle.NextPrice.EstimatedPrice)
	assert.Equal(t, 58.1, bundle.NextRSI.EstimatedRSI)
}

func TestSettingsEndpoints(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody = nil
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	rc, server := setupTestServer(handler, "abc")
	defer server.Close()

	ctx := context.Background()

	_, err := rc.ChangeAsset(ctx, "ETHUSDT")
	assert.NoError(t, err)
	assert.Equal(t, "/wallet/change-asset/", gotPath)
	assert.Equal(t, "ETHUSDT", gotBody["asset_symbol"])

	_, err = rc.SetRiskLevel(ctx, RiskHigh)
	assert.NoError(t, err)
	assert.Equal(t, "/bot/risk/", gotPath)
	assert.Equal(t, "HIGH", gotBody["risk_level"])

	_, err = rc.SetThresholds(ctx, 25, 75)
	assert.NoError(t, err)
	assert.Equal(t, "/bot/thresholds/", gotPath)
	assert.Equal(t, 25.0, gotBody["buy_rsi"])
	assert.Equal(t, 75.0, gotBody["sell_rsi"])

	_, err = rc.SetCandleLimit(ctx, 200)
	assert.NoError(t, err)
	assert.Equal(t, "/bot/candles/", gotPath)
	assert.Equal(t, 200.0, gotBody["candle_limit"])
}

func TestTransportFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	rc, server := setupTestServer(handler, "abc")
	server.Close() // Shut the server down so the request cannot connect.

	_, err := rc.State(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "request to /state/ failed")
}

func TestMalformedResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	rc, server := setupTestServer(handler, "abc")
	defer server.Close()

	_, err := rc.State(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
