package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	appordering "github.com/pyasti/backend/internal/application/ordering"
	"github.com/pyasti/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	tokenPath   = "/v1/oauth2/token"
	ordersPath  = "/v2/checkout/orders"
	tokenMargin = 60 * time.Second
)

// PayPalGateway talks to the PayPal Orders v2 API. All calls run
// through a circuit breaker so a degraded gateway fails fast instead
// of tying up checkout requests.
type PayPalGateway struct {
	client       *resty.Client
	breaker      *gobreaker.CircuitBreaker
	clientID     string
	clientSecret string
	currency     string
	logger       *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalGateway creates a gateway client from payment configuration
func NewPayPalGateway(cfg config.PaymentConfig, logger *zap.Logger) *PayPalGateway {
	log := logger.Named("paypal")

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "paypal",
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &PayPalGateway{
		client:       client,
		breaker:      breaker,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		currency:     cfg.Currency,
		logger:       log,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type amountPayload struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseUnitPayload struct {
	Amount amountPayload `json:"amount"`
}

type createOrderPayload struct {
	Intent        string                `json:"intent"`
	PurchaseUnits []purchaseUnitPayload `json:"purchase_units"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Payer  struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

// CreateOrder registers a capture-intent order with PayPal, settled in
// the configured currency
func (g *PayPalGateway) CreateOrder(ctx context.Context, amount decimal.Decimal) (appordering.GatewayOrder, error) {
	payload := createOrderPayload{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnitPayload{
			{Amount: amountPayload{CurrencyCode: g.currency, Value: amount.StringFixed(2)}},
		},
	}

	var order orderResponse
	err := g.call(ctx, func(token string) (*resty.Response, error) {
		return g.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(ordersPath)
	}, &order)
	if err != nil {
		return appordering.GatewayOrder{}, err
	}

	g.logger.Info("gateway order created",
		zap.String("gateway_order_id", order.ID),
		zap.String("status", order.Status))
	return appordering.GatewayOrder{ID: order.ID, Status: order.Status}, nil
}

// Capture captures an approved gateway order
func (g *PayPalGateway) Capture(ctx context.Context, gatewayOrderID string) (appordering.CaptureResult, error) {
	var order orderResponse
	err := g.call(ctx, func(token string) (*resty.Response, error) {
		return g.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetHeader("Content-Type", "application/json").
			Post(fmt.Sprintf("%s/%s/capture", ordersPath, gatewayOrderID))
	}, &order)
	if err != nil {
		return appordering.CaptureResult{}, err
	}

	return appordering.CaptureResult{
		ID:           order.ID,
		Status:       order.Status,
		EmailAddress: order.Payer.EmailAddress,
	}, nil
}

// call fetches a token, runs the request through the breaker, and
// decodes the response body into out
func (g *PayPalGateway) call(ctx context.Context, do func(token string) (*resty.Response, error), out any) error {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		token, err := g.token(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := do(token)
		if err != nil {
			return nil, fmt.Errorf("gateway request failed: %w", err)
		}
		if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
			return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode(), resp.String())
		}
		return resp.Body(), nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			g.logger.Warn("gateway call rejected by circuit breaker", zap.Error(err))
		}
		return err
	}

	return json.Unmarshal(result.([]byte), out)
}

// token returns a cached OAuth access token, refreshing it near expiry
func (g *PayPalGateway) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpiry.Add(-tokenMargin)) {
		return g.accessToken, nil
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBasicAuth(g.clientID, g.clientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("grant_type=client_credentials").
		Post(tokenPath)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("token request returned status %d", resp.StatusCode())
	}

	var token tokenResponse
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	g.accessToken = token.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return g.accessToken, nil
}

// Ensure PayPalGateway implements the application port
var _ appordering.PaymentGateway = (*PayPalGateway)(nil)
