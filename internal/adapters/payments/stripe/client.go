package stripe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/ports/payments"
)

var (
	ErrNotConfigured = errors.New("stripe client not configured")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrProcessor     = errors.New("payment processor error")
)

const defaultBaseURL = "https://api.stripe.com"

// Client implementa payments.IntentCreator contra la API de Stripe.
// Stripe habla form-encoded en requests y JSON en respuestas, así que
// va sobre httpclient.DoForm en vez de un SDK completo.
type Config struct {
	SecretKey string

	// BaseURL solo se toca en tests (httptest).
	BaseURL string

	Timeout time.Duration
}

type Client struct {
	secretKey string
	http      *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}

	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		secretKey: strings.TrimSpace(cfg.SecretKey),
		http:      hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.secretKey != ""
}

// CreateIntent crea un PaymentIntent en USD por el monto dado.
// amount viene en dólares; Stripe espera centavos enteros.
func (c *Client) CreateIntent(ctx context.Context, amount float64) (payments.Intent, error) {
	if !c.IsConfigured() {
		return payments.Intent{}, ErrNotConfigured
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return payments.Intent{}, ErrInvalidAmount
	}

	cents := int64(math.Round(amount * 100))

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(cents, 10))
	form.Set("currency", "usd")
	form.Set("payment_method_types[]", "card")

	headers := map[string]string{
		"Authorization": "Bearer " + c.secretKey,
	}

	var out struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}

	if err := c.http.DoForm(ctx, "/v1/payment_intents", headers, form, &out); err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			return payments.Intent{}, fmt.Errorf("%w: status=%d", ErrProcessor, httpErr.StatusCode)
		}
		return payments.Intent{}, fmt.Errorf("%w: %v", ErrProcessor, err)
	}

	if strings.TrimSpace(out.ClientSecret) == "" {
		return payments.Intent{}, fmt.Errorf("%w: response missing client_secret", ErrProcessor)
	}

	return payments.Intent{
		ID:           out.ID,
		ClientSecret: out.ClientSecret,
	}, nil
}
