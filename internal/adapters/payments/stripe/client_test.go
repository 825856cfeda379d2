package stripe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_CreateIntent_SendsCentsAndParsesSecret(t *testing.T) {
	var gotAmount, gotCurrency, gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = r.ParseForm()
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":            "pi_123",
			"client_secret": "pi_123_secret_abc",
		})
	}))
	defer ts.Close()

	c, err := NewClient(Config{SecretKey: "sk_test_x", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	intent, err := c.CreateIntent(context.Background(), 12.5)
	if err != nil {
		t.Fatalf("CreateIntent error: %v", err)
	}

	if gotAmount != "1250" {
		t.Fatalf("expected 1250 cents, got %s", gotAmount)
	}
	if gotCurrency != "usd" {
		t.Fatalf("expected usd, got %s", gotCurrency)
	}
	if gotAuth != "Bearer sk_test_x" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if intent.ClientSecret != "pi_123_secret_abc" {
		t.Fatalf("unexpected client secret %q", intent.ClientSecret)
	}
}

func TestClient_CreateIntent_RejectsBadAmounts(t *testing.T) {
	c, err := NewClient(Config{SecretKey: "sk_test_x"})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	for _, amount := range []float64{0, -5} {
		if _, err := c.CreateIntent(context.Background(), amount); err != ErrInvalidAmount {
			t.Fatalf("amount=%v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestClient_CreateIntent_MapsUpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"no such key"}}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	c, err := NewClient(Config{SecretKey: "sk_bad", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	if _, err := c.CreateIntent(context.Background(), 10); err == nil {
		t.Fatalf("expected processor error")
	}
}
