package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewClientRequiresSecret(t *testing.T) {
	if NewClient(Config{}) != nil {
		t.Fatalf("client without secret key should be nil")
	}
	var c *Client
	if c.Configured() {
		t.Fatalf("nil client must not be configured")
	}
}

func TestCreateCheckoutSessionSendsLineItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_1" {
			t.Errorf("unexpected auth header: %s", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form failed: %v", err)
		}
		if r.PostForm.Get("line_items[0][price_data][unit_amount]") != "1999" {
			t.Errorf("unexpected unit amount: %s", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		}
		if r.PostForm.Get("line_items[1][quantity]") != "3" {
			t.Errorf("unexpected quantity: %s", r.PostForm.Get("line_items[1][quantity]"))
		}
		if r.PostForm.Get("metadata[order_id]") != "7" {
			t.Errorf("unexpected order id: %s", r.PostForm.Get("metadata[order_id]"))
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "cs_test_1", "url": "https://checkout.stripe.test/cs_test_1"})
	}))
	defer server.Close()

	client := NewClient(Config{
		SecretKey:  "sk_test_1",
		APIBaseURL: server.URL,
		SuccessURL: "https://shop.test/success",
		CancelURL:  "https://shop.test/cancel",
	})
	session, err := client.CreateCheckoutSession(context.Background(), SessionInput{
		OrderNo:  "SF1",
		OrderID:  7,
		Currency: "usd",
		Items: []LineItem{
			{Name: "Mouse", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 1},
			{Name: "Pad", UnitPrice: decimal.RequireFromString("5"), Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if session.ID != "cs_test_1" || session.URL == "" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestCreateCheckoutSessionUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer server.Close()

	client := NewClient(Config{SecretKey: "sk", APIBaseURL: server.URL, SuccessURL: "https://a", CancelURL: "https://b"})
	_, err := client.CreateCheckoutSession(context.Background(), SessionInput{
		OrderNo:  "SF2",
		Currency: "usd",
		Items:    []LineItem{{Name: "x", UnitPrice: decimal.NewFromInt(1), Quantity: 1}},
	})
	if !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected response invalid, got %v", err)
	}
}

func TestParseWebhookCheckoutCompleted(t *testing.T) {
	now := time.Unix(1760000000, 0)
	body, _ := json.Marshal(map[string]interface{}{
		"id":   "evt_1",
		"type": EventCheckoutCompleted,
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"object":         "checkout.session",
				"id":             "cs_test_123",
				"payment_status": "paid",
				"currency":       "usd",
				"amount_total":   1288,
				"metadata":       map[string]string{"order_no": "SF1001", "order_id": "12"},
			},
		},
	})
	header := "t=" + strconv.FormatInt(now.Unix(), 10) + ",v1=" + ComputeSignature("whsec_abc", now.Unix(), body)

	event, err := ParseWebhook("whsec_abc", 300, header, body, now)
	if err != nil {
		t.Fatalf("parse webhook failed: %v", err)
	}
	if event.Type != EventCheckoutCompleted || event.SessionID != "cs_test_123" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.OrderID != 12 || event.OrderNo != "SF1001" || event.AmountTotal != "12.88" || event.PaymentStatus != "paid" {
		t.Fatalf("unexpected event fields: %+v", event)
	}
}

func TestParseWebhookRejectsBadSignature(t *testing.T) {
	now := time.Unix(1760000000, 0)
	body := []byte(`{"id":"evt","type":"checkout.session.completed","data":{"object":{}}}`)

	cases := map[string]string{
		"wrong signature": "t=1760000000,v1=deadbeef",
		"missing v1":      "t=1760000000",
		"stale timestamp": "t=1759990000,v1=" + ComputeSignature("whsec", 1759990000, body),
		"empty":           "",
	}
	for name, header := range cases {
		if _, err := ParseWebhook("whsec", 300, header, body, now); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("%s: expected signature error, got %v", name, err)
		}
	}
}
