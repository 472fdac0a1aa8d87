// Package stripe 封装 Stripe Checkout 会话创建与 Webhook 验签。
package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid    = errors.New("stripe config invalid")
	ErrRequestFailed    = errors.New("stripe request failed")
	ErrResponseInvalid  = errors.New("stripe response invalid")
	ErrSignatureInvalid = errors.New("stripe signature invalid")
)

// EventCheckoutCompleted 支付完成事件
const EventCheckoutCompleted = "checkout.session.completed"

const (
	defaultAPIBaseURL        = "https://api.stripe.com"
	defaultTimeout           = 15 * time.Second
	defaultWebhookToleranceS = 300
)

var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {}, "KMF": {}, "KRW": {}, "MGA": {},
	"PYG": {}, "RWF": {}, "UGX": {}, "VND": {}, "VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// Config Stripe 配置
type Config struct {
	SecretKey               string
	WebhookSecret           string
	SuccessURL              string
	CancelURL               string
	APIBaseURL              string
	WebhookToleranceSeconds int64
	Timeout                 time.Duration
}

// LineItem 结算商品行
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// SessionInput 创建 Checkout 会话输入
type SessionInput struct {
	OrderNo    string
	OrderID    uint
	Currency   string
	Items      []LineItem
	SuccessURL string
	CancelURL  string
}

// Session Checkout 会话
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Event 验签后的 Webhook 事件
type Event struct {
	ID            string
	Type          string
	SessionID     string
	PaymentStatus string
	OrderNo       string
	OrderID       uint
	AmountTotal   string
	Currency      string
}

// Client Stripe API 客户端
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient 创建客户端，未配置密钥时返回 nil
func NewClient(cfg Config) *Client {
	cfg.SecretKey = strings.TrimSpace(cfg.SecretKey)
	cfg.WebhookSecret = strings.TrimSpace(cfg.WebhookSecret)
	cfg.SuccessURL = strings.TrimSpace(cfg.SuccessURL)
	cfg.CancelURL = strings.TrimSpace(cfg.CancelURL)
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.WebhookToleranceSeconds <= 0 {
		cfg.WebhookToleranceSeconds = defaultWebhookToleranceS
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.SecretKey == "" {
		return nil
	}
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}
}

// Configured 是否可用
func (c *Client) Configured() bool {
	return c != nil && c.cfg.SecretKey != ""
}

// CreateCheckoutSession 按订单明细创建 Checkout 会话
func (c *Client) CreateCheckoutSession(ctx context.Context, input SessionInput) (*Session, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: secret_key is required", ErrConfigInvalid)
	}
	orderNo := strings.TrimSpace(input.OrderNo)
	if orderNo == "" || len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order_no and items are required", ErrConfigInvalid)
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrConfigInvalid)
	}
	successURL := firstNonEmpty(input.SuccessURL, c.cfg.SuccessURL)
	cancelURL := firstNonEmpty(input.CancelURL, c.cfg.CancelURL)
	if successURL == "" || cancelURL == "" {
		return nil, fmt.Errorf("%w: success_url and cancel_url are required", ErrConfigInvalid)
	}

	orderID := strconv.FormatUint(uint64(input.OrderID), 10)
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("client_reference_id", orderNo)
	form.Set("metadata[order_no]", orderNo)
	form.Set("metadata[order_id]", orderID)
	form.Add("payment_method_types[]", "card")
	for i, item := range input.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: line item quantity must be positive", ErrConfigInvalid)
		}
		minor, err := toMinorAmount(item.UnitPrice, currency)
		if err != nil {
			return nil, err
		}
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
		form.Set(prefix+"[price_data][currency]", strings.ToLower(currency))
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(minor, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
	}

	body, status, err := c.postForm(ctx, "/v1/checkout/sessions", form)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: create checkout session status %d", ErrResponseInvalid, status)
	}
	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	if strings.TrimSpace(session.ID) == "" || strings.TrimSpace(session.URL) == "" {
		return nil, fmt.Errorf("%w: missing session id or url", ErrResponseInvalid)
	}
	return &session, nil
}

// ParseWebhook 校验 Stripe-Signature 并解析事件
func ParseWebhook(secret string, tolerance int64, signatureHeader string, body []byte, now time.Time) (*Event, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("%w: webhook_secret is required", ErrConfigInvalid)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: body is empty", ErrResponseInvalid)
	}
	if strings.TrimSpace(signatureHeader) == "" {
		return nil, fmt.Errorf("%w: Stripe-Signature is required", ErrSignatureInvalid)
	}
	timestamp, signatures, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}
	if tolerance > 0 && math.Abs(float64(now.Unix()-timestamp)) > float64(tolerance) {
		return nil, fmt.Errorf("%w: timestamp outside tolerance", ErrSignatureInvalid)
	}
	expected := ComputeSignature(secret, timestamp, body)
	matched := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, fmt.Errorf("%w: verify failed", ErrSignatureInvalid)
	}

	var raw struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object struct {
				Object        string            `json:"object"`
				ID            string            `json:"id"`
				PaymentStatus string            `json:"payment_status"`
				Currency      string            `json:"currency"`
				AmountTotal   int64             `json:"amount_total"`
				ClientRef     string            `json:"client_reference_id"`
				Metadata      map[string]string `json:"metadata"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode event failed", ErrResponseInvalid)
	}
	if strings.TrimSpace(raw.Type) == "" {
		return nil, fmt.Errorf("%w: missing event type", ErrResponseInvalid)
	}
	obj := raw.Data.Object
	event := &Event{
		ID:            strings.TrimSpace(raw.ID),
		Type:          strings.TrimSpace(raw.Type),
		PaymentStatus: strings.ToLower(strings.TrimSpace(obj.PaymentStatus)),
		Currency:      strings.ToUpper(strings.TrimSpace(obj.Currency)),
		OrderNo:       firstNonEmpty(obj.Metadata["order_no"], obj.ClientRef),
	}
	if obj.Object == "checkout.session" {
		event.SessionID = strings.TrimSpace(obj.ID)
	}
	if id, err := strconv.ParseUint(strings.TrimSpace(obj.Metadata["order_id"]), 10, 64); err == nil {
		event.OrderID = uint(id)
	}
	if obj.AmountTotal > 0 && event.Currency != "" {
		event.AmountTotal = fromMinorAmount(obj.AmountTotal, event.Currency)
	}
	return event, nil
}

// ComputeSignature 计算 v1 签名
func ComputeSignature(secret string, timestamp int64, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	_, _ = h.Write([]byte(strconv.FormatInt(timestamp, 10) + "."))
	_, _ = h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIBaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	return body, resp.StatusCode, nil
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var timestamp int64
	signatures := make([]string, 0, 1)
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		value := strings.TrimSpace(kv[1])
		switch strings.TrimSpace(kv[0]) {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil || parsed <= 0 {
				return 0, nil, fmt.Errorf("%w: invalid timestamp", ErrSignatureInvalid)
			}
			timestamp = parsed
		case "v1":
			if value != "" {
				signatures = append(signatures, strings.ToLower(value))
			}
		}
	}
	if timestamp <= 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("%w: malformed header", ErrSignatureInvalid)
	}
	return timestamp, signatures, nil
}

func toMinorAmount(amount decimal.Decimal, currency string) (int64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("%w: amount must not be negative", ErrConfigInvalid)
	}
	return amount.Shift(int32(currencyScale(currency))).Round(0).IntPart(), nil
}

func fromMinorAmount(minor int64, currency string) string {
	scale := currencyScale(currency)
	return decimal.NewFromInt(minor).Shift(int32(-scale)).StringFixed(int32(scale))
}

func currencyScale(currency string) int {
	if _, ok := zeroDecimalCurrencies[strings.ToUpper(strings.TrimSpace(currency))]; ok {
		return 0
	}
	return 2
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
