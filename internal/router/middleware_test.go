package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront-next/internal/config"

	"github.com/gin-gonic/gin"
)

// serveThrough 挂上中间件后请求 /probe，返回响应与业务码
func serveThrough(t *testing.T, req *http.Request, middlewares ...gin.HandlerFunc) (*httptest.ResponseRecorder, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares...)
	r.Any("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "request_id": getRequestID(c)})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.Len() == 0 {
		return w, -1
	}
	var body struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v body=%s", err, w.Body.String())
	}
	return w, body.StatusCode
}

func TestResolveAllowedOrigin(t *testing.T) {
	cases := []struct {
		name        string
		origin      string
		allowed     []string
		credentials bool
		want        string
	}{
		{"wildcard", "https://shop.test", []string{"*"}, false, "*"},
		{"wildcard echoes with credentials", "https://shop.test", []string{"*"}, true, "https://shop.test"},
		{"listed", "https://admin.shop.test", []string{"https://shop.test", "https://admin.shop.test"}, false, "https://admin.shop.test"},
		{"not listed", "https://evil.test", []string{"https://shop.test"}, false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveAllowedOrigin(tc.origin, tc.allowed, tc.credentials); got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/probe", nil)
	req.Header.Set("Origin", "https://shop.test")
	w, _ := serveThrough(t, req, CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://shop.test"}, MaxAge: 600}))

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight should short-circuit with 204, got %d", w.Code)
	}
	h := w.Header()
	if h.Get("Access-Control-Allow-Origin") != "https://shop.test" || h.Get("Access-Control-Max-Age") != "600" {
		t.Fatalf("unexpected cors headers: %v", h)
	}
	if h.Get("Access-Control-Expose-Headers") != "X-Request-ID, Retry-After" {
		t.Fatalf("unexpected expose headers: %s", h.Get("Access-Control-Expose-Headers"))
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(requestIDHeader, "checkout-42")
	w, _ := serveThrough(t, req, RequestIDMiddleware())
	if w.Header().Get(requestIDHeader) != "checkout-42" || !json.Valid(w.Body.Bytes()) {
		t.Fatalf("incoming request id should be echoed, got %q", w.Header().Get(requestIDHeader))
	}
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["request_id"] != "checkout-42" {
		t.Fatalf("request id should be on the context, got %v", body["request_id"])
	}

	w, _ = serveThrough(t, httptest.NewRequest(http.MethodGet, "/probe", nil), RequestIDMiddleware())
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("a request id should be generated")
	}
}

func TestAuthMiddlewaresRejectBeforeLookup(t *testing.T) {
	cases := []struct {
		name   string
		mw     gin.HandlerFunc
		header string
	}{
		{"admin without secret", JWTAuthMiddleware("", nil), "Bearer x"},
		{"admin without header", JWTAuthMiddleware("secret", nil), ""},
		{"user with wrong scheme", UserJWTAuthMiddleware("user-secret", nil), "Token abc"},
		{"user with empty bearer", UserJWTAuthMiddleware("user-secret", nil), "Bearer "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w, code := serveThrough(t, req, tc.mw)
			if w.Code != http.StatusOK || code != 401 {
				t.Fatalf("want http 200 with status_code 401, got http=%d code=%d", w.Code, code)
			}
		})
	}
}

func TestIsActiveUserStatus(t *testing.T) {
	for status, want := range map[string]bool{" Active ": true, "active": true, "disabled": false, "": false} {
		if got := isActiveUserStatus(status); got != want {
			t.Fatalf("isActiveUserStatus(%q) = %v", status, got)
		}
	}
}
