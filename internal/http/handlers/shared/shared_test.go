package shared

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp
}

func TestParseUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		raw  string
		want uint
		ok   bool
	}{
		{raw: "42", want: 42, ok: true},
		{raw: "0", ok: false},
		{raw: "-3", ok: false},
		{raw: "abc", ok: false},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Params = gin.Params{{Key: "id", Value: tc.raw}}

		got, ok := ParseUintParam(c, "id")
		if ok != tc.ok || got != tc.want {
			t.Fatalf("raw %q: want (%d,%v) got (%d,%v)", tc.raw, tc.want, tc.ok, got, ok)
		}
		if !ok {
			if resp := decodeResponse(t, w); resp.StatusCode != response.CodeBadRequest {
				t.Fatalf("raw %q: status_code want 400 got %d", tc.raw, resp.StatusCode)
			}
		}
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 20, 41)
	if p.TotalPage != 3 || p.Page != 2 || p.PageSize != 20 || p.Total != 41 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if empty := BuildPagination(1, 20, 0); empty.TotalPage != 0 {
		t.Fatalf("empty total should have zero pages, got %d", empty.TotalPage)
	}
	page, size := NormalizePagination(0, 500)
	if page != 1 || size != 100 {
		t.Fatalf("normalize want (1,100) got (%d,%d)", page, size)
	}
}

func TestRespondPasswordPolicyError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want string
	}{
		{err: &service.PasswordRuleError{Rule: service.PasswordRuleMinLength, MinLength: 10}, want: "Password must be at least 10 characters"},
		{err: fmt.Errorf("wrap: %w", &service.PasswordRuleError{Rule: service.PasswordRuleUpper}), want: "Password must contain an uppercase letter"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
		c.Request.Header.Set("X-Locale", "en-US")

		RespondPasswordPolicyError(c, tc.err)
		resp := decodeResponse(t, w)
		if resp.StatusCode != response.CodeBadRequest || resp.Msg != tc.want {
			t.Fatalf("unexpected response: %+v", resp)
		}
	}
}

func TestContextID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(CtxUserID, uint(7))
	if id, ok := ContextID(c, CtxUserID); !ok || id != 7 {
		t.Fatalf("want 7 got %d ok=%v", id, ok)
	}

	for name, value := range map[string]interface{}{"missing": nil, "zero": uint(0), "wrong type": "7"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if value != nil {
			c.Set(CtxAdminID, value)
		}
		if _, ok := ContextID(c, CtxAdminID); ok {
			t.Fatalf("%s: expected rejection", name)
		}
		if resp := decodeResponse(t, w); resp.StatusCode != response.CodeUnauthorized {
			t.Fatalf("%s: status_code want 401 got %d", name, resp.StatusCode)
		}
	}
}
