package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return body
}

func TestErrorCarriesRequestID(t *testing.T) {
	c, w := newContext()
	c.Set("request_id", "req-9")

	Error(c, CodeNotFound, "missing")
	if w.Code != http.StatusOK {
		t.Fatalf("http status should stay 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["status_code"].(float64) != CodeNotFound || body["msg"] != "missing" {
		t.Fatalf("unexpected body: %v", body)
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok || data["request_id"] != "req-9" {
		t.Fatalf("request_id missing: %v", body["data"])
	}
}

func TestErrorWithoutRequestID(t *testing.T) {
	c, w := newContext()

	Forbidden(c, "no")
	if body := decode(t, w); body["data"] != nil || body["status_code"].(float64) != CodeForbidden {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestTooManyRequests(t *testing.T) {
	c, w := newContext()

	TooManyRequests(c, "slow down", 0)
	if w.Header().Get("Retry-After") != "1" {
		t.Fatalf("retry-after should floor at 1, got %q", w.Header().Get("Retry-After"))
	}
	body := decode(t, w)
	data := body["data"].(map[string]interface{})
	if body["status_code"].(float64) != CodeTooManyRequests || data["retry_after"].(float64) != 1 {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestSuccessWithPage(t *testing.T) {
	c, w := newContext()

	SuccessWithPage(c, []int{1, 2}, Pagination{Page: 2, PageSize: 2, Total: 5, TotalPage: 3})
	body := decode(t, w)
	page := body["pagination"].(map[string]interface{})
	if body["status_code"].(float64) != CodeOK || page["total_page"].(float64) != 3 {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestAppError(t *testing.T) {
	cause := errors.New("db down")
	appErr := NewAppError(CodeInternal, "error.order_fetch_failed", cause)
	if !errors.Is(appErr, cause) {
		t.Fatalf("app error should unwrap to cause")
	}
	if !appErr.Upstream() {
		t.Fatalf("5xx should be upstream")
	}
	if NewAppError(CodeBadRequest, "error.bad_request", nil).Upstream() {
		t.Fatalf("4xx should not be upstream")
	}
	if got := appErr.Error(); got != "error.order_fetch_failed: db down" {
		t.Fatalf("unexpected message: %s", got)
	}
}
