package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
)

func setupTestRouterWithRepos(repos Repositories) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.RegisterJSONFieldNames()

	r := gin.New()
	RegisterAPI(r.Group("/api"), repos)
	return r
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	return setupTestRouterWithRepos(NewGormRepositories(db))
}

// doJSON sends body (marshalled unless it is already a string) and
// returns the recorder.
func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, http.NoBody)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d, body=%s", want, w.Code, w.Body.String())
	}
}

func expectErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) validation.ErrorResponse {
	t.Helper()
	expectStatus(t, w, status)

	var resp validation.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v", err)
	}
	if resp.Code != code {
		t.Fatalf("expected code %q, got %q (message %q)", code, resp.Code, resp.Message)
	}
	return resp
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response: %v, body=%s", err, w.Body.String())
	}
	return v
}
