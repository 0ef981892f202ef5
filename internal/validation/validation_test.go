package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nested struct {
	ID uint `json:"id" binding:"required,gt=0"`
}

type payload struct {
	FirstName string  `json:"firstName" binding:"required,max=5"`
	Rating    int     `json:"rating" binding:"required,min=1,max=5"`
	Country   *nested `json:"country" binding:"required"`
}

func run(t *testing.T, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	RegisterJSONFieldNames()

	var ok bool
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var p payload
		ok = BindAndValidateJSON(c, &p)
		if ok {
			c.Status(http.StatusNoContent)
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, ok
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBindAndValidateJSON_Valid(t *testing.T) {
	w, ok := run(t, `{"firstName":"Jane","rating":3,"country":{"id":1}}`)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestBindAndValidateJSON_MissingBody(t *testing.T) {
	w, ok := run(t, "")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeInvalidRequest, decode(t, w).Code)
}

func TestBindAndValidateJSON_NullBody(t *testing.T) {
	w, ok := run(t, "null")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBindAndValidateJSON_Malformed(t *testing.T) {
	w, ok := run(t, `{"firstName":`)
	assert.False(t, ok)

	resp := decode(t, w)
	assert.Equal(t, CodeInvalidRequest, resp.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "syntax", resp.Errors[0].Rule)
}

func TestBindAndValidateJSON_FieldErrorsUseJSONNames(t *testing.T) {
	w, ok := run(t, `{"firstName":"Jonathan","rating":9,"country":{"id":0}}`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w)
	assert.Equal(t, CodeValidationFailed, resp.Code)

	byField := map[string]FieldError{}
	for _, fe := range resp.Errors {
		byField[fe.Field] = fe
	}

	require.Contains(t, byField, "firstName")
	assert.Equal(t, "max", byField["firstName"].Rule)
	assert.Equal(t, "firstName must be at most 5 characters", byField["firstName"].Message)

	require.Contains(t, byField, "rating")
	assert.Equal(t, "rating must be at most 5", byField["rating"].Message)

	require.Contains(t, byField, "country.id")
}

type trimmedPayload struct {
	Name string `json:"name" binding:"required,min=3,max=5"`
}

func (p *trimmedPayload) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
}

func TestBindAndValidateJSON_NormalizesBeforeValidating(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterJSONFieldNames()

	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantRule string
		wantName string
	}{
		{"blank becomes missing", `{"name":"   "}`, false, "required", ""},
		{"too short once trimmed", `{"name":" ab "}`, false, "min", ""},
		{"padding does not count toward max", `{"name":"\t Peru \n"}`, true, "", "Peru"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p trimmedPayload
			var ok bool

			r := gin.New()
			r.POST("/", func(c *gin.Context) {
				ok = BindAndValidateJSON(c, &p)
				if ok {
					c.Status(http.StatusNoContent)
				}
			})

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, p.Name)
				return
			}

			resp := decode(t, w)
			assert.Equal(t, CodeValidationFailed, resp.Code)
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, "name", resp.Errors[0].Field)
			assert.Equal(t, tt.wantRule, resp.Errors[0].Rule)
		})
	}
}
