package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/choropleth-cli/internal/config"
)

func testRouter() http.Handler {
	return newRouter(config.ServerConfig{Port: 8080, RateLimit: 100, RateBurst: 100})
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestHealthEndpoint(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestSchemesEndpoint(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodGet, "/v1/schemes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	schemes, ok := body["schemes"].([]any)
	require.True(t, ok)
	assert.Len(t, schemes, 8)

	methods, ok := body["methods"].([]any)
	require.True(t, ok)
	assert.Len(t, methods, 5)
}

func TestPaletteEndpoint(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodPost, "/v1/palette",
		`{"scheme": "Blue", "classes": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	colors, ok := body["colors"].([]any)
	require.True(t, ok)
	require.Len(t, colors, 3)
	assert.Equal(t, "#f7fbff", colors[0])
}

func TestPaletteEndpointCustomScheme(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodPost, "/v1/palette",
		`{"scheme": "Custom", "classes": 2, "min_color": "#000000", "max_color": "#ffffff"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	colors := body["colors"].([]any)
	assert.Equal(t, []any{"#000000", "#ffffff"}, colors)
}

func TestPaletteEndpointRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{`},
		{name: "zero classes", body: `{"scheme": "Blue", "classes": 0}`},
		{name: "bad min color", body: `{"scheme": "Custom", "classes": 2, "min_color": "red"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doJSON(t, testRouter(), http.MethodPost, "/v1/palette", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestClassifyEndpoint(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodPost, "/v1/classify",
		`{"values": [1, 2, 3, 4, 5, 6, 7, 8, 9, 10], "classification_method": "equal_intervals", "num_classes": 4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cls, ok := body["classification"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "equal_intervals", cls["method"])
	assert.Equal(t, 4.0, cls["classes"])
	assert.Equal(t, []any{1.0, 3.25, 5.5, 7.75, 10.0}, cls["breaks"])

	sym, ok := body["symbology"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, sym["classes"], 4)
}

func TestClassifyEndpointScreensValues(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodPost, "/v1/classify",
		`{"values": [1, 2, 3], "num_classes": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cls := body["classification"].(map[string]any)
	assert.Equal(t, 3.0, cls["valid_count"])
}

func TestClassifyEndpointRejectsEmpty(t *testing.T) {
	rec, body := doJSON(t, testRouter(), http.MethodPost, "/v1/classify", `{"values": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, body["error"])
}

func TestClassifyEndpointRejectsBadStyle(t *testing.T) {
	rec, _ := doJSON(t, testRouter(), http.MethodPost, "/v1/classify",
		`{"values": [1, 2, 3], "classification_method": "fisher"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestClassifyEndpointRateLimited(t *testing.T) {
	handler := newRouter(config.ServerConfig{Port: 8080, RateLimit: 1, RateBurst: 1})

	rec, _ := doJSON(t, handler, http.MethodPost, "/v1/classify", `{"values": [1, 2, 3]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, handler, http.MethodPost, "/v1/classify", `{"values": [1, 2, 3]}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, body["error"])
}
