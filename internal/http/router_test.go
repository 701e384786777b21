package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter_RegistersRoutes(t *testing.T) {
	env := setupTestEnv(t)
	router := NewRouter(env.routerConfig())

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/ping", http.StatusOK},
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/books", http.StatusOK},
		{"GET", "/api/books/Sahih%20Muslim/chapters", http.StatusOK},
		{"GET", "/api/books/Sahih%20Muslim/chapters/1/hadiths", http.StatusOK},
		{"GET", "/api/hadiths/Sahih%20Muslim/1", http.StatusOK},
		{"GET", "/api/hadiths/Sahih%20Muslim/1/chain", http.StatusOK},
		{"GET", "/api/narrators/20005", http.StatusOK},
		{"GET", "/api/search?q=Aisha", http.StatusOK},
		{"GET", "/api/random", http.StatusOK},
		{"GET", "/api/saved", http.StatusOK},
		{"GET", "/api/saved/count", http.StatusOK},
		{"GET", "/api/saved/Sahih%20Muslim_1", http.StatusOK},
		{"GET", "/api/saved/Sahih%20Muslim_1/history", http.StatusOK},
		{"POST", "/api/saved/cleanup", http.StatusOK},
		{"GET", "/api/audit", http.StatusOK},
		{"GET", "/api/settings/cleanup", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := performRequest(router, tt.method, tt.path)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestNewRouter_ToggleRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	router := NewRouter(env.routerConfig())

	w := performRequest(router, "POST", "/api/saved/Sahih%20Muslim%20_%201/toggle")
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "GET", "/api/hadiths/Sahih%20Muslim/1")
	require.Equal(t, http.StatusOK, w.Code)

	var view HadithView
	decodeBody(t, w, &view)
	assert.True(t, view.Saved)
}

func TestNewRouter_OptionalRoutes(t *testing.T) {
	env := setupTestEnv(t)
	cfg := env.routerConfig()
	cfg.AuditReader = nil
	cfg.CleanupSettings = nil
	router := NewRouter(cfg)

	assert.Equal(t, http.StatusNotFound, performRequest(router, "GET", "/api/audit").Code)
	assert.Equal(t, http.StatusNotFound, performRequest(router, "GET", "/api/settings/cleanup").Code)
	assert.Equal(t, http.StatusNotFound, performRequest(router, "POST", "/api/tasks/purge_audit/run").Code)
}
