package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Glorc12/MebelCorpPractic/internal/config"
)

func backend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/product-types", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"product_type_id":1,"product_type_name":"Кресла","product_type_coefficient":1.5}]`)
	})
	mux.HandleFunc("GET /api/material-types", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"material_type_id":2,"material_type_name":"Дуб","raw_material_loss_percent":0.8}]`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) config.Config {
	var cfg config.Config
	cfg.App.Env = "production"
	cfg.API.BaseURL = baseURL
	cfg.API.Timeout = 2 * time.Second
	cfg.Metrics.Enabled = true
	cfg.Forms.TTL = time.Minute
	return cfg
}

func TestNewApp_WarmupAndServe(t *testing.T) {
	srv := backend(t)
	a, err := NewApp(testConfig(srv.URL + "/api"))
	require.NoError(t, err)
	require.NotNil(t, a.Metrics)

	a.Warmup(context.Background())
	snap := a.Ref.Current()
	require.True(t, snap.Loaded())
	mt, ok := snap.MaterialType(2)
	require.True(t, ok)
	assert.Equal(t, 0.8, mt.Loss())
	pt, ok := snap.ProductType(1)
	require.True(t, ok)
	assert.Equal(t, 1.5, pt.Coefficient)

	h := a.HTTPHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reference_loaded":true`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `mebeladmin_api_requests_total{endpoint="/product-types",method="GET",outcome="ok"} 1`)
}

func TestWarmup_BackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/api"
	srv.Close()

	cfg := testConfig(base)
	cfg.Metrics.Enabled = false
	a, err := NewApp(cfg)
	require.NoError(t, err)
	assert.Nil(t, a.Metrics)

	a.Warmup(context.Background())
	assert.False(t, a.Ref.Current().Loaded())

	rec := httptest.NewRecorder()
	a.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
