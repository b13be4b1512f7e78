package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
	"github.com/Glorc12/MebelCorpPractic/internal/metrics"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opt Options) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", opt), srv
}

func TestClient_ListProducts(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = io.WriteString(w, `[{"product_id":1,"article_number":8758385,"product_name":"Кресло","product_type":"Кресла","minimum_partner_price":4456.9,"manufacturing_time_hours":3.2}]`)
	}, Options{})

	list, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(8758385), list[0].ArticleNumber)
	assert.Equal(t, "Кресла", *list[0].ProductTypeName)
	assert.Nil(t, list[0].MaterialTypeName)
	require.NotNil(t, list[0].ManufacturingHours)
	assert.Equal(t, 3.2, *list[0].ManufacturingHours)
}

func TestClient_CreateProductSendsJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Стол", body["product_name"])
		assert.Equal(t, float64(12), body["article_number"])
		assert.Equal(t, float64(3), body["material_type_id"])
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"product_id":55,"article_number":12,"product_name":"Стол"}`)
	}, Options{})

	p, err := c.CreateProduct(context.Background(), domain.ProductInput{ArticleNumber: 12, Name: "Стол", ProductTypeID: 1, MaterialTypeID: 3, MinimumPartnerPrice: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(55), p.ID)
}

func TestClient_Paths(t *testing.T) {
	var (
		mu  sync.Mutex
		got []string
	)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.Method+" "+r.URL.Path)
		mu.Unlock()
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, `[]`)
			return
		}
		_, _ = io.WriteString(w, `{}`)
	}, Options{})
	ctx := context.Background()

	_, err := c.ListWorkshopsForProduct(ctx, 9)
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, domain.ResourceWorkshops, 5))
	require.NoError(t, c.DeleteProduct(ctx, 7))
	_, err = c.UpdateProduct(ctx, 7, domain.ProductInput{})
	require.NoError(t, err)
	require.NoError(t, c.CreateProductWorkshop(ctx, domain.ProductWorkshopInput{ProductID: 1, WorkshopID: 2, ManufacturingHours: 1}))
	_, err = c.ListMaterialTypes(ctx)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET /api/workshops/product/9",
		"DELETE /api/workshops/5",
		"DELETE /api/products/7",
		"PUT /api/products/7",
		"POST /api/product-workshops",
		"GET /api/material-types",
	}, got)
}

func TestClient_ErrorDecoding(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		msg    string
		code   string
	}{
		{"error key", 400, `{"error":"Название обязательно","message":"ignored"}`, "Название обязательно", ""},
		{"message key", 400, `{"message":"Неверные данные"}`, "Неверные данные", ""},
		{"code", 409, `{"error":"dup","code":"duplicate_link"}`, "dup", "duplicate_link"},
		{"not json", 500, `<html>oops</html>`, "HTTP 500", ""},
		{"empty", 502, ``, "HTTP 502", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, Options{})

			err := c.CreateWorkshop(context.Background(), domain.WorkshopInput{Name: "a", Type: "b", StaffCount: 1})
			var apiErr *domain.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.msg, apiErr.Error())
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestClient_StatusSentinels(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusNotFound)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
		_, _ = io.WriteString(w, `{"error":"x"}`)
	}, Options{})

	_, err := c.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	status.Store(http.StatusConflict)
	err = c.CreateProductWorkshop(context.Background(), domain.ProductWorkshopInput{})
	assert.ErrorIs(t, err, domain.ErrDuplicateLink)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/api"
	srv.Close()

	c := New(base, Options{Timeout: time.Second})
	_, err := c.ListWorkshops(context.Background())
	var netErr *domain.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "GET /workshops", netErr.Op)
}

func TestClient_InvalidJSONAnswer(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"not":"a list"`)
	}, Options{})
	_, err := c.ListProductTypes(context.Background())
	require.Error(t, err)
	var apiErr *domain.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, Options{BreakerFailures: 2, BreakerOpenTimeout: time.Minute})

	for i := 0; i < 2; i++ {
		_, err := c.ListWorkshops(context.Background())
		var apiErr *domain.APIError
		require.True(t, errors.As(err, &apiErr))
	}
	_, err := c.ListWorkshops(context.Background())
	var netErr *domain.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), hits.Load(), "open breaker short-circuits")
}

func TestClient_BreakerIgnoresClientErrors(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}, Options{BreakerFailures: 2})

	for i := 0; i < 5; i++ {
		err := c.CreateMaterialType(context.Background(), domain.MaterialTypeInput{Name: "x"})
		var apiErr *domain.APIError
		require.True(t, errors.As(err, &apiErr))
	}
	assert.Equal(t, int32(5), hits.Load())
}

func TestClient_BreakerIgnoresAbandonedRequests(t *testing.T) {
	var slow atomic.Bool
	slow.Store(true)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if slow.Load() {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}, Options{BreakerFailures: 2, BreakerOpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		_, err := c.ListProducts(ctx)
		cancel()
		var netErr *domain.NetworkError
		require.True(t, errors.As(err, &netErr), "%v", err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListProducts(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	slow.Store(false)
	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestClient_Metrics(t *testing.T) {
	m := metrics.New("test")
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}, Options{Metrics: m})

	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Error(t, c.Delete(context.Background(), domain.ResourceMaterialTypes, 3))

	body := scrape(t, m)
	assert.Contains(t, body, `test_api_requests_total{endpoint="/products",method="GET",outcome="ok"} 1`)
	assert.Contains(t, body, `test_api_requests_total{endpoint="/material-types/{id}",method="DELETE",outcome="4xx"} 1`)
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestCountsAsSuccess(t *testing.T) {
	assert.True(t, countsAsSuccess(nil))
	assert.True(t, countsAsSuccess(&domain.APIError{Status: 422}))
	assert.False(t, countsAsSuccess(&domain.APIError{Status: 503}))
	assert.False(t, countsAsSuccess(&domain.NetworkError{Op: "GET /", Err: errors.New("refused")}))
	assert.False(t, countsAsSuccess(errors.New("decode")))
	assert.True(t, countsAsSuccess(&abandonedError{err: &domain.NetworkError{Op: "GET /", Err: context.Canceled}}))
}
