package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
	"github.com/Glorc12/MebelCorpPractic/internal/metrics"
	"github.com/Glorc12/MebelCorpPractic/internal/usecase"
)

type Server struct {
	mux     *http.ServeMux
	tmpl    *template.Template
	catalog *usecase.CatalogUC
	forms   *usecase.ProductFormUC
	ref     *usecase.RefData
	metrics *metrics.Metrics
}

// New builds the admin panel handler. m may be nil when metrics are off.
func New(t *template.Template, catalog *usecase.CatalogUC, forms *usecase.ProductFormUC, ref *usecase.RefData, m *metrics.Metrics) http.Handler {
	s := &Server{tmpl: t, catalog: catalog, forms: forms, ref: ref, metrics: m, mux: http.NewServeMux()}
	s.routes()
	return Chain(s.mux,
		Recovery,
		Gzip,
		Logging(m),
		RequestID,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}

	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/products", http.StatusFound)
	})

	s.mux.HandleFunc("GET /products", s.handleProducts)
	s.mux.HandleFunc("GET /products/new", s.handleProductNew)
	s.mux.HandleFunc("GET /products/{id}/edit", s.handleProductEdit)
	s.mux.HandleFunc("POST /products/{id}/delete", s.handleProductDelete)
	s.mux.HandleFunc("GET /products/{id}/workshops", s.handleProductWorkshops)
	s.mux.HandleFunc("POST /product-form/{token}", s.handleProductSubmit)
	s.mux.HandleFunc("POST /product-form/{token}/cancel", s.handleProductCancel)
	s.mux.HandleFunc("POST /product-form/{token}/field", s.handleProductField)

	s.mux.HandleFunc("GET /workshops", s.handleWorkshops)
	s.mux.HandleFunc("POST /workshops", s.handleWorkshopCreate)

	s.mux.HandleFunc("GET /links", s.handleLinks)
	s.mux.HandleFunc("POST /links", s.handleLinkCreate)

	s.mux.HandleFunc("GET /product-types", s.handleProductTypes)
	s.mux.HandleFunc("POST /product-types", s.handleProductTypeCreate)
	s.mux.HandleFunc("GET /material-types", s.handleMaterialTypes)
	s.mux.HandleFunc("POST /material-types", s.handleMaterialTypeCreate)

	s.mux.HandleFunc("GET /calc", s.handleCalc)
	s.mux.HandleFunc("POST /calc", s.handleCalcSubmit)

	s.mux.HandleFunc("GET /tables/{resource}", s.handleTable)
	s.mux.HandleFunc("POST /tables/{resource}/{id}/delete", s.handleTableDelete)

	s.mux.HandleFunc("GET /export/products.xlsx", s.handleExportProducts)
	s.mux.HandleFunc("GET /export/workshops.xlsx", s.handleExportWorkshops)
	s.mux.HandleFunc("GET /export/links.xlsx", s.handleExportLinks)
	s.mux.HandleFunc("GET /export/calculation.xlsx", s.handleExportCalculation)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.ref.Current()
	body := map[string]any{
		"status":           "ok",
		"reference_loaded": snap.Loaded(),
	}
	if snap.Loaded() {
		body["reference_loaded_at"] = snap.LoadedAt().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, body)
}

// render executes a page template. Pending flash alerts from the cookie are
// shown before the ones the handler put in data["Alerts"].
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	alerts, _ := data["Alerts"].([]Flash)
	if f := popFlash(w, r); f != nil {
		alerts = append([]Flash{*f}, alerts...)
	}
	data["Alerts"] = alerts
	data["Year"] = time.Now().Year()
	data["RequestID"] = requestIDFrom(r.Context())

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("tpl", name).Msg("render")
		http.Error(w, "tpl", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

// redirect answers a POST with 303 and an alert for the next page.
func redirect(w http.ResponseWriter, r *http.Request, to, kind, msg string) {
	if msg != "" {
		setFlash(w, kind, msg)
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// alertText is how an API or network failure reads in an alert.
func alertText(err error) string {
	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		return "Ошибка сети: " + netErr.Err.Error()
	}
	return "Ошибка: " + err.Error()
}

func errorAlert(prefix string, err error) []Flash {
	return []Flash{{Kind: alertError, Message: prefix + err.Error()}}
}

// statusFor maps a failed backend call to the status of the page that
// reports it.
func statusFor(err error) int {
	var in *usecase.InputError
	var apiErr *domain.APIError
	switch {
	case errors.As(err, &in):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDuplicateLink):
		return http.StatusConflict
	case errors.As(err, &apiErr) && apiErr.Status < 500:
		return apiErr.Status
	}
	return http.StatusBadGateway
}

func formFloat(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(r.PostFormValue(name)), ",", ".", 1), 64)
	if err != nil {
		return 0
	}
	return v
}

func formInt(r *http.Request, name string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue(name)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
