package app

import (
	"context"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Glorc12/MebelCorpPractic/internal/adapters/apiclient"
	"github.com/Glorc12/MebelCorpPractic/internal/adapters/httpserver"
	"github.com/Glorc12/MebelCorpPractic/internal/config"
	"github.com/Glorc12/MebelCorpPractic/internal/domain"
	"github.com/Glorc12/MebelCorpPractic/internal/metrics"
	"github.com/Glorc12/MebelCorpPractic/internal/usecase"
	"github.com/Glorc12/MebelCorpPractic/internal/views"
)

type App struct {
	Config    config.Config
	Tmpl      *template.Template
	API       domain.CatalogAPI
	Ref       *usecase.RefData
	CatalogUC *usecase.CatalogUC
	FormUC    *usecase.ProductFormUC
	Metrics   *metrics.Metrics
}

func NewApp(cfg config.Config) (*App, error) {
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New("mebeladmin")
	}

	client := apiclient.New(cfg.API.BaseURL, apiclient.Options{
		Timeout:            cfg.API.Timeout,
		BreakerFailures:    cfg.Breaker.Failures,
		BreakerOpenTimeout: cfg.Breaker.OpenTimeout,
		Metrics:            m,
	})

	tmpl, err := views.Parse(cfg.IsDev())
	if err != nil {
		return nil, err
	}

	return build(cfg, client, tmpl, m), nil
}

func build(cfg config.Config, api domain.CatalogAPI, tmpl *template.Template, m *metrics.Metrics) *App {
	ref := usecase.NewRefData(api)
	return &App{
		Config: cfg,
		Tmpl:   tmpl,
		API:    api,
		Ref:    ref,
		CatalogUC: &usecase.CatalogUC{
			API:       api,
			Ref:       ref,
			Validator: usecase.NewValidator(),
		},
		FormUC: &usecase.ProductFormUC{
			Products: api,
			Forms:    usecase.NewFormStore(cfg.Forms.TTL),
		},
		Metrics: m,
	}
}

// Warmup loads the reference data once. The panel still starts when the
// backend is down; pages retry on demand.
func (a *App) Warmup(ctx context.Context) {
	snap, err := a.Ref.Reload(ctx)
	if err != nil {
		log.Warn().Err(err).Str("api", a.Config.API.BaseURL).Msg("reference data not loaded")
		return
	}
	log.Info().
		Int("product_types", len(snap.ProductTypes())).
		Int("material_types", len(snap.MaterialTypes())).
		Msg("reference data loaded")
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Tmpl, a.CatalogUC, a.FormUC, a.Ref, a.Metrics)
}
