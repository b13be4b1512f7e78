package httpserver

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Glorc12/MebelCorpPractic/internal/adapters/xlsx"
	"github.com/Glorc12/MebelCorpPractic/internal/usecase"
)

// sendWorkbook writes the sheets as an attachment. The workbook is built in
// memory first so a failure can still become a 500.
func sendWorkbook(w http.ResponseWriter, r *http.Request, filename string, sheets ...xlsx.Sheet) {
	var buf bytes.Buffer
	if err := xlsx.Write(&buf, sheets...); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("file", filename).Msg("xlsx export")
		http.Error(w, "export", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleExportProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := s.catalog.Products(r.Context())
	if err != nil {
		http.Error(w, alertText(err), statusFor(err))
		return
	}
	sendWorkbook(w, r, "products.xlsx", xlsx.Products(rows))
}

func (s *Server) handleExportWorkshops(w http.ResponseWriter, r *http.Request) {
	list, err := s.catalog.Workshops(r.Context())
	if err != nil {
		http.Error(w, alertText(err), statusFor(err))
		return
	}
	sendWorkbook(w, r, "workshops.xlsx", xlsx.Workshops(list))
}

func (s *Server) handleExportLinks(w http.ResponseWriter, r *http.Request) {
	list, err := s.catalog.Links(r.Context())
	if err != nil {
		http.Error(w, alertText(err), statusFor(err))
		return
	}
	sendWorkbook(w, r, "links.xlsx", xlsx.Links(list))
}

// handleExportCalculation recomputes from the query so the export needs no
// server-side state.
func (s *Server) handleExportCalculation(w http.ResponseWriter, r *http.Request) {
	form := calcFormFrom(r.URL.Query().Get)
	snap, _ := s.ref.Ensure(r.Context())
	req, err := usecase.ParseCalcForm(form, snap)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := usecase.Calculate(req.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sendWorkbook(w, r, "calculation.xlsx", xlsx.Calculation(req, res))
}
