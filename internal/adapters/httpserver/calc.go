package httpserver

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
	"github.com/Glorc12/MebelCorpPractic/internal/usecase"
)

func calcFormFrom(get func(string) string) usecase.CalcForm {
	return usecase.CalcForm{
		ProductTypeID:  get("product_type_id"),
		MaterialTypeID: get("material_type_id"),
		Quantity:       get("quantity"),
		Param1:         get("param1"),
		Param2:         get("param2"),
		LossPercentage: get("loss_percentage"),
	}
}

func calcQuery(f usecase.CalcForm) string {
	q := url.Values{}
	q.Set("product_type_id", f.ProductTypeID)
	q.Set("material_type_id", f.MaterialTypeID)
	q.Set("quantity", f.Quantity)
	q.Set("param1", f.Param1)
	q.Set("param2", f.Param2)
	q.Set("loss_percentage", f.LossPercentage)
	return q.Encode()
}

func (s *Server) renderCalc(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	data["Active"] = "calc"
	snap, err := s.ref.Ensure(r.Context())
	if err != nil {
		alerts, _ := data["Alerts"].([]Flash)
		data["Alerts"] = append(alerts, errorAlert("Ошибка загрузки данных: ", err)...)
	}
	data["ProductTypes"] = snap.ProductTypes()
	data["MaterialTypes"] = snap.MaterialTypes()
	s.render(w, r, status, "calc.html", data)
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	s.renderCalc(w, r, http.StatusOK, map[string]any{"Form": usecase.CalcForm{}})
}

// handleCalcSubmit computes the raw material need. action=prefill only puts
// the selected material's loss into the loss field.
func (s *Server) handleCalcSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	form := calcFormFrom(r.PostFormValue)
	data := map[string]any{}
	snap, _ := s.ref.Ensure(r.Context())

	if r.PostFormValue("action") == "prefill" {
		form.LossPercentage = usecase.LossFieldValue(snap, form.MaterialTypeID)
		data["Form"] = form
		s.renderCalc(w, r, http.StatusOK, data)
		return
	}

	req, err := usecase.ParseCalcForm(form, snap)
	var res domain.CalculationResult
	if err == nil {
		res, err = usecase.Calculate(req.Input)
	}
	data["Form"] = form
	if err != nil {
		s.countCalc("invalid")
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			data["FieldError"] = ve.Field
			data["Alerts"] = []Flash{{Kind: alertError, Message: ve.Message}}
		} else {
			data["Alerts"] = []Flash{{Kind: alertError, Message: alertText(err)}}
		}
		s.renderCalc(w, r, http.StatusUnprocessableEntity, data)
		return
	}
	s.countCalc("ok")
	data["Request"] = req
	data["Result"] = res
	data["ExportURL"] = template.URL("/export/calculation.xlsx?" + calcQuery(form))
	s.renderCalc(w, r, http.StatusOK, data)
}

func (s *Server) countCalc(result string) {
	if s.metrics != nil {
		s.metrics.CalculationsTotal.WithLabelValues(result).Inc()
	}
}
