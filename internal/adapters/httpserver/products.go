package httpserver

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
	"github.com/Glorc12/MebelCorpPractic/internal/usecase"
)

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Active": "products"}
	rows, err := s.catalog.Products(r.Context())
	if err != nil {
		data["Alerts"] = errorAlert("Ошибка загрузки продукции: ", err)
	}
	data["Rows"] = rows
	s.render(w, r, http.StatusOK, "products.html", data)
}

func (s *Server) handleProductNew(w http.ResponseWriter, r *http.Request) {
	view := s.forms.Open(r.Context(), 0)
	s.renderProductForm(w, r, http.StatusOK, view)
}

func (s *Server) handleProductEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	view := s.forms.Open(r.Context(), id)
	s.renderProductForm(w, r, http.StatusOK, view)
}

func (s *Server) renderProductForm(w http.ResponseWriter, r *http.Request, status int, view usecase.FormView) {
	data := map[string]any{"Active": "products", "Form": view}
	var alerts []Flash
	snap, err := s.ref.Ensure(r.Context())
	if err != nil {
		alerts = append(alerts, errorAlert("Ошибка загрузки справочников: ", err)...)
	}
	if view.Alert != "" {
		alerts = append(alerts, Flash{Kind: view.AlertKind, Message: view.Alert})
	}
	data["Alerts"] = alerts
	data["ProductTypes"] = snap.ProductTypes()
	data["MaterialTypes"] = snap.MaterialTypes()
	s.render(w, r, status, "product_form.html", data)
}

func productFormValues(r *http.Request) map[string]string {
	values := make(map[string]string, len(domain.ProductFields))
	for _, f := range domain.ProductFields {
		values[f.String()] = r.PostFormValue(f.String())
	}
	return values
}

func (s *Server) handleProductSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	token := r.PathValue("token")
	view, _, err := s.forms.Submit(r.Context(), token, productFormValues(r))
	s.countSubmit(err)
	switch {
	case err == nil:
		msg := "Продукт успешно создан"
		if view.Editing() {
			msg = "Продукт успешно обновлён"
		}
		redirect(w, r, "/products", alertSuccess, msg)
	case errors.Is(err, usecase.ErrFormClosed):
		redirect(w, r, "/products", alertWarning, "Форма устарела, откройте её заново")
	case errors.Is(err, usecase.ErrSubmitInProgress):
		s.renderProductForm(w, r, http.StatusConflict, view)
	case errors.Is(err, usecase.ErrFormInvalid):
		s.renderProductForm(w, r, http.StatusUnprocessableEntity, view)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("product_id", view.EditingID).Msg("submit product")
		s.renderProductForm(w, r, statusFor(err), view)
	}
}

func (s *Server) countSubmit(err error) {
	if s.metrics == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrFormInvalid):
		result = "invalid"
	case errors.Is(err, usecase.ErrFormClosed):
		result = "closed"
	case errors.Is(err, usecase.ErrSubmitInProgress):
		result = "busy"
	default:
		result = "api_error"
	}
	s.metrics.FormSubmits.WithLabelValues(result).Inc()
}

func (s *Server) handleProductCancel(w http.ResponseWriter, r *http.Request) {
	s.forms.Cancel(r.PathValue("token"))
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// handleProductField stores one edited value and answers with the message the
// field would get on submit.
func (s *Server) handleProductField(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "form"})
		return
	}
	name, value := r.PostFormValue("field"), r.PostFormValue("value")
	if _, err := s.forms.EditField(r.PathValue("token"), name, value); err != nil {
		writeJSON(w, http.StatusGone, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"field":   name,
		"message": usecase.ValidateFieldByName(name, value),
	})
}

func (s *Server) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.catalog.DeleteProduct(r.Context(), id); err != nil {
		redirect(w, r, "/products", alertError, "Ошибка удаления: "+err.Error())
		return
	}
	redirect(w, r, "/products", alertSuccess, "Продукт успешно удалён")
}

func (s *Server) handleProductWorkshops(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := map[string]any{"Active": "products"}
	routing, err := s.catalog.WorkshopsForProduct(r.Context(), id)
	if err != nil {
		data["Alerts"] = errorAlert("Ошибка загрузки цехов: ", err)
		routing = usecase.ProductRouting{ProductID: id}
	}
	data["Routing"] = routing
	s.render(w, r, http.StatusOK, "product_workshops.html", data)
}
