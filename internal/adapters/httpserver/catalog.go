package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
	"github.com/Glorc12/MebelCorpPractic/internal/usecase"
)

// addFormFailure fills data for a page whose add form was rejected.
func addFormFailure(data map[string]any, err error) int {
	var in *usecase.InputError
	if errors.As(err, &in) {
		data["Errors"] = in.Fields
		data["Alerts"] = []Flash{{Kind: alertError, Message: "Заполни все поля!"}}
		return http.StatusUnprocessableEntity
	}
	data["Alerts"] = []Flash{{Kind: alertError, Message: alertText(err)}}
	return statusFor(err)
}

func formValues(r *http.Request, names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = r.PostFormValue(n)
	}
	return out
}

// --- Цеха ---

func (s *Server) workshopsPage(r *http.Request, data map[string]any) {
	data["Active"] = "workshops"
	list, err := s.catalog.Workshops(r.Context())
	if err != nil {
		alerts, _ := data["Alerts"].([]Flash)
		data["Alerts"] = append(alerts, errorAlert("Ошибка загрузки цехов: ", err)...)
	}
	data["Workshops"] = list
}

func (s *Server) handleWorkshops(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	s.workshopsPage(r, data)
	s.render(w, r, http.StatusOK, "workshops.html", data)
}

func (s *Server) handleWorkshopCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	in := domain.WorkshopInput{
		Name:       r.PostFormValue("workshop_name"),
		Type:       r.PostFormValue("workshop_type"),
		StaffCount: int(formInt(r, "staff_count")),
	}
	if err := s.catalog.CreateWorkshop(r.Context(), in); err != nil {
		data := map[string]any{"Values": formValues(r, "workshop_name", "workshop_type", "staff_count")}
		status := addFormFailure(data, err)
		s.workshopsPage(r, data)
		s.render(w, r, status, "workshops.html", data)
		return
	}
	redirect(w, r, "/workshops", alertSuccess, "Мастерская добавлена!")
}

// --- Маршруты ---

func (s *Server) linksPage(r *http.Request, data map[string]any) {
	data["Active"] = "links"
	var alerts []Flash
	if a, ok := data["Alerts"].([]Flash); ok {
		alerts = a
	}
	links, err := s.catalog.Links(r.Context())
	if err != nil {
		alerts = append(alerts, errorAlert("Ошибка загрузки маршрутов: ", err)...)
	}
	products, workshops, err := s.catalog.LinkOptions(r.Context())
	if err != nil {
		alerts = append(alerts, errorAlert("Ошибка загрузки формы: ", err)...)
	}
	data["Alerts"] = alerts
	data["Links"] = links
	data["Products"] = products
	data["Workshops"] = workshops
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	s.linksPage(r, data)
	s.render(w, r, http.StatusOK, "links.html", data)
}

func (s *Server) handleLinkCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	in := domain.ProductWorkshopInput{
		ProductID:          formInt(r, "product_id"),
		WorkshopID:         formInt(r, "workshop_id"),
		ManufacturingHours: formFloat(r, "manufacturing_time_hours"),
	}
	err := s.catalog.LinkProductWorkshop(r.Context(), in)
	switch {
	case err == nil:
		redirect(w, r, "/links", alertSuccess, "Связь добавлена!")
	case errors.Is(err, domain.ErrDuplicateLink):
		redirect(w, r, "/links", alertError, "Эта связь уже существует!")
	default:
		data := map[string]any{"Values": formValues(r, "product_id", "workshop_id", "manufacturing_time_hours")}
		status := addFormFailure(data, err)
		s.linksPage(r, data)
		s.render(w, r, status, "links.html", data)
	}
}

// --- Справочники ---

func (s *Server) productTypesPage(r *http.Request, data map[string]any) {
	data["Active"] = "product-types"
	list, err := s.catalog.ProductTypes(r.Context())
	if err != nil {
		alerts, _ := data["Alerts"].([]Flash)
		data["Alerts"] = append(alerts, errorAlert("Ошибка загрузки типов продукции: ", err)...)
	}
	data["ProductTypes"] = list
}

func (s *Server) handleProductTypes(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	s.productTypesPage(r, data)
	s.render(w, r, http.StatusOK, "product_types.html", data)
}

func (s *Server) handleProductTypeCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	in := domain.ProductTypeInput{
		Name:        r.PostFormValue("product_type_name"),
		Coefficient: formFloat(r, "coefficient"),
	}
	if err := s.catalog.CreateProductType(r.Context(), in); err != nil {
		data := map[string]any{"Values": formValues(r, "product_type_name", "coefficient")}
		status := addFormFailure(data, err)
		s.productTypesPage(r, data)
		s.render(w, r, status, "product_types.html", data)
		return
	}
	redirect(w, r, "/product-types", alertSuccess, "Тип продукции добавлен!")
}

func (s *Server) materialTypesPage(r *http.Request, data map[string]any) {
	data["Active"] = "material-types"
	list, err := s.catalog.MaterialTypes(r.Context())
	if err != nil {
		alerts, _ := data["Alerts"].([]Flash)
		data["Alerts"] = append(alerts, errorAlert("Ошибка загрузки типов материалов: ", err)...)
	}
	data["MaterialTypes"] = list
}

func (s *Server) handleMaterialTypes(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	s.materialTypesPage(r, data)
	s.render(w, r, http.StatusOK, "material_types.html", data)
}

func (s *Server) handleMaterialTypeCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	in := domain.MaterialTypeInput{
		Name:           r.PostFormValue("material_type_name"),
		LossPercentage: formFloat(r, "loss_percentage"),
	}
	if err := s.catalog.CreateMaterialType(r.Context(), in); err != nil {
		data := map[string]any{"Values": formValues(r, "material_type_name", "loss_percentage")}
		status := addFormFailure(data, err)
		s.materialTypesPage(r, data)
		s.render(w, r, status, "material_types.html", data)
		return
	}
	redirect(w, r, "/material-types", alertSuccess, "Тип материала добавлен!")
}

// --- Таблицы ---

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	res, ok := domain.ParseResource(r.PathValue("resource"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := map[string]any{"Active": "tables", "Resources": domain.Resources}
	t, err := s.catalog.Table(r.Context(), res)
	if err != nil {
		data["Alerts"] = errorAlert("Ошибка при загрузке таблицы: ", err)
	}
	data["Table"] = t
	s.render(w, r, http.StatusOK, "table.html", data)
}

func (s *Server) handleTableDelete(w http.ResponseWriter, r *http.Request) {
	res, ok := domain.ParseResource(r.PathValue("resource"))
	id, okID := pathID(r, "id")
	if !ok || !okID {
		http.NotFound(w, r)
		return
	}
	back := "/tables/" + string(res)
	if err := s.catalog.Delete(r.Context(), res, id); err != nil {
		redirect(w, r, back, alertError, "Ошибка удаления: "+err.Error())
		return
	}
	redirect(w, r, back, alertSuccess, strings.TrimSpace("Запись удалена: "+usecase.TableTitle(res)))
}
