package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

type ProductType struct {
	ID          int64   `json:"product_type_id"`
	Name        string  `json:"product_type_name"`
	Coefficient float64 `json:"coefficient"`
}

// UnmarshalJSON accepts both column names the backend has shipped for the
// coefficient; "coefficient" wins when both are present.
func (t *ProductType) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID          int64    `json:"product_type_id"`
		Name        string   `json:"product_type_name"`
		Coefficient *float64 `json:"coefficient"`
		Legacy      *float64 `json:"product_type_coefficient"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.ID = raw.ID
	t.Name = raw.Name
	t.Coefficient = Or(raw.Coefficient, Or(raw.Legacy, 0))
	return nil
}

type MaterialType struct {
	ID             int64   `json:"material_type_id"`
	Name           string  `json:"material_type_name"`
	LossPercentage float64 `json:"loss_percentage"`
}

// UnmarshalJSON accepts "loss_percentage" and the older
// "raw_material_loss_percent"; the former wins.
func (m *MaterialType) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID     int64    `json:"material_type_id"`
		Name   string   `json:"material_type_name"`
		Loss   *float64 `json:"loss_percentage"`
		Legacy *float64 `json:"raw_material_loss_percent"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	m.ID = raw.ID
	m.Name = raw.Name
	m.LossPercentage = Or(raw.Loss, Or(raw.Legacy, 0))
	return nil
}

// Loss is the loss percentage clamped to be non-negative.
func (m MaterialType) Loss() float64 {
	if m.LossPercentage < 0 {
		return 0
	}
	return m.LossPercentage
}

type Product struct {
	ID                  int64    `json:"product_id"`
	ArticleNumber       int64    `json:"article_number"`
	Name                string   `json:"product_name"`
	ProductTypeID       int64    `json:"product_type_id,omitempty"`
	ProductTypeName     *string  `json:"product_type,omitempty"`
	MaterialTypeID      int64    `json:"material_type_id,omitempty"`
	MaterialTypeName    *string  `json:"material_type,omitempty"`
	MinimumPartnerPrice float64  `json:"minimum_partner_price"`
	ManufacturingHours  *float64 `json:"manufacturing_time_hours,omitempty"`
}

type Workshop struct {
	ID         int64  `json:"workshop_id"`
	Name       string `json:"workshop_name"`
	Type       string `json:"workshop_type"`
	StaffCount int    `json:"staff_count"`
}

// ProductWorkshop is a routing link between a product and a workshop.
type ProductWorkshop struct {
	ID                 int64   `json:"product_workshop_id"`
	ProductID          int64   `json:"product_id"`
	WorkshopID         int64   `json:"workshop_id"`
	ManufacturingHours float64 `json:"manufacturing_time_hours"`
	ProductName        string  `json:"product_name"`
	WorkshopName       string  `json:"workshop_name"`
}

// ProductWorkshopEntry is a workshop as listed for a single product.
type ProductWorkshopEntry struct {
	WorkshopID         int64   `json:"workshop_id"`
	Name               string  `json:"workshop_name"`
	Type               *string `json:"workshop_type,omitempty"`
	StaffCount         *int    `json:"staff_count,omitempty"`
	ManufacturingHours float64 `json:"manufacturing_time_hours"`
}

/* Request bodies */

type ProductInput struct {
	ArticleNumber       int64   `json:"article_number"`
	Name                string  `json:"product_name"`
	ProductTypeID       int64   `json:"product_type_id"`
	MaterialTypeID      int64   `json:"material_type_id"`
	MinimumPartnerPrice float64 `json:"minimum_partner_price"`
}

type ProductTypeInput struct {
	Name        string  `json:"product_type_name" validate:"required,min=2,max=255"`
	Coefficient float64 `json:"coefficient" validate:"gt=0"`
}

type MaterialTypeInput struct {
	Name           string  `json:"material_type_name" validate:"required,min=2,max=255"`
	LossPercentage float64 `json:"loss_percentage" validate:"gte=0,lte=100"`
}

type WorkshopInput struct {
	Name       string `json:"workshop_name" validate:"required,max=255"`
	Type       string `json:"workshop_type" validate:"required,max=100"`
	StaffCount int    `json:"staff_count" validate:"gte=1"`
}

type ProductWorkshopInput struct {
	ProductID          int64   `json:"product_id" validate:"gt=0"`
	WorkshopID         int64   `json:"workshop_id" validate:"gt=0"`
	ManufacturingHours float64 `json:"manufacturing_time_hours" validate:"gte=0.5"`
}

// Resource is a collection of the backend API addressable by id.
type Resource string

const (
	ResourceProductTypes     Resource = "product-types"
	ResourceMaterialTypes    Resource = "material-types"
	ResourceProducts         Resource = "products"
	ResourceWorkshops        Resource = "workshops"
	ResourceProductWorkshops Resource = "product-workshops"
)

var Resources = []Resource{
	ResourceProductTypes,
	ResourceMaterialTypes,
	ResourceProducts,
	ResourceWorkshops,
	ResourceProductWorkshops,
}

func ParseResource(s string) (Resource, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	for _, r := range Resources {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// ItemPath is the API path of a single item, e.g. "/products/7".
func (r Resource) ItemPath(id int64) string {
	return "/" + string(r) + "/" + strconv.FormatInt(id, 10)
}
