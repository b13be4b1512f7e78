package domain

// ProductField identifies an input of the product add/edit form.
type ProductField int

const (
	FieldArticleNumber ProductField = iota + 1
	FieldProductTypeID
	FieldProductName
	FieldMaterialTypeID
	FieldMinimumPartnerPrice
)

// ProductFields lists the form fields in display order.
var ProductFields = []ProductField{
	FieldArticleNumber,
	FieldProductTypeID,
	FieldProductName,
	FieldMaterialTypeID,
	FieldMinimumPartnerPrice,
}

var fieldNames = map[ProductField]string{
	FieldArticleNumber:       "article_number",
	FieldProductTypeID:       "product_type_id",
	FieldProductName:         "product_name",
	FieldMaterialTypeID:      "material_type_id",
	FieldMinimumPartnerPrice: "minimum_partner_price",
}

func (f ProductField) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "unknown"
}

// ParseProductField maps a wire/form name to its field.
func ParseProductField(name string) (ProductField, bool) {
	for f, n := range fieldNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}
