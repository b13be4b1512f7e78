package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
)

var priceRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// maxArticle is 2^63, the first float64 that no longer fits an int64.
const maxArticle = float64(math.MaxInt64)

type fieldRule func(value string) string

var productRules = map[domain.ProductField]fieldRule{
	domain.FieldArticleNumber: func(v string) string {
		if v == "" {
			return "Артикул обязателен"
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 1 {
			return "Артикул должен быть положительным числом"
		}
		if n >= maxArticle {
			return "Артикул слишком большой"
		}
		return ""
	},
	domain.FieldProductTypeID: func(v string) string {
		if v == "" {
			return "Выберите тип продукта"
		}
		return ""
	},
	domain.FieldProductName: func(v string) string {
		if v == "" {
			return "Наименование обязательно"
		}
		if utf8.RuneCountInString(v) < 3 {
			return "Наименование должно содержать минимум 3 символа"
		}
		return ""
	},
	domain.FieldMaterialTypeID: func(v string) string {
		if v == "" {
			return "Выберите материал"
		}
		return ""
	},
	domain.FieldMinimumPartnerPrice: func(v string) string {
		if v == "" {
			return "Цена обязательна"
		}
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(p) || p < 0 {
			return "Цена не может быть отрицательной"
		}
		if !priceRe.MatchString(v) {
			return "Цена должна иметь максимум 2 знака после запятой"
		}
		return ""
	},
}

// ValidateField returns the error message for one product form field, or ""
// when the value is acceptable. The value is trimmed first.
func ValidateField(f domain.ProductField, raw string) string {
	rule, ok := productRules[f]
	if !ok {
		return ""
	}
	return rule(strings.TrimSpace(raw))
}

// ValidateFieldByName is ValidateField for a wire name; unknown names pass.
func ValidateFieldByName(name, raw string) string {
	f, ok := domain.ParseProductField(name)
	if !ok {
		return ""
	}
	return ValidateField(f, raw)
}

// ValidateProductForm checks every field of the form. Missing values are
// validated as empty.
func ValidateProductForm(values map[domain.ProductField]string) domain.FieldErrors {
	errs := domain.FieldErrors{}
	for _, f := range domain.ProductFields {
		if msg := ValidateField(f, values[f]); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

// productInput converts validated form values into the API body. The article
// number is truncated to an integer.
func productInput(values map[domain.ProductField]string) (domain.ProductInput, error) {
	get := func(f domain.ProductField) string { return strings.TrimSpace(values[f]) }

	article, err := strconv.ParseFloat(get(domain.FieldArticleNumber), 64)
	if err != nil || math.IsNaN(article) || article < 1 || article >= maxArticle {
		return domain.ProductInput{}, &domain.ValidationError{Field: domain.FieldArticleNumber.String(), Message: "Артикул должен быть положительным числом"}
	}
	typeID, err := strconv.ParseInt(get(domain.FieldProductTypeID), 10, 64)
	if err != nil {
		return domain.ProductInput{}, &domain.ValidationError{Field: domain.FieldProductTypeID.String(), Message: "Выберите тип продукта"}
	}
	materialID, err := strconv.ParseInt(get(domain.FieldMaterialTypeID), 10, 64)
	if err != nil {
		return domain.ProductInput{}, &domain.ValidationError{Field: domain.FieldMaterialTypeID.String(), Message: "Выберите материал"}
	}
	price, err := strconv.ParseFloat(get(domain.FieldMinimumPartnerPrice), 64)
	if err != nil {
		return domain.ProductInput{}, &domain.ValidationError{Field: domain.FieldMinimumPartnerPrice.String(), Message: "Цена обязательна"}
	}
	return domain.ProductInput{
		ArticleNumber:       int64(article),
		Name:                get(domain.FieldProductName),
		ProductTypeID:       typeID,
		MaterialTypeID:      materialID,
		MinimumPartnerPrice: price,
	}, nil
}
