package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
)

func TestValidateField(t *testing.T) {
	tests := []struct {
		field domain.ProductField
		raw   string
		want  string
	}{
		{domain.FieldArticleNumber, "", "Артикул обязателен"},
		{domain.FieldArticleNumber, "   ", "Артикул обязателен"},
		{domain.FieldArticleNumber, "0", "Артикул должен быть положительным числом"},
		{domain.FieldArticleNumber, "-4", "Артикул должен быть положительным числом"},
		{domain.FieldArticleNumber, "abc", "Артикул должен быть положительным числом"},
		{domain.FieldArticleNumber, "Inf", "Артикул должен быть положительным числом"},
		{domain.FieldArticleNumber, "1e30", "Артикул слишком большой"},
		{domain.FieldArticleNumber, "99999999999999999999", "Артикул слишком большой"},
		{domain.FieldArticleNumber, "9223372036854775808", "Артикул слишком большой"},
		{domain.FieldArticleNumber, "5", ""},
		{domain.FieldArticleNumber, "1234567", ""},

		{domain.FieldProductTypeID, "", "Выберите тип продукта"},
		{domain.FieldProductTypeID, "3", ""},
		{domain.FieldMaterialTypeID, "", "Выберите материал"},
		{domain.FieldMaterialTypeID, "1", ""},

		{domain.FieldProductName, "", "Наименование обязательно"},
		{domain.FieldProductName, "аб", "Наименование должно содержать минимум 3 символа"},
		{domain.FieldProductName, "  аб  ", "Наименование должно содержать минимум 3 символа"},
		{domain.FieldProductName, "ab", "Наименование должно содержать минимум 3 символа"},
		{domain.FieldProductName, "Chair", ""},
		{domain.FieldProductName, "Шкаф", ""},

		{domain.FieldMinimumPartnerPrice, "", "Цена обязательна"},
		{domain.FieldMinimumPartnerPrice, "-1", "Цена не может быть отрицательной"},
		{domain.FieldMinimumPartnerPrice, "abc", "Цена не может быть отрицательной"},
		{domain.FieldMinimumPartnerPrice, "10.123", "Цена должна иметь максимум 2 знака после запятой"},
		{domain.FieldMinimumPartnerPrice, "10.999", "Цена должна иметь максимум 2 знака после запятой"},
		{domain.FieldMinimumPartnerPrice, "10.99", ""},
		{domain.FieldMinimumPartnerPrice, "0", ""},
		{domain.FieldMinimumPartnerPrice, "15000.5", ""},
		{domain.FieldMinimumPartnerPrice, "15000.50", ""},
	}
	for _, tt := range tests {
		t.Run(tt.field.String()+"/"+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateField(tt.field, tt.raw))
		})
	}
}

func TestValidateFieldByName_UnknownPasses(t *testing.T) {
	assert.Equal(t, "", ValidateFieldByName("color", ""))
	assert.Equal(t, "Наименование обязательно", ValidateFieldByName("product_name", ""))
}

func TestValidateProductForm(t *testing.T) {
	errs := ValidateProductForm(map[domain.ProductField]string{
		domain.FieldArticleNumber: "12",
		domain.FieldProductName:   "Стул",
	})
	assert.False(t, errs.Valid())
	assert.Len(t, errs, 3)
	assert.Contains(t, errs, domain.FieldProductTypeID)
	assert.Contains(t, errs, domain.FieldMaterialTypeID)
	assert.Contains(t, errs, domain.FieldMinimumPartnerPrice)

	ok := ValidateProductForm(validProductValues())
	assert.True(t, ok.Valid())
}

func TestProductInput_TruncatesArticle(t *testing.T) {
	values := validProductValues()
	values[domain.FieldArticleNumber] = "1234.9"
	in, err := productInput(values)
	assert.NoError(t, err)
	assert.Equal(t, int64(1234), in.ArticleNumber)
	assert.Equal(t, "Кресло офисное", in.Name)
	assert.Equal(t, 15000.5, in.MinimumPartnerPrice)
}

func TestProductInput_RejectsOversizedArticle(t *testing.T) {
	for _, raw := range []string{"1e30", "99999999999999999999"} {
		values := validProductValues()
		values[domain.FieldArticleNumber] = raw
		_, err := productInput(values)
		var verr *domain.ValidationError
		if assert.ErrorAs(t, err, &verr, raw) {
			assert.Equal(t, "article_number", verr.Field)
		}
	}
}

func validProductValues() map[domain.ProductField]string {
	return map[domain.ProductField]string{
		domain.FieldArticleNumber:       "1234567",
		domain.FieldProductTypeID:       "1",
		domain.FieldProductName:         " Кресло офисное ",
		domain.FieldMaterialTypeID:      "2",
		domain.FieldMinimumPartnerPrice: "15000.5",
	}
}
