package xlsx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
	"github.com/Glorc12/MebelCorpPractic/internal/usecase"
)

func open(t *testing.T, sheets ...Sheet) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sheets...))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWrite_Products(t *testing.T) {
	rows := []usecase.ProductRow{{
		Product: domain.Product{
			ID: 1, ArticleNumber: 8758385, Name: "Кресло",
			MinimumPartnerPrice: 4456.904, ManufacturingHours: domain.Ptr(3.5),
		},
		TypeName:     "Кресла",
		MaterialName: domain.Placeholder,
	}}
	f := open(t, Products(rows))

	assert.Equal(t, []string{"Продукция"}, f.GetSheetList())
	got, err := f.GetRows("Продукция")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Артикул", got[0][1])
	assert.Equal(t, []string{"1", "8758385", "Кресло", "Кресла", "N/A", "4456.9", "3.5"}, got[1])
}

func TestWrite_SeveralSheets(t *testing.T) {
	f := open(t,
		Workshops([]domain.Workshop{{ID: 2, Name: "Раскрой", Type: "Обработка", StaffCount: 4}}),
		Links([]domain.ProductWorkshop{{ID: 5, ProductName: "Шкаф", WorkshopName: "Раскрой", ManufacturingHours: 1.5}}),
	)
	assert.Equal(t, []string{"Цеха", "Маршруты"}, f.GetSheetList())

	v, err := f.GetCellValue("Цеха", "D2")
	require.NoError(t, err)
	assert.Equal(t, "4", v)
	v, err = f.GetCellValue("Маршруты", "D2")
	require.NoError(t, err)
	assert.Equal(t, "1.5", v)
}

func TestWrite_Calculation(t *testing.T) {
	req := usecase.CalcRequest{
		Input:         domain.CalculationInput{Quantity: 10, Param1: 2.5, Param2: 1.2, LossPercentage: 15},
		ProductLabel:  "Кресла",
		MaterialLabel: "Дуб",
	}
	res, err := usecase.Calculate(req.Input)
	require.NoError(t, err)

	f := open(t, Calculation(req, res))
	got, err := f.GetRows("Расчет сырья")
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, []string{"Тип продукции", "Кресла"}, got[1])
	assert.Equal(t, []string{"Итого сырья", "34.5"}, got[9])
}

func TestWrite_EmptySheetHasHeader(t *testing.T) {
	f := open(t, Workshops(nil))
	got, err := f.GetRows("Цеха")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Количество сотрудников", got[0][3])
}

func TestWrite_NoSheets(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf))
	assert.Zero(t, buf.Len())
}
