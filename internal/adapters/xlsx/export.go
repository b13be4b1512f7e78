package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
	"github.com/Glorc12/MebelCorpPractic/internal/usecase"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one worksheet: a bold header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Write renders the sheets into a single workbook.
func Write(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("xlsx: нет листов")
	}
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, sh := range sheets {
		idx, err := f.NewSheet(sh.Name)
		if err != nil {
			return fmt.Errorf("xlsx: лист %q: %w", sh.Name, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := fillSheet(f, sh, headerStyle); err != nil {
			return err
		}
	}
	if sheets[0].Name != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func fillSheet(f *excelize.File, sh Sheet, headerStyle int) error {
	for col, h := range sh.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sh.Name, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sh.Name, cell, cell, headerStyle); err != nil {
			return err
		}
	}
	for r, row := range sh.Rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sh.Name, cell, v); err != nil {
				return err
			}
		}
	}
	if n := len(sh.Headers); n > 0 {
		last, _ := excelize.ColumnNumberToName(n)
		if err := f.SetColWidth(sh.Name, "A", last, 20); err != nil {
			return err
		}
	}
	return nil
}

func Products(rows []usecase.ProductRow) Sheet {
	sh := Sheet{
		Name:    "Продукция",
		Headers: []string{"ID", "Артикул", "Наименование", "Тип продукции", "Материал", "Мин. цена для партнера", "Время изготовления, ч"},
	}
	for _, p := range rows {
		sh.Rows = append(sh.Rows, []any{
			p.ID, p.ArticleNumber, p.Name, p.TypeName, p.MaterialName,
			domain.Round2(p.MinimumPartnerPrice), p.Hours(),
		})
	}
	return sh
}

func Workshops(list []domain.Workshop) Sheet {
	sh := Sheet{
		Name:    "Цеха",
		Headers: []string{"ID", "Название", "Тип", "Количество сотрудников"},
	}
	for _, ws := range list {
		sh.Rows = append(sh.Rows, []any{ws.ID, ws.Name, ws.Type, ws.StaffCount})
	}
	return sh
}

func Links(list []domain.ProductWorkshop) Sheet {
	sh := Sheet{
		Name:    "Маршруты",
		Headers: []string{"ID", "Продукт", "Цех", "Время изготовления, ч"},
	}
	for _, l := range list {
		sh.Rows = append(sh.Rows, []any{l.ID, l.ProductName, l.WorkshopName, l.ManufacturingHours})
	}
	return sh
}

// Calculation is a two-column sheet with the inputs and the result of a raw
// material calculation.
func Calculation(req usecase.CalcRequest, res domain.CalculationResult) Sheet {
	in := req.Input
	return Sheet{
		Name:    "Расчет сырья",
		Headers: []string{"Параметр", "Значение"},
		Rows: [][]any{
			{"Тип продукции", req.ProductLabel},
			{"Тип материала", req.MaterialLabel},
			{"Количество единиц", in.Quantity},
			{"Параметр 1", in.Param1},
			{"Параметр 2", in.Param2},
			{"Процент потерь, %", domain.Round2(in.LossPercentage)},
			{"Базовый объем", domain.Round2(res.BaseVolume)},
			{"Потери", domain.Round2(res.LossVolume)},
			{"Итого сырья", domain.Round2(res.TotalRawMaterial)},
		},
	}
}
