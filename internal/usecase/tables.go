package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
)

// Table is a resource listed as plain columns with a delete action per row.
type Table struct {
	Resource domain.Resource
	Title    string
	Columns  []string
	Rows     []TableRow
}

type TableRow struct {
	ID    int64
	Cells []string
}

var tableTitles = map[domain.Resource]string{
	domain.ResourceProductTypes:     "Типы продукции",
	domain.ResourceMaterialTypes:    "Типы материалов",
	domain.ResourceProducts:         "Продукты",
	domain.ResourceWorkshops:        "Цеха",
	domain.ResourceProductWorkshops: "Маршруты производства",
}

func TableTitle(r domain.Resource) string { return tableTitles[r] }

// Table loads one resource for the generic table page. Empty cells show
// domain.NoSelection.
func (uc *CatalogUC) Table(ctx context.Context, r domain.Resource) (Table, error) {
	t := Table{Resource: r, Title: tableTitles[r]}
	switch r {
	case domain.ResourceProductTypes:
		list, err := uc.ProductTypes(ctx)
		if err != nil {
			return t, err
		}
		t.Columns = []string{"product_type_id", "product_type_name", "coefficient"}
		for _, pt := range list {
			t.add(pt.ID, pt.Name, num(pt.Coefficient))
		}
	case domain.ResourceMaterialTypes:
		list, err := uc.MaterialTypes(ctx)
		if err != nil {
			return t, err
		}
		t.Columns = []string{"material_type_id", "material_type_name", "loss_percentage"}
		for _, mt := range list {
			t.add(mt.ID, mt.Name, num(mt.LossPercentage))
		}
	case domain.ResourceProducts:
		list, err := uc.API.ListProducts(ctx)
		if err != nil {
			return t, err
		}
		t.Columns = []string{"product_id", "product_name", "article_number", "minimum_partner_price"}
		for _, p := range list {
			t.add(p.ID, p.Name, strconv.FormatInt(p.ArticleNumber, 10), fmt.Sprintf("%.2f", p.MinimumPartnerPrice))
		}
	case domain.ResourceWorkshops:
		list, err := uc.API.ListWorkshops(ctx)
		if err != nil {
			return t, err
		}
		t.Columns = []string{"workshop_id", "workshop_name", "workshop_type", "staff_count"}
		for _, ws := range list {
			t.add(ws.ID, ws.Name, ws.Type, strconv.Itoa(ws.StaffCount))
		}
	case domain.ResourceProductWorkshops:
		list, err := uc.API.ListProductWorkshops(ctx)
		if err != nil {
			return t, err
		}
		t.Columns = []string{"product_workshop_id", "product_name", "workshop_name", "manufacturing_time_hours"}
		for _, l := range list {
			t.add(l.ID, l.ProductName, l.WorkshopName, num(l.ManufacturingHours))
		}
	default:
		return t, fmt.Errorf("таблица %q: %w", r, domain.ErrNotFound)
	}
	return t, nil
}

func (t *Table) add(id int64, cells ...string) {
	row := TableRow{ID: id, Cells: make([]string, 0, len(cells)+1)}
	row.Cells = append(row.Cells, strconv.FormatInt(id, 10))
	for _, c := range cells {
		if c == "" {
			c = domain.NoSelection
		}
		row.Cells = append(row.Cells, c)
	}
	t.Rows = append(t.Rows, row)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
