package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
)

type CatalogUC struct {
	API       domain.CatalogAPI
	Ref       *RefData
	Validator *validator.Validate
}

// ProductRow is a product ready for the products table.
type ProductRow struct {
	domain.Product
	TypeName     string
	MaterialName string
}

// Products lists products with their type and material names. A name
// missing from the API row is taken from the reference snapshot, then
// falls back to domain.Placeholder.
func (uc *CatalogUC) Products(ctx context.Context) ([]ProductRow, error) {
	list, err := uc.API.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	snap := uc.Ref.Current()
	rows := make([]ProductRow, 0, len(list))
	for _, p := range list {
		rows = append(rows, ProductRow{
			Product:      p,
			TypeName:     productTypeName(p, snap),
			MaterialName: materialTypeName(p, snap),
		})
	}
	return rows, nil
}

func productTypeName(p domain.Product, snap *Snapshot) string {
	if p.ProductTypeName != nil && *p.ProductTypeName != "" {
		return *p.ProductTypeName
	}
	if t, ok := snap.ProductType(p.ProductTypeID); ok {
		return t.Name
	}
	return domain.Placeholder
}

func materialTypeName(p domain.Product, snap *Snapshot) string {
	if p.MaterialTypeName != nil && *p.MaterialTypeName != "" {
		return *p.MaterialTypeName
	}
	if m, ok := snap.MaterialType(p.MaterialTypeID); ok {
		return m.Name
	}
	return domain.Placeholder
}

func (uc *CatalogUC) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("id продукта")
	}
	return uc.API.DeleteProduct(ctx, id)
}

// --- Справочники ---

// ProductTypes refreshes the reference snapshot and returns its product types.
func (uc *CatalogUC) ProductTypes(ctx context.Context) ([]domain.ProductType, error) {
	snap, err := uc.Ref.Reload(ctx)
	if err != nil {
		return nil, err
	}
	return snap.ProductTypes(), nil
}

func (uc *CatalogUC) MaterialTypes(ctx context.Context) ([]domain.MaterialType, error) {
	snap, err := uc.Ref.Reload(ctx)
	if err != nil {
		return nil, err
	}
	return snap.MaterialTypes(), nil
}

func (uc *CatalogUC) CreateProductType(ctx context.Context, in domain.ProductTypeInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := checkInput(uc.Validator, in); err != nil {
		return err
	}
	if err := uc.API.CreateProductType(ctx, in); err != nil {
		return err
	}
	uc.reload(ctx)
	return nil
}

func (uc *CatalogUC) CreateMaterialType(ctx context.Context, in domain.MaterialTypeInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := checkInput(uc.Validator, in); err != nil {
		return err
	}
	if err := uc.API.CreateMaterialType(ctx, in); err != nil {
		return err
	}
	uc.reload(ctx)
	return nil
}

func (uc *CatalogUC) reload(ctx context.Context) {
	if _, err := uc.Ref.Reload(ctx); err != nil {
		log.Warn().Err(err).Msg("reload reference data")
	}
}

// --- Цеха ---

func (uc *CatalogUC) Workshops(ctx context.Context) ([]domain.Workshop, error) {
	return uc.API.ListWorkshops(ctx)
}

func (uc *CatalogUC) CreateWorkshop(ctx context.Context, in domain.WorkshopInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	if err := checkInput(uc.Validator, in); err != nil {
		return err
	}
	return uc.API.CreateWorkshop(ctx, in)
}

// ProductRouting is the list of workshops a product passes through.
type ProductRouting struct {
	ProductID   int64
	ProductName string
	Workshops   []domain.ProductWorkshopEntry
	TotalHours  int
}

// WorkshopsForProduct lists the product's workshops. The product name is
// best effort: when it cannot be loaded the title stays generic.
func (uc *CatalogUC) WorkshopsForProduct(ctx context.Context, productID int64) (ProductRouting, error) {
	entries, err := uc.API.ListWorkshopsForProduct(ctx, productID)
	if err != nil {
		return ProductRouting{}, err
	}
	r := ProductRouting{ProductID: productID, Workshops: entries, TotalHours: TotalManufacturingHours(entries)}
	if p, err := uc.API.GetProduct(ctx, productID); err == nil && p != nil {
		r.ProductName = p.Name
	} else if err != nil {
		log.Warn().Err(err).Int64("product_id", productID).Msg("product name for routing")
	}
	return r, nil
}

// TotalManufacturingHours sums the time spent in every workshop, rounded to
// whole hours with halves going to the even neighbour.
func TotalManufacturingHours(entries []domain.ProductWorkshopEntry) int {
	total := 0.0
	for _, e := range entries {
		total += e.ManufacturingHours
	}
	return int(math.RoundToEven(total))
}

// --- Маршруты ---

func (uc *CatalogUC) Links(ctx context.Context) ([]domain.ProductWorkshop, error) {
	return uc.API.ListProductWorkshops(ctx)
}

// LinkOptions returns what the link form offers in its selectors.
func (uc *CatalogUC) LinkOptions(ctx context.Context) ([]domain.Product, []domain.Workshop, error) {
	products, err := uc.API.ListProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	workshops, err := uc.API.ListWorkshops(ctx)
	if err != nil {
		return nil, nil, err
	}
	return products, workshops, nil
}

// LinkProductWorkshop creates a routing link. An existing link for the same
// product and workshop yields domain.ErrDuplicateLink without calling create.
func (uc *CatalogUC) LinkProductWorkshop(ctx context.Context, in domain.ProductWorkshopInput) error {
	if err := checkInput(uc.Validator, in); err != nil {
		return err
	}
	links, err := uc.API.ListProductWorkshops(ctx)
	if err != nil {
		return err
	}
	for _, l := range links {
		if l.ProductID == in.ProductID && l.WorkshopID == in.WorkshopID {
			return domain.ErrDuplicateLink
		}
	}
	if err := uc.API.CreateProductWorkshop(ctx, in); err != nil {
		if errors.Is(err, domain.ErrDuplicateLink) {
			return domain.ErrDuplicateLink
		}
		return err
	}
	return nil
}

// Delete removes any resource by id. Deleting reference data refreshes the
// snapshot.
func (uc *CatalogUC) Delete(ctx context.Context, r domain.Resource, id int64) error {
	if id <= 0 {
		return fmt.Errorf("id %d", id)
	}
	if err := uc.API.Delete(ctx, r, id); err != nil {
		return err
	}
	if r == domain.ResourceProductTypes || r == domain.ResourceMaterialTypes {
		uc.reload(ctx)
	}
	return nil
}
