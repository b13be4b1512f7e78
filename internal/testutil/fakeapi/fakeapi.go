// Package fakeapi is an in-memory domain.CatalogAPI for tests.
package fakeapi

import (
	"context"
	"sync"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
)

type API struct {
	mu sync.Mutex

	ProductTypes  []domain.ProductType
	MaterialTypes []domain.MaterialType
	Products      []domain.Product
	Workshops     []domain.Workshop
	Links         []domain.ProductWorkshop
	Routing       map[int64][]domain.ProductWorkshopEntry

	// Errs makes the named method fail, e.g. Errs["CreateProduct"].
	Errs map[string]error
	// Gate, when set, holds CreateProduct and UpdateProduct until closed.
	Gate chan struct{}

	calls  map[string]int
	nextID int64
}

var _ domain.CatalogAPI = (*API)(nil)

func New() *API {
	return &API{Errs: map[string]error{}, Routing: map[int64][]domain.ProductWorkshopEntry{}, nextID: 100}
}

func (a *API) enter(method string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.calls == nil {
		a.calls = map[string]int{}
	}
	a.calls[method]++
	return a.Errs[method]
}

func (a *API) SetErr(method string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Errs == nil {
		a.Errs = map[string]error{}
	}
	a.Errs[method] = err
}

// Calls reports how often method was invoked.
func (a *API) Calls(method string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[method]
}

func (a *API) id() int64 {
	a.nextID++
	return a.nextID
}

func (a *API) ListProductTypes(ctx context.Context) ([]domain.ProductType, error) {
	if err := a.enter("ListProductTypes"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.ProductType(nil), a.ProductTypes...), nil
}

func (a *API) ListMaterialTypes(ctx context.Context) ([]domain.MaterialType, error) {
	if err := a.enter("ListMaterialTypes"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.MaterialType(nil), a.MaterialTypes...), nil
}

func (a *API) CreateProductType(ctx context.Context, in domain.ProductTypeInput) error {
	if err := a.enter("CreateProductType"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ProductTypes = append(a.ProductTypes, domain.ProductType{ID: a.id(), Name: in.Name, Coefficient: in.Coefficient})
	return nil
}

func (a *API) CreateMaterialType(ctx context.Context, in domain.MaterialTypeInput) error {
	if err := a.enter("CreateMaterialType"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.MaterialTypes = append(a.MaterialTypes, domain.MaterialType{ID: a.id(), Name: in.Name, LossPercentage: in.LossPercentage})
	return nil
}

func (a *API) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := a.enter("ListProducts"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Product(nil), a.Products...), nil
}

func (a *API) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if err := a.enter("GetProduct"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.Products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, &domain.APIError{Status: 404, Message: "Продукт не найден"}
}

func (a *API) wait(ctx context.Context) error {
	if a.Gate == nil {
		return nil
	}
	select {
	case <-a.Gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *API) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if err := a.enter("CreateProduct"); err != nil {
		return nil, err
	}
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	p := productFrom(a.id(), in)
	a.Products = append(a.Products, p)
	return &p, nil
}

func (a *API) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	if err := a.enter("UpdateProduct"); err != nil {
		return nil, err
	}
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.Products {
		if a.Products[i].ID == id {
			a.Products[i] = productFrom(id, in)
			p := a.Products[i]
			return &p, nil
		}
	}
	return nil, &domain.APIError{Status: 404, Message: "Продукт не найден"}
}

func productFrom(id int64, in domain.ProductInput) domain.Product {
	return domain.Product{
		ID:                  id,
		ArticleNumber:       in.ArticleNumber,
		Name:                in.Name,
		ProductTypeID:       in.ProductTypeID,
		MaterialTypeID:      in.MaterialTypeID,
		MinimumPartnerPrice: in.MinimumPartnerPrice,
	}
}

func (a *API) DeleteProduct(ctx context.Context, id int64) error {
	return a.Delete(ctx, domain.ResourceProducts, id)
}

func (a *API) ListWorkshops(ctx context.Context) ([]domain.Workshop, error) {
	if err := a.enter("ListWorkshops"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Workshop(nil), a.Workshops...), nil
}

func (a *API) CreateWorkshop(ctx context.Context, in domain.WorkshopInput) error {
	if err := a.enter("CreateWorkshop"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Workshops = append(a.Workshops, domain.Workshop{ID: a.id(), Name: in.Name, Type: in.Type, StaffCount: in.StaffCount})
	return nil
}

func (a *API) ListWorkshopsForProduct(ctx context.Context, productID int64) ([]domain.ProductWorkshopEntry, error) {
	if err := a.enter("ListWorkshopsForProduct"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.ProductWorkshopEntry(nil), a.Routing[productID]...), nil
}

func (a *API) ListProductWorkshops(ctx context.Context) ([]domain.ProductWorkshop, error) {
	if err := a.enter("ListProductWorkshops"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.ProductWorkshop(nil), a.Links...), nil
}

func (a *API) CreateProductWorkshop(ctx context.Context, in domain.ProductWorkshopInput) error {
	if err := a.enter("CreateProductWorkshop"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Links = append(a.Links, domain.ProductWorkshop{
		ID:                 a.id(),
		ProductID:          in.ProductID,
		WorkshopID:         in.WorkshopID,
		ManufacturingHours: in.ManufacturingHours,
	})
	return nil
}

func (a *API) Delete(ctx context.Context, r domain.Resource, id int64) error {
	if err := a.enter("Delete"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	found := false
	switch r {
	case domain.ResourceProducts:
		a.Products, found = without(a.Products, func(p domain.Product) bool { return p.ID == id })
	case domain.ResourceProductTypes:
		a.ProductTypes, found = without(a.ProductTypes, func(p domain.ProductType) bool { return p.ID == id })
	case domain.ResourceMaterialTypes:
		a.MaterialTypes, found = without(a.MaterialTypes, func(m domain.MaterialType) bool { return m.ID == id })
	case domain.ResourceWorkshops:
		a.Workshops, found = without(a.Workshops, func(w domain.Workshop) bool { return w.ID == id })
	case domain.ResourceProductWorkshops:
		a.Links, found = without(a.Links, func(l domain.ProductWorkshop) bool { return l.ID == id })
	}
	if !found {
		return &domain.APIError{Status: 404, Message: "не найдено"}
	}
	return nil
}

func without[T any](list []T, match func(T) bool) ([]T, bool) {
	out := list[:0:0]
	found := false
	for _, v := range list {
		if match(v) {
			found = true
			continue
		}
		out = append(out, v)
	}
	return out, found
}
