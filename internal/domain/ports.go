package domain

import "context"

// ReferenceSource lists the reference data used by forms and the calculator.
type ReferenceSource interface {
	ListProductTypes(ctx context.Context) ([]ProductType, error)
	ListMaterialTypes(ctx context.Context) ([]MaterialType, error)
}

// CatalogAPI is the external REST backend.
type CatalogAPI interface {
	ReferenceSource

	CreateProductType(ctx context.Context, in ProductTypeInput) error
	CreateMaterialType(ctx context.Context, in MaterialTypeInput) error

	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, in ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListWorkshops(ctx context.Context) ([]Workshop, error)
	CreateWorkshop(ctx context.Context, in WorkshopInput) error
	ListWorkshopsForProduct(ctx context.Context, productID int64) ([]ProductWorkshopEntry, error)

	ListProductWorkshops(ctx context.Context) ([]ProductWorkshop, error)
	CreateProductWorkshop(ctx context.Context, in ProductWorkshopInput) error

	Delete(ctx context.Context, r Resource, id int64) error
}
