package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
)

var _ domain.CatalogAPI = (*Client)(nil)

func (c *Client) ListProductTypes(ctx context.Context) ([]domain.ProductType, error) {
	var out []domain.ProductType
	if err := c.do(ctx, http.MethodGet, "/product-types", "/product-types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListMaterialTypes(ctx context.Context) ([]domain.MaterialType, error) {
	var out []domain.MaterialType
	if err := c.do(ctx, http.MethodGet, "/material-types", "/material-types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProductType(ctx context.Context, in domain.ProductTypeInput) error {
	return c.do(ctx, http.MethodPost, "/product-types", "/product-types", in, nil)
}

func (c *Client) CreateMaterialType(ctx context.Context, in domain.MaterialTypeInput) error {
	return c.do(ctx, http.MethodPost, "/material-types", "/material-types", in, nil)
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodGet, "/products/{id}", domain.ResourceProducts.ItemPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", "/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, "/products/{id}", domain.ResourceProducts.ItemPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.Delete(ctx, domain.ResourceProducts, id)
}

func (c *Client) ListWorkshops(ctx context.Context) ([]domain.Workshop, error) {
	var out []domain.Workshop
	if err := c.do(ctx, http.MethodGet, "/workshops", "/workshops", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateWorkshop(ctx context.Context, in domain.WorkshopInput) error {
	return c.do(ctx, http.MethodPost, "/workshops", "/workshops", in, nil)
}

func (c *Client) ListWorkshopsForProduct(ctx context.Context, productID int64) ([]domain.ProductWorkshopEntry, error) {
	var out []domain.ProductWorkshopEntry
	path := "/workshops/product/" + strconv.FormatInt(productID, 10)
	if err := c.do(ctx, http.MethodGet, "/workshops/product/{id}", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProductWorkshops(ctx context.Context) ([]domain.ProductWorkshop, error) {
	var out []domain.ProductWorkshop
	if err := c.do(ctx, http.MethodGet, "/product-workshops", "/product-workshops", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProductWorkshop(ctx context.Context, in domain.ProductWorkshopInput) error {
	return c.do(ctx, http.MethodPost, "/product-workshops", "/product-workshops", in, nil)
}

// Delete removes the item id of collection r.
func (c *Client) Delete(ctx context.Context, r domain.Resource, id int64) error {
	return c.do(ctx, http.MethodDelete, "/"+string(r)+"/{id}", r.ItemPath(id), nil, nil)
}
