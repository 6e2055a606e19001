package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/simp-lee/adminboard/internal/domain"
)

// FetchProducts retrieves one page of products.
func (c *Client) FetchProducts(ctx context.Context, page, pageSize int) (*domain.PageResult[domain.Product], error) {
	return c.SearchProducts(ctx, ListOptions{Page: page, PageSize: pageSize})
}

// SearchProducts retrieves one page of products with search and sort
// parameters forwarded to the backend.
func (c *Client) SearchProducts(ctx context.Context, opts ListOptions) (*domain.PageResult[domain.Product], error) {
	var result domain.PageResult[domain.Product]
	if err := c.do(ctx, http.MethodGet, "/products", opts.values(), nil, &result, callOpts{}); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchAllProducts walks every page and returns the full catalog.
func (c *Client) FetchAllProducts(ctx context.Context) ([]domain.Product, error) {
	var all []domain.Product
	for page := 1; ; page++ {
		result, err := c.FetchProducts(ctx, page, 50)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		if page >= result.TotalPages || len(result.Items) == 0 {
			break
		}
	}
	return all, nil
}

// GetProduct retrieves a single product by id.
func (c *Client) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	if id == 0 {
		return nil, ErrMissingIdentifier
	}
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &product, callOpts{}); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product on the backend.
func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, productBody(in), &product, callOpts{}); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates an existing product. Records without a server id are
// rejected before any network call.
func (c *Client) UpdateProduct(ctx context.Context, id uint, in domain.ProductInput) (*domain.Product, error) {
	if id == 0 {
		return nil, ErrMissingIdentifier
	}
	var product domain.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, productBody(in), &product, callOpts{}); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct deletes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrMissingIdentifier
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil, callOpts{})
}

// DeleteProducts bulk-deletes products and returns how many rows the
// backend actually removed.
func (c *Client) DeleteProducts(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrMissingIdentifier
	}
	var result struct {
		Deleted int64 `json:"deleted"`
	}
	body := map[string][]uint{"ids": ids}
	if err := c.do(ctx, http.MethodPost, "/products/bulk-delete", nil, body, &result, callOpts{}); err != nil {
		return 0, err
	}
	return result.Deleted, nil
}

func productBody(in domain.ProductInput) map[string]any {
	return map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"price":       in.Price,
		"category":    in.Category,
		"brand":       in.Brand,
		"stock":       in.Stock,
		"rating":      in.Rating,
	}
}
