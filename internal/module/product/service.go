package product

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/simp-lee/adminboard/internal/domain"
)

// productService implements domain.ProductService.
type productService struct {
	repo domain.ProductRepository
}

// NewProductService creates a new ProductService with the given repository.
func NewProductService(repo domain.ProductRepository) domain.ProductService {
	return &productService{repo: repo}
}

// CreateProduct validates input and persists the new product.
func (s *productService) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	normalizeInput(&in)

	if err := validateInput(in); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Brand:       in.Brand,
		Stock:       in.Stock,
		Rating:      in.Rating,
		ImageURL:    in.ImageURL,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID.
func (s *productService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts returns a paginated list of products.
func (s *productService) ListProducts(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Product], error) {
	return s.repo.List(ctx, req)
}

// UpdateProduct loads the existing product, applies the changes, and persists
// them. An empty ImageURL keeps the stored image.
func (s *productService) UpdateProduct(ctx context.Context, id uint, in domain.ProductInput) (*domain.Product, error) {
	normalizeInput(&in)

	if err := validateInput(in); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Category = in.Category
	product.Brand = in.Brand
	product.Stock = in.Stock
	product.Rating = in.Rating
	if in.ImageURL != "" {
		product.ImageURL = in.ImageURL
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID.
func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// DeleteProducts removes the products with the given ids and reports the
// number of rows deleted.
func (s *productService) DeleteProducts(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.NewAppError(domain.CodeValidation, "no ids provided", nil)
	}
	return s.repo.DeleteMany(ctx, ids)
}

func normalizeInput(in *domain.ProductInput) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Brand = strings.TrimSpace(in.Brand)
}

func validateInput(in domain.ProductInput) error {
	if in.Name == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if utf8.RuneCountInString(in.Name) > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must be at most 100 characters", nil)
	}
	if utf8.RuneCountInString(in.Description) > 500 {
		return domain.NewAppError(domain.CodeValidation, "description must be at most 500 characters", nil)
	}
	if in.Price < 0 {
		return domain.NewAppError(domain.CodeValidation, "price must not be negative", nil)
	}
	if in.Stock < 0 {
		return domain.NewAppError(domain.CodeValidation, "stock must not be negative", nil)
	}
	if in.Rating < 0 || in.Rating > 5 {
		return domain.NewAppError(domain.CodeValidation, "rating must be between 0 and 5", nil)
	}
	return nil
}
