package product

import (
	"context"
	"errors"
	"strings"

	"github.com/simp-lee/adminboard/internal/domain"
	"github.com/simp-lee/adminboard/internal/pkg"
	"gorm.io/gorm"
)

// Allowed fields for sorting, filtering, and searching in List queries.
var (
	allowedSortFields   = []string{"id", "name", "price", "category", "brand", "stock", "rating", "created_at", "updated_at"}
	allowedFilterFields = []string{"name", "category", "brand"}

	searchableFields = map[string]bool{
		"name":     true,
		"category": true,
		"brand":    true,
	}
)

const defaultSearchField = "name"

// productRepository implements domain.ProductRepository using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository backed by the given GORM database.
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// GetByID retrieves a product by its primary key.
func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &product, nil
}

// Count returns the total number of products.
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&total).Error; err != nil {
		return 0, mapError(err)
	}
	return total, nil
}

// List returns a paginated, sorted, searched, and filtered list of products.
func (r *productRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Product], error) {
	search, err := searchScope(req)
	if err != nil {
		return nil, err
	}

	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Product{}).
		Scopes(search, pkg.Filter(req, allowedFilterFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, mapError(err)
	}

	var products []domain.Product
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&products).Error; err != nil {
		return nil, mapError(err)
	}

	return pkg.NewPageResult(products, total, req), nil
}

// ListAll returns every product. Used by the dashboard statistics, which
// aggregate over the full catalog.
func (r *productRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

// Update saves changes to an existing product.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// Delete removes a product by ID.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteMany removes the products with the given ids and reports how many
// rows were actually deleted. Unknown ids are skipped, not treated as errors.
func (r *productRepository) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, ids)
	if result.Error != nil {
		return 0, mapError(result.Error)
	}
	return result.RowsAffected, nil
}

// searchScope builds the WHERE clause for the search query. Unknown search
// fields are rejected.
func searchScope(req domain.PageRequest) (func(db *gorm.DB) *gorm.DB, error) {
	noop := func(db *gorm.DB) *gorm.DB { return db }
	if req.Search == "" {
		return noop, nil
	}

	field := req.SearchField
	if field == "" {
		field = defaultSearchField
	}
	if !searchableFields[field] {
		return nil, domain.NewAppError(domain.CodeValidation, "unknown search field: "+field, nil)
	}

	pattern := "%" + strings.ToLower(req.Search) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+field+") LIKE ?", pattern)
	}, nil
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}
