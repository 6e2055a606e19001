package domain

import "context"

// Product represents a product record in the catalog.
type Product struct {
	BaseModel
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:500" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"size:50" json:"category"`
	Brand       string  `gorm:"size:50" json:"brand"`
	Stock       int     `gorm:"not null" json:"stock"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `gorm:"size:512" json:"image_url"`
}

// ProductInput carries the writable product fields into the service.
// ImageURL is usually set by the image upload step; an empty value on update
// keeps the stored image.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Brand       string
	Stock       int
	Rating      float64
	ImageURL    string
}

// ProductRepository defines the data access interface for products.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Product], error)
	ListAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
	DeleteMany(ctx context.Context, ids []uint) (int64, error)
}

// ProductService defines the business logic interface for products.
type ProductService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*Product, error)
	GetProduct(ctx context.Context, id uint) (*Product, error)
	ListProducts(ctx context.Context, req PageRequest) (*PageResult[Product], error)
	UpdateProduct(ctx context.Context, id uint, in ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	DeleteProducts(ctx context.Context, ids []uint) (int64, error)
}
