package product

// CreateProductRequest represents the input for creating a new product.
type CreateProductRequest struct {
	Name        string  `json:"name" form:"name" binding:"required,min=1,max=100"`
	Description string  `json:"description" form:"description" binding:"omitempty,max=500"`
	Price       float64 `json:"price" form:"price" binding:"omitempty,gte=0"`
	Category    string  `json:"category" form:"category" binding:"omitempty,max=50"`
	Brand       string  `json:"brand" form:"brand" binding:"omitempty,max=50"`
	Stock       int     `json:"stock" form:"stock" binding:"omitempty,gte=0"`
	Rating      float64 `json:"rating" form:"rating" binding:"omitempty,gte=0,lte=5"`
	ImageURL    string  `json:"image_url" form:"image_url" binding:"omitempty,max=512"`
}

// UpdateProductRequest represents the input for updating an existing product.
// An empty image_url keeps the stored image.
type UpdateProductRequest struct {
	Name        string  `json:"name" form:"name" binding:"required,min=1,max=100"`
	Description string  `json:"description" form:"description" binding:"omitempty,max=500"`
	Price       float64 `json:"price" form:"price" binding:"omitempty,gte=0"`
	Category    string  `json:"category" form:"category" binding:"omitempty,max=50"`
	Brand       string  `json:"brand" form:"brand" binding:"omitempty,max=50"`
	Stock       int     `json:"stock" form:"stock" binding:"omitempty,gte=0"`
	Rating      float64 `json:"rating" form:"rating" binding:"omitempty,gte=0,lte=5"`
	ImageURL    string  `json:"image_url" form:"image_url" binding:"omitempty,max=512"`
}

// BulkDeleteRequest carries the ids for a bulk delete operation.
type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1,dive,min=1"`
}
