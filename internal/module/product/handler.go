package product

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/adminboard/internal/domain"
	"github.com/simp-lee/adminboard/internal/pkg"
)

// UploadSettings controls where product images are stored and how large they
// may be.
type UploadSettings struct {
	Dir          string
	MaxSizeBytes int64
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ProductHandler handles REST API requests for the product resource.
type ProductHandler struct {
	svc    domain.ProductService
	upload UploadSettings
}

// NewProductHandler creates a new ProductHandler with the given service and
// upload settings.
func NewProductHandler(svc domain.ProductService, upload UploadSettings) *ProductHandler {
	return &ProductHandler{svc: svc, upload: upload}
}

// Create handles POST /api/v1/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	product, err := h.svc.CreateProduct(c.Request.Context(), domain.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Stock:       req.Stock,
		Rating:      req.Rating,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "success",
		Data:    product,
	})
}

// Get handles GET /api/v1/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	product, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, product)
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListProducts(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UpdateProductRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	product, err := h.svc.UpdateProduct(c.Request.Context(), id, domain.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Stock:       req.Stock,
		Rating:      req.Rating,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, product)
}

// Delete handles DELETE /api/v1/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// BulkDelete handles POST /api/v1/products/bulk-delete.
func (h *ProductHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	deleted, err := h.svc.DeleteProducts(c.Request.Context(), req.IDs)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, gin.H{"deleted": deleted})
}

// UploadImage handles POST /api/v1/products/:id/image. The multipart "image"
// file is stored under the uploads directory and the product's image URL is
// updated to point at it.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "image file is required", err))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "unsupported image type: "+ext, nil))
		return
	}
	if h.upload.MaxSizeBytes > 0 && file.Size > h.upload.MaxSizeBytes {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "image exceeds the maximum allowed size", nil))
		return
	}

	product, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	filename := fmt.Sprintf("product_%d_%d%s", id, time.Now().UnixNano(), ext)
	dst := filepath.Join(h.upload.Dir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "failed to store image", err))
		return
	}

	updated, err := h.svc.UpdateProduct(c.Request.Context(), id, domain.ProductInput{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Brand:       product.Brand,
		Stock:       product.Stock,
		Rating:      product.Rating,
		ImageURL:    "/uploads/" + filename,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, updated)
}

// parseID extracts and validates the "id" URL parameter.
func parseID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id: %s", idStr)
	}
	if id > uint64(^uint(0)) {
		return 0, fmt.Errorf("invalid id: %s", idStr)
	}
	return uint(id), nil
}
