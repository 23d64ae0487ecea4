package catalog

import (
	"time"

	"github.com/kapzar/backend/internal/domain/catalog"
	"github.com/kapzar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required,min=1,max=255"`
	Slug        string          `json:"slug" binding:"required,max=255,slug"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       *int            `json:"stock"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Category string `form:"category"`
	Search   string `form:"q"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	CategoryID  uuid.UUID         `json:"category_id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	Price       valueobject.Money `json:"price"`
	Stock       int               `json:"stock"`
	ImageURL    string            `json:"image_url,omitempty"`
	Available   bool              `json:"available"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Slug     string `json:"slug" binding:"required,max=255,slug"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	ImageURL string    `json:"image_url,omitempty"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.PriceMoney(),
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
	}
}

// ToCategoryResponse converts a domain category to its response form
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		ImageURL: c.ImageURL,
	}
}
