package cart

import (
	"github.com/kapzar/backend/internal/domain/cart"
	"github.com/kapzar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AddItemRequest represents a request to add a product to the cart.
// Quantity is deliberately untyped so sloppy clients sending "2" or 2.0
// still work.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  any       `json:"quantity"`
	Override  bool      `json:"override"`
}

// UpdateItemRequest represents a request to change a line's quantity
type UpdateItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  any    `json:"quantity"`
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	ProductID  string            `json:"product_id"`
	Name       string            `json:"name"`
	ImageURL   string            `json:"image_url,omitempty"`
	Price      valueobject.Money `json:"price"`
	Quantity   int               `json:"quantity"`
	TotalPrice valueobject.Money `json:"total_price"`
}

// CartResponse represents the whole cart in API responses
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Count int                `json:"count"`
	Total valueobject.Money  `json:"total"`
}

func toCartResponse(c *cart.Cart) *CartResponse {
	views := c.Items()
	items := make([]CartItemResponse, 0, len(views))
	for _, v := range views {
		items = append(items, CartItemResponse{
			ProductID:  v.ID,
			Name:       v.Name,
			ImageURL:   v.ImageURL,
			Price:      v.Price,
			Quantity:   v.Quantity,
			TotalPrice: v.TotalPrice,
		})
	}
	return &CartResponse{
		Items: items,
		Count: c.Len(),
		Total: c.Total(),
	}
}
