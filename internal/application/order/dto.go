package order

import (
	"time"

	"github.com/kapzar/backend/internal/domain/order"
	"github.com/kapzar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// OrderItemInput represents one requested line during checkout
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// CreateOrderRequest represents a checkout request
type CreateOrderRequest struct {
	FullName string           `json:"full_name" binding:"required,min=1,max=200"`
	Phone    string           `json:"phone" binding:"required,min=5,max=20"`
	Address  string           `json:"address" binding:"required,min=1"`
	Items    []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// ConfirmPaymentRequest represents a payment confirmation
type ConfirmPaymentRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

// Requester identifies who is calling an order operation
type Requester struct {
	UserID  *uuid.UUID
	IsStaff bool
}

// OrderItemResponse represents a denormalized order line in responses
type OrderItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	ProductName string            `json:"product_name"`
	Price       valueobject.Money `json:"price"`
	Quantity    int               `json:"quantity"`
	Subtotal    valueobject.Money `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	FullName       string              `json:"full_name"`
	Phone          string              `json:"phone"`
	Address        string              `json:"address"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       valueobject.Money   `json:"subtotal"`
	DeliveryCharge valueobject.Money   `json:"delivery_charge"`
	Total          valueobject.Money   `json:"total"`
	IsPaid         bool                `json:"is_paid"`
	PaymentMethod  string              `json:"payment_method"`
	PaymentTxnID   string              `json:"payment_txn_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			Price:       valueobject.NewMoney(item.Price),
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal(),
		})
	}
	return &OrderResponse{
		ID:             o.ID,
		FullName:       o.FullName,
		Phone:          o.Phone,
		Address:        o.Address,
		Items:          items,
		Subtotal:       o.SubtotalMoney(),
		DeliveryCharge: o.DeliveryChargeMoney(),
		Total:          o.TotalMoney(),
		IsPaid:         o.IsPaid,
		PaymentMethod:  o.PaymentMethod,
		PaymentTxnID:   o.PaymentTxnID,
		CreatedAt:      o.CreatedAt,
	}
}
