package order

import (
	"strings"
	"time"

	"github.com/kapzar/backend/internal/domain/shared"
	"github.com/kapzar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethodUPI is the single payment method the shop supports
const PaymentMethodUPI = "UPI"

// OrderItem is a denormalized copy of a product at order time. Catalog
// edits after checkout must never alter historical orders, so name and
// price are stored on the item itself.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null;default:1"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns price times quantity for this item
func (i OrderItem) Subtotal() valueobject.Money {
	return valueobject.NewMoney(i.Price).MultiplyByInt(int64(i.Quantity))
}

// OrderLine is the input for one order item during assembly
type OrderLine struct {
	ProductName string
	Price       valueobject.Money
	Quantity    int
}

// Order is an immutable snapshot of a completed checkout.
// It is the aggregate root for order-related operations; totals are
// computed once at creation and never recalculated.
type Order struct {
	shared.BaseEntity
	UserID         *uuid.UUID      `gorm:"type:uuid;index"`
	FullName       string          `gorm:"type:varchar(200);not null"`
	Phone          string          `gorm:"type:varchar(20);not null"`
	Address        string          `gorm:"type:text;not null"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DeliveryCharge decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IsPaid         bool            `gorm:"not null;default:false"`
	PaymentTxnID   string          `gorm:"type:varchar(200)"`
	PaymentMethod  string          `gorm:"type:varchar(50);not null;default:'UPI'"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder assembles an unpaid order from validated lines. The subtotal is
// the exact-decimal sum of line totals, the delivery charge comes from the
// policy, and the total is their sum.
func NewOrder(userID *uuid.UUID, fullName, phone, address string, lines []OrderLine, policy DeliveryPolicy) (*Order, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_FULL_NAME", "Full name cannot be empty")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	if strings.TrimSpace(address) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	o := &Order{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		FullName:      fullName,
		Phone:         phone,
		Address:       address,
		PaymentMethod: PaymentMethodUPI,
	}

	subtotal := valueobject.Zero()
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
		}
		if line.ProductName == "" {
			return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
		}
		subtotal = subtotal.Add(line.Price.MultiplyByInt(int64(line.Quantity)))
		o.Items = append(o.Items, OrderItem{
			ID:          uuid.New(),
			OrderID:     o.ID,
			ProductName: line.ProductName,
			Price:       line.Price.Amount(),
			Quantity:    line.Quantity,
			CreatedAt:   o.CreatedAt,
		})
	}

	delivery := policy.ChargeFor(subtotal)
	o.Subtotal = subtotal.Amount()
	o.DeliveryCharge = delivery.Amount()
	o.Total = subtotal.Add(delivery).Amount()

	return o, nil
}

// SubtotalMoney returns the subtotal as a Money value object
func (o *Order) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoney(o.Subtotal)
}

// DeliveryChargeMoney returns the delivery charge as a Money value object
func (o *Order) DeliveryChargeMoney() valueobject.Money {
	return valueobject.NewMoney(o.DeliveryCharge)
}

// TotalMoney returns the total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoney(o.Total)
}

// OwnedBy reports whether the order belongs to the given user
func (o *Order) OwnedBy(userID uuid.UUID) bool {
	return o.UserID != nil && *o.UserID == userID
}

// ConfirmPayment marks the order paid with the supplied transaction ID.
// The transaction ID is client-supplied and not verified against any
// gateway; callers reusing this flow in production need a verified
// confirmation step instead.
func (o *Order) ConfirmPayment(txnID string) error {
	if strings.TrimSpace(txnID) == "" {
		return shared.NewDomainError("TXN_ID_REQUIRED", "Transaction ID required")
	}
	o.IsPaid = true
	o.PaymentTxnID = txnID
	o.UpdatedAt = time.Now()
	return nil
}
