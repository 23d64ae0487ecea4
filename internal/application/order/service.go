package order

import (
	"context"
	"errors"

	"github.com/kapzar/backend/internal/domain/catalog"
	"github.com/kapzar/backend/internal/domain/order"
	"github.com/kapzar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles checkout and payment confirmation
type Service struct {
	orders   order.Repository
	products catalog.ProductRepository
	policy   order.DeliveryPolicy
	logger   *zap.Logger
}

// NewService creates a new order Service
func NewService(
	orders order.Repository,
	products catalog.ProductRepository,
	policy order.DeliveryPolicy,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:   orders,
		products: products,
		policy:   policy,
		logger:   logger,
	}
}

// Create assembles and persists an order from the requested items. Each
// line is priced from the live catalog, never from a cart snapshot. If any
// product is missing or unavailable the whole order is rejected and
// nothing is persisted.
func (s *Service) Create(ctx context.Context, requester Requester, req CreateOrderRequest) (*OrderResponse, error) {
	lines := make([]order.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := s.products.FindAvailableByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE",
					"Product "+item.ProductID.String()+" is not available")
			}
			return nil, err
		}

		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		lines = append(lines, order.OrderLine{
			ProductName: product.Name,
			Price:       product.PriceMoney(),
			Quantity:    quantity,
		})
	}

	o, err := order.NewOrder(requester.UserID, req.FullName, req.Phone, req.Address, lines, s.policy)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, o); err != nil {
		s.logger.Error("Failed to persist order", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", o.ID.String()),
		zap.String("total", o.TotalMoney().String()),
		zap.Int("items", len(o.Items)))

	return ToOrderResponse(o), nil
}

// Get returns an order visible to the requester. Owners see their own
// orders; staff see any order.
func (s *Service) Get(ctx context.Context, requester Requester, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.canView(requester, o) {
		return nil, shared.ErrForbidden
	}
	return ToOrderResponse(o), nil
}

// ListMine returns the requester's order history, newest first
func (s *Service) ListMine(ctx context.Context, requester Requester) ([]OrderResponse, error) {
	if requester.UserID == nil {
		return nil, shared.ErrUnauthorized
	}
	orders, err := s.orders.FindByUser(ctx, *requester.UserID)
	if err != nil {
		return nil, err
	}
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, *ToOrderResponse(&orders[i]))
	}
	return responses, nil
}

// ConfirmPayment marks an order paid with the client-supplied transaction
// id. Only the order's owner may confirm, staff included.
func (s *Service) ConfirmPayment(ctx context.Context, requester Requester, orderID uuid.UUID, req ConfirmPaymentRequest) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if requester.UserID == nil || !o.OwnedBy(*requester.UserID) {
		return nil, shared.ErrForbidden
	}

	if err := o.ConfirmPayment(req.TransactionID); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		s.logger.Error("Failed to persist payment confirmation",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Payment confirmed",
		zap.String("order_id", orderID.String()),
		zap.String("txn_id", req.TransactionID))

	return ToOrderResponse(o), nil
}

func (s *Service) canView(requester Requester, o *order.Order) bool {
	if requester.IsStaff {
		return true
	}
	return requester.UserID != nil && o.OwnedBy(*requester.UserID)
}
