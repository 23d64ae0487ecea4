package handler

import (
	cartapp "github.com/kapzar/backend/internal/application/cart"
	orderapp "github.com/kapzar/backend/internal/application/order"
	"github.com/kapzar/backend/internal/interfaces/http/dto"
	"github.com/kapzar/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderHandler handles checkout and payment endpoints
type OrderHandler struct {
	BaseHandler
	orders *orderapp.Service
	carts  *cartapp.Service
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.Service, carts *cartapp.Service, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		carts:  carts,
		logger: logger,
	}
}

// Create handles POST /api/v1/orders. Anonymous checkout is allowed; the
// cart is cleared once the order is persisted.
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orders.Create(c.Request.Context(), requester(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.carts.Clear(c.Request.Context(), h.cartSessionID(c)); err != nil {
		h.logger.Warn("Failed to clear cart after checkout",
			zap.String("order_id", resp.ID.String()),
			zap.Error(err))
	}

	h.Created(c, resp)
}

// Get handles GET /api/v1/orders/:id (owner or staff)
func (h *OrderHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	id, _ := uuid.Parse(req.ID)

	resp, err := h.orders.Get(c.Request.Context(), requester(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMine handles GET /api/v1/orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	resp, err := h.orders.ListMine(c.Request.Context(), requester(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ConfirmPayment handles POST /api/v1/orders/:id/pay
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	id, _ := uuid.Parse(uri.ID)

	var req orderapp.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orders.ConfirmPayment(c.Request.Context(), requester(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *OrderHandler) cartSessionID(c *gin.Context) string {
	if userID := middleware.GetJWTUserID(c); userID != nil {
		return cartapp.UserSessionID(*userID)
	}
	return middleware.GetSessionID(c)
}

func requester(c *gin.Context) orderapp.Requester {
	return orderapp.Requester{
		UserID:  middleware.GetJWTUserID(c),
		IsStaff: middleware.IsStaff(c),
	}
}
