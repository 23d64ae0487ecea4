package handler

import (
	cartapp "github.com/kapzar/backend/internal/application/cart"
	"github.com/kapzar/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CartHandler handles cart endpoints. Anonymous carts live under the
// session cookie's id; once logged in the cart follows the user instead,
// so it survives a cookie reset.
type CartHandler struct {
	BaseHandler
	carts *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cartapp.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

// View handles GET /api/v1/cart
func (h *CartHandler) View(c *gin.Context) {
	resp, err := h.carts.View(c.Request.Context(), h.cartSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Add handles POST /api/v1/cart
func (h *CartHandler) Add(c *gin.Context) {
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.carts.Add(c.Request.Context(), h.cartSessionID(c), req.ProductID, req.Quantity, req.Override)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /api/v1/cart
func (h *CartHandler) Update(c *gin.Context) {
	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.carts.Update(c.Request.Context(), h.cartSessionID(c), req.ProductID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Remove handles DELETE /api/v1/cart/:id
func (h *CartHandler) Remove(c *gin.Context) {
	resp, err := h.carts.Remove(c.Request.Context(), h.cartSessionID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), h.cartSessionID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *CartHandler) cartSessionID(c *gin.Context) string {
	if userID := middleware.GetJWTUserID(c); userID != nil {
		return cartapp.UserSessionID(*userID)
	}
	return middleware.GetSessionID(c)
}
