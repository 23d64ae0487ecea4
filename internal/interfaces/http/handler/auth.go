package handler

import (
	cartapp "github.com/kapzar/backend/internal/application/cart"
	identityapp "github.com/kapzar/backend/internal/application/identity"
	"github.com/kapzar/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	BaseHandler
	auth   *identityapp.AuthService
	carts  *cartapp.Service
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *identityapp.AuthService, carts *cartapp.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		carts:  carts,
		logger: logger,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login handles POST /api/v1/auth/login. On success the anonymous
// session cart is folded into the user's cart.
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if sid := middleware.GetSessionID(c); sid != "" {
		if err := h.carts.MergeOnLogin(c.Request.Context(), sid, resp.User.ID); err != nil {
			// login still succeeds with the un-merged cart
			h.logger.Warn("Cart merge on login failed",
				zap.String("user_id", resp.User.ID.String()),
				zap.Error(err))
		}
	}

	h.Success(c, resp)
}
