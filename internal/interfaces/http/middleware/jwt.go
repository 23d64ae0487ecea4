package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kapzar/backend/internal/infrastructure/auth"
	"github.com/kapzar/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTIsStaffKey  = "jwt_is_staff"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtService)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		storeClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid bearer token is present and
// lets anonymous requests through. A present-but-invalid token is still
// rejected so a client with an expired session notices.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(AuthHeaderKey) == "" {
			c.Next()
			return
		}
		claims, err := claimsFromHeader(c, jwtService)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		storeClaims(c, claims)
		c.Next()
	}
}

// RequireStaff rejects authenticated requests from non-staff users.
// Must run after RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(JWTIsStaffKey) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Staff access required"))
			return
		}
		c.Next()
	}
}

// GetJWTUserID returns the authenticated user's id, or nil for anonymous
// requests
func GetJWTUserID(c *gin.Context) *uuid.UUID {
	raw := c.GetString(JWTUserIDKey)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// GetJWTUsername returns the authenticated username, if any
func GetJWTUsername(c *gin.Context) string {
	return c.GetString(JWTUsernameKey)
}

// IsStaff reports whether the request carries a staff token
func IsStaff(c *gin.Context) bool {
	return c.GetBool(JWTIsStaffKey)
}

func claimsFromHeader(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" {
		return nil, auth.ErrInvalidToken
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	return jwtService.ValidateToken(token)
}

func storeClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTUsernameKey, claims.Username)
	c.Set(JWTIsStaffKey, claims.IsStaff)
}

func abortUnauthorized(c *gin.Context, err error) {
	code := dto.ErrCodeTokenInvalid
	message := "Invalid or missing token"
	if errors.Is(err, auth.ErrExpiredToken) {
		code = dto.ErrCodeTokenExpired
		message = "Token has expired"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
