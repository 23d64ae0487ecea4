package cart

import (
	"context"
	"errors"

	"github.com/kapzar/backend/internal/domain/cart"
	"github.com/kapzar/backend/internal/domain/catalog"
	"github.com/kapzar/backend/internal/domain/shared"
	"github.com/kapzar/backend/internal/domain/shared/valueobject"
	"github.com/kapzar/backend/internal/infrastructure/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service binds the cart domain to a session store. Every mutation
// loads the cart from the session, applies the change, and writes it
// back, so concurrent requests on the same session are last-write-wins
// just like the session backend it models.
type Service struct {
	store    session.Store
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewService creates a new cart Service
func NewService(store session.Store, products catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		products: products,
		logger:   logger,
	}
}

// productAdapter exposes a catalog product through the narrow interface
// the cart snapshots from
type productAdapter struct {
	p *catalog.Product
}

func (a productAdapter) ID() string               { return a.p.ID.String() }
func (a productAdapter) Name() string             { return a.p.Name }
func (a productAdapter) Price() valueobject.Money { return a.p.PriceMoney() }
func (a productAdapter) ImageURL() string         { return a.p.ImageURL }

// View returns the current cart contents for the session
func (s *Service) View(ctx context.Context, sessionID string) (*CartResponse, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// Add puts a product in the cart. The quantity comes in as whatever the
// client sent; anything that does not parse to a positive whole number
// silently becomes 1. Override replaces the stored quantity instead of
// incrementing it.
func (s *Service) Add(ctx context.Context, sessionID string, productID uuid.UUID, quantity any, override bool) (*CartResponse, error) {
	product, err := s.products.FindAvailableByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product "+productID.String()+" is not available")
		}
		return nil, err
	}

	qty, ok := cart.CoerceQuantity(quantity)
	if !ok || qty <= 0 {
		qty = 1
	}

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Add(productAdapter{p: product}, qty, override)

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// Update sets the quantity of a line already in the cart. A quantity
// that does not parse is a silent no-op; zero or less removes the line.
func (s *Service) Update(ctx context.Context, sessionID, productID string, quantity any) (*CartResponse, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	qty, ok := cart.CoerceQuantity(quantity)
	if !ok {
		return toCartResponse(c), nil
	}
	c.Update(productID, qty)

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// Remove drops a line from the cart
func (s *Service) Remove(ctx context.Context, sessionID, productID string) (*CartResponse, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// Clear empties the cart for the session
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID, session.CartKey)
}

// MergeOnLogin folds the anonymous session cart into the user's cart.
// The anonymous cart is deleted afterwards so the lines are not counted
// twice when the session id changes back.
func (s *Service) MergeOnLogin(ctx context.Context, anonymousSessionID string, userID uuid.UUID) error {
	anonymous, err := s.load(ctx, anonymousSessionID)
	if err != nil {
		return err
	}
	if anonymous.Len() == 0 {
		return nil
	}

	userSession := UserSessionID(userID)
	owned, err := s.load(ctx, userSession)
	if err != nil {
		return err
	}
	owned.Merge(anonymous)

	if err := s.save(ctx, userSession, owned); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, anonymousSessionID, session.CartKey); err != nil {
		s.logger.Warn("Failed to drop anonymous cart after merge",
			zap.String("session_id", anonymousSessionID),
			zap.Error(err))
	}
	return nil
}

// UserSessionID returns the session id a logged-in user's cart lives under
func UserSessionID(userID uuid.UUID) string {
	return "user:" + userID.String()
}

func (s *Service) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := s.store.Get(ctx, sessionID, session.CartKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return cart.New(), nil
	}
	return cart.FromJSON(data), nil
}

func (s *Service) save(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := c.ToJSON()
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionID, session.CartKey, data)
}
