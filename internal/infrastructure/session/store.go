package session

import "context"

// CartKey is the fixed key under which the cart is stored in a session
const CartKey = "cart"

// Store is opaque key-value persistence scoped to one session. Values are
// raw bytes; callers own the serialization. A missing value reads as nil
// with no error.
type Store interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Delete(ctx context.Context, sessionID, key string) error
}
