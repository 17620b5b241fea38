package cart

import "sync"

// Keeper owns the in-memory carts for active shopper sessions, keyed by the
// shopper's email. Carts are ephemeral: they live for the process lifetime
// only and are dropped on clear-after-checkout or service restart. The
// keeper is dependency-injected into the controllers; there is no package
// level singleton.
type Keeper struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewKeeper returns an empty cart keeper.
func NewKeeper() *Keeper {
	return &Keeper{carts: make(map[string]*Cart)}
}

// For returns the shopper's cart, creating an empty one on first use.
func (k *Keeper) For(userEmail string) *Cart {
	k.mu.Lock()
	defer k.mu.Unlock()
	if c, ok := k.carts[userEmail]; ok {
		return c
	}
	c := New()
	k.carts[userEmail] = c
	return c
}

// Drop forgets the shopper's cart entirely.
func (k *Keeper) Drop(userEmail string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.carts, userEmail)
}
