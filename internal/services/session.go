package services

import (
	"context"
	"sync"
	"time"

	"shinyshoes/internal/domain"
	applog "shinyshoes/internal/log"
)

const cartKeyPrefix = "shiny_cart:"

// Session owns everything one browser session can change: cart, wishlist,
// signed-in user and checkout progress. All writes go through its methods.
type Session struct {
	mu       sync.Mutex
	id       string
	user     *domain.User
	cart     *Cart
	wishlist Wishlist
	checkout checkoutState
}

func (s *Session) ID() string { return s.id }

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAdmin() bool {
	u := s.User()
	return u != nil && u.IsAdmin
}

func (s *Session) login(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

func (s *Session) logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

func (s *Session) AddToCart(ctx context.Context, p domain.Product, size float64) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(ctx, p, size)
	return s.cart.View()
}

func (s *Session) RemoveFromCart(ctx context.Context, productID string, size float64) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(ctx, productID, size)
	return s.cart.View()
}

func (s *Session) UpdateQuantity(ctx context.Context, productID string, size float64, delta int) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(ctx, productID, size, delta)
	return s.cart.View()
}

func (s *Session) ClearCart(ctx context.Context) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear(ctx)
	return s.cart.View()
}

func (s *Session) SetCartOpen(open bool) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetOpen(open)
	return s.cart.View()
}

func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.View()
}

// ToggleWishlist reports whether id is saved after the toggle.
func (s *Session) ToggleWishlist(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Toggle(id)
}

func (s *Session) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.IDs()
}

// SessionRegistry materializes sessions on first use. The cart is rehydrated
// from the store exactly once per session. Sessions idle longer than TTL are
// dropped on a later Get; their carts stay in the store for the next visit.
type SessionRegistry struct {
	mu        sync.Mutex
	sessions  map[string]*registered
	store     CartStore
	TTL       time.Duration
	Now       func() time.Time
	lastSweep time.Time
}

type registered struct {
	sess     *Session
	lastSeen time.Time
}

func NewSessionRegistry(store CartStore) *SessionRegistry {
	return &SessionRegistry{sessions: map[string]*registered{}, store: store, Now: time.Now}
}

func (r *SessionRegistry) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Get returns the session for sid, creating and rehydrating it if needed.
func (r *SessionRegistry) Get(ctx context.Context, sid string) *Session {
	r.mu.Lock()
	now := r.now()
	r.sweep(now)
	if e, ok := r.sessions[sid]; ok {
		e.lastSeen = now
		r.mu.Unlock()
		return e.sess
	}
	s := &Session{id: sid, cart: NewCart(cartKeyPrefix+sid, r.store)}
	// Hold the session while loading so concurrent callers wait for the stored cart.
	s.mu.Lock()
	r.sessions[sid] = &registered{sess: s, lastSeen: now}
	r.mu.Unlock()

	s.cart.Rehydrate(ctx)
	s.mu.Unlock()
	return s
}

// Lookup returns an already materialized session without creating one.
func (r *SessionRegistry) Lookup(sid string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	e, ok := r.sessions[sid]
	if !ok || r.expired(e, now) {
		return nil, false
	}
	e.lastSeen = now
	return e.sess, true
}

func (r *SessionRegistry) expired(e *registered, now time.Time) bool {
	return r.TTL > 0 && now.Sub(e.lastSeen) >= r.TTL
}

// sweep runs at most once per TTL. Caller holds r.mu.
func (r *SessionRegistry) sweep(now time.Time) {
	if r.TTL <= 0 || now.Sub(r.lastSweep) < r.TTL {
		return
	}
	r.lastSweep = now
	dropped := 0
	for sid, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, sid)
			dropped++
		}
	}
	if dropped > 0 {
		applog.Info(nil, "session.evicted", map[string]any{"count": dropped, "remaining": len(r.sessions)})
	}
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
