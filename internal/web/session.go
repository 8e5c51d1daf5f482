package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"MenuCart/internal/cart"
	"MenuCart/internal/cartctl"
	"MenuCart/internal/cartview"
	"MenuCart/internal/detail"
	"MenuCart/internal/storage"
)

const sessionCookie = "cart_session"

// Session is one browser profile's cart world: its store, its
// persistence key, and its two view controllers.
type Session struct {
	ID      string
	Cart    *cart.Store
	Adapter *cart.Adapter
	Detail  *detail.Controller
	CartUI  *cartctl.Controller
}

type SessionManager struct {
	mu       sync.Mutex
	kv       storage.KV
	renderer *cartview.Renderer
	log      *zap.Logger
	cooldown time.Duration
	sessions map[string]*Session
}

func NewSessionManager(kv storage.KV, r *cartview.Renderer, log *zap.Logger) *SessionManager {
	return &SessionManager{
		kv:       kv,
		renderer: r,
		log:      log,
		sessions: map[string]*Session{},
	}
}

// SetDetailCooldown overrides the add-control cooldown applied to new
// sessions.
func (m *SessionManager) SetDetailCooldown(d time.Duration) {
	m.mu.Lock()
	m.cooldown = d
	m.mu.Unlock()
}

// Get returns the session for id, creating and hydrating it on first
// sight. The cart persists under a per-session key so profiles never
// share a cart.
func (m *SessionManager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}

	log := m.log
	if log != nil {
		log = log.With(zap.String("session", id))
	}

	store := cart.NewStore()
	adapter := cart.NewAdapter(m.kv, cart.DefaultKey+":"+id, log)
	adapter.Hydrate(store)

	if log != nil {
		store.OnChange(func(items []cart.LineItem) {
			n := 0
			for _, it := range items {
				n += it.Quantity
			}
			log.Debug("badge refreshed", zap.Int("count", n))
		})
	}

	dc := detail.NewController(store, log)
	if m.cooldown > 0 {
		dc.SetCooldown(m.cooldown)
	}

	s := &Session{
		ID:      id,
		Cart:    store,
		Adapter: adapter,
		Detail:  dc,
		CartUI:  cartctl.NewController(store, m.renderer, log),
	}
	m.sessions[id] = s
	return s
}

type ctxKey string

const sessionKey ctxKey = "session"

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok
}

// Middleware attaches the cookie-identified session to the request,
// minting a cookie on first contact.
func (m *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, m.Get(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
