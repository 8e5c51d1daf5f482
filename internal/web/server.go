package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MenuCart/internal/cartctl"
	"MenuCart/internal/cartview"
	"MenuCart/internal/detail"
	"MenuCart/internal/menu"
	"MenuCart/pkg/kit"
)

type Server struct {
	Menu     menu.Store
	Sessions *SessionManager
	Renderer *cartview.Renderer
	Limiter  *kit.IPRateLimiter
	Log      *zap.Logger
}

const maxActionBody = 1 << 16

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Menu.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/", s.menuPage)
	r.Get("/menu", s.listMenu)

	r.Group(func(sr chi.Router) {
		sr.Use(s.Sessions.Middleware)

		sr.Get("/products/{id}", s.openDetail)
		sr.Get("/cart", s.cartView)
		sr.Get("/cart/badge", s.badge)

		mutating := sr
		if s.Limiter != nil {
			mutating = sr.With(s.Limiter.Middleware)
		}
		mutating.Post("/detail/close", s.closeDetail)
		mutating.Post("/cart/items", s.addToCart)
		mutating.Post("/cart/items/{name}", s.cartAction)
		mutating.Post("/cart/close", s.closeCart)
		mutating.Delete("/cart", s.clearCart)
		mutating.Post("/checkout", s.checkout)
	})

	return r
}

func (s *Server) listMenu(w http.ResponseWriter, r *http.Request) {
	cards, err := s.Menu.List(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list menu failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cards)
}

func (s *Server) openDetail(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "no session", nil)
		return
	}

	id := chi.URLParam(r, "id")
	d, found, err := s.Menu.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}

	view, err := sess.Detail.Open(d)
	if err != nil {
		// A card the detail view cannot populate leaves the page usable.
		if s.Log != nil {
			s.Log.Warn("detail open failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusUnprocessableEntity, "bad product", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) closeDetail(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "no session", nil)
		return
	}
	sess.Detail.Close()
	w.WriteHeader(http.StatusNoContent)
}

type addReq struct {
	Size string `json:"size"`
}

type addResp struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Count int    `json:"count"`
	Label string `json:"label"`
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "no session", nil)
		return
	}

	var req addReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	p, err := sess.Detail.Add(req.Size)
	switch {
	case errors.Is(err, detail.ErrNotOpen):
		kit.WriteError(w, r, http.StatusConflict, "no product staged", nil)
		return
	case errors.Is(err, detail.ErrCooldown):
		kit.WriteError(w, r, http.StatusTooManyRequests, "add disabled", nil)
		return
	case err != nil:
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	view := s.Renderer.Project(sess.Cart.Items())
	kit.WriteJSON(w, http.StatusCreated, addResp{
		Name:  p.Name,
		Price: p.Price,
		Count: view.Count,
		Label: view.Label,
	})
}

type cartResp struct {
	View cartview.View `json:"view"`
	HTML string        `json:"html"`
}

func (s *Server) writeCart(w http.ResponseWriter, r *http.Request, sess *Session, view cartview.View) {
	markup, err := s.Renderer.HTML(sess.Cart.Items())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("render cart failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cartResp{View: view, HTML: markup})
}

func (s *Server) cartView(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "no session", nil)
		return
	}
	s.writeCart(w, r, sess, sess.CartUI.Open())
}

func (s *Server) closeCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "no session", nil)
		return
	}
	sess.CartUI.Close()
	w.WriteHeader(http.StatusNoContent)
}

type actionReq struct {
	Action string `json:"action"`
}

func (s *Server) cartAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "no session", nil)
		return
	}

	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	var req actionReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	view, err := sess.CartUI.Dispatch(cartctl.Action(req.Action), name)
	if errors.Is(err, cartctl.ErrUnknownAction) {
		kit.WriteError(w, r, http.StatusBadRequest, "unknown action", map[string]any{"action": req.Action})
		return
	}
	s.writeCart(w, r, sess, view)
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "no session", nil)
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"
	view, err := sess.CartUI.Clear(confirmed)
	if errors.Is(err, cartctl.ErrNotConfirmed) {
		kit.WriteError(w, r, http.StatusConflict, "confirmation required", nil)
		return
	}
	s.writeCart(w, r, sess, view)
}

type badgeResp struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

func (s *Server) badge(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "no session", nil)
		return
	}

	view := s.Renderer.Project(sess.Cart.Items())
	kit.WriteJSON(w, http.StatusOK, badgeResp{Count: view.Count, Label: view.Label})
}

type checkoutResp struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// checkout displays the computed total and nothing else; there is no
// payment flow behind it.
func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "no session", nil)
		return
	}

	m := sess.CartUI.Checkout()
	kit.WriteJSON(w, http.StatusOK, checkoutResp{
		Total:    m.Display(),
		Currency: m.Currency.String(),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxActionBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
