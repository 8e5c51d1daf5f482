// Package cartctl opens and closes the cart view and routes the
// delegated quantity, removal, clear, and checkout actions into the
// cart store, re-rendering after every change.
package cartctl

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"MenuCart/internal/cart"
	"MenuCart/internal/cartview"
	"MenuCart/internal/price"
)

// Action is the delegated control verb carried by a rendered button.
type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
	ActionRemove   Action = "remove"
)

var (
	ErrUnknownAction = errors.New("unknown cart action")
	ErrNotConfirmed  = errors.New("clear requires confirmation")
)

type Controller struct {
	mu     sync.Mutex
	cart   *cart.Store
	render *cartview.Renderer
	log    *zap.Logger
	open   bool
}

func NewController(c *cart.Store, r *cartview.Renderer, log *zap.Logger) *Controller {
	return &Controller{cart: c, render: r, log: log}
}

// Open re-renders first, then shows the view.
func (c *Controller) Open() cartview.View {
	c.mu.Lock()
	c.open = true
	c.mu.Unlock()
	return c.render.Project(c.cart.Items())
}

// Close hides the view. Cart contents are left alone.
func (c *Controller) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()
}

func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Dispatch applies one delegated action to the named item and returns
// the re-rendered view.
func (c *Controller) Dispatch(action Action, name string) (cartview.View, error) {
	switch action {
	case ActionIncrease:
		c.cart.ChangeQuantity(name, 1)
	case ActionDecrease:
		c.cart.ChangeQuantity(name, -1)
	case ActionRemove:
		c.cart.Remove(name)
	default:
		return cartview.View{}, ErrUnknownAction
	}

	if c.log != nil {
		c.log.Info("cart action",
			zap.String("action", string(action)),
			zap.String("name", name),
		)
	}
	return c.render.Project(c.cart.Items()), nil
}

// Clear empties the cart, but only with an explicit confirmation.
func (c *Controller) Clear(confirmed bool) (cartview.View, error) {
	if !confirmed {
		return cartview.View{}, ErrNotConfirmed
	}
	c.cart.Clear()
	return c.render.Project(c.cart.Items()), nil
}

// Checkout is a terminal placeholder: it reports the computed total and
// performs no transaction.
func (c *Controller) Checkout() price.Money {
	return price.USD(c.cart.Total())
}
