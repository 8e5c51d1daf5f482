// Package detail drives the product detail view: open stages a product,
// add resolves the effective price and pushes it into the cart.
package detail

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"MenuCart/internal/cart"
	"MenuCart/internal/menu"
)

type State int

const (
	StateClosed State = iota
	StateOpen
)

// DefaultCooldown is how long the add control stays disabled after a
// submission, successful or not.
const DefaultCooldown = 1 * time.Second

var (
	ErrNotOpen  = errors.New("no product staged")
	ErrCooldown = errors.New("add control disabled")
)

// View is the populated detail display for an open product.
type View struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Image       string         `json:"image,omitempty"`
	Price       string         `json:"price,omitempty"`
	MultiSize   bool           `json:"multi_size"`
	Tiers       menu.SizeTiers `json:"prices"`
}

type Controller struct {
	mu          sync.Mutex
	cart        *cart.Store
	log         *zap.Logger
	cooldown    time.Duration
	state       State
	staged      *menu.Descriptor
	addDisabled bool
}

func NewController(c *cart.Store, log *zap.Logger) *Controller {
	return &Controller{cart: c, log: log, cooldown: DefaultCooldown}
}

// SetCooldown overrides the add-control re-enable delay.
func (c *Controller) SetCooldown(d time.Duration) {
	c.mu.Lock()
	c.cooldown = d
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) AddEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateOpen && !c.addDisabled
}

// Open stages the product and returns the populated view. The view
// shows either the flat price or all four tier prices; all four tiers
// present is the multi-size discriminator.
func (c *Controller) Open(d menu.Descriptor) (View, error) {
	if d.Name == "" {
		return View{}, menu.ErrNoName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	staged := d
	c.staged = &staged
	c.state = StateOpen

	return View{
		Name:        d.Name,
		Description: d.Description,
		Image:       d.Image,
		Price:       d.Price,
		MultiSize:   d.MultiSize(),
		Tiers:       d.Tiers,
	}, nil
}

// Close discards the staged product without adding it. Cart contents
// are never touched here.
func (c *Controller) Close() {
	c.mu.Lock()
	c.staged = nil
	c.state = StateClosed
	c.mu.Unlock()
}

// Add resolves the effective price for the chosen size and pushes the
// staged product into the cart, then closes. When no size is chosen the
// price falls back through flat, normal, medium, large, venti, in that
// order, ending at the zero placeholder. The size suffix is appended to
// the name only on an explicit choice.
func (c *Controller) Add(size string) (cart.Product, error) {
	c.mu.Lock()

	if c.state != StateOpen || c.staged == nil {
		c.mu.Unlock()
		return cart.Product{}, ErrNotOpen
	}
	if c.addDisabled {
		c.mu.Unlock()
		return cart.Product{}, ErrCooldown
	}

	d := *c.staged

	name := d.Name
	effective, chosen := d.Tiers.Price(size)
	if chosen {
		name = d.Name + " (" + size + ")"
	} else {
		effective = fallbackPrice(d)
	}

	p := cart.Product{Name: name, Price: effective, Image: d.Image}

	c.staged = nil
	c.state = StateClosed
	c.addDisabled = true
	time.AfterFunc(c.cooldown, func() {
		c.mu.Lock()
		c.addDisabled = false
		c.mu.Unlock()
	})

	c.mu.Unlock()

	c.cart.Add(p)
	if c.log != nil {
		c.log.Info("added to cart",
			zap.String("name", p.Name),
			zap.String("price", p.Price),
		)
	}
	return p, nil
}

// fallbackPrice probes flat, normal, medium, large, venti in order.
// The order is asymmetric on purpose; keep it as is.
func fallbackPrice(d menu.Descriptor) string {
	if d.Price != "" {
		return d.Price
	}
	for _, size := range menu.Sizes {
		if p, ok := d.Tiers.Price(size); ok {
			return p
		}
	}
	return "$0.00"
}
