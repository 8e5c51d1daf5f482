package detail

import (
	"errors"
	"testing"
	"time"

	"MenuCart/internal/cart"
	"MenuCart/internal/menu"
)

func multiSizeLatte() menu.Descriptor {
	return menu.Descriptor{
		ID:    "latte",
		Name:  "Latte",
		Image: "/img/latte.jpg",
		Tiers: menu.SizeTiers{
			Normal: "$3.00",
			Medium: "$3.50",
			Large:  "$4.00",
			Venti:  "$4.50",
		},
	}
}

func newTestController(s *cart.Store) *Controller {
	c := NewController(s, nil)
	c.SetCooldown(10 * time.Millisecond)
	return c
}

func TestOpenPopulatesView(t *testing.T) {
	c := newTestController(cart.NewStore())

	v, err := c.Open(multiSizeLatte())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !v.MultiSize {
		t.Fatalf("expected multi-size view")
	}
	if v.Tiers.Venti != "$4.50" {
		t.Fatalf("venti price=%q", v.Tiers.Venti)
	}
	if c.State() != StateOpen {
		t.Fatalf("state=%v", c.State())
	}
	if !c.AddEnabled() {
		t.Fatalf("add control should be enabled")
	}
}

func TestOpenRejectsNamelessCard(t *testing.T) {
	c := newTestController(cart.NewStore())
	if _, err := c.Open(menu.Descriptor{Price: "$1.00"}); !errors.Is(err, menu.ErrNoName) {
		t.Fatalf("err=%v", err)
	}
	if c.State() != StateClosed {
		t.Fatalf("state=%v", c.State())
	}
}

func TestAddWithChosenSize(t *testing.T) {
	s := cart.NewStore()
	c := newTestController(s)

	if _, err := c.Open(multiSizeLatte()); err != nil {
		t.Fatalf("open: %v", err)
	}

	p, err := c.Add("large")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.Name != "Latte (large)" {
		t.Fatalf("name=%q", p.Name)
	}
	if p.Price != "$4.00" {
		t.Fatalf("price=%q", p.Price)
	}

	items := s.Items()
	if len(items) != 1 || items[0].Name != "Latte (large)" || items[0].Quantity != 1 {
		t.Fatalf("items=%+v", items)
	}
	if c.State() != StateClosed {
		t.Fatalf("add should close the detail view")
	}
}

func TestAddFallbackOrder(t *testing.T) {
	cases := []struct {
		name string
		d    menu.Descriptor
		want string
	}{
		{"flat wins", menu.Descriptor{Name: "X", Price: "$2.00", Tiers: menu.SizeTiers{Normal: "$3.00"}}, "$2.00"},
		{"then normal", menu.Descriptor{Name: "X", Tiers: menu.SizeTiers{Normal: "$3.00", Venti: "$4.50"}}, "$3.00"},
		{"then medium", menu.Descriptor{Name: "X", Tiers: menu.SizeTiers{Medium: "$3.50", Venti: "$4.50"}}, "$3.50"},
		{"then large", menu.Descriptor{Name: "X", Tiers: menu.SizeTiers{Large: "$4.00", Venti: "$4.50"}}, "$4.00"},
		{"then venti", menu.Descriptor{Name: "X", Tiers: menu.SizeTiers{Venti: "$4.50"}}, "$4.50"},
		{"zero last", menu.Descriptor{Name: "X"}, "$0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController(cart.NewStore())
			if _, err := c.Open(tc.d); err != nil {
				t.Fatalf("open: %v", err)
			}

			p, err := c.Add("")
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if p.Price != tc.want {
				t.Fatalf("price=%q want=%q", p.Price, tc.want)
			}
			if p.Name != "X" {
				t.Fatalf("fallback must not append a size suffix, name=%q", p.Name)
			}
		})
	}
}

func TestAddUnknownSizeFallsBack(t *testing.T) {
	c := newTestController(cart.NewStore())
	d := multiSizeLatte()
	if _, err := c.Open(d); err != nil {
		t.Fatalf("open: %v", err)
	}

	p, err := c.Add("grande")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.Price != "$3.00" || p.Name != "Latte" {
		t.Fatalf("got name=%q price=%q", p.Name, p.Price)
	}
}

func TestAddWithoutOpen(t *testing.T) {
	c := newTestController(cart.NewStore())
	if _, err := c.Add("large"); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("err=%v", err)
	}
}

func TestCloseDiscardsStagedProduct(t *testing.T) {
	s := cart.NewStore()
	c := newTestController(s)

	if _, err := c.Open(multiSizeLatte()); err != nil {
		t.Fatalf("open: %v", err)
	}
	c.Close()

	if _, err := c.Add("large"); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("err=%v", err)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("close must not add to cart")
	}
}

func TestAddCooldown(t *testing.T) {
	c := NewController(cart.NewStore(), nil)
	c.SetCooldown(200 * time.Millisecond)

	if _, err := c.Open(multiSizeLatte()); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := c.Add("large"); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Immediately reopened: the add control is still cooling down.
	if _, err := c.Open(multiSizeLatte()); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if c.AddEnabled() {
		t.Fatalf("add control should be disabled during cooldown")
	}
	if _, err := c.Add("large"); !errors.Is(err, ErrCooldown) {
		t.Fatalf("err=%v", err)
	}

	time.Sleep(400 * time.Millisecond)

	if _, err := c.Add("large"); err != nil {
		t.Fatalf("add after cooldown: %v", err)
	}
}
