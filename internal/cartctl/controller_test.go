package cartctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MenuCart/internal/cart"
	"MenuCart/internal/cartview"
)

func newTestController() (*Controller, *cart.Store) {
	s := cart.NewStore()
	return NewController(s, cartview.New(), nil), s
}

func TestOpenRendersCurrentCart(t *testing.T) {
	c, s := newTestController()
	s.Add(cart.Product{Name: "Latte", Price: "$4.50"})

	v := c.Open()

	assert.True(t, c.IsOpen())
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "$4.50", v.Total)

	c.Close()
	assert.False(t, c.IsOpen())
	assert.Len(t, s.Items(), 1, "close leaves the cart alone")
}

func TestDispatch(t *testing.T) {
	c, s := newTestController()
	s.Add(cart.Product{Name: "Latte", Price: "$4.50"})

	v, err := c.Dispatch(ActionIncrease, "Latte")
	require.NoError(t, err)
	assert.Equal(t, 2, v.Count)

	v, err = c.Dispatch(ActionDecrease, "Latte")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Count)

	v, err = c.Dispatch(ActionRemove, "Latte")
	require.NoError(t, err)
	assert.True(t, v.Empty)
}

func TestDispatch_DecreaseLastRemovesFromRender(t *testing.T) {
	c, s := newTestController()
	s.Add(cart.Product{Name: "Espresso", Price: "$2.50"})

	v, err := c.Dispatch(ActionDecrease, "Espresso")
	require.NoError(t, err)

	assert.True(t, v.Empty)
	assert.Empty(t, s.Items())
}

func TestDispatch_UnknownAction(t *testing.T) {
	c, _ := newTestController()
	_, err := c.Dispatch("explode", "Latte")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestClearNeedsConfirmation(t *testing.T) {
	c, s := newTestController()
	for _, n := range []string{"Espresso", "Latte", "Croissant"} {
		s.Add(cart.Product{Name: n, Price: "$1.00"})
	}

	_, err := c.Clear(false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Len(t, s.Items(), 3)

	v, err := c.Clear(true)
	require.NoError(t, err)
	assert.True(t, v.Empty)
	assert.Empty(t, s.Items())
}

func TestCheckoutReportsTotalOnly(t *testing.T) {
	c, s := newTestController()
	s.Add(cart.Product{Name: "Latte", Price: "$4.50"})
	s.Add(cart.Product{Name: "Latte", Price: "$4.50"})

	m := c.Checkout()

	assert.Equal(t, "$9.00", m.Display())
	assert.Len(t, s.Items(), 1, "checkout must not mutate the cart")
}
