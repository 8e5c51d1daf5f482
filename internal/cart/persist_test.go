package cart

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"MenuCart/internal/storage"
)

func TestAdapter_RoundTrip(t *testing.T) {
	kv := storage.NewMem()
	a := NewAdapter(kv, "", zap.NewNop())
	require.True(t, a.Usable())

	items := []LineItem{
		{Name: "Latte (large)", Price: "$4.00", Image: "/img/latte.jpg", Quantity: 2},
		{Name: "Croissant", Price: "$3.25", Image: "/img/croissant.jpg", Quantity: 1},
	}
	require.NoError(t, a.Save(items))

	got, err := a.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(items, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapter_ProbeLeavesNoSentinel(t *testing.T) {
	kv := storage.NewMem()
	NewAdapter(kv, "", zap.NewNop())

	_, ok, err := kv.Get(sentinelKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdapter_MissingKeyLoadsEmpty(t *testing.T) {
	a := NewAdapter(storage.NewMem(), "", zap.NewNop())

	got, err := a.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAdapter_MalformedPayload(t *testing.T) {
	for _, payload := range []string{"not json", `"a string"`, "42", "[1,2,3]"} {
		kv := storage.NewMem()
		require.NoError(t, kv.Set(DefaultKey, payload))

		a := NewAdapter(kv, "", zap.NewNop())
		_, err := a.Load()
		assert.ErrorIs(t, err, ErrMalformed, "payload %q", payload)
	}
}

func TestAdapter_UnusableStorageDegrades(t *testing.T) {
	a := NewAdapter(storage.Faulty{Err: errors.New("quota exceeded")}, "", zap.NewNop())
	assert.False(t, a.Usable())

	require.NoError(t, a.Save([]LineItem{{Name: "Latte", Price: "$4.50", Quantity: 1}}))

	got, err := a.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHydrate_WritesThrough(t *testing.T) {
	kv := storage.NewMem()

	a := NewAdapter(kv, "", zap.NewNop())
	s := NewStore()
	a.Hydrate(s)

	s.Add(Product{Name: "Latte", Price: "$4.50"})
	s.Add(Product{Name: "Latte", Price: "$4.50"})

	// A fresh store hydrated from the same substrate sees the mutation.
	s2 := NewStore()
	NewAdapter(kv, "", zap.NewNop()).Hydrate(s2)

	items := s2.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "$4.50", items[0].Price)
}

func TestHydrate_MalformedStartsEmpty(t *testing.T) {
	kv := storage.NewMem()
	require.NoError(t, kv.Set(DefaultKey, "{{{"))

	s := NewStore()
	NewAdapter(kv, "", zap.NewNop()).Hydrate(s)

	assert.Empty(t, s.Items())
}

func TestHydrate_DropsInvalidEntries(t *testing.T) {
	kv := storage.NewMem()
	require.NoError(t, kv.Set(DefaultKey,
		`{"items":[{"name":"Latte","price":"$4.50","quantity":2},{"name":"","quantity":1},{"name":"Ghost","quantity":0}]}`))

	s := NewStore()
	NewAdapter(kv, "", zap.NewNop()).Hydrate(s)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Latte", items[0].Name)
}
