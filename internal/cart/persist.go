package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"MenuCart/internal/storage"
)

const (
	// DefaultKey is the fixed storage key the cart blob lives under.
	DefaultKey = "menucart.cart"

	sentinelKey   = "menucart.probe"
	sentinelValue = "1"
)

// ErrMalformed marks persisted content that is not a cart. Callers
// decide the policy; Hydrate treats it as an empty cart.
var ErrMalformed = errors.New("malformed cart payload")

// Adapter serializes the cart to one key of a KV substrate. The
// substrate is probed once at construction; if the probe fails the
// adapter degrades: Save becomes a no-op and Load returns empty.
type Adapter struct {
	kv     storage.KV
	key    string
	log    *zap.Logger
	usable bool
}

func NewAdapter(kv storage.KV, key string, log *zap.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	a := &Adapter{kv: kv, key: key, log: log}
	a.usable = a.probe()
	if !a.usable && log != nil {
		log.Warn("cart storage unusable, persistence disabled", zap.String("key", key))
	}
	return a
}

// Usable reports whether the startup probe succeeded.
func (a *Adapter) Usable() bool { return a.usable }

func (a *Adapter) probe() bool {
	if err := a.kv.Set(sentinelKey, sentinelValue); err != nil {
		return false
	}
	if err := a.kv.Delete(sentinelKey); err != nil {
		return false
	}
	return true
}

// Items are serialized as an array inside an object wrapper: the array
// keeps insertion order across reloads, the object top level keeps the
// non-object-means-empty rule checkable.
type snapshot struct {
	Items []LineItem `json:"items"`
}

func (a *Adapter) Save(items []LineItem) error {
	if !a.usable {
		return nil
	}

	raw, err := json.Marshal(snapshot{Items: items})
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := a.kv.Set(a.key, string(raw)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// Load reads the persisted cart. A missing key yields an empty cart and
// no error; content that does not decode to an object yields
// ErrMalformed.
func (a *Adapter) Load() ([]LineItem, error) {
	if !a.usable {
		return nil, nil
	}

	raw, ok, err := a.kv.Get(a.key)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return snap.Items, nil
}

// Hydrate applies the default-on-failure policy: load the persisted
// cart into the store, falling back to empty on any failure, and then
// keep the store written through on every mutation.
func (a *Adapter) Hydrate(s *Store) {
	items, err := a.Load()
	if err != nil {
		if a.log != nil {
			a.log.Warn("discarding persisted cart", zap.Error(err))
		}
		items = nil
	}
	if len(items) > 0 {
		s.Replace(items)
	}

	s.OnChange(func(items []LineItem) {
		if err := a.Save(items); err != nil && a.log != nil {
			a.log.Warn("cart write-through failed", zap.Error(err))
		}
	})
}
