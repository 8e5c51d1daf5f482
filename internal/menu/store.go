package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type Store interface {
	List(ctx context.Context) ([]Descriptor, error)
	Get(ctx context.Context, id string) (Descriptor, bool, error)
	Ping(ctx context.Context) error
}

// MemStore keeps the menu in memory in display order.
type MemStore struct {
	mu    sync.RWMutex
	m     map[string]Descriptor
	order []string
}

func NewMemStore() *MemStore {
	s := &MemStore{m: map[string]Descriptor{}}
	for _, d := range defaultMenu {
		s.put(d)
	}
	return s
}

// NewMemStoreFromFile loads a menu from a JSON array of card attribute
// maps, adapting each entry through FromAttrs.
func NewMemStoreFromFile(path string) (*MemStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}

	var cards []map[string]string
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("decode menu file: %w", err)
	}

	s := &MemStore{m: map[string]Descriptor{}}
	for i, attrs := range cards {
		d, err := FromAttrs(attrs)
		if err != nil {
			return nil, fmt.Errorf("menu card %d: %w", i, err)
		}
		if d.ID == "" {
			return nil, fmt.Errorf("menu card %d: id missing", i)
		}
		s.put(d)
	}
	return s, nil
}

func (s *MemStore) put(d Descriptor) {
	if _, ok := s.m[d.ID]; !ok {
		s.order = append(s.order, d.ID)
	}
	s.m[d.ID] = d
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Descriptor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.m[id])
	}
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Descriptor, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.m[id]
	return d, ok, nil
}

var defaultMenu = []Descriptor{
	{
		ID:          "espresso",
		Name:        "Espresso",
		Description: "Double shot, pulled short.",
		Image:       "/img/espresso.jpg",
		Price:       "$2.50",
	},
	{
		ID:          "latte",
		Name:        "Latte",
		Description: "Espresso with steamed milk.",
		Image:       "/img/latte.jpg",
		Tiers: SizeTiers{
			Normal: "$4.50",
			Medium: "$5.00",
			Large:  "$5.50",
			Venti:  "$6.00",
		},
	},
	{
		ID:          "cappuccino",
		Name:        "Cappuccino",
		Description: "Equal parts espresso, milk, foam.",
		Image:       "/img/cappuccino.jpg",
		Tiers: SizeTiers{
			Normal: "$4.00",
			Medium: "$4.50",
			Large:  "$5.00",
			Venti:  "$5.50",
		},
	},
	{
		ID:          "croissant",
		Name:        "Butter Croissant",
		Description: "Baked every morning.",
		Image:       "/img/croissant.jpg",
		Price:       "$3.25",
	},
}
