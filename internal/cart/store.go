package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"MenuCart/internal/price"
)

// LineItem is one named cart entry. Quantity is at least 1 while the
// entry exists; dropping to 0 removes it.
type LineItem struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image,omitempty"`
	Quantity int    `json:"quantity"`
}

// Product is what Add consumes: a required name plus optional display
// fields that default to placeholders.
type Product struct {
	Name  string
	Price string
	Image string
}

const (
	placeholderPrice = "$0.00"
	placeholderImage = "/img/placeholder.jpg"
)

// ChangeFunc observes the cart after every mutation. Write-through
// persistence and the badge refresh hang off this hook.
type ChangeFunc func(items []LineItem)

// Store is the insertion-ordered, name-keyed collection of line items.
// Totals are always derived by folding over the items, never cached.
type Store struct {
	mu       sync.RWMutex
	items    map[string]*LineItem
	order    []string
	onChange []ChangeFunc
}

func NewStore() *Store {
	return &Store{items: map[string]*LineItem{}}
}

func (s *Store) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// Add inserts a new line item with quantity 1, or increments the
// quantity of an existing one. A product without a name is ignored.
func (s *Store) Add(p Product) {
	if p.Name == "" {
		return
	}

	s.mu.Lock()
	if it, ok := s.items[p.Name]; ok {
		it.Quantity++
	} else {
		it := &LineItem{
			Name:     p.Name,
			Price:    p.Price,
			Image:    p.Image,
			Quantity: 1,
		}
		if it.Price == "" {
			it.Price = placeholderPrice
		}
		if it.Image == "" {
			it.Image = placeholderImage
		}
		s.items[p.Name] = it
		s.order = append(s.order, p.Name)
	}
	s.mu.Unlock()

	s.notify()
}

// ChangeQuantity adjusts an item by delta, clamping at zero; a zero
// quantity removes the entry. Unknown names are a no-op.
func (s *Store) ChangeQuantity(name string, delta int) {
	s.mu.Lock()
	it, ok := s.items[name]
	if !ok {
		s.mu.Unlock()
		return
	}

	it.Quantity += delta
	if it.Quantity <= 0 {
		s.deleteLocked(name)
	}
	s.mu.Unlock()

	s.notify()
}

func (s *Store) Remove(name string) {
	s.mu.Lock()
	if _, ok := s.items[name]; !ok {
		s.mu.Unlock()
		return
	}
	s.deleteLocked(name)
	s.mu.Unlock()

	s.notify()
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.items = map[string]*LineItem{}
	s.order = nil
	s.mu.Unlock()

	s.notify()
}

func (s *Store) deleteLocked(name string) {
	delete(s.items, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Items returns copies of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsLocked()
}

func (s *Store) itemsLocked() []LineItem {
	out := make([]LineItem, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.items[name])
	}
	return out
}

// Count is the badge number: the sum of all quantities.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Total folds parsed unit price times quantity over every item.
// Malformed prices count as zero.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, name := range s.order {
		it := s.items[name]
		unit := price.ParseOrZero(it.Price)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Replace swaps the whole cart for the given items, used on hydration.
// Entries without a name or with a non-positive quantity are dropped.
func (s *Store) Replace(items []LineItem) {
	s.mu.Lock()
	s.items = map[string]*LineItem{}
	s.order = nil
	for _, it := range items {
		if it.Name == "" || it.Quantity <= 0 {
			continue
		}
		if _, ok := s.items[it.Name]; ok {
			continue
		}
		cp := it
		s.items[it.Name] = &cp
		s.order = append(s.order, it.Name)
	}
	s.mu.Unlock()

	s.notify()
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]ChangeFunc, len(s.onChange))
	copy(fns, s.onChange)
	items := s.itemsLocked()
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(items)
	}
}
