// Package storage provides the key-value substrate the cart persists
// into. Values are opaque strings; the whole cart is one blob per key.
package storage

import "sync"

type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Mem is a map-backed KV for tests and the "memory" driver.
type Mem struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMem() *Mem {
	return &Mem{m: map[string]string{}}
}

func (s *Mem) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Mem) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *Mem) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Faulty wraps a KV and fails every operation with Err. Used to exercise
// the degraded-storage paths.
type Faulty struct {
	Err error
}

func (f Faulty) Get(string) (string, bool, error) { return "", false, f.Err }
func (f Faulty) Set(string, string) error         { return f.Err }
func (f Faulty) Delete(string) error              { return f.Err }
