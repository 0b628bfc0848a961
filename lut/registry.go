package lut

import (
	"slices"
	"sync"

	"golang.org/x/exp/maps"
)

// Registry holds decoded LUTs for a session, keyed by Lut.ID. It is safe
// for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	luts map[string]*Lut
}

func NewRegistry() *Registry {
	return &Registry{
		luts: make(map[string]*Lut),
	}
}

func (r *Registry) Add(l *Lut) {
	if l == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.luts[l.ID] = l
}

func (r *Registry) Get(id string) (*Lut, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.luts[id]
	return l, ok
}

// Active resolves the LUT selected by a settings record; an empty or
// unknown id selects none.
func (r *Registry) Active(id string) *Lut {
	if id == "" {
		return nil
	}
	l, _ := r.Get(id)
	return l
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.luts, id)
}

// IDs lists the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := maps.Keys(r.luts)
	r.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.luts)
}
