package character

import (
	"fmt"
	"strings"
)

// Registry resolves career names to definitions. It is an explicit object
// rather than package state so tests and callers can scope their own.
type Registry struct {
	careers map[string]*Career
	order   []string
}

// NewRegistry creates an empty career registry.
func NewRegistry() *Registry {
	return &Registry{careers: make(map[string]*Career)}
}

// Register adds or replaces a career, keyed case-insensitively by name.
func (r *Registry) Register(c *Career) {
	key := strings.ToLower(c.Name)
	if _, exists := r.careers[key]; !exists {
		r.order = append(r.order, key)
	}
	r.careers[key] = c
}

// Get looks up a career by name.
func (r *Registry) Get(name string) (*Career, error) {
	c, ok := r.careers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("career %q is not registered", name)
	}
	return c, nil
}

// Careers returns all careers in registration order.
func (r *Registry) Careers() []*Career {
	out := make([]*Career, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.careers[key])
	}
	return out
}

// DefaultRegistry returns a registry seeded with the built-in sample
// careers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewCareer("Soldier", []Advance{
		{Name: "Basic Training", XPCost: 100, Page: 45},
		{Name: "Shield Wall", XPCost: 150, Page: 47, Prerequisites: []string{"Basic Training"}},
		{Name: "Sound Constitution", XPCost: 100, Page: 48, MaxPurchases: 3},
		{Name: "Battlefield Commander", XPCost: 300, Page: 52, Prerequisites: []string{"Shield Wall"}},
	}))
	r.Register(NewCareer("Acolyte", []Advance{
		{Name: "Initiate's Blessing", XPCost: 100, Page: 78},
		{Name: "Sacred Ward", XPCost: 200, Page: 82, Prerequisites: []string{"Initiate's Blessing"}},
		{Name: "Miracle Worker", XPCost: 400, Page: 90, Prerequisites: []string{"Sacred Ward"}},
	}))
	return r
}
