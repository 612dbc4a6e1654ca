// internal/view/palette.go
package view

import (
	"sort"
	"sync"
)

// Tableau10 is the categorical scheme used for file-type dots.
var Tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// Palette assigns each technology type a stable color for the lifetime of the
// session. Types are assigned in sorted order up front, later unknown types in
// first-seen order, cycling through the scheme.
type Palette struct {
	mu     sync.Mutex
	scheme []string
	colors map[string]string
}

// NewPalette seeds the palette with the known types.
func NewPalette(types ...string) *Palette {
	p := &Palette{scheme: Tableau10, colors: make(map[string]string)}
	sorted := append([]string(nil), types...)
	sort.Strings(sorted)
	for _, t := range sorted {
		p.Color(t)
	}
	return p
}

// Color returns the color of a type, assigning the next free one on first use.
func (p *Palette) Color(typ string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.colors[typ]; ok {
		return c
	}
	c := p.scheme[len(p.colors)%len(p.scheme)]
	p.colors[typ] = c
	return c
}
