package plugin

import (
	"sync"
)

// Plugin is a chart rendering capability that renderers can use once it has
// been registered.
type Plugin string

// Chart plugins.
const (
	CategoryScale Plugin = "category-scale"
	LinearScale   Plugin = "linear-scale"
	TimeScale     Plugin = "time-scale"
	PointElement  Plugin = "point-element"
	LineElement   Plugin = "line-element"
	Title         Plugin = "title"
	Tooltip       Plugin = "tooltip"
	Legend        Plugin = "legend"
	Zoom          Plugin = "zoom"
	Colors        Plugin = "colors"
)

// Defaults are the plugins a line chart panel needs.
var Defaults = []Plugin{
	CategoryScale,
	LinearScale,
	PointElement,
	LineElement,
	Title,
	Tooltip,
	Legend,
	TimeScale,
	Zoom,
	Colors,
}

// Registry is a set of registered plugins safe for concurrent use.
// Registering an already registered plugin is a no-op.
type Registry struct {
	mu      sync.RWMutex
	plugins map[Plugin]struct{}
	order   []Plugin
	once    sync.Once
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: map[Plugin]struct{}{}}
}

// Register registers the plugins.
func (r *Registry) Register(ps ...Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range ps {
		if _, ok := r.plugins[p]; ok {
			continue
		}
		r.plugins[p] = struct{}{}
		r.order = append(r.order, p)
	}
}

// RegisterDefaults registers the default plugins the first time it's called,
// the next calls do nothing.
func (r *Registry) RegisterDefaults() {
	r.once.Do(func() {
		r.Register(Defaults...)
	})
}

// Has returns true if the plugin is registered.
func (r *Registry) Has(p Plugin) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.plugins[p]
	return ok
}

// List returns the registered plugins in registration order.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]Plugin, len(r.order))
	copy(res, r.order)
	return res
}

// Global is the process wide registry.
var Global = NewRegistry()
