package wm

import "sort"

// registry is the authoritative id → window map. It enforces key uniqueness
// and nothing else; lifecycle invariants are the Manager's job.
type registry struct {
	windows map[string]*Window
}

func newRegistry() *registry {
	return &registry{windows: make(map[string]*Window)}
}

// create inserts w and returns it. If a window with the same id already
// exists the existing record is returned unchanged.
func (r *registry) create(w *Window) (*Window, bool) {
	if existing, ok := r.windows[w.ID]; ok {
		return existing, false
	}
	r.windows[w.ID] = w
	return w, true
}

func (r *registry) get(id string) (*Window, bool) {
	w, ok := r.windows[id]
	return w, ok
}

func (r *registry) remove(id string) {
	delete(r.windows, id)
}

func (r *registry) len() int {
	return len(r.windows)
}

// all returns every window ordered by ascending stack order (back to front).
func (r *registry) all() []*Window {
	out := make([]*Window, 0, len(r.windows))
	for _, w := range r.windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StackOrder < out[j].StackOrder
	})
	return out
}
