package wm

// stacker allocates stack order values and tracks the single focused window.
type stacker struct {
	counter   uint64
	focusedID string
}

// bringToFront gives w the next stack order value and focus. Every call
// bumps the counter, so the most-recently-interacted window is always
// topmost among visible windows.
func (s *stacker) bringToFront(w *Window) {
	s.counter++
	w.StackOrder = s.counter
	s.focusedID = w.ID
}

// releaseFocus drops focus held by id and transfers it to the visible window
// with the highest stack order among remaining, or to none.
func (s *stacker) releaseFocus(id string, remaining []*Window) {
	if s.focusedID != id {
		return
	}
	s.focusedID = ""
	var top *Window
	for _, w := range remaining {
		if w.ID == id || !w.visible() {
			continue
		}
		if top == nil || w.StackOrder > top.StackOrder {
			top = w
		}
	}
	if top != nil {
		s.focusedID = top.ID
	}
}

func (s *stacker) focused() string {
	return s.focusedID
}
