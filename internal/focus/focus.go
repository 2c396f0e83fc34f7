// Package focus tracks keyboard focus across a page's focusable elements.
package focus

// Manager tracks and rotates focus across an ordered set of element IDs.
// Order is the document tab order; elements join and leave as they mount.
type Manager struct {
	Current  string   // ID of the focused element, "" when nothing is focused
	Order    []string // Tab order
	OnChange func(from, to string)
}

// Next advances focus to the next element in order, wrapping at the end.
// Returns the new current focus ID.
func (f *Manager) Next() string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.indexOf(f.Current)
	f.move(f.Order[(idx+1)%len(f.Order)])
	return f.Current
}

// Prev moves focus to the previous element in order, wrapping at the start.
func (f *Manager) Prev() string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.indexOf(f.Current) - 1
	if idx < 0 {
		idx = len(f.Order) - 1
	}
	f.move(f.Order[idx])
	return f.Current
}

// SetFocus focuses the given element.
// Returns false (and leaves focus alone) if the ID is not mounted.
func (f *Manager) SetFocus(id string) bool {
	if !f.Has(id) {
		return false
	}
	f.move(id)
	return true
}

// Blur clears focus.
func (f *Manager) Blur() {
	f.move("")
}

// Has reports whether id is a mounted focusable element.
func (f *Manager) Has(id string) bool {
	return id != "" && f.indexOf(id) >= 0
}

// Add mounts elements at the end of the tab order. Existing IDs are skipped.
func (f *Manager) Add(ids ...string) {
	for _, id := range ids {
		if id != "" && !f.Has(id) {
			f.Order = append(f.Order, id)
		}
	}
}

// Remove unmounts elements. Removing the focused element clears focus.
func (f *Manager) Remove(ids ...string) {
	for _, id := range ids {
		idx := f.indexOf(id)
		if idx < 0 {
			continue
		}
		f.Order = append(f.Order[:idx:idx], f.Order[idx+1:]...)
		if f.Current == id {
			f.move("")
		}
	}
}

func (f *Manager) move(to string) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}

func (f *Manager) indexOf(id string) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}

// Trap confines Tab/Shift+Tab traversal to a subset of elements.
type Trap struct {
	IDs []string
}

// Contains reports whether id is inside the trap.
func (t Trap) Contains(id string) bool {
	for _, o := range t.IDs {
		if o == id {
			return true
		}
	}
	return false
}

// Next returns the element after current, wrapping from last to first.
// From outside the trap it returns the first element.
func (t Trap) Next(current string) string {
	if len(t.IDs) == 0 {
		return ""
	}
	for i, id := range t.IDs {
		if id == current {
			return t.IDs[(i+1)%len(t.IDs)]
		}
	}
	return t.IDs[0]
}

// Prev returns the element before current, wrapping from first to last.
// From outside the trap it returns the last element.
func (t Trap) Prev(current string) string {
	if len(t.IDs) == 0 {
		return ""
	}
	for i, id := range t.IDs {
		if id == current {
			return t.IDs[(i-1+len(t.IDs))%len(t.IDs)]
		}
	}
	return t.IDs[len(t.IDs)-1]
}
