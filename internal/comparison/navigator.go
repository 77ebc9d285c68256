package comparison

import (
	"sort"

	"cartscout-backend/internal/models"
)

// Navigator tracks the transient view state over an ordered list of per-shop
// comparisons: the selected index (cyclic) and the set of line items whose
// detail view is toggled open. It holds no comparison data itself; the list
// length is passed to each transition because the server recomputes the list
// on every fetch.
type Navigator struct {
	index   int
	flipped map[string]struct{}
}

func NewNavigator() *Navigator {
	return &Navigator{flipped: make(map[string]struct{})}
}

// FromState rebuilds a navigator from persisted session state.
func FromState(state models.NavigatorState) *Navigator {
	n := NewNavigator()
	n.index = state.Index
	for _, key := range state.FlippedItems {
		n.flipped[key] = struct{}{}
	}
	return n
}

// State captures the navigator for persistence. Flipped keys are sorted so
// the serialized form is stable.
func (n *Navigator) State() models.NavigatorState {
	keys := make([]string, 0, len(n.flipped))
	for key := range n.flipped {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return models.NavigatorState{Index: n.index, FlippedItems: keys}
}

// Index returns the currently selected shop index.
func (n *Navigator) Index() int {
	return n.index
}

// Clamp resets the index to zero when it no longer addresses the list. The
// comparison list is recomputed upstream on every fetch, so a stale index can
// outlive the shop it pointed at.
func (n *Navigator) Clamp(count int) {
	if count <= 0 || n.index >= count || n.index < 0 {
		n.index = 0
	}
}

// Next advances to the following shop, wrapping at the end. A transition on
// an empty list is a no-op. Every transition collapses all open detail views.
func (n *Navigator) Next(count int) {
	if count <= 0 {
		return
	}
	n.index = (n.index + 1) % count
	n.clearFlips()
}

// Prev moves to the preceding shop, wrapping at the start.
func (n *Navigator) Prev(count int) {
	if count <= 0 {
		return
	}
	n.index = (n.index - 1 + count) % count
	n.clearFlips()
}

// GoTo selects a shop index directly. Every attempt collapses the detail
// views, even when an out-of-range index leaves the selection where it was.
func (n *Navigator) GoTo(index, count int) {
	if count <= 0 {
		return
	}
	n.clearFlips()
	if index < 0 || index >= count {
		return
	}
	n.index = index
}

// MoreThanOne reports whether navigation controls are meaningful at all.
func (n *Navigator) MoreThanOne(count int) bool {
	return count > 1
}

// ToggleFlip toggles the detail state of one line item, independent of
// navigation.
func (n *Navigator) ToggleFlip(itemKey string) {
	if _, ok := n.flipped[itemKey]; ok {
		delete(n.flipped, itemKey)
		return
	}
	n.flipped[itemKey] = struct{}{}
}

// IsFlipped reports whether a line item's detail view is open.
func (n *Navigator) IsFlipped(itemKey string) bool {
	_, ok := n.flipped[itemKey]
	return ok
}

func (n *Navigator) clearFlips() {
	n.flipped = make(map[string]struct{})
}
