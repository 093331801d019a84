package calculation

// History is the ordered, append-only log of calculations for one session.
type History struct {
	items []Calculation
}

func NewHistory() *History { return &History{} }

// Add appends c. It does not check that c computes.
func (h *History) Add(c Calculation) {
	h.items = append(h.items, c)
}

// All returns a copy of the log in insertion order.
func (h *History) All() []Calculation {
	out := make([]Calculation, len(h.items))
	copy(out, h.items)
	return out
}

func (h *History) Len() int { return len(h.items) }

// Clear empties the log.
func (h *History) Clear() {
	h.items = nil
}
