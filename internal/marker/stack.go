package marker

// Stack is the ordered record of currently open begin markers,
// last-in-first-out. It never holds end markers.
type Stack struct {
	open []Line
}

// Push records an open begin marker.
func (s *Stack) Push(l Line) {
	s.open = append(s.open, l)
}

// Pop removes and returns the most recently opened marker.
// ok is false when the stack is empty.
func (s *Stack) Pop() (l Line, ok bool) {
	if len(s.open) == 0 {
		return Line{}, false
	}
	l = s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	return l, true
}

// Depth returns the number of open markers.
func (s *Stack) Depth() int {
	return len(s.open)
}

// Open returns the still-open markers in the order they were opened.
func (s *Stack) Open() []Line {
	out := make([]Line, len(s.open))
	copy(out, s.open)
	return out
}
