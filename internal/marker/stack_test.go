package marker

import "testing"

func TestStackLIFO(t *testing.T) {
	var s Stack

	s.Push(Line{Num: 1})
	s.Push(Line{Num: 5})

	if s.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", s.Depth())
	}

	l, ok := s.Pop()
	if !ok || l.Num != 5 {
		t.Errorf("Pop() = %v, %v; want line 5", l.Num, ok)
	}
	l, ok = s.Pop()
	if !ok || l.Num != 1 {
		t.Errorf("Pop() = %v, %v; want line 1", l.Num, ok)
	}

	if _, ok := s.Pop(); ok {
		t.Error("Pop() on empty stack should report not ok")
	}
}

func TestStackOpenOrder(t *testing.T) {
	var s Stack
	s.Push(Line{Num: 2})
	s.Push(Line{Num: 7})
	s.Push(Line{Num: 11})

	open := s.Open()
	if len(open) != 3 {
		t.Fatalf("Open() returned %d entries, want 3", len(open))
	}
	for i, want := range []int{2, 7, 11} {
		if open[i].Num != want {
			t.Errorf("Open()[%d].Num = %d, want %d", i, open[i].Num, want)
		}
	}

	// Mutating the copy must not affect the stack.
	open[0].Num = 99
	if s.Open()[0].Num != 2 {
		t.Error("Open() must return a copy")
	}
}
