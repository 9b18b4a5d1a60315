package core

import "testing"

func TestPointAdd(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		v    Vector
		want Point
	}{
		{"up", Point{1, 1}, Up, Point{1, 2}},
		{"down", Point{1, 1}, Down, Point{1, 0}},
		{"left", Point{1, 1}, Left, Point{0, 1}},
		{"right", Point{1, 1}, Right, Point{2, 1}},
		{"diagonal", Point{0, 0}, Vector{2, 3}, Point{2, 3}},
		{"negative result", Point{0, 0}, Vector{-1, -1}, Point{-1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Add(tt.v); got != tt.want {
				t.Errorf("%v.Add(%v) = %v, want %v", tt.p, tt.v, got, tt.want)
			}
		})
	}
}

func TestVectorScale(t *testing.T) {
	if got := Up.Scale(3); got != (Vector{0, 3}) {
		t.Errorf("Up.Scale(3) = %v, want <+0,+3>", got)
	}
	if got := (Vector{2, -1}).Scale(0); !got.IsZero() {
		t.Errorf("Scale(0) = %v, want zero vector", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 0, 0},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestScreenDraw(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(0, 0, "ab")
	s.Set(4, 1, 'x')
	s.Set(-1, 0, '!') // clipped
	s.Set(5, 0, '!')  // clipped

	if got := s.Get(0, 0); got != 'a' {
		t.Errorf("Get(0,0) = %q, want 'a'", got)
	}
	if got := s.Get(9, 9); got != ' ' {
		t.Errorf("out-of-bounds Get = %q, want space", got)
	}

	want := "ab\n    x"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
