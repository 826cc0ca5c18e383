package glide

import "testing"

func TestRectDerived(t *testing.T) {
	r := Rect{Top: 100, Left: 10, Width: 50, Height: 20}
	if got := r.Right(); got != 60 {
		t.Errorf("Right: got %v, want 60", got)
	}
	if got := r.Bottom(); got != 120 {
		t.Errorf("Bottom: got %v, want 120", got)
	}
	if got := r.CenterY(); got != 110 {
		t.Errorf("CenterY: got %v, want 110", got)
	}
}

func TestRectTranslate(t *testing.T) {
	r := Rect{Top: 5, Left: 10, Width: 30, Height: 1}
	got := r.Translate(0, -3)
	want := Rect{Top: 2, Left: 10, Width: 30, Height: 1}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	// The receiver is untouched.
	if r.Top != 5 {
		t.Errorf("receiver mutated: %+v", r)
	}
}

func TestRectUnion(t *testing.T) {
	t.Run("envelope is exact min/max", func(t *testing.T) {
		a := Rect{Top: 100, Left: 0, Width: 50, Height: 20}
		b := Rect{Top: 98, Left: 60, Width: 40, Height: 20}
		got := a.Union(b)
		want := Rect{Top: 98, Left: 0, Width: 100, Height: 22}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("union with contained rect is identity", func(t *testing.T) {
		a := Rect{Top: 0, Left: 0, Width: 100, Height: 10}
		b := Rect{Top: 2, Left: 10, Width: 20, Height: 5}
		if got := a.Union(b); got != a {
			t.Errorf("got %+v, want %+v", got, a)
		}
	})
}

func TestRectIntersects(t *testing.T) {
	a := Rect{Top: 0, Left: 0, Width: 10, Height: 10}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", Rect{Top: 5, Left: 5, Width: 10, Height: 10}, true},
		{"touching edges only", Rect{Top: 0, Left: 10, Width: 5, Height: 5}, false},
		{"disjoint", Rect{Top: 20, Left: 20, Width: 5, Height: 5}, false},
		{"contained", Rect{Top: 2, Left: 2, Width: 2, Height: 2}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Intersects(tc.b); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Top: 10, Left: 10, Width: 10, Height: 2}
	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(20, 10) {
		t.Error("right edge is exclusive")
	}
	if r.Contains(15, 12) {
		t.Error("bottom edge is exclusive")
	}
}
