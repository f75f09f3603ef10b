package gjk

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lodehart/keel/shape"
)

func mustBox(t *testing.T, min, max mgl64.Vec2) *shape.Polygon {
	t.Helper()
	p, err := shape.Box(min, max)
	if err != nil {
		t.Fatalf("Box(%v, %v): %v", min, max, err)
	}
	return p
}

func mustCircle(t *testing.T, center mgl64.Vec2, radius float64) *shape.Circle {
	t.Helper()
	c, err := shape.NewCircle(center, radius)
	if err != nil {
		t.Fatalf("NewCircle(%v, %v): %v", center, radius, err)
	}
	return c
}

func TestSimplex(t *testing.T) {
	t.Run("add and access", func(t *testing.T) {
		var s Simplex
		s.Add(mgl64.Vec2{1, 0})
		s.Add(mgl64.Vec2{2, 0})
		s.Add(mgl64.Vec2{3, 0})

		if s.Len() != 3 {
			t.Fatalf("expected 3 points, got %d", s.Len())
		}
		if s.Last() != (mgl64.Vec2{3, 0}) {
			t.Errorf("Last() = %v", s.Last())
		}
	})

	t.Run("remove preserves order", func(t *testing.T) {
		var s Simplex
		s.Add(mgl64.Vec2{1, 0})
		s.Add(mgl64.Vec2{2, 0})
		s.Add(mgl64.Vec2{3, 0})
		s.Remove(1)

		if s.Len() != 2 {
			t.Fatalf("expected 2 points, got %d", s.Len())
		}
		if s.At(0) != (mgl64.Vec2{1, 0}) || s.At(1) != (mgl64.Vec2{3, 0}) {
			t.Errorf("unexpected order after remove: %v, %v", s.At(0), s.At(1))
		}
	})

	t.Run("points returns a copy", func(t *testing.T) {
		var s Simplex
		s.Add(mgl64.Vec2{1, 2})
		pts := s.Points()
		pts[0] = mgl64.Vec2{9, 9}
		if s.At(0) != (mgl64.Vec2{1, 2}) {
			t.Error("Points() aliases simplex storage")
		}
	})
}

func TestSupport(t *testing.T) {
	a := mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10})
	b := mustBox(t, mgl64.Vec2{20, 0}, mgl64.Vec2{30, 10})

	// Furthest point of A in +x minus nearest point of B.
	got := Support(a, b, mgl64.Vec2{1, 0})
	if got.X() != -10 {
		t.Errorf("Support x = %v, want -10", got.X())
	}
}

func TestDetect(t *testing.T) {
	solver := NewSolver(DefaultTuning())

	cases := []struct {
		name string
		a, b shape.Shape
		want bool
	}{
		{
			"overlapping squares",
			mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10}),
			mustBox(t, mgl64.Vec2{5, 5}, mgl64.Vec2{15, 15}),
			true,
		},
		{
			"disjoint squares",
			mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10}),
			mustBox(t, mgl64.Vec2{20, 0}, mgl64.Vec2{30, 10}),
			false,
		},
		{
			"corner touch",
			mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10}),
			mustBox(t, mgl64.Vec2{10, 10}, mgl64.Vec2{20, 20}),
			false,
		},
		{
			"edge touch",
			mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10}),
			mustBox(t, mgl64.Vec2{10, 0}, mgl64.Vec2{20, 10}),
			false,
		},
		{
			// The shared edge is offset, so the first supports of the two
			// shapes differ and the touch is only discovered mid-simplex.
			"offset flush touch",
			mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10}),
			mustBox(t, mgl64.Vec2{10, -2}, mgl64.Vec2{20, 8}),
			false,
		},
		{
			"contained square",
			mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10}),
			mustBox(t, mgl64.Vec2{4, 4}, mgl64.Vec2{6, 6}),
			true,
		},
		{
			"circle overlapping square",
			mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10}),
			mustCircle(t, mgl64.Vec2{12, 5}, 5),
			true,
		},
		{
			"circle clear of square",
			mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10}),
			mustCircle(t, mgl64.Vec2{20, 5}, 5),
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := solver.Detect(tc.a, tc.b)
			if err != nil {
				t.Fatal(err)
			}
			if st.Colliding != tc.want {
				t.Errorf("Colliding = %v, want %v", st.Colliding, tc.want)
			}
		})
	}

	t.Run("symmetric verdict", func(t *testing.T) {
		a := mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10})
		b := mustBox(t, mgl64.Vec2{7, 3}, mgl64.Vec2{17, 13})

		ab, err := solver.Detect(a, b)
		if err != nil {
			t.Fatal(err)
		}
		ba, err := solver.Detect(b, a)
		if err != nil {
			t.Fatal(err)
		}
		if ab.Colliding != ba.Colliding {
			t.Errorf("Detect(a,b) = %v but Detect(b,a) = %v", ab.Colliding, ba.Colliding)
		}
	})

	t.Run("exhausted iterations report convergence failure", func(t *testing.T) {
		tuning := DefaultTuning()
		tuning.GJKIterations = 1
		starved := NewSolver(tuning)

		a := mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10})
		b := mustBox(t, mgl64.Vec2{5, 3}, mgl64.Vec2{15, 13})

		_, err := starved.Detect(a, b)
		var cerr *ConvergenceError
		if !errors.As(err, &cerr) {
			t.Fatalf("expected ConvergenceError, got %v", err)
		}
		if cerr.Stage != "gjk" || cerr.Iterations != 1 {
			t.Errorf("unexpected error detail: %+v", cerr)
		}
	})
}

func TestDistance(t *testing.T) {
	solver := NewSolver(DefaultTuning())

	resolve := func(t *testing.T, a, b shape.Shape) mgl64.Vec2 {
		t.Helper()
		st, err := solver.Detect(a, b)
		if err != nil {
			t.Fatal(err)
		}
		if st.Colliding {
			t.Fatal("shapes unexpectedly colliding")
		}
		vec, err := solver.Distance(a, b, st)
		if err != nil {
			t.Fatal(err)
		}
		return vec
	}

	t.Run("axis-aligned gap", func(t *testing.T) {
		a := mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10})
		b := mustBox(t, mgl64.Vec2{20, 0}, mgl64.Vec2{30, 10})

		vec := resolve(t, a, b)
		if math.Abs(vec.X()-10) > 1e-9 || math.Abs(vec.Y()) > 1e-9 {
			t.Errorf("expected (10, 0), got %v", vec)
		}
	})

	t.Run("displacement closes the gap", func(t *testing.T) {
		a := mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10})
		b := mustBox(t, mgl64.Vec2{17, 4}, mgl64.Vec2{27, 14})

		vec := resolve(t, a, b)
		moved := a.Translated(vec)

		st, err := solver.Detect(moved, b)
		if err != nil {
			t.Fatal(err)
		}
		if st.Colliding {
			t.Errorf("moving by %v overshot into collision", vec)
		}
		gap, err := solver.Distance(moved, b, st)
		if err != nil {
			t.Fatal(err)
		}
		if gap.Len() > 0.2 {
			t.Errorf("residual gap %v after displacement %v", gap, vec)
		}
	})

	t.Run("touching shapes need no displacement", func(t *testing.T) {
		a := mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10})
		b := mustBox(t, mgl64.Vec2{10, 10}, mgl64.Vec2{20, 20})

		vec := resolve(t, a, b)
		if vec != (mgl64.Vec2{}) {
			t.Errorf("expected zero displacement, got %v", vec)
		}
	})

	t.Run("flush touching shapes need no displacement", func(t *testing.T) {
		a := mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10})
		b := mustBox(t, mgl64.Vec2{10, -2}, mgl64.Vec2{20, 8})

		vec := resolve(t, a, b)
		if vec != (mgl64.Vec2{}) {
			t.Errorf("expected zero displacement, got %v", vec)
		}
	})

	t.Run("circle gap", func(t *testing.T) {
		a := mustBox(t, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10})
		b := mustCircle(t, mgl64.Vec2{20, 5}, 5)

		vec := resolve(t, a, b)
		if math.Abs(vec.Len()-5) > 0.25 {
			t.Errorf("expected displacement of length 5, got %v (len %v)", vec, vec.Len())
		}
	})
}
