package sim

import "testing"

func TestBoundsField_ClampAndContains(t *testing.T) {
	b := NewBoundsField(Position{}, Position{X: 10, Y: 10})

	if !b.Contains(Position{X: 5, Y: 5}, 0.3) {
		t.Fatal("interior footprint should be contained")
	}
	if b.Contains(Position{X: 0.1, Y: 5}, 0.3) {
		t.Fatal("footprint poking past the edge should not be contained")
	}

	p := b.Clamp(Position{X: -4, Y: 12}, 0.3)
	if p.X != 0.3 || p.Y != 9.7 {
		t.Fatalf("expected clamp to (0.3,9.7), got (%f,%f)", p.X, p.Y)
	}

	w, h := b.Size()
	if w != 10 || h != 10 {
		t.Fatalf("expected 10x10 bounds, got %fx%f", w, h)
	}
}

func TestBoundsField_ObstaclePushOut(t *testing.T) {
	b := NewBoundsField(Position{}, Position{X: 10, Y: 10})
	b.AddObstacle(Position{X: 5, Y: 5}, 1.0)

	if b.Contains(Position{X: 5.5, Y: 5}, 0.3) {
		t.Fatal("footprint overlapping the obstacle should not be contained")
	}

	// Overlapping point is pushed radially to the combined radius.
	p := b.Clamp(Position{X: 5.5, Y: 5}, 0.3)
	if d := p.Distance(Position{X: 5, Y: 5}); d < 1.3-1e-9 {
		t.Fatalf("clamped point still overlaps the obstacle, distance %f", d)
	}
	if p.Y != 5 || p.X <= 5.5 {
		t.Fatalf("push-out should stay on the radial line, got (%f,%f)", p.X, p.Y)
	}

	// Dead centre resolves deterministically straight up.
	p = b.Clamp(Position{X: 5, Y: 5}, 0.3)
	if p.X != 5 || p.Y != 5-1.3 {
		t.Fatalf("dead-centre clamp should push straight up, got (%f,%f)", p.X, p.Y)
	}

	// Zero or negative radius obstacles are ignored.
	b.AddObstacle(Position{X: 2, Y: 2}, 0)
	if !b.Contains(Position{X: 2, Y: 2}, 0.3) {
		t.Fatal("zero-radius obstacle must be a no-op")
	}
}

func TestBoundsField_NormalisesCorners(t *testing.T) {
	b := NewBoundsField(Position{X: 10, Y: 10}, Position{})
	if !b.Contains(Position{X: 5, Y: 5}, 0.3) {
		t.Fatal("swapped corners should still describe the same rectangle")
	}
}
