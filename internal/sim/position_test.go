package sim

import "testing"

func TestPosition_Arithmetic(t *testing.T) {
	a := Position{X: 1, Y: 2}
	b := Position{X: 4, Y: 6}

	if d := a.Distance(b); d != 5 {
		t.Fatalf("expected distance 5, got %f", d)
	}
	if got := a.Midpoint(b); !got.Equals(Position{X: 2.5, Y: 4}) {
		t.Fatalf("expected midpoint (2.5,4), got (%f,%f)", got.X, got.Y)
	}
	if got := a.Add(b); !got.Equals(Position{X: 5, Y: 8}) {
		t.Fatalf("expected sum (5,8), got (%f,%f)", got.X, got.Y)
	}
	if got := b.Sub(a); !got.Equals(Position{X: 3, Y: 4}) {
		t.Fatalf("expected difference (3,4), got (%f,%f)", got.X, got.Y)
	}
}

func TestPosition_EpsilonEquality(t *testing.T) {
	a := Position{X: 1, Y: 1}
	if !a.Equals(Position{X: 1 + 5e-7, Y: 1 - 5e-7}) {
		t.Fatal("points within epsilon should be equal")
	}
	if a.Equals(Position{X: 1.001, Y: 1}) {
		t.Fatal("points beyond epsilon should differ")
	}
}

func TestPointToSegment(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 10, Y: 0}

	if d := pointToSegmentDist(Position{X: 5, Y: 3}, a, b); d != 3 {
		t.Fatalf("perpendicular distance should be 3, got %f", d)
	}
	// Beyond the endpoints the nearest point clamps to the endpoint.
	if d := pointToSegmentDist(Position{X: 13, Y: 4}, a, b); d != 5 {
		t.Fatalf("clamped distance should be 5, got %f", d)
	}
	// Degenerate zero-length segment measures to its single point.
	if d := pointToSegmentDist(Position{X: 3, Y: 4}, a, a); d != 5 {
		t.Fatalf("degenerate segment distance should be 5, got %f", d)
	}
}
