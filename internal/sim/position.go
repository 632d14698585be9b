package sim

import "math"

// posEpsilon is the tolerance for positional equality checks.
const posEpsilon = 1e-6

// Position is a world-space point. It is a value type: every operation
// returns a new Position and nothing ever mutates one in place.
type Position struct {
	X, Y float64
}

// Distance returns the Euclidean distance to other.
func (p Position) Distance(other Position) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// DistanceSq returns the squared distance to other. Cheaper than Distance
// for nearest-of comparisons.
func (p Position) DistanceSq(other Position) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return dx*dx + dy*dy
}

// Midpoint returns the point halfway between p and other.
func (p Position) Midpoint(other Position) Position {
	return Position{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// Add returns p translated by other.
func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p minus other.
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// Equals reports whether both components match within posEpsilon.
func (p Position) Equals(other Position) bool {
	return math.Abs(p.X-other.X) <= posEpsilon && math.Abs(p.Y-other.Y) <= posEpsilon
}

// lerp returns the point at parameter t along the segment p→other.
func (p Position) lerp(other Position, t float64) Position {
	return Position{
		X: p.X + (other.X-p.X)*t,
		Y: p.Y + (other.Y-p.Y)*t,
	}
}

// pointToSegmentParam returns the clamped parameter t in [0,1] of the closest
// point on segment a-b to point p.
func pointToSegmentParam(p, a, b Position) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-9 {
		return 0
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// pointToSegmentDist returns the minimum distance from point p to the
// segment a-b.
func pointToSegmentDist(p, a, b Position) float64 {
	t := pointToSegmentParam(p, a, b)
	return p.Distance(a.lerp(b, t))
}
