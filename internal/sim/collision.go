package sim

import "math"

// defaultCollisionRadius is the legacy engine-wide footprint used when a
// query passes a negative moving radius. Per-unit CollisionRadius is the
// source of truth everywhere else.
const defaultCollisionRadius = 0.1

// avoidanceRingScale sizes the candidate ring of the avoidance search
// relative to the moving unit's radius.
const avoidanceRingScale = 2.5

// avoidanceProbes is the number of equally spaced ring candidates.
const avoidanceProbes = 8

// The collision service is a set of pure queries over explicit unit slices.
// Nothing here mutates unit state or retains data across calls; absence of a
// solution is signalled with the unit's own position, never an error.

func effectiveMovingRadius(movingRadius float64) float64 {
	if movingRadius < 0 {
		return defaultCollisionRadius
	}
	return movingRadius
}

// HasCollisionAt reports whether any other living unit's footprint overlaps
// a footprint of movingRadius centred at pos. Strictly less-than: touching
// circles do not collide.
func HasCollisionAt(pos Position, units []*Unit, exclude *Unit, movingRadius float64) bool {
	r := effectiveMovingRadius(movingRadius)
	for _, other := range units {
		if other == exclude || !other.IsAlive() {
			continue
		}
		combined := r + other.Stats().CollisionRadius
		if pos.Distance(other.Position()) < combined {
			return true
		}
	}
	return false
}

// HasCollisionOnPath reports whether a footprint of movingRadius sweeping
// the segment start→end would contact any other living unit.
func HasCollisionOnPath(start, end Position, units []*Unit, exclude *Unit, movingRadius float64) bool {
	r := effectiveMovingRadius(movingRadius)
	for _, other := range units {
		if other == exclude || !other.IsAlive() {
			continue
		}
		combined := r + other.Stats().CollisionRadius
		if pointToSegmentDist(other.Position(), start, end) < combined {
			return true
		}
	}
	return false
}

// FindFirstContactOnPath returns the contact nearest to start among all
// other living units whose combined radius intersects the segment: the point
// of closest approach on the segment and the contacted unit. ok is false
// when the path is clear. This is the primitive that keeps stepwise movement
// tunnel-free.
func FindFirstContactOnPath(start, end Position, units []*Unit, exclude *Unit, movingRadius float64) (Position, *Unit, bool) {
	r := effectiveMovingRadius(movingRadius)
	bestT := math.Inf(1)
	var bestPos Position
	var bestUnit *Unit
	for _, other := range units {
		if other == exclude || !other.IsAlive() {
			continue
		}
		combined := r + other.Stats().CollisionRadius
		t := pointToSegmentParam(other.Position(), start, end)
		closest := start.lerp(end, t)
		if closest.Distance(other.Position()) >= combined {
			continue
		}
		if t < bestT {
			bestT = t
			bestPos = closest
			bestUnit = other
		}
	}
	if bestUnit == nil {
		return Position{}, nil, false
	}
	return bestPos, bestUnit, true
}

// CalculateAvoidancePosition returns target unchanged when it is already
// collision-free for unit. Otherwise it probes equally spaced points on a
// ring around the target and returns the first free candidate, falling back
// to the unit's current position when all probes fail. Best-effort local
// avoidance only; reachability is not guaranteed.
func CalculateAvoidancePosition(unit *Unit, target Position, units []*Unit) Position {
	r := unit.Stats().CollisionRadius
	if !HasCollisionAt(target, units, unit, r) {
		return target
	}
	ring := avoidanceRingScale * r
	for i := 0; i < avoidanceProbes; i++ {
		angle := float64(i) * 2 * math.Pi / avoidanceProbes
		candidate := Position{
			X: target.X + math.Cos(angle)*ring,
			Y: target.Y + math.Sin(angle)*ring,
		}
		if !HasCollisionAt(candidate, units, unit, r) {
			return candidate
		}
	}
	return unit.Position()
}
