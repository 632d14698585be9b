package sim

import "math"

// CircleObstacle is a static circular no-go area inside the bounds field.
type CircleObstacle struct {
	Center Position
	Radius float64
}

// BoundsField is an axis-aligned world rectangle plus optional circular
// obstacles. It is a cheap auxiliary clamp used independently of the terrain
// grid, e.g. to re-clamp stale movement targets after a map change.
type BoundsField struct {
	min       Position
	max       Position
	obstacles []CircleObstacle
}

// NewBoundsField creates a bounds field over the rectangle min-max. Corners
// are normalised so min really is the smaller corner.
func NewBoundsField(min, max Position) *BoundsField {
	if min.X > max.X {
		min.X, max.X = max.X, min.X
	}
	if min.Y > max.Y {
		min.Y, max.Y = max.Y, min.Y
	}
	return &BoundsField{min: min, max: max}
}

// BoundsFromGrid builds a bounds field covering the terrain grid's world
// rectangle.
func BoundsFromGrid(g *TerrainGrid) *BoundsField {
	min, max := g.WorldBounds()
	return NewBoundsField(min, max)
}

// AddObstacle registers a circular obstacle.
func (b *BoundsField) AddObstacle(center Position, radius float64) {
	if radius <= 0 {
		return
	}
	b.obstacles = append(b.obstacles, CircleObstacle{Center: center, Radius: radius})
}

// Contains reports whether a footprint at pos fits inside the rectangle
// without overlapping any obstacle.
func (b *BoundsField) Contains(pos Position, radius float64) bool {
	if pos.X-radius < b.min.X || pos.Y-radius < b.min.Y ||
		pos.X+radius > b.max.X || pos.Y+radius > b.max.Y {
		return false
	}
	for _, ob := range b.obstacles {
		if pos.Distance(ob.Center) < ob.Radius+radius {
			return false
		}
	}
	return true
}

// Clamp forces a footprint at pos inside the rectangle and pushes it out of
// any obstacle it overlaps, radially away from the obstacle centre.
func (b *BoundsField) Clamp(pos Position, radius float64) Position {
	pos.X = clampAxis(pos.X, b.min.X+radius, b.max.X-radius, (b.min.X+b.max.X)/2)
	pos.Y = clampAxis(pos.Y, b.min.Y+radius, b.max.Y-radius, (b.min.Y+b.max.Y)/2)
	for _, ob := range b.obstacles {
		combined := ob.Radius + radius
		d := pos.Distance(ob.Center)
		if d >= combined {
			continue
		}
		if d < posEpsilon {
			// Dead centre: push straight up and retry the rect clamp.
			pos = Position{X: ob.Center.X, Y: ob.Center.Y - combined}
		} else {
			scale := combined / d
			pos = Position{
				X: ob.Center.X + (pos.X-ob.Center.X)*scale,
				Y: ob.Center.Y + (pos.Y-ob.Center.Y)*scale,
			}
		}
		pos.X = clampAxis(pos.X, b.min.X+radius, b.max.X-radius, (b.min.X+b.max.X)/2)
		pos.Y = clampAxis(pos.Y, b.min.Y+radius, b.max.Y-radius, (b.min.Y+b.max.Y)/2)
	}
	return pos
}

// Size returns the width and height of the bounded rectangle.
func (b *BoundsField) Size() (float64, float64) {
	return math.Abs(b.max.X - b.min.X), math.Abs(b.max.Y - b.min.Y)
}
