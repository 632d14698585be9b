package sim

import "math"

// TerrainType identifies the surface of one grid tile.
type TerrainType uint8

const (
	TerrainUnknown   TerrainType = iota // out-of-bounds / unloaded
	TerrainGrassland                    // default open ground
	TerrainRoad                         // packed surface, full speed
	TerrainForest                       // passable but slow
	TerrainSand                         // loose ground
	TerrainSwamp                        // very slow going
	TerrainWater                        // impassable
	TerrainMountain                     // impassable
	terrainTypeCount                    // sentinel
)

func (t TerrainType) String() string {
	switch t {
	case TerrainGrassland:
		return "grassland"
	case TerrainRoad:
		return "road"
	case TerrainForest:
		return "forest"
	case TerrainSand:
		return "sand"
	case TerrainSwamp:
		return "swamp"
	case TerrainWater:
		return "water"
	case TerrainMountain:
		return "mountain"
	default:
		return "unknown"
	}
}

// Walkable reports whether units may occupy tiles of this terrain.
func (t TerrainType) Walkable() bool {
	switch t {
	case TerrainGrassland, TerrainRoad, TerrainForest, TerrainSand, TerrainSwamp:
		return true
	default:
		return false
	}
}

// SpeedMultiplier returns the movement speed factor in [0,1] for this
// terrain. Impassable terrain is 0.
func (t TerrainType) SpeedMultiplier() float64 {
	switch t {
	case TerrainGrassland:
		return 1.0
	case TerrainRoad:
		return 1.0
	case TerrainForest:
		return 0.7
	case TerrainSand:
		return 0.8
	case TerrainSwamp:
		return 0.4
	default:
		return 0
	}
}

// EvasionBonus returns the defensive evasion bonus granted by this terrain.
// Reserved: tracked per tile but not consumed by combat resolution yet.
func (t TerrainType) EvasionBonus() float64 {
	switch t {
	case TerrainForest:
		return 0.15
	case TerrainSwamp:
		return 0.05
	default:
		return 0
	}
}

// Movement resolver tuning.
const (
	resolveBisectIterations = 12   // binary-search refinement cap
	resolveBisectTolerance  = 1e-4 // world-unit tolerance for the refinement
	resolveMinSampleLen     = 0.02 // floor for the sampling step length
	raycastBackoff          = 1e-3 // world units backed off from a swept contact
)

// TerrainGrid is the authoritative per-tile terrain representation over a
// fixed world rectangle. Immutable after map load; SetTile is only called
// while building the map.
type TerrainGrid struct {
	cols     int
	rows     int
	tileSize float64
	origin   Position
	tiles    []TerrainType // row-major: index = row*cols + col
}

// NewTerrainGrid creates a grid of cols x rows tiles of default grassland.
func NewTerrainGrid(cols, rows int, tileSize float64, origin Position) *TerrainGrid {
	tiles := make([]TerrainType, cols*rows)
	for i := range tiles {
		tiles[i] = TerrainGrassland
	}
	return &TerrainGrid{
		cols:     cols,
		rows:     rows,
		tileSize: tileSize,
		origin:   origin,
		tiles:    tiles,
	}
}

func (g *TerrainGrid) Cols() int         { return g.cols }
func (g *TerrainGrid) Rows() int         { return g.rows }
func (g *TerrainGrid) TileSize() float64 { return g.tileSize }
func (g *TerrainGrid) Origin() Position  { return g.origin }

// WorldBounds returns the min and max corners of the covered rectangle.
func (g *TerrainGrid) WorldBounds() (Position, Position) {
	return g.origin, Position{
		X: g.origin.X + float64(g.cols)*g.tileSize,
		Y: g.origin.Y + float64(g.rows)*g.tileSize,
	}
}

func (g *TerrainGrid) inBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// SetTile writes a tile. Out-of-range writes are silent no-ops.
func (g *TerrainGrid) SetTile(col, row int, t TerrainType) {
	if !g.inBounds(col, row) {
		return
	}
	g.tiles[row*g.cols+col] = t
}

// Tile reads a tile. Out-of-range reads return TerrainUnknown.
func (g *TerrainGrid) Tile(col, row int) TerrainType {
	if !g.inBounds(col, row) {
		return TerrainUnknown
	}
	return g.tiles[row*g.cols+col]
}

// tileIndex maps a world position to its tile indices via floor division.
// The indices may be out of range; callers bounds-check.
func (g *TerrainGrid) tileIndex(pos Position) (int, int) {
	col := int(math.Floor((pos.X - g.origin.X) / g.tileSize))
	row := int(math.Floor((pos.Y - g.origin.Y) / g.tileSize))
	return col, row
}

// TerrainAt returns the terrain under a world position, TerrainUnknown when
// outside the world rectangle.
func (g *TerrainGrid) TerrainAt(pos Position) TerrainType {
	col, row := g.tileIndex(pos)
	return g.Tile(col, row)
}

// tileRange returns the clamped tile index rectangle touched by the world
// AABB [minX,minY]-[maxX,maxY], plus whether any tiles are in range at all.
func (g *TerrainGrid) tileRange(minX, minY, maxX, maxY float64) (c0, r0, c1, r1 int, ok bool) {
	c0 = int(math.Floor((minX - g.origin.X) / g.tileSize))
	r0 = int(math.Floor((minY - g.origin.Y) / g.tileSize))
	c1 = int(math.Floor((maxX - g.origin.X) / g.tileSize))
	r1 = int(math.Floor((maxY - g.origin.Y) / g.tileSize))
	if c1 < 0 || r1 < 0 || c0 >= g.cols || r0 >= g.rows {
		return 0, 0, 0, 0, false
	}
	if c0 < 0 {
		c0 = 0
	}
	if r0 < 0 {
		r0 = 0
	}
	if c1 >= g.cols {
		c1 = g.cols - 1
	}
	if r1 >= g.rows {
		r1 = g.rows - 1
	}
	return c0, r0, c1, r1, true
}

// circleTouchesTile reports whether the circle at center/radius touches the
// tile AABB, via the closest-point-on-AABB test.
func (g *TerrainGrid) circleTouchesTile(center Position, radius float64, col, row int) bool {
	minX := g.origin.X + float64(col)*g.tileSize
	minY := g.origin.Y + float64(row)*g.tileSize
	cx := math.Max(minX, math.Min(center.X, minX+g.tileSize))
	cy := math.Max(minY, math.Min(center.Y, minY+g.tileSize))
	dx := center.X - cx
	dy := center.Y - cy
	return dx*dx+dy*dy <= radius*radius
}

// IsWalkable reports whether a circular footprint of the given radius can
// occupy pos. A zero radius degenerates to a single-tile lookup. Any touched
// non-walkable tile blocks. Tiles outside the grid are excluded from the
// scan; a footprint that touches no tile at all is only accepted when its
// bounding box lies fully inside the world rectangle.
func (g *TerrainGrid) IsWalkable(pos Position, radius float64) bool {
	if radius <= posEpsilon {
		return g.TerrainAt(pos).Walkable()
	}

	minPt, maxPt := g.WorldBounds()
	fullyInside := pos.X-radius >= minPt.X && pos.Y-radius >= minPt.Y &&
		pos.X+radius <= maxPt.X && pos.Y+radius <= maxPt.Y

	c0, r0, c1, r1, ok := g.tileRange(pos.X-radius, pos.Y-radius, pos.X+radius, pos.Y+radius)
	if !ok {
		return false
	}
	touched := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !g.circleTouchesTile(pos, radius, col, row) {
				continue
			}
			touched = true
			if !g.Tile(col, row).Walkable() {
				return false
			}
		}
	}
	if !touched {
		return fullyInside
	}
	return true
}

// MovementMultiplier returns the speed multiplier for a footprint at pos:
// the minimum multiplier across all touched tiles (worst case governs), 0
// when any touched tile is unwalkable, and 1 when no tile is touched.
func (g *TerrainGrid) MovementMultiplier(pos Position, radius float64) float64 {
	if radius <= posEpsilon {
		t := g.TerrainAt(pos)
		if !t.Walkable() {
			return 0
		}
		return t.SpeedMultiplier()
	}

	c0, r0, c1, r1, ok := g.tileRange(pos.X-radius, pos.Y-radius, pos.X+radius, pos.Y+radius)
	if !ok {
		return 1.0
	}
	minMul := 1.0
	touched := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !g.circleTouchesTile(pos, radius, col, row) {
				continue
			}
			touched = true
			t := g.Tile(col, row)
			if !t.Walkable() {
				return 0
			}
			if mul := t.SpeedMultiplier(); mul < minMul {
				minMul = mul
			}
		}
	}
	if !touched {
		return 1.0
	}
	return minMul
}

// ClampInside clamps pos so the full footprint stays within the world
// rectangle. When the radius exceeds half the world extent along an axis the
// position collapses to that axis centerline.
func (g *TerrainGrid) ClampInside(pos Position, radius float64) Position {
	minPt, maxPt := g.WorldBounds()
	pos.X = clampAxis(pos.X, minPt.X+radius, maxPt.X-radius, (minPt.X+maxPt.X)/2)
	pos.Y = clampAxis(pos.Y, minPt.Y+radius, maxPt.Y-radius, (minPt.Y+maxPt.Y)/2)
	return pos
}

func clampAxis(v, lo, hi, center float64) float64 {
	if lo > hi {
		return center
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ResolveMovementTarget resolves the furthest walkable point along the
// straight segment from start toward desired. The desired point is clamped
// into bounds first; if it is already walkable it is returned unchanged.
// Otherwise the segment is walked in fixed-length samples and the boundary
// between the last good and first bad sample is refined with a bounded
// binary search. Pure function of the grid and its arguments.
func (g *TerrainGrid) ResolveMovementTarget(start, desired Position, radius float64) Position {
	desired = g.ClampInside(desired, radius)
	if g.IsWalkable(desired, radius) {
		return desired
	}

	dist := start.Distance(desired)
	if dist < posEpsilon {
		return start
	}

	sampleLen := math.Min(g.tileSize/4, math.Max(radius*0.5, resolveMinSampleLen))
	samples := int(math.Ceil(dist / sampleLen))
	if samples < 2 {
		samples = 2
	}

	lastGood := start
	lastGoodT := 0.0
	firstBadT := -1.0
	for i := 1; i <= samples; i++ {
		t := float64(i) / float64(samples)
		p := start.lerp(desired, t)
		if g.IsWalkable(p, radius) {
			lastGood = p
			lastGoodT = t
			continue
		}
		firstBadT = t
		break
	}
	if firstBadT < 0 {
		return lastGood
	}

	// Tighten the contact point between the last confirmed-walkable sample
	// and the first blocked one.
	lo, hi := lastGoodT, firstBadT
	for i := 0; i < resolveBisectIterations; i++ {
		if (hi-lo)*dist <= resolveBisectTolerance {
			break
		}
		mid := (lo + hi) / 2
		p := start.lerp(desired, mid)
		if g.IsWalkable(p, radius) {
			lo = mid
			lastGood = p
		} else {
			hi = mid
		}
	}
	return lastGood
}

// ClipMovementRaycast sweeps the segment start→desired against every
// blocking tile whose radius-inflated bounds it could touch, returning the
// earliest contact backed off by a small margin, plus whether a blocking
// tile was hit. When nothing blocks the sweep but the endpoint itself is
// unwalkable, start is the safe fallback.
func (g *TerrainGrid) ClipMovementRaycast(start, desired Position, radius float64) (Position, bool) {
	minX := math.Min(start.X, desired.X) - radius
	minY := math.Min(start.Y, desired.Y) - radius
	maxX := math.Max(start.X, desired.X) + radius
	maxY := math.Max(start.Y, desired.Y) + radius

	bestT := math.Inf(1)
	hit := false
	if c0, r0, c1, r1, ok := g.tileRange(minX, minY, maxX, maxY); ok {
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				t := g.Tile(col, row)
				if t.Walkable() && t.SpeedMultiplier() > 0 {
					continue
				}
				tileMinX := g.origin.X + float64(col)*g.tileSize
				tileMinY := g.origin.Y + float64(row)*g.tileSize
				entryT, ok := segmentAABBEntryT(start, desired,
					tileMinX-radius, tileMinY-radius,
					tileMinX+g.tileSize+radius, tileMinY+g.tileSize+radius)
				if ok && entryT < bestT {
					bestT = entryT
					hit = true
				}
			}
		}
	}

	if !hit {
		if g.IsWalkable(desired, radius) {
			return desired, false
		}
		return start, true
	}

	segLen := start.Distance(desired)
	if segLen < posEpsilon {
		return start, true
	}
	backT := bestT - raycastBackoff/segLen
	if backT < 0 {
		backT = 0
	}
	return start.lerp(desired, backT), true
}

// segmentAABBEntryT returns the first segment parameter t in [0,1] where the
// segment a→b enters the AABB. The bool is false when no hit exists.
func segmentAABBEntryT(a, b Position, minX, minY, maxX, maxY float64) (float64, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y

	tMin := 0.0
	tMax := 1.0

	if math.Abs(dx) < 1e-12 {
		if a.X < minX || a.X > maxX {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - a.X) * invD
		t2 := (maxX - a.X) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if math.Abs(dy) < 1e-12 {
		if a.Y < minY || a.Y > maxY {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - a.Y) * invD
		t2 := (maxY - a.Y) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	if tMin < 0 {
		tMin = 0
	}
	return tMin, true
}
