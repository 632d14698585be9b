package sim

import "fmt"

// tickDT is the fixed timestep used by the harness and viewer (60 ticks/s).
const tickDT = 1.0 / 60.0

// TestSim is a headless simulation harness used by tests and the report
// binary. It wraps an Engine with deterministic seeding and the structured
// log wired in.
type TestSim struct {
	Engine *Engine
	SimLog *SimLog

	cols     int
	rows     int
	tileSize float64
	seed     int64
	verbose  bool

	terrainPatches []terrainPatch
	pendingUnits   []pendingUnit
	pendingOrders  []pendingOrder
}

type terrainPatch struct {
	col, row, w, h int
	terrain        TerrainType
}

type pendingUnit struct {
	id      int
	name    string
	faction int
	pos     Position
	stats   UnitStats
}

type pendingOrder struct {
	id     int
	target Position
}

// SimOption is a builder function applied to a TestSim during construction.
type SimOption func(*TestSim)

// WithMapSize sets the grid dimensions and tile size.
func WithMapSize(cols, rows int, tileSize float64) SimOption {
	return func(ts *TestSim) {
		ts.cols = cols
		ts.rows = rows
		ts.tileSize = tileSize
	}
}

// WithSeed sets the combat RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return func(ts *TestSim) { ts.seed = seed }
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return func(ts *TestSim) { ts.verbose = v }
}

// WithTerrainRect paints a rectangle of tiles with the given terrain.
func WithTerrainRect(col, row, w, h int, t TerrainType) SimOption {
	return func(ts *TestSim) {
		ts.terrainPatches = append(ts.terrainPatches, terrainPatch{col, row, w, h, t})
	}
}

// WithUnit spawns a unit with default skirmisher stats at (x, y).
func WithUnit(id, faction int, x, y float64) SimOption {
	return WithUnitStats(id, faction, x, y, DefaultUnitStats())
}

// WithUnitStats spawns a unit with explicit stats at (x, y).
func WithUnitStats(id, faction int, x, y float64, stats UnitStats) SimOption {
	return func(ts *TestSim) {
		ts.pendingUnits = append(ts.pendingUnits, pendingUnit{
			id:      id,
			name:    fmt.Sprintf("u%d", id),
			faction: faction,
			pos:     Position{X: x, Y: y},
			stats:   stats,
		})
	}
}

// WithMoveOrder queues a movement command issued immediately after spawn.
func WithMoveOrder(id int, x, y float64) SimOption {
	return func(ts *TestSim) {
		ts.pendingOrders = append(ts.pendingOrders, pendingOrder{id: id, target: Position{X: x, Y: y}})
	}
}

// DefaultUnitStats returns the baseline skirmisher stat line.
func DefaultUnitStats() UnitStats {
	return NewUnitStats(100, 100, 5, 10, 1.5, 1.2, 1.0, 0.3)
}

// NewTestSim builds a headless sim. Map options apply first, then unit
// spawns, then queued move orders, regardless of argument order.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cols:     32,
		rows:     32,
		tileSize: 1.0,
		seed:     1,
	}
	for _, opt := range opts {
		opt(ts)
	}

	grid := NewTerrainGrid(ts.cols, ts.rows, ts.tileSize, Position{})
	for _, p := range ts.terrainPatches {
		for row := p.row; row < p.row+p.h; row++ {
			for col := p.col; col < p.col+p.w; col++ {
				grid.SetTile(col, row, p.terrain)
			}
		}
	}

	ts.Engine = NewEngine(grid, nil, ts.seed)
	ts.SimLog = NewSimLog(ts.verbose)
	ts.Engine.SetLog(ts.SimLog)

	for _, pu := range ts.pendingUnits {
		ts.Engine.AddUnit(NewUnit(pu.id, pu.name, pu.faction, pu.pos, pu.stats))
	}
	for _, po := range ts.pendingOrders {
		ts.Engine.MoveUnitTo(po.id, po.target)
	}
	return ts
}

// RunTicks advances the simulation by n fixed-timestep ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Engine.Update(tickDT)
	}
}
