package sim

// DefaultScenario builds the hardcoded fallback battlefield used when no
// external spawn source is supplied: a 48x32 map with a river crossing, a
// forest belt, and two six-unit factions facing each other.
func DefaultScenario(seed int64) *Engine {
	grid := NewTerrainGrid(48, 32, 1.0, Position{})

	// River down the middle with a road ford.
	for row := 0; row < grid.Rows(); row++ {
		grid.SetTile(23, row, TerrainWater)
		grid.SetTile(24, row, TerrainWater)
	}
	for _, col := range []int{23, 24} {
		grid.SetTile(col, 15, TerrainRoad)
		grid.SetTile(col, 16, TerrainRoad)
	}

	// Forest belt on the east bank, swamp pocket in the south-west.
	for row := 4; row < 28; row++ {
		for col := 30; col < 34; col++ {
			grid.SetTile(col, row, TerrainForest)
		}
	}
	for row := 24; row < 30; row++ {
		for col := 4; col < 12; col++ {
			grid.SetTile(col, row, TerrainSwamp)
		}
	}

	// Impassable ridge in the north.
	for col := 8; col < 18; col++ {
		grid.SetTile(col, 3, TerrainMountain)
		grid.SetTile(col, 4, TerrainMountain)
	}

	e := NewEngine(grid, nil, seed)

	infantry := NewUnitStats(100, 100, 5, 10, 1.5, 1.2, 1.0, 0.3)
	archer := NewUnitStats(70, 70, 8, 14, 1.2, 4.0, 0.8, 0.3)

	spawns := []struct {
		id      int
		name    string
		faction int
		pos     Position
		stats   UnitStats
	}{
		{1, "red-sword-1", 0, Position{X: 6, Y: 10}, infantry},
		{2, "red-sword-2", 0, Position{X: 6, Y: 13}, infantry},
		{3, "red-sword-3", 0, Position{X: 6, Y: 19}, infantry},
		{4, "red-sword-4", 0, Position{X: 6, Y: 22}, infantry},
		{5, "red-bow-1", 0, Position{X: 4, Y: 14}, archer},
		{6, "red-bow-2", 0, Position{X: 4, Y: 18}, archer},
		{7, "blue-sword-1", 1, Position{X: 42, Y: 10}, infantry},
		{8, "blue-sword-2", 1, Position{X: 42, Y: 13}, infantry},
		{9, "blue-sword-3", 1, Position{X: 42, Y: 19}, infantry},
		{10, "blue-sword-4", 1, Position{X: 42, Y: 22}, infantry},
		{11, "blue-bow-1", 1, Position{X: 44, Y: 14}, archer},
		{12, "blue-bow-2", 1, Position{X: 44, Y: 18}, archer},
	}
	for _, s := range spawns {
		e.AddUnit(NewUnit(s.id, s.name, s.faction, s.pos, s.stats))
	}
	return e
}
