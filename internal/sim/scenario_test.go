package sim

import "testing"

func TestDefaultScenario_Roster(t *testing.T) {
	e := DefaultScenario(1)

	if got := len(e.Units()); got != 12 {
		t.Fatalf("expected 12 units, got %d", got)
	}
	counts := e.FactionCounts()
	if counts[0] != 6 || counts[1] != 6 {
		t.Fatalf("expected 6 per faction, got %v", counts)
	}
	for _, u := range e.Units() {
		if !e.Terrain().IsWalkable(u.Position(), u.Stats().CollisionRadius) {
			t.Fatalf("%s spawned on unwalkable ground at (%f,%f)",
				u.Name(), u.Position().X, u.Position().Y)
		}
	}
}

func TestDefaultScenario_RiverAndFord(t *testing.T) {
	e := DefaultScenario(1)
	g := e.Terrain()

	// Direct crossing away from the ford stops at the west bank.
	blocked := g.ResolveMovementTarget(Position{X: 20, Y: 10}, Position{X: 28, Y: 10}, 0.3)
	if blocked.X >= 22.7 {
		t.Fatalf("crossing outside the ford should stop at the bank, got x=%f", blocked.X)
	}

	// The road ford carries a footprint straight across.
	ford := g.ResolveMovementTarget(Position{X: 20, Y: 15.5}, Position{X: 28, Y: 15.5}, 0.3)
	if !ford.Equals(Position{X: 28, Y: 15.5}) {
		t.Fatalf("ford crossing should pass unobstructed, got (%f,%f)", ford.X, ford.Y)
	}
}

func TestDefaultScenario_MarchOrders(t *testing.T) {
	e := DefaultScenario(7)
	for _, s := range e.Snapshot() {
		target := Position{X: 22, Y: 15.5}
		if s.Faction == 1 {
			target = Position{X: 26, Y: 15.5}
		}
		if !e.MoveUnitTo(s.ID, target) {
			t.Fatalf("march order for %s should be accepted", s.Name)
		}
	}
	if got := e.Log().CountCategory("move", "started"); got != 12 {
		t.Fatalf("expected 12 started moves, got %d", got)
	}
	if e.MovingCount() != 12 {
		t.Fatalf("all units should be moving, got %d", e.MovingCount())
	}

	for i := 0; i < 600; i++ {
		e.Update(tickDT)
	}
	// Ten seconds in, both columns are converging on the ford and nobody has
	// slipped into the river.
	for _, u := range e.Units() {
		if g := e.Terrain(); !g.IsWalkable(u.Position(), u.Stats().CollisionRadius) {
			t.Fatalf("%s ended on unwalkable ground at (%f,%f)",
				u.Name(), u.Position().X, u.Position().Y)
		}
	}
}
