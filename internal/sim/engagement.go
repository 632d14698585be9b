package sim

// resolveEngagements runs the pairwise proximity scan that locks units into
// combat posture. This is state promotion only — damage is applied by the
// auto-combat loop and the duel path, independent of what happens here.
//
// A unit engages when any living enemy sits within its attack range extended
// by that enemy's body radius; the check runs symmetrically for both sides
// of each pair. Combat units with no enemy left in reach are released back
// to moving (pending target) or idle.
func (e *Engine) resolveEngagements() {
	engaged := make(map[*Unit]bool, len(e.units))

	for i := 0; i < len(e.units); i++ {
		a := e.units[i]
		if !a.IsAlive() {
			continue
		}
		for j := i + 1; j < len(e.units); j++ {
			b := e.units[j]
			if !b.IsAlive() || a.Faction() == b.Faction() {
				continue
			}
			dist := a.Position().Distance(b.Position())
			if dist <= a.Stats().AttackRange+b.Stats().CollisionRadius {
				engaged[a] = true
			}
			if dist <= b.Stats().AttackRange+a.Stats().CollisionRadius {
				engaged[b] = true
			}
		}
	}

	for _, u := range e.units {
		if !u.IsAlive() {
			continue
		}
		if engaged[u] {
			before := u.State()
			u.EnterCombat()
			if before != u.State() {
				e.log.Add(e.tick, u.Name(), u.Faction(), "engage", "locked",
					before.String()+" → combat", 0)
			}
			continue
		}
		if u.State() == UnitStateCombat {
			u.LeaveCombat()
			e.log.Add(e.tick, u.Name(), u.Faction(), "engage", "released",
				"combat → "+u.State().String(), 0)
		}
	}
}
