package sim

import (
	"fmt"
	"math"
)

// Event callbacks exposed to the host layer (renderer, UI). All fire
// synchronously on the simulation thread.
type (
	MovementStartedFunc func(unit *Unit, from, resolvedTo Position)
	MovementFailedFunc  func(unit *Unit, requested Position, reason string)
	CombatOccurredFunc  func(attacker, target *Unit, result CombatResult)
)

// Engine owns the unit roster and runs one simulation step per Update call:
// engagement resolution, auto-combat, dead-unit removal, then movement.
// Single-threaded by design — external callers must marshal commands onto
// the tick thread.
type Engine struct {
	terrain *TerrainGrid
	bounds  *BoundsField
	combat  *CombatService

	units []*Unit
	now   float64 // accumulated simulation seconds
	tick  int

	movementEnabled bool

	log *SimLog

	onMovementStarted MovementStartedFunc
	onMovementFailed  MovementFailedFunc
	onCombatOccurred  CombatOccurredFunc
}

// NewEngine creates an engine over the given terrain. The bounds field may
// be nil, in which case it is derived from the grid's world rectangle.
func NewEngine(terrain *TerrainGrid, bounds *BoundsField, seed int64) *Engine {
	if bounds == nil {
		bounds = BoundsFromGrid(terrain)
	}
	return &Engine{
		terrain:         terrain,
		bounds:          bounds,
		combat:          NewCombatService(seed),
		movementEnabled: true,
		log:             NewSimLog(false),
	}
}

func (e *Engine) Terrain() *TerrainGrid  { return e.terrain }
func (e *Engine) Bounds() *BoundsField   { return e.bounds }
func (e *Engine) Combat() *CombatService { return e.combat }
func (e *Engine) Log() *SimLog           { return e.log }
func (e *Engine) Tick() int              { return e.tick }
func (e *Engine) Now() float64           { return e.now }

// SetLog replaces the structured event log (the harness installs a verbose
// one).
func (e *Engine) SetLog(log *SimLog) {
	if log != nil {
		e.log = log
	}
}

// OnMovementStarted registers the movement-started callback.
func (e *Engine) OnMovementStarted(fn MovementStartedFunc) { e.onMovementStarted = fn }

// OnMovementFailed registers the movement-failed callback.
func (e *Engine) OnMovementFailed(fn MovementFailedFunc) { e.onMovementFailed = fn }

// OnCombatOccurred registers the combat-event callback.
func (e *Engine) OnCombatOccurred(fn CombatOccurredFunc) { e.onCombatOccurred = fn }

// SetMovementEnabled toggles the global movement gate (e.g. while the host
// runs a camera gesture).
func (e *Engine) SetMovementEnabled(enabled bool) { e.movementEnabled = enabled }

// MovementEnabled reports the global movement gate.
func (e *Engine) MovementEnabled() bool { return e.movementEnabled }

// AddUnit inserts a unit into the roster. Duplicate ids are rejected.
func (e *Engine) AddUnit(u *Unit) bool {
	if u == nil || e.UnitByID(u.ID()) != nil {
		return false
	}
	e.units = append(e.units, u)
	e.log.Add(e.tick, u.Name(), u.Faction(), "roster", "spawn",
		fmt.Sprintf("(%.2f,%.2f)", u.Position().X, u.Position().Y), 0)
	return true
}

// UnitByID returns the unit with the given id, or nil.
func (e *Engine) UnitByID(id int) *Unit {
	for _, u := range e.units {
		if u.ID() == id {
			return u
		}
	}
	return nil
}

// Units returns the live roster slice. Borrowed for the duration of a call;
// callers must not retain it across ticks.
func (e *Engine) Units() []*Unit { return e.units }

// LivingCount returns the number of units not in the dead state.
func (e *Engine) LivingCount() int {
	n := 0
	for _, u := range e.units {
		if u.IsAlive() {
			n++
		}
	}
	return n
}

// MovingCount returns the number of units currently moving.
func (e *Engine) MovingCount() int {
	n := 0
	for _, u := range e.units {
		if u.State() == UnitStateMoving {
			n++
		}
	}
	return n
}

// FactionCounts returns living unit counts keyed by faction.
func (e *Engine) FactionCounts() map[int]int {
	counts := map[int]int{}
	for _, u := range e.units {
		if u.IsAlive() {
			counts[u.Faction()]++
		}
	}
	return counts
}

// UnitSnapshot is the read-only per-unit view handed to renderers and UI.
type UnitSnapshot struct {
	ID              int
	Name            string
	Faction         int
	Position        Position
	Target          Position
	HP              int
	MaxHP           int
	AttackRange     float64
	MoveSpeed       float64
	CollisionRadius float64
	State           string
}

// Snapshot returns read-only views of every unit in the roster.
func (e *Engine) Snapshot() []UnitSnapshot {
	out := make([]UnitSnapshot, 0, len(e.units))
	for _, u := range e.units {
		s := u.Stats()
		out = append(out, UnitSnapshot{
			ID:              u.ID(),
			Name:            u.Name(),
			Faction:         u.Faction(),
			Position:        u.Position(),
			Target:          u.TargetPosition(),
			HP:              s.CurrentHP,
			MaxHP:           s.MaxHP,
			AttackRange:     s.AttackRange,
			MoveSpeed:       s.MoveSpeed,
			CollisionRadius: s.CollisionRadius,
			State:           u.State().String(),
		})
	}
	return out
}

// MoveUnitTo issues a movement command. The requested point is clamped,
// terrain-resolved and collision-adjusted before the unit commits to it, so
// the resolved destination may differ from the request. Returns false (and
// fires the failure callback) when the command is rejected outright.
func (e *Engine) MoveUnitTo(id int, requested Position) bool {
	u := e.UnitByID(id)
	if u == nil {
		return false
	}
	if !e.movementEnabled {
		return e.rejectMove(u, requested, "movement disabled")
	}
	if !u.IsAlive() {
		return e.rejectMove(u, requested, "unit is dead")
	}

	r := u.Stats().CollisionRadius
	bounded := e.bounds.Clamp(requested, r)
	resolved := e.terrain.ResolveMovementTarget(u.Position(), bounded, r)
	if !e.terrain.IsWalkable(resolved, r) {
		return e.rejectMove(u, requested, "target position not walkable")
	}

	// Occupied destinations are adjusted sideways rather than rejected.
	resolved = CalculateAvoidancePosition(u, resolved, e.units)
	resolved = e.terrain.ResolveMovementTarget(u.Position(), resolved, r)

	if u.Position().Distance(resolved) < posEpsilon {
		return e.rejectMove(u, requested, "no viable path found")
	}

	from := u.Position()
	u.SetTargetPosition(resolved)
	e.log.Add(e.tick, u.Name(), u.Faction(), "move", "started",
		fmt.Sprintf("(%.2f,%.2f) → (%.2f,%.2f)", from.X, from.Y, resolved.X, resolved.Y), 0)
	if e.onMovementStarted != nil {
		e.onMovementStarted(u, from, resolved)
	}
	return true
}

func (e *Engine) rejectMove(u *Unit, requested Position, reason string) bool {
	e.log.Add(e.tick, u.Name(), u.Faction(), "move", "rejected", reason, 0)
	if e.onMovementFailed != nil {
		e.onMovementFailed(u, requested, reason)
	}
	return false
}

// ExecuteAttack runs the instant reciprocal duel between two units on direct
// command. Rejected (false, both units untouched) for missing or dead
// participants, same-faction targets, or an out-of-range target.
func (e *Engine) ExecuteAttack(attackerID, targetID int) bool {
	attacker := e.UnitByID(attackerID)
	target := e.UnitByID(targetID)
	if attacker == nil || target == nil {
		return false
	}
	if !attacker.IsAlive() || !target.IsAlive() {
		e.log.Add(e.tick, attacker.Name(), attacker.Faction(), "combat", "rejected", "dead participant", 0)
		return false
	}
	if attacker.Faction() == target.Faction() {
		e.log.Add(e.tick, attacker.Name(), attacker.Faction(), "combat", "rejected", "same-faction target", 0)
		return false
	}
	if !e.combat.IsInAttackRange(attacker, target) {
		e.log.Add(e.tick, attacker.Name(), attacker.Faction(), "combat", "rejected", "target out of range", 0)
		return false
	}

	result := e.combat.ExecuteCombat(attacker, target)
	e.log.Add(e.tick, attacker.Name(), attacker.Faction(), "combat", "duel",
		fmt.Sprintf("dealt %d to %s, took %d back", result.DamageDealt, target.Name(), result.CounterDamage),
		float64(result.DamageDealt))
	if e.onCombatOccurred != nil {
		e.onCombatOccurred(attacker, target, result)
	}
	return true
}

// Update advances the simulation by dt seconds: engagement resolution, then
// the auto-combat pass, the dead-unit sweep, and finally movement. One call
// runs to completion before the next tick begins.
func (e *Engine) Update(dt float64) {
	if dt <= 0 {
		return
	}
	e.tick++
	e.now += dt

	e.resolveEngagements()
	e.updateAutoCombat()
	e.removeDeadUnits()
	e.updateMovements(dt)
}

// updateAutoCombat runs the cooldown-gated auto-combat loop: every living
// unit attacks the nearest living enemy inside its reach, one-sided, no
// counter-damage.
func (e *Engine) updateAutoCombat() {
	for _, u := range e.units {
		if !u.IsAlive() {
			continue
		}
		target := e.nearestEnemyInRange(u)
		if target == nil {
			continue
		}
		damage, ok := u.TryAttack(target, e.now, e.combat)
		if !ok {
			continue
		}
		result := CombatResult{
			DamageDealt: damage,
			TargetDied:  !target.IsAlive(),
		}
		e.log.Add(e.tick, u.Name(), u.Faction(), "combat", "attack",
			fmt.Sprintf("hit %s for %d", target.Name(), damage), float64(damage))
		if result.TargetDied {
			e.log.Add(e.tick, target.Name(), target.Faction(), "state", "died", "killed by "+u.Name(), 0)
		}
		if e.onCombatOccurred != nil {
			e.onCombatOccurred(u, target, result)
		}
	}
}

// nearestEnemyInRange returns the closest living unit of another faction
// within u's effective reach, or nil.
func (e *Engine) nearestEnemyInRange(u *Unit) *Unit {
	var best *Unit
	bestDistSq := math.Inf(1)
	for _, other := range e.units {
		if other == u || !other.IsAlive() || other.Faction() == u.Faction() {
			continue
		}
		reach := u.Stats().AttackRange + other.Stats().CollisionRadius
		dSq := u.Position().DistanceSq(other.Position())
		if dSq > reach*reach {
			continue
		}
		if dSq < bestDistSq {
			bestDistSq = dSq
			best = other
		}
	}
	return best
}

// removeDeadUnits sweeps units with no hit points left out of the roster.
func (e *Engine) removeDeadUnits() {
	kept := e.units[:0]
	for _, u := range e.units {
		if u.Stats().CurrentHP <= 0 {
			e.log.Add(e.tick, u.Name(), u.Faction(), "roster", "removed", "dead", 0)
			continue
		}
		kept = append(kept, u)
	}
	e.units = kept
}
