package sim

import "math"

// UnitState is the high-level lifecycle state of a unit.
type UnitState int

const (
	UnitStateIdle   UnitState = iota // holding position
	UnitStateMoving                  // advancing toward targetPosition
	UnitStateCombat                  // locked into an engagement, movement frozen
	UnitStateDead                    // terminal except via Reset
)

func (us UnitState) String() string {
	switch us {
	case UnitStateIdle:
		return "idle"
	case UnitStateMoving:
		return "moving"
	case UnitStateCombat:
		return "combat"
	case UnitStateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Unit is the mutable aggregate root of the simulation. All mutation goes
// through its methods; the orchestration layer looks units up by id rather
// than holding cross-references between them.
type Unit struct {
	id      int
	name    string
	faction int

	position Position
	target   Position
	stats    UnitStats
	state    UnitState

	lastAttackTime float64 // simulation seconds of the last landed attack
}

// NewUnit creates a living idle unit at pos. The target starts equal to the
// position so a freshly spawned unit has nowhere to go.
func NewUnit(id int, name string, faction int, pos Position, stats UnitStats) *Unit {
	state := UnitStateIdle
	if stats.CurrentHP <= 0 {
		state = UnitStateDead
	}
	return &Unit{
		id:             id,
		name:           name,
		faction:        faction,
		position:       pos,
		target:         pos,
		stats:          stats,
		state:          state,
		lastAttackTime: math.Inf(-1),
	}
}

func (u *Unit) ID() int                  { return u.id }
func (u *Unit) Name() string             { return u.name }
func (u *Unit) Faction() int             { return u.faction }
func (u *Unit) Position() Position       { return u.position }
func (u *Unit) TargetPosition() Position { return u.target }
func (u *Unit) Stats() UnitStats         { return u.stats }
func (u *Unit) State() UnitState         { return u.state }

// IsAlive reports whether the unit participates in the simulation.
func (u *Unit) IsAlive() bool {
	return u.state != UnitStateDead
}

// SetTargetPosition issues a movement order. Dead units refuse; a target
// matching the current position is stored but does not start movement.
func (u *Unit) SetTargetPosition(target Position) bool {
	if u.state == UnitStateDead {
		return false
	}
	u.target = target
	if !target.Equals(u.position) && u.state != UnitStateCombat {
		u.state = UnitStateMoving
	}
	return true
}

// setPosition moves the unit without touching its state. Only the movement
// orchestrator calls this.
func (u *Unit) setPosition(pos Position) {
	u.position = pos
}

// stopAt collapses both position and target onto pos and drops back to idle.
// Used for every contact-stop branch: a fresh move command is required to
// retry the blocked path.
func (u *Unit) stopAt(pos Position) {
	u.position = pos
	u.target = pos
	if u.state == UnitStateMoving {
		u.state = UnitStateIdle
	}
}

// arrive snaps the unit onto pos and returns to idle if the stored target
// has been reached.
func (u *Unit) arrive(pos Position) {
	u.position = pos
	if u.state == UnitStateMoving && pos.Equals(u.target) {
		u.state = UnitStateIdle
	}
}

// EnterCombat promotes an idle unit (or keeps a combat unit) locked into
// combat posture. Moving and dead units are left alone.
func (u *Unit) EnterCombat() {
	if u.state == UnitStateIdle || u.state == UnitStateCombat {
		u.state = UnitStateCombat
	}
}

// LeaveCombat releases a combat unit: back to moving when an unreached
// target is pending, otherwise idle.
func (u *Unit) LeaveCombat() {
	if u.state != UnitStateCombat {
		return
	}
	if !u.target.Equals(u.position) {
		u.state = UnitStateMoving
	} else {
		u.state = UnitStateIdle
	}
}

// CanAttack reports whether the attack cooldown has elapsed at simulation
// time now. Units with AttackSpeed 0 can never attack.
func (u *Unit) CanAttack(now float64) bool {
	if u.state == UnitStateDead {
		return false
	}
	cooldown := u.stats.AttackCooldown()
	if cooldown <= 0 {
		return false
	}
	return now-u.lastAttackTime >= cooldown
}

// TryAttack performs one cooldown-gated attack against target at simulation
// time now. Both cooldown and range are enforced; on success the damage is
// applied and the attack time stamped. This is the auto-combat path: no
// counter-damage (the reciprocal duel lives in CombatService.ExecuteCombat).
func (u *Unit) TryAttack(target *Unit, now float64, combat *CombatService) (int, bool) {
	if u.state == UnitStateDead || target == nil || !target.IsAlive() {
		return 0, false
	}
	if !u.CanAttack(now) {
		return 0, false
	}
	if !combat.IsInAttackRange(u, target) {
		return 0, false
	}
	damage := combat.CalculateDamage(u.stats, target.stats)
	target.ApplyDamage(damage)
	u.lastAttackTime = now
	return damage, true
}

// ApplyDamage routes damage through the stats bundle and handles the
// transition to dead. Returns true when this damage was lethal.
func (u *Unit) ApplyDamage(amount int) bool {
	if u.state == UnitStateDead {
		return false
	}
	u.stats = u.stats.TakeDamage(amount)
	if u.stats.CurrentHP <= 0 {
		u.state = UnitStateDead
		u.target = u.position
		return true
	}
	return false
}

// Heal restores hit points, clamped at MaxHP. Dead units stay dead; only
// Reset revives.
func (u *Unit) Heal(amount int) {
	if u.state == UnitStateDead {
		return
	}
	u.stats = u.stats.Heal(amount)
}

// Reset restores full HP and idle state with the target collapsed onto the
// current position. Identity is untouched. This is the only way out of dead.
func (u *Unit) Reset() {
	u.stats = u.stats.Heal(u.stats.MaxHP)
	u.state = UnitStateIdle
	u.target = u.position
	u.lastAttackTime = math.Inf(-1)
}
