package sim

import (
	"math"
	"math/rand"
)

// CombatResult reports the outcome of one combat resolution.
type CombatResult struct {
	DamageDealt   int  // damage applied to the target
	CounterDamage int  // damage returned to the attacker (duel path only)
	TargetDied    bool
	AttackerDied  bool
}

// CombatService owns damage resolution. It carries its own seeded RNG so
// runs are reproducible; nothing else in it is stateful.
type CombatService struct {
	rng *rand.Rand
}

// NewCombatService creates a combat service with its own RNG.
func NewCombatService(seed int64) *CombatService {
	return &CombatService{
		rng: rand.New(rand.NewSource(seed)), // #nosec G404 -- simulation only
	}
}

// IsInAttackRange reports whether attacker can reach target: the target's
// body radius extends the effective range.
func (cs *CombatService) IsInAttackRange(attacker, target *Unit) bool {
	reach := attacker.Stats().AttackRange + target.Stats().CollisionRadius
	return attacker.Position().Distance(target.Position()) <= reach
}

// CalculateDamage rolls one hit: a uniform integer attack power in
// [MinAttackPower, MaxAttackPower], scaled by a uniform factor in
// [0.8, 1.2], floored, never below 1.
func (cs *CombatService) CalculateDamage(attacker, target UnitStats) int {
	_ = target // defence stats reserved; terrain evasion is not consumed yet
	base := attacker.MinAttackPower
	if attacker.MaxAttackPower > attacker.MinAttackPower {
		base += cs.rng.Intn(attacker.MaxAttackPower - attacker.MinAttackPower + 1)
	}
	factor := 0.8 + cs.rng.Float64()*0.4
	damage := int(math.Floor(float64(base) * factor))
	if damage < 1 {
		damage = 1
	}
	return damage
}

// ExecuteCombat resolves an instant reciprocal duel: attacker damages
// target, and if the target survives with the attacker inside its own reach
// it strikes straight back with the same formula. Individual attack
// cooldowns are deliberately ignored here; this is the direct-command
// resolution path, distinct from the cooldown-gated auto-combat loop.
// Dead or out-of-range participants yield a zero no-op result.
func (cs *CombatService) ExecuteCombat(attacker, target *Unit) CombatResult {
	if attacker == nil || target == nil || !attacker.IsAlive() || !target.IsAlive() {
		return CombatResult{}
	}
	if !cs.IsInAttackRange(attacker, target) {
		return CombatResult{}
	}

	result := CombatResult{DamageDealt: cs.CalculateDamage(attacker.Stats(), target.Stats())}
	result.TargetDied = target.ApplyDamage(result.DamageDealt)

	if !result.TargetDied && cs.IsInAttackRange(target, attacker) {
		result.CounterDamage = cs.CalculateDamage(target.Stats(), attacker.Stats())
		result.AttackerDied = attacker.ApplyDamage(result.CounterDamage)
	}
	return result
}
