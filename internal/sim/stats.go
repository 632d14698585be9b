package sim

// UnitStats is an immutable bundle of combat and movement stats.
// Mutating operations (TakeDamage, Heal) return a new value; callers
// replace the whole bundle rather than poking at fields.
type UnitStats struct {
	MaxHP           int
	CurrentHP       int
	MinAttackPower  int
	MaxAttackPower  int
	MoveSpeed       float64 // world units per second
	AttackRange     float64 // world units
	AttackSpeed     float64 // attacks per second
	CollisionRadius float64 // circular footprint radius
}

// NewUnitStats builds a stat bundle with all invariants enforced:
// CurrentHP is clamped into [0, MaxHP], attack power ordering is fixed up,
// and negative speeds/ranges collapse to zero.
func NewUnitStats(maxHP, currentHP, minAtk, maxAtk int, moveSpeed, attackRange, attackSpeed, collisionRadius float64) UnitStats {
	if maxHP < 0 {
		maxHP = 0
	}
	if minAtk < 0 {
		minAtk = 0
	}
	if maxAtk < minAtk {
		maxAtk = minAtk
	}
	if moveSpeed < 0 {
		moveSpeed = 0
	}
	if attackRange < 0 {
		attackRange = 0
	}
	if attackSpeed < 0 {
		attackSpeed = 0
	}
	if collisionRadius < 0 {
		collisionRadius = 0
	}
	s := UnitStats{
		MaxHP:           maxHP,
		CurrentHP:       currentHP,
		MinAttackPower:  minAtk,
		MaxAttackPower:  maxAtk,
		MoveSpeed:       moveSpeed,
		AttackRange:     attackRange,
		AttackSpeed:     attackSpeed,
		CollisionRadius: collisionRadius,
	}
	s.CurrentHP = clampHP(s.CurrentHP, s.MaxHP)
	return s
}

func clampHP(hp, maxHP int) int {
	if hp < 0 {
		return 0
	}
	if hp > maxHP {
		return maxHP
	}
	return hp
}

// TakeDamage returns a copy with CurrentHP reduced by amount, clamped at 0.
// Negative amounts are ignored.
func (s UnitStats) TakeDamage(amount int) UnitStats {
	if amount < 0 {
		amount = 0
	}
	s.CurrentHP = clampHP(s.CurrentHP-amount, s.MaxHP)
	return s
}

// Heal returns a copy with CurrentHP raised by amount, clamped at MaxHP.
// Negative amounts are ignored.
func (s UnitStats) Heal(amount int) UnitStats {
	if amount < 0 {
		amount = 0
	}
	s.CurrentHP = clampHP(s.CurrentHP+amount, s.MaxHP)
	return s
}

// AttackCooldown returns the seconds between attacks, or 0 when the unit
// cannot attack at all (AttackSpeed 0).
func (s UnitStats) AttackCooldown() float64 {
	if s.AttackSpeed <= 0 {
		return 0
	}
	return 1.0 / s.AttackSpeed
}
