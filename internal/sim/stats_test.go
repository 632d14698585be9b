package sim

import (
	"math/rand"
	"testing"
)

func TestNewUnitStats_ClampsInvariants(t *testing.T) {
	s := NewUnitStats(100, 250, 5, 3, -1, -2, -3, -4)
	if s.CurrentHP != 100 {
		t.Fatalf("CurrentHP should clamp to MaxHP, got %d", s.CurrentHP)
	}
	if s.MaxAttackPower != s.MinAttackPower {
		t.Fatalf("MaxAttackPower should be raised to MinAttackPower, got %d < %d",
			s.MaxAttackPower, s.MinAttackPower)
	}
	if s.MoveSpeed != 0 || s.AttackRange != 0 || s.AttackSpeed != 0 || s.CollisionRadius != 0 {
		t.Fatal("negative speeds/ranges should collapse to zero")
	}

	s = NewUnitStats(100, -5, 5, 10, 1, 1, 1, 0.3)
	if s.CurrentHP != 0 {
		t.Fatalf("negative CurrentHP should clamp to 0, got %d", s.CurrentHP)
	}
}

func TestUnitStats_DamageHealReturnCopies(t *testing.T) {
	s := NewUnitStats(100, 100, 5, 10, 1, 1, 1, 0.3)
	hit := s.TakeDamage(30)
	if s.CurrentHP != 100 {
		t.Fatalf("TakeDamage mutated the receiver: %d", s.CurrentHP)
	}
	if hit.CurrentHP != 70 {
		t.Fatalf("expected 70 HP after 30 damage, got %d", hit.CurrentHP)
	}
	healed := hit.Heal(50)
	if healed.CurrentHP != 100 {
		t.Fatalf("heal should clamp at MaxHP, got %d", healed.CurrentHP)
	}
	if hit.CurrentHP != 70 {
		t.Fatalf("Heal mutated the receiver: %d", hit.CurrentHP)
	}
}

// HP stays in [0, MaxHP] across any random damage/heal sequence.
func TestUnitStats_HPClampProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(99)) // #nosec G404 -- test only
	s := NewUnitStats(100, 60, 5, 10, 1, 1, 1, 0.3)
	for i := 0; i < 1000; i++ {
		if rng.Intn(2) == 0 {
			s = s.TakeDamage(rng.Intn(250) - 20)
		} else {
			s = s.Heal(rng.Intn(250) - 20)
		}
		if s.CurrentHP < 0 || s.CurrentHP > s.MaxHP {
			t.Fatalf("HP %d escaped [0,%d] after %d ops", s.CurrentHP, s.MaxHP, i+1)
		}
	}
}

func TestUnitStats_AttackCooldown(t *testing.T) {
	s := NewUnitStats(100, 100, 5, 10, 1, 1, 2.0, 0.3)
	if got := s.AttackCooldown(); got != 0.5 {
		t.Fatalf("2 attacks/sec should cool down in 0.5s, got %f", got)
	}
	s.AttackSpeed = 0
	if got := s.AttackCooldown(); got != 0 {
		t.Fatalf("zero attack speed should report 0 cooldown, got %f", got)
	}
}
