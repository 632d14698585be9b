package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

// BattleReport is a summary of one simulation run, assembled from the
// engine roster and the structured log.
type BattleReport struct {
	Ticks           int
	LivingByFaction map[int]int
	AutoAttacks     int
	Duels           int
	Kills           int
	TotalDamage     int
	RejectedMoves   int
	FirstAttackTick int
}

// BuildReport assembles a battle report for the engine's current state.
func BuildReport(e *Engine) BattleReport {
	rep := BattleReport{
		Ticks:           e.Tick(),
		LivingByFaction: e.FactionCounts(),
		AutoAttacks:     e.Log().CountCategory("combat", "attack"),
		Duels:           e.Log().CountCategory("combat", "duel"),
		Kills:           e.Log().CountCategory("state", "died"),
		RejectedMoves:   e.Log().CountCategory("move", "rejected"),
		FirstAttackTick: e.Log().FirstTick("combat", "attack"),
	}
	for _, entry := range e.Log().Filter("combat", "") {
		rep.TotalDamage += int(entry.NumVal)
	}
	return rep
}

// Format renders the report as fixed-width text.
func (r BattleReport) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Battle Report ===\n")
	fmt.Fprintf(&b, "ticks=%d first_attack_tick=%d\n", r.Ticks, r.FirstAttackTick)
	fmt.Fprintf(&b, "attacks=%d duels=%d kills=%d total_damage=%d rejected_moves=%d\n",
		r.AutoAttacks, r.Duels, r.Kills, r.TotalDamage, r.RejectedMoves)

	factions := make([]int, 0, len(r.LivingByFaction))
	for f := range r.LivingByFaction {
		factions = append(factions, f)
	}
	sort.Ints(factions)
	for _, f := range factions {
		fmt.Fprintf(&b, "faction %d: %d living\n", f, r.LivingByFaction[f])
	}
	return b.String()
}

// CopyToClipboard places the formatted report on the system clipboard.
func (r BattleReport) CopyToClipboard() error {
	return clipboard.WriteAll(r.Format())
}
