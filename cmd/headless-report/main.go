package main

import (
	"flag"
	"fmt"

	"github.com/kestrelgames/skirmish/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64

	report          sim.BattleReport
	firstContact    int
	firstDeath      int
	engagementLocks int
	contactStops    int
	survivorsRed    int
	survivorsBlue   int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "river-crossing", "scenario name")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "river-crossing" {
		fmt.Printf("error: unsupported scenario %q (supported: river-crossing)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Skirmish Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runRiverCrossing(i+1, seed, ticks)
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

// runRiverCrossing marches both factions onto the ford so they collide and
// fight near the map centre.
func runRiverCrossing(runIndex int, seed int64, ticks int) runStats {
	engine := sim.DefaultScenario(seed)

	for _, s := range engine.Snapshot() {
		if s.Faction == 0 {
			engine.MoveUnitTo(s.ID, sim.Position{X: 22, Y: 15.5})
		} else {
			engine.MoveUnitTo(s.ID, sim.Position{X: 26, Y: 15.5})
		}
	}

	const dt = 1.0 / 60.0
	for i := 0; i < ticks; i++ {
		engine.Update(dt)
	}

	counts := engine.FactionCounts()
	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		report:          sim.BuildReport(engine),
		firstContact:    engine.Log().FirstTick("move", "contact"),
		firstDeath:      engine.Log().FirstTick("state", "died"),
		engagementLocks: engine.Log().CountCategory("engage", "locked"),
		contactStops:    engine.Log().CountCategory("move", "contact"),
		survivorsRed:    counts[0],
		survivorsBlue:   counts[1],
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_contact=%d first_death=%d\n", rs.firstContact, rs.firstDeath)
	fmt.Printf("event_totals: engagement_locks=%d contact_stops=%d\n", rs.engagementLocks, rs.contactStops)
	fmt.Printf("survivors: red=%d blue=%d\n", rs.survivorsRed, rs.survivorsBlue)
	fmt.Print(rs.report.Format())
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalAttacks := 0
	totalKills := 0
	totalDamage := 0
	redWins := 0
	blueWins := 0
	draws := 0
	deathTicks := make([]int, 0, len(all))

	for _, rs := range all {
		totalAttacks += rs.report.AutoAttacks
		totalKills += rs.report.Kills
		totalDamage += rs.report.TotalDamage
		switch {
		case rs.survivorsRed > rs.survivorsBlue:
			redWins++
		case rs.survivorsBlue > rs.survivorsRed:
			blueWins++
		default:
			draws++
		}
		if rs.firstDeath >= 0 {
			deathTicks = append(deathTicks, rs.firstDeath)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d red_wins=%d blue_wins=%d draws=%d\n", len(all), redWins, blueWins, draws)
	fmt.Printf("avg_per_run: attacks=%.1f kills=%.1f damage=%.1f\n",
		avg(totalAttacks, len(all)), avg(totalKills, len(all)), avg(totalDamage, len(all)))
	fmt.Printf("first_death_avg_tick=%s\n", avgTickString(deathTicks))
}

func avg(sum, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
