package sim

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	viewerScale  = 24.0 // pixels per world unit
	viewerBorder = 16   // pixel gap around the battlefield
	hudHeight    = 48   // pixel strip reserved for HUD text
)

// Viewer is the windowed host for the simulation: it implements
// ebiten.Game, forwards click commands into the engine and renders the
// read-only snapshot surface. The simulation itself stays headless.
type Viewer struct {
	engine *Engine

	selectedID int
	status     string

	prevMouseLeft  bool
	prevMouseRight bool
	prevKeyR       bool
}

// NewViewer wraps an engine in a windowed viewer.
func NewViewer(e *Engine) *Viewer {
	v := &Viewer{engine: e, selectedID: -1}
	e.OnMovementFailed(func(u *Unit, _ Position, reason string) {
		v.status = fmt.Sprintf("%s: move rejected (%s)", u.Name(), reason)
	})
	e.OnCombatOccurred(func(attacker, target *Unit, result CombatResult) {
		if result.TargetDied {
			v.status = fmt.Sprintf("%s killed %s", attacker.Name(), target.Name())
		}
	})
	return v
}

// Update handles input and advances the simulation one fixed tick.
func (v *Viewer) Update() error {
	v.handleInput()
	v.engine.Update(tickDT)
	return nil
}

func (v *Viewer) handleInput() {
	mx, my := ebiten.CursorPosition()
	world := Position{
		X: float64(mx-viewerBorder) / viewerScale,
		Y: float64(my-viewerBorder) / viewerScale,
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	keyA := ebiten.IsKeyPressed(ebiten.KeyA)
	keyR := ebiten.IsKeyPressed(ebiten.KeyR)

	if left && !v.prevMouseLeft {
		if keyA && v.selectedID >= 0 {
			if target := v.unitAt(world); target != nil {
				if v.engine.ExecuteAttack(v.selectedID, target.ID) {
					v.status = "attack executed"
				}
			}
		} else if picked := v.unitAt(world); picked != nil {
			v.selectedID = picked.ID
			v.status = "selected " + picked.Name
		} else {
			v.selectedID = -1
			v.status = ""
		}
	}

	if right && !v.prevMouseRight && v.selectedID >= 0 {
		if v.engine.MoveUnitTo(v.selectedID, world) {
			v.status = "moving"
		}
	}

	if keyR && !v.prevKeyR {
		if err := BuildReport(v.engine).CopyToClipboard(); err != nil {
			v.status = "report copy failed: " + err.Error()
		} else {
			v.status = "report copied to clipboard"
		}
	}

	v.prevMouseLeft = left
	v.prevMouseRight = right
	v.prevKeyR = keyR
}

// unitAt returns the snapshot of the living unit under the cursor, with a
// small pick slop around the footprint.
func (v *Viewer) unitAt(world Position) *UnitSnapshot {
	const pickSlop = 0.2
	var best *UnitSnapshot
	bestDist := 0.0
	for _, s := range v.engine.Snapshot() {
		if s.State == "dead" {
			continue
		}
		d := world.Distance(s.Position)
		if d > s.CollisionRadius+pickSlop {
			continue
		}
		if best == nil || d < bestDist {
			snap := s
			best = &snap
			bestDist = d
		}
	}
	return best
}

// Draw renders the battlefield and the HUD strip.
func (v *Viewer) Draw(screen *ebiten.Image) {
	_, h := v.Layout(0, 0)
	drawBattlefield(screen, v.engine, viewerScale, viewerBorder, viewerBorder, v.selectedID)
	drawHUD(screen, v.engine, v.status, h)
}

// Layout reports the fixed window size derived from the grid dimensions.
func (v *Viewer) Layout(_, _ int) (int, int) {
	grid := v.engine.Terrain()
	w := viewerBorder*2 + int(float64(grid.Cols())*grid.TileSize()*viewerScale)
	h := viewerBorder*2 + int(float64(grid.Rows())*grid.TileSize()*viewerScale) + hudHeight
	return w, h
}
