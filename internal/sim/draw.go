package sim

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// terrainColor returns the render colour for a terrain type.
func terrainColor(t TerrainType) color.RGBA {
	switch t {
	case TerrainGrassland:
		return color.RGBA{R: 34, G: 64, B: 34, A: 255}
	case TerrainRoad:
		return color.RGBA{R: 72, G: 68, B: 60, A: 255}
	case TerrainForest:
		return color.RGBA{R: 22, G: 48, B: 26, A: 255}
	case TerrainSand:
		return color.RGBA{R: 96, G: 88, B: 60, A: 255}
	case TerrainSwamp:
		return color.RGBA{R: 40, G: 52, B: 40, A: 255}
	case TerrainWater:
		return color.RGBA{R: 30, G: 44, B: 78, A: 255}
	case TerrainMountain:
		return color.RGBA{R: 70, G: 66, B: 66, A: 255}
	default:
		return color.RGBA{R: 16, G: 16, B: 16, A: 255}
	}
}

var factionColors = []color.RGBA{
	{R: 220, G: 60, B: 50, A: 255},
	{R: 60, G: 110, B: 220, A: 255},
	{R: 200, G: 180, B: 50, A: 255},
}

func factionColor(faction int) color.RGBA {
	if faction >= 0 && faction < len(factionColors) {
		return factionColors[faction]
	}
	return color.RGBA{R: 160, G: 160, B: 160, A: 255}
}

// drawBattlefield renders the terrain grid and every unit snapshot at
// scale pixels per world unit, offset by (offX, offY).
func drawBattlefield(screen *ebiten.Image, e *Engine, scale float64, offX, offY int, selectedID int) {
	grid := e.Terrain()
	ox, oy := float32(offX), float32(offY)
	tilePx := float32(grid.TileSize() * scale)

	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			c := terrainColor(grid.Tile(col, row))
			vector.DrawFilledRect(screen,
				ox+float32(col)*tilePx, oy+float32(row)*tilePx,
				tilePx, tilePx, c, false)
		}
	}

	for _, s := range e.Snapshot() {
		px := ox + float32(s.Position.X*scale)
		py := oy + float32(s.Position.Y*scale)
		radius := float32(s.CollisionRadius * scale)
		if radius < 2 {
			radius = 2
		}

		if s.State == "dead" {
			grey := color.RGBA{R: 90, G: 90, B: 90, A: 200}
			vector.StrokeLine(screen, px-radius, py-radius, px+radius, py+radius, 1, grey, false)
			vector.StrokeLine(screen, px+radius, py-radius, px-radius, py+radius, 1, grey, false)
			continue
		}

		// Target line while moving.
		if s.State == "moving" {
			tx := ox + float32(s.Target.X*scale)
			ty := oy + float32(s.Target.Y*scale)
			vector.StrokeLine(screen, px, py, tx, ty, 1,
				color.RGBA{R: 255, G: 255, B: 255, A: 60}, false)
		}

		body := factionColor(s.Faction)
		if s.State == "combat" {
			// Combat posture: brighten the body so the lock-in reads at a glance.
			body.R = lighten(body.R)
			body.G = lighten(body.G)
			body.B = lighten(body.B)
		}
		vector.DrawFilledCircle(screen, px, py, radius, body, true)

		if s.ID == selectedID {
			vector.StrokeCircle(screen, px, py, radius+3, 1.5,
				color.RGBA{R: 255, G: 255, B: 255, A: 220}, true)
		}

		// HP bar.
		if s.MaxHP > 0 {
			frac := float32(s.HP) / float32(s.MaxHP)
			barW := radius * 2
			barY := py - radius - 5
			vector.DrawFilledRect(screen, px-radius, barY, barW, 2,
				color.RGBA{R: 40, G: 40, B: 40, A: 200}, false)
			vector.DrawFilledRect(screen, px-radius, barY, barW*frac, 2,
				color.RGBA{R: 70, G: 200, B: 70, A: 220}, false)
		}
	}
}

func lighten(v uint8) uint8 {
	if v > 195 {
		return 255
	}
	return v + 60
}

// drawHUD renders the status line and aggregate counts with the debug face.
func drawHUD(screen *ebiten.Image, e *Engine, status string, screenH int) {
	face := basicfont.Face7x13
	line1 := fmt.Sprintf("tick=%d living=%d moving=%d", e.Tick(), e.LivingCount(), e.MovingCount())
	counts := e.FactionCounts()
	line2 := fmt.Sprintf("red=%d blue=%d", counts[0], counts[1])
	text.Draw(screen, line1, face, 8, screenH-34, color.White)
	text.Draw(screen, line2, face, 8, screenH-20, color.White)
	if status != "" {
		text.Draw(screen, status, face, 8, screenH-6, color.RGBA{R: 255, G: 220, B: 120, A: 255})
	}
}
