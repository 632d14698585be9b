package main

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kestrelgames/skirmish/internal/sim"
)

func main() {
	engine := sim.DefaultScenario(time.Now().UnixNano())
	viewer := sim.NewViewer(engine)

	ebiten.SetWindowTitle("Skirmish")
	ebiten.SetWindowSize(viewer.Layout(0, 0))
	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
