package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
)

// HUDSystem draws the score and the best score seen so far. Best is the
// stored high score; a live score above it shows instead.
type HUDSystem struct {
	Best int
}

func NewHUDSystem(best int) *HUDSystem {
	return &HUDSystem{Best: best}
}

func (h *HUDSystem) Update(*ecs.World) {}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}
	_, life, ok := ecs.First(w, component.PlayerLifeComponent.Kind())
	if !ok {
		return
	}
	best := max(h.Best, life.Score)

	op := &text.DrawOptions{}
	op.GeoM.Translate(4, 4)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, fmt.Sprintf("SCORE %06d", life.Score), uiFace, op)

	op = &text.DrawOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx())-4, 4)
	op.PrimaryAlign = text.AlignEnd
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, fmt.Sprintf("BEST %06d", best), uiFace, op)

	if !life.Alive {
		op = &text.DrawOptions{}
		op.GeoM.Translate(float64(screen.Bounds().Dx())/2, float64(screen.Bounds().Dy())/2)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, "GAME OVER", uiFace, op)
	}
}
