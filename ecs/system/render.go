package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"golang.org/x/image/font/basicfont"
)

var uiFace = text.NewGoXFace(basicfont.Face7x13)

// RenderSystem draws sprites back to front by layer, then score popups, as
// seen through the camera.
type RenderSystem struct {
	Background color.Color
}

func NewRenderSystem(background color.Color) *RenderSystem {
	return &RenderSystem{Background: background}
}

func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.Background != nil {
		screen.Fill(r.Background)
	}
	camX, camY := cameraOffset(w)

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	layers := make(map[ecs.Entity]int, len(entities))
	for _, e := range entities {
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			layers[e] = s.Layer
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layers[entities[i]], layers[entities[j]]
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if t == nil || s == nil || s.Image == nil || s.Hidden {
			continue
		}
		screen.DrawImage(s.Image, spriteOptions(t, s, camX, camY))
	}

	ecs.ForEach2(w, component.ScorePopupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.ScorePopup, t *component.Transform) {
		if p.Alpha <= 0 {
			return
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(t.X-camX, t.Y-camY)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignEnd
		op.ColorScale.ScaleWithColor(color.White)
		op.ColorScale.ScaleAlpha(float32(p.Alpha))
		text.Draw(screen, p.Text, uiFace, op)
	})
}

// spriteOptions pins the sprite origin to the transform. Origins are
// fractions of the image size; a left-facing sprite is mirrored in place.
func spriteOptions(t *component.Transform, s *component.Sprite, camX, camY float64) *ebiten.DrawImageOptions {
	b := s.Image.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	sx, sy := scaleOf(t)

	op := &ebiten.DrawImageOptions{}
	if s.FacingLeft {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(iw, 0)
	}
	op.GeoM.Translate(-s.OriginX*iw, -s.OriginY*ih)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(t.X-camX, t.Y-camY)
	return op
}

func cameraOffset(w *ecs.World) (float64, float64) {
	if _, cam, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		return cam.X, cam.Y
	}
	return 0, 0
}
