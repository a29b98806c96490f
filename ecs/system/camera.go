package system

import (
	"github.com/milk9111/minimario/common"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
)

// CameraSystem moves the camera towards the player and keeps the viewport
// inside the level bounds.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	_, cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	cx, cy := visualCenter(w, player, target)
	wantX := cx - cam.Width/2
	wantY := cy - cam.Height/2

	if cam.Snap || cam.Lerp >= 1 || cam.Lerp <= 0 {
		cam.X, cam.Y = wantX, wantY
		cam.Snap = false
	} else {
		cam.X = common.Lerp(cam.X, wantX, cam.Lerp)
		cam.Y = common.Lerp(cam.Y, wantY, cam.Lerp)
	}

	if _, bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		cam.X = clampAxis(cam.X, cam.Width, bounds.Width)
		cam.Y = clampAxis(cam.Y, cam.Height, bounds.Height)
	}
}

// visualCenter is the middle of the entity's sprite in world space, or its
// transform when it has no sprite.
func visualCenter(w *ecs.World, e ecs.Entity, t *component.Transform) (float64, float64) {
	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok || sprite.Image == nil {
		return t.X, t.Y
	}
	sx, sy := scaleOf(t)
	b := sprite.Image.Bounds()
	iw, ih := float64(b.Dx())*sx, float64(b.Dy())*sy
	return t.X + (0.5-sprite.OriginX)*iw, t.Y + (0.5-sprite.OriginY)*ih
}

// clampAxis keeps a view of size view inside [0, limit].
func clampAxis(pos, view, limit float64) float64 {
	return common.Clamp(pos, 0, limit-view)
}

func scaleOf(t *component.Transform) (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}
