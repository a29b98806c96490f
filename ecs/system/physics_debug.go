package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"github.com/milk9111/minimario/lifecycle"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DebugOverlay draws collision shapes and the controller state on top of
// the scene.
type DebugOverlay struct {
	physics    *PhysicsSystem
	controller func() *lifecycle.Controller
}

func NewDebugOverlay(physics *PhysicsSystem, controller func() *lifecycle.Controller) *DebugOverlay {
	return &DebugOverlay{physics: physics, controller: controller}
}

func (d *DebugOverlay) Update(*ecs.World) {}

func (d *DebugOverlay) Draw(w *ecs.World, screen *ebiten.Image) {
	if d == nil {
		return
	}
	DrawPhysicsDebug(d.physics.Space(), w, screen)
	if d.controller != nil {
		DrawLifecycleDebug(d.controller(), w, screen)
	}
}

func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}
	camX, camY := cameraOffset(w)
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, camX: camX, camY: camY})
}

var debugTimers = []lifecycle.TimerKey{
	lifecycle.TimerDeathImpulse,
	lifecycle.TimerDeathRestart,
	lifecycle.TimerGrowComplete,
	lifecycle.TimerGrowFlicker,
}

// DrawLifecycleDebug prints the player's stage, touch flags and pending
// timers in the top-left corner.
func DrawLifecycleDebug(c *lifecycle.Controller, w *ecs.World, screen *ebiten.Image) {
	if c == nil || w == nil || screen == nil {
		return
	}
	p := c.Player()
	var b strings.Builder
	fmt.Fprintf(&b, "stage: %s\nclock: %s\n", c.Stage(), c.Now())
	if t, ok := ecs.Get(w, toEntity(p.ID), component.TouchingComponent.Kind()); ok {
		fmt.Fprintf(&b, "touch: down=%v left=%v right=%v\n", t.Down, t.Left, t.Right)
	}
	for _, key := range debugTimers {
		if due, ok := c.Pending(key); ok {
			fmt.Fprintf(&b, "%s @ %s\n", key, due)
		}
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 4, 20)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	ebitenutil.DrawLine(d.screen, a.X-d.camX, a.Y-d.camY, b.X-d.camX, b.Y-d.camY, toNRGBA(c))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := 2 * math.Pi * float64(i) / debugCircleSegments
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
