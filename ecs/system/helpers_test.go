package system

import (
	"testing"

	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
)

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func newTestWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 2000, Height: 244, KillPlane: 244})
	mustAdd(t, w, e, component.SimulationComponent.Kind(), &component.Simulation{})
	return w
}

// addTestPlayer adds a player without any images, pinned bottom-left at x,y.
func addTestPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.PlayerLifeComponent.Kind(), &component.PlayerLife{Alive: true})
	mustAdd(t, w, e, component.TouchingComponent.Kind(), &component.Touching{})
	mustAdd(t, w, e, component.EnemyContactsComponent.Kind(), &component.EnemyContacts{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{OriginX: 0, OriginY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: 18, Height: 16, OriginX: 0, OriginY: 1, Mass: 1, GravityScale: 2, CollideWorldBounds: true,
	})
	mustAdd(t, w, e, component.AnimationComponent.Kind(), &component.Animation{
		Defs: map[string]component.AnimationDef{
			"mario-idle":       {FrameCount: 1, FrameW: 18, FrameH: 16, Loop: true},
			"mario-walk":       {FrameCount: 3, FrameW: 18, FrameH: 16, FPS: 10, Loop: true},
			"mario-jump":       {FrameCount: 1, FrameW: 18, FrameH: 16},
			"mario-dead":       {FrameCount: 1, FrameW: 18, FrameH: 16},
			"mario-grown-idle": {FrameCount: 1, FrameW: 18, FrameH: 32, Loop: true},
		},
		Current: "mario-idle",
		Playing: true,
	})
	return e
}

func addTestFloor(t *testing.T, w *ecs.World, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.SolidTagComponent.Kind(), &component.SolidTag{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: width, Height: height, OriginX: 0, OriginY: 0.5, Static: true,
	})
	return e
}

func addTestEnemy(t *testing.T, w *ecs.World, x, y, vx float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
	mustAdd(t, w, e, component.TouchingComponent.Kind(), &component.Touching{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: 16, Height: 16, OriginX: 0, OriginY: 1, Mass: 1, GravityScale: 2, InitialVX: vx,
	})
	mustAdd(t, w, e, component.EnemyScriptComponent.Kind(), &component.EnemyScript{Path: "goomba.tengo", Speed: 30})
	return e
}

func addTestCollectible(t *testing.T, w *ecs.World, kind string, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{OriginX: 0.5, OriginY: 0.5})
	mustAdd(t, w, e, component.CollectibleComponent.Kind(), &component.Collectible{Kind: kind, Width: 12, Height: 16})
	return e
}

func countOf[T any](w *ecs.World, kind component.ComponentKind[T]) int {
	return len(w.Query(kind))
}
