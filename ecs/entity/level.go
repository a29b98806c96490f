package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"github.com/milk9111/minimario/levels"
)

// Level is what BuildLevel created that the game needs to hold on to.
type Level struct {
	Player ecs.Entity
	Camera ecs.Entity
	Sounds ecs.Entity
}

var levelPrefabs = map[string]string{
	levels.EntityFloor:    "floor.yaml",
	levels.EntityGoomba:   "goomba.yaml",
	levels.EntityCoin:     "coin.yaml",
	levels.EntityMushroom: "mushroom.yaml",
	levels.EntityCloud:    "cloud.yaml",
}

// BuildLevel populates an empty world from lvl: the level bounds and
// simulation singletons, the sound bank, the camera, every placed entity and
// the player at the spawn point.
func BuildLevel(w *ecs.World, lvl *levels.Level) (Level, error) {
	var out Level
	if w == nil || lvl == nil {
		return out, fmt.Errorf("build level: world and level are required")
	}

	singletons := ecs.CreateEntity(w)
	if err := ecs.Add(w, singletons, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:     lvl.Width,
		Height:    lvl.Height,
		KillPlane: lvl.KillPlane,
	}); err != nil {
		return out, fmt.Errorf("build level: add bounds: %w", err)
	}
	if err := ecs.Add(w, singletons, component.SimulationComponent.Kind(), &component.Simulation{}); err != nil {
		return out, fmt.Errorf("build level: add simulation: %w", err)
	}

	var err error
	if out.Sounds, err = BuildEntity(w, "sounds.yaml"); err != nil {
		return out, fmt.Errorf("build level: %w", err)
	}
	if out.Camera, err = BuildEntity(w, "camera.yaml"); err != nil {
		return out, fmt.Errorf("build level: %w", err)
	}

	for i, placed := range lvl.Entities {
		prefab, ok := levelPrefabs[strings.ToLower(placed.Type)]
		if !ok {
			return out, fmt.Errorf("build level: entity %d: unknown type %q", i, placed.Type)
		}
		e, err := BuildEntityAt(w, prefab, placed.X, placed.Y)
		if err != nil {
			return out, fmt.Errorf("build level: entity %d: %w", i, err)
		}
		if err := applyProps(w, e, placed.Props); err != nil {
			return out, fmt.Errorf("build level: entity %d (%s): %w", i, placed.Type, err)
		}
	}

	if out.Player, err = BuildEntityAt(w, "player.yaml", lvl.Spawn.X, lvl.Spawn.Y); err != nil {
		return out, fmt.Errorf("build level: %w", err)
	}
	return out, nil
}

// applyProps applies per-placement overrides from the level file.
func applyProps(w *ecs.World, e ecs.Entity, props map[string]any) error {
	for key, raw := range props {
		v, ok := toFloat(raw)
		if !ok {
			return fmt.Errorf("prop %q: want a number, got %T", key, raw)
		}
		switch key {
		case "velocity_x", "velocity_y":
			body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			if !ok {
				return fmt.Errorf("prop %q needs a physics body", key)
			}
			if key == "velocity_x" {
				body.InitialVX = v
			} else {
				body.InitialVY = v
			}
		case "scale":
			t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
			if !ok {
				return fmt.Errorf("prop %q needs a transform", key)
			}
			t.ScaleX, t.ScaleY = v, v
		case "layer":
			s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
			if !ok {
				return fmt.Errorf("prop %q needs a sprite", key)
			}
			s.Layer = int(v)
		default:
			return fmt.Errorf("unknown prop %q", key)
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}
