package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"github.com/milk9111/minimario/ecs/entity"
	"github.com/milk9111/minimario/lifecycle"
)

func toEntity(id lifecycle.EntityID) ecs.Entity {
	return ecs.Entity(id)
}

func toLifecycleID(e ecs.Entity) lifecycle.EntityID {
	return lifecycle.EntityID(e)
}

// ApplyCommands executes controller commands against the world in order.
// Commands aimed at entities that no longer exist are dropped.
func ApplyCommands(w *ecs.World, cmds []lifecycle.Command, logger *log.Logger) {
	if w == nil {
		return
	}
	for _, cmd := range cmds {
		if err := applyCommand(w, cmd); err != nil && logger != nil {
			logger.Warn("command not applied", "command", cmd, "err", err)
		}
	}
}

type commandError string

func (e commandError) Error() string { return string(e) }

const (
	errNoBody      commandError = "target has no physics body"
	errNoSprite    commandError = "target has no sprite"
	errNoAnimation commandError = "unknown animation"
	errNoSound     commandError = "unknown sound"
)

func applyCommand(w *ecs.World, cmd lifecycle.Command) error {
	switch c := cmd.(type) {
	case lifecycle.SetVelocityX:
		body, ok := ecs.Get(w, toEntity(c.Target), component.PhysicsBodyComponent.Kind())
		if !ok {
			return errNoBody
		}
		if body.Body == nil {
			body.InitialVX = c.X
			return nil
		}
		v := body.Body.Velocity()
		body.Body.SetVelocity(c.X, v.Y)

	case lifecycle.SetVelocityY:
		body, ok := ecs.Get(w, toEntity(c.Target), component.PhysicsBodyComponent.Kind())
		if !ok {
			return errNoBody
		}
		if body.Body == nil {
			body.InitialVY = c.Y
			return nil
		}
		v := body.Body.Velocity()
		body.Body.SetVelocity(v.X, c.Y)

	case lifecycle.SetFacing:
		sprite, ok := ecs.Get(w, toEntity(c.Target), component.SpriteComponent.Kind())
		if !ok {
			return errNoSprite
		}
		sprite.FacingLeft = c.Left

	case lifecycle.SetBodySize:
		body, ok := ecs.Get(w, toEntity(c.Target), component.PhysicsBodyComponent.Kind())
		if !ok {
			return errNoBody
		}
		body.Width = c.Width
		body.Height = c.Height
		body.Dirty = true

	case lifecycle.SetWorldBoundsCollision:
		body, ok := ecs.Get(w, toEntity(c.Target), component.PhysicsBodyComponent.Kind())
		if !ok {
			return errNoBody
		}
		body.CollideWorldBounds = c.Enabled

	case lifecycle.PlayAnimation:
		return playAnimation(w, toEntity(c.Target), c.Key, c.Loop)

	case lifecycle.PlaySound:
		_, bank, ok := ecs.First(w, component.AudioComponent.Kind())
		if !ok || !bank.Request(c.Key, c.Volume) {
			return errNoSound
		}

	case lifecycle.SetWorldPaused:
		_, sim, ok := ecs.First(w, component.SimulationComponent.Kind())
		if !ok {
			e := w.CreateEntity()
			sim = &component.Simulation{}
			if err := ecs.Add(w, e, component.SimulationComponent.Kind(), sim); err != nil {
				return err
			}
		}
		sim.Paused = c.Paused

	case lifecycle.SpawnScorePopup:
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: c.X, Y: c.Y, ScaleX: 1, ScaleY: 1}); err != nil {
			return err
		}
		return ecs.Add(w, e, component.ScorePopupComponent.Kind(), &component.ScorePopup{
			Text:    c.Text,
			StartY:  c.Y,
			Rise:    c.Rise,
			RiseFor: c.RiseFor,
			FadeFor: c.FadeFor,
			Alpha:   1,
		})

	case lifecycle.DestroyEntity:
		w.DestroyEntity(toEntity(c.Target))

	case lifecycle.RestartSession:
		if _, ok := w.First(component.RestartRequestComponent.Kind()); ok {
			return nil
		}
		return ecs.Add(w, w.CreateEntity(), component.RestartRequestComponent.Kind(), &component.RestartRequest{})
	}
	return nil
}

// playAnimation switches e to key. Asking for the clip that is already
// playing leaves it running. The sprite shows the first frame right away, so
// switches are visible while the world is paused.
func playAnimation(w *ecs.World, e ecs.Entity, key string, loop bool) error {
	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok {
		return errNoAnimation
	}
	def, ok := anim.Defs[key]
	if !ok {
		return errNoAnimation
	}
	if anim.Current == key && anim.Playing {
		return nil
	}

	anim.Current = key
	anim.Frame = 0
	anim.FrameTimer = 0
	anim.Playing = true
	anim.Loop = loop || def.Loop

	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Image = entity.FrameImage(def, 0)
	}
	return nil
}
