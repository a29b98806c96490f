package system

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"github.com/milk9111/minimario/lifecycle"
)

// enemyCullMargin is how far below the level an enemy may fall before it is
// removed.
const enemyCullMargin = 64

// LifecycleSystem feeds world queries into the lifecycle controller and
// applies the commands it emits. It runs after physics so contacts and
// positions are from the step that just happened.
type LifecycleSystem struct {
	controller *lifecycle.Controller
	tick       time.Duration
	logger     *log.Logger
	cmds       lifecycle.Commands
}

func NewLifecycleSystem(controller *lifecycle.Controller, tick time.Duration, logger *log.Logger) *LifecycleSystem {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &LifecycleSystem{controller: controller, tick: tick, logger: logger}
}

func (s *LifecycleSystem) Controller() *lifecycle.Controller {
	return s.controller
}

func (s *LifecycleSystem) Update(w *ecs.World) {
	if s == nil || s.controller == nil || w == nil {
		return
	}
	session := s.controller.Session()
	player := toEntity(session.Player.ID)

	transform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	vx, vy := 0.0, 0.0
	if body != nil && body.Body != nil {
		v := body.Body.Velocity()
		vx, vy = v.X, v.Y
	}
	s.controller.SyncPlayer(transform.X, transform.Y, vx, vy)

	_, bounds, hasBounds := ecs.First(w, component.LevelBoundsComponent.Kind())
	if hasBounds {
		s.controller.EvaluateFall(transform.Y, bounds.KillPlane, &s.cmds)
	}

	s.resolveEnemyContacts(w, player, session)
	if body != nil {
		s.resolveOverlaps(w, transform, body, session)
	}

	if input, ok := ecs.Get(w, player, component.InputComponent.Kind()); ok {
		grounded := false
		if t, ok := ecs.Get(w, player, component.TouchingComponent.Kind()); ok {
			grounded = t.Down
		}
		s.controller.Steer(lifecycle.MoveIntent{X: input.MoveX, Jump: input.Jump}, grounded, &s.cmds)
	}

	s.controller.Advance(s.tick, &s.cmds)
	ApplyCommands(w, s.cmds.Drain(), s.logger)

	if hasBounds {
		s.cullFallenEnemies(w, session, bounds)
	}
	mirrorPlayer(w, player, s.controller)
}

func (s *LifecycleSystem) resolveEnemyContacts(w *ecs.World, player ecs.Entity, session *lifecycle.Session) {
	contacts, ok := ecs.Get(w, player, component.EnemyContactsComponent.Kind())
	if !ok {
		return
	}
	for _, c := range contacts.Drain() {
		id := lifecycle.EntityID(c.Enemy)
		enemy, ok := session.Enemy(id)
		if !ok {
			continue
		}
		if t, ok := ecs.Get(w, toEntity(id), component.TransformComponent.Kind()); ok {
			enemy.X, enemy.Y = t.X, t.Y
		}
		outcome := s.controller.EvaluateEnemyContact(enemy, c.PlayerDown, c.EnemyUp, &s.cmds)
		if outcome == lifecycle.ContactEnemyDefeated {
			e := toEntity(id)
			ecs.Remove(w, e, component.EnemyTagComponent.Kind())
			ecs.Remove(w, e, component.EnemyScriptComponent.Kind())
		}
	}
}

func (s *LifecycleSystem) resolveOverlaps(w *ecs.World, playerT *component.Transform, body *component.PhysicsBody, session *lifecycle.Session) {
	pl, pt := playerT.X-body.OriginX*body.Width, playerT.Y-body.OriginY*body.Height
	pr, pb := pl+body.Width, pt+body.Height

	ecs.ForEach2(w, component.CollectibleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, item *component.Collectible, t *component.Transform) {
		ox, oy := 0.0, 0.0
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			ox, oy = sprite.OriginX, sprite.OriginY
		}
		il, it := t.X-ox*item.Width, t.Y-oy*item.Height
		if pr <= il || pl >= il+item.Width || pb <= it || pt >= it+item.Height {
			return
		}
		state, ok := session.Collectible(toLifecycleID(e))
		if !ok {
			return
		}
		state.X, state.Y = t.X, t.Y
		s.controller.EvaluateCollect(state, &s.cmds)
	})
}

func (s *LifecycleSystem) cullFallenEnemies(w *ecs.World, session *lifecycle.Session, bounds *component.LevelBounds) {
	for id := range session.Enemies {
		e := toEntity(id)
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			session.Forget(id)
			continue
		}
		if t.Y > bounds.Height+enemyCullMargin || t.X < -enemyCullMargin || t.X > bounds.Width+enemyCullMargin {
			s.logger.Debug("enemy left the level", "enemy", id)
			session.Forget(id)
			w.DestroyEntity(e)
		}
	}
}

func mirrorPlayer(w *ecs.World, player ecs.Entity, c *lifecycle.Controller) {
	life, ok := ecs.Get(w, player, component.PlayerLifeComponent.Kind())
	if !ok {
		return
	}
	p := c.Player()
	life.Alive = p.Alive
	life.Grown = p.Form == lifecycle.FormGrown
	life.Growing = p.Stage() == lifecycle.StageAliveGrowing
	life.InputBlocked = p.InputBlocked
	life.Score = p.Score
}

// NewSessionFromWorld registers the player, every enemy and every collectible
// found in w with a fresh session.
func NewSessionFromWorld(w *ecs.World) (*lifecycle.Session, error) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("lifecycle session: world has no player")
	}
	session := lifecycle.NewSession(toLifecycleID(player))
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		session.Player.X, session.Player.Y = t.X, t.Y
	}

	ecs.ForEach2(w, component.EnemyTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag, t *component.Transform) {
		vx := 0.0
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			vx = body.InitialVX
		}
		session.AddEnemy(toLifecycleID(e), t.X, t.Y, vx)
	})

	var err error
	ecs.ForEach2(w, component.CollectibleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Collectible, t *component.Transform) {
		kind, ok := lifecycle.ParseCollectibleKind(c.Kind)
		if !ok {
			if err == nil {
				err = fmt.Errorf("lifecycle session: entity %v: unknown collectible kind %q", e, c.Kind)
			}
			return
		}
		session.AddCollectible(toLifecycleID(e), kind, t.X, t.Y)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}
