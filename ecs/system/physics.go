package system

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeEnemy
	collisionTypeSolid
	collisionTypeBounds
)

// boxRadius rounds dynamic boxes so they slide over seams between floor tiles.
const boxRadius = 0.5

type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	world         *ecs.World
	dt            float64

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	shapes []*cp.Shape
	static bool
}

// NewPhysicsSystem builds a space with downward gravity in units/s² that
// advances by tick every update.
func NewPhysicsSystem(gravity float64, tick time.Duration) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	if tick <= 0 {
		tick = time.Second / 60
	}
	return &PhysicsSystem{
		space:    space,
		dt:       tick.Seconds(),
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.world = w

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)

	if worldPaused(w) {
		return
	}

	ps.resetContacts(w)
	ps.space.Step(ps.dt)
	ps.syncTransforms(w)
}

func worldPaused(w *ecs.World) bool {
	_, sim, ok := ecs.First(w, component.SimulationComponent.Kind())
	return ok && sim.Paused
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	touch := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys := userData.(*PhysicsSystem)
		a, b := arb.Shapes()
		ea, okA := sys.shapes[a]
		eb, okB := sys.shapes[b]
		if (okA && !sys.collides(ea)) || (okB && !sys.collides(eb)) {
			return false
		}
		n := arb.Normal()
		if okA {
			sys.recordTouch(ea, n)
		}
		if okB {
			sys.recordTouch(eb, n.Neg())
		}
		return true
	}

	pairs := [][2]cp.CollisionType{
		{collisionTypePlayer, collisionTypeSolid},
		{collisionTypeEnemy, collisionTypeSolid},
		{collisionTypeEnemy, collisionTypeEnemy},
	}
	for _, p := range pairs {
		h := ps.space.NewCollisionHandler(p[0], p[1])
		h.UserData = ps
		h.PreSolveFunc = touch
	}

	for _, t := range []cp.CollisionType{collisionTypePlayer, collisionTypeEnemy} {
		h := ps.space.NewCollisionHandler(t, collisionTypeBounds)
		h.UserData = ps
		h.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			sys := userData.(*PhysicsSystem)
			a, _ := arb.Shapes()
			e, ok := sys.shapes[a]
			if !ok || !sys.collides(e) {
				return false
			}
			body, ok := ecs.Get(sys.world, e, component.PhysicsBodyComponent.Kind())
			if !ok || !body.CollideWorldBounds {
				return false
			}
			sys.recordTouch(e, arb.Normal())
			return true
		}
	}

	enemy := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeEnemy)
	enemy.UserData = ps
	enemy.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys := userData.(*PhysicsSystem)
		a, b := arb.Shapes()
		player, okA := sys.shapes[a]
		foe, okB := sys.shapes[b]
		if !okA || !okB || !sys.collides(player) {
			return false
		}
		// Defeated enemies lose their tag and stop blocking the player.
		if !ecs.Has(sys.world, foe, component.EnemyTagComponent.Kind()) {
			return false
		}
		n := arb.Normal()
		sys.recordTouch(player, n)
		sys.recordTouch(foe, n.Neg())

		if contacts, ok := ecs.Get(sys.world, player, component.EnemyContactsComponent.Kind()); ok {
			below := n.Y > 0.5
			contacts.Record(uint64(foe), below, below)
		}
		return true
	}

	ps.handlersReady = true
}

// collides reports whether e still takes part in collisions. A dead player
// falls through everything.
func (ps *PhysicsSystem) collides(e ecs.Entity) bool {
	if life, ok := ecs.Get(ps.world, e, component.PlayerLifeComponent.Kind()); ok {
		return life.Alive
	}
	return ps.world.IsAlive(e)
}

// recordTouch marks the side of e facing along n, the normal pointing away
// from e.
func (ps *PhysicsSystem) recordTouch(e ecs.Entity, n cp.Vector) {
	t, ok := ecs.Get(ps.world, e, component.TouchingComponent.Kind())
	if !ok {
		return
	}
	switch {
	case n.Y > 0.5:
		t.Down = true
	case n.Y < -0.5:
		t.Up = true
	}
	switch {
	case n.X > 0.5:
		t.Right = true
	case n.X < -0.5:
		t.Left = true
	}
}

func (ps *PhysicsSystem) resetContacts(w *ecs.World) {
	ecs.ForEach(w, component.TouchingComponent.Kind(), func(_ ecs.Entity, t *component.Touching) {
		t.Reset()
	})
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info := ps.entities[e]
		if info != nil {
			if bodyComp.Dirty {
				ps.rebuildShape(w, e, info, bodyComp, transform)
			}
			return
		}

		info = ps.createBodyInfo(w, e, transform, bodyComp)
		if info == nil {
			return
		}
		ps.entities[e] = info
		for _, s := range info.shapes {
			ps.shapes[s] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
		bodyComp.Dirty = false
	})
}

// bodyCenter converts the origin-pinned transform into the body center.
func bodyCenter(t *component.Transform, b *component.PhysicsBody) cp.Vector {
	left := t.X - b.OriginX*b.Width
	top := t.Y - b.OriginY*b.Height
	return cp.Vector{X: left + b.Width/2, Y: top + b.Height/2}
}

func collisionTypeFor(w *ecs.World, e ecs.Entity) cp.CollisionType {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return collisionTypePlayer
	case ecs.Has(w, e, component.EnemyTagComponent.Kind()):
		return collisionTypeEnemy
	default:
		return collisionTypeSolid
	}
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	if bodyComp.Width <= 0 || bodyComp.Height <= 0 {
		return nil
	}
	center := bodyCenter(transform, bodyComp)

	if bodyComp.Static {
		bb := cp.BB{
			L: center.X - bodyComp.Width/2,
			B: center.Y - bodyComp.Height/2,
			R: center.X + bodyComp.Width/2,
			T: center.Y + bodyComp.Height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(center)
	body.SetVelocity(bodyComp.InitialVX, bodyComp.InitialVY)

	scale := bodyComp.GravityScale
	if scale == 0 {
		scale = 1
	}
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(b, gravity.Mult(scale), damping, dt)
	})

	shape := ps.newBoxShape(body, bodyComp, collisionTypeFor(w, e))
	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	return &bodyInfo{body: body, shape: shape, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) newBoxShape(body *cp.Body, bodyComp *component.PhysicsBody, ct cp.CollisionType) *cp.Shape {
	shape := cp.NewBox(body, bodyComp.Width-2*boxRadius, bodyComp.Height-2*boxRadius, boxRadius)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(0)
	shape.SetCollisionType(ct)
	return shape
}

// rebuildShape swaps the collision box after a size change. The transform
// origin stays put, so a bottom-anchored body grows upwards.
func (ps *PhysicsSystem) rebuildShape(w *ecs.World, e ecs.Entity, info *bodyInfo, bodyComp *component.PhysicsBody, transform *component.Transform) {
	bodyComp.Dirty = false
	if info.static || info.body == nil || bodyComp.Width <= 0 || bodyComp.Height <= 0 {
		return
	}

	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
		delete(ps.shapes, info.shape)
	}
	shape := ps.newBoxShape(info.body, bodyComp, collisionTypeFor(w, e))
	info.body.SetPosition(bodyCenter(transform, bodyComp))
	ps.space.AddShape(shape)
	ps.shapes[shape] = e

	info.shape = shape
	info.shapes = []*cp.Shape{shape}
	bodyComp.Shape = shape
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}

	worldW := bounds.Width
	// The floor of the box sits just under the kill plane so a falling
	// player still reaches it.
	worldH := bounds.Height + 1
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 0)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeBounds)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}

	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X - bodyComp.Width/2 + bodyComp.OriginX*bodyComp.Width
		transform.Y = pos.Y - bodyComp.Height/2 + bodyComp.OriginY*bodyComp.Height
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.shapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
