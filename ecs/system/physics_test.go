package system

import (
	"math"
	"testing"

	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"github.com/milk9111/minimario/lifecycle"
)

func TestPhysicsLandsOnFloor(t *testing.T) {
	w := newTestWorld(t)
	addTestFloor(t, w, 0, 228, 400, 32)
	player := addTestPlayer(t, w, 50, 150)

	ps := NewPhysicsSystem(300, testTick)
	for i := 0; i < 120; i++ {
		ps.Update(w)
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if math.Abs(tr.Y-212) > 1.5 {
		t.Fatalf("player bottom = %v, want about 212", tr.Y)
	}
	touching, _ := ecs.Get(w, player, component.TouchingComponent.Kind())
	if !touching.Down {
		t.Fatal("player should be touching down")
	}
}

func TestPhysicsPausedWorldHoldsStill(t *testing.T) {
	w := newTestWorld(t)
	player := addTestPlayer(t, w, 50, 100)
	ps := NewPhysicsSystem(300, testTick)
	ps.Update(w)

	ApplyCommands(w, []lifecycle.Command{lifecycle.SetWorldPaused{Paused: true}}, nil)
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	before := *tr
	for i := 0; i < 30; i++ {
		ps.Update(w)
	}
	if *tr != before {
		t.Fatalf("transform moved while paused: %+v -> %+v", before, *tr)
	}
}

func TestPhysicsDeadPlayerFallsThroughFloor(t *testing.T) {
	w := newTestWorld(t)
	addTestFloor(t, w, 0, 228, 400, 32)
	player := addTestPlayer(t, w, 50, 200)
	life, _ := ecs.Get(w, player, component.PlayerLifeComponent.Kind())
	life.Alive = false
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	body.CollideWorldBounds = false

	ps := NewPhysicsSystem(300, testTick)
	for i := 0; i < 60; i++ {
		ps.Update(w)
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.Y < 244 {
		t.Fatalf("dead player y = %v, want below the kill plane", tr.Y)
	}
}

func TestPhysicsBodySizeKeepsBottom(t *testing.T) {
	w := newTestWorld(t)
	player := addTestPlayer(t, w, 50, 100)
	ps := NewPhysicsSystem(300, testTick)
	ps.Update(w)

	ApplyCommands(w, []lifecycle.Command{
		lifecycle.SetWorldPaused{Paused: true},
		lifecycle.SetBodySize{Target: toLifecycleID(player), Width: 18, Height: 32},
	}, nil)
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	bottom := tr.Y
	ps.Update(w)

	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if body.Dirty {
		t.Fatal("shape should have been rebuilt")
	}
	center := body.Body.Position()
	if math.Abs(center.Y+16-bottom) > 1e-9 {
		t.Fatalf("body center y = %v, want %v", center.Y, bottom-16)
	}
}

func TestPhysicsStompRecordsContact(t *testing.T) {
	w := newTestWorld(t)
	addTestFloor(t, w, 0, 228, 400, 32)
	enemy := addTestEnemy(t, w, 100, 212, 0)
	ecs.Remove(w, enemy, component.EnemyScriptComponent.Kind())
	player := addTestPlayer(t, w, 99, 180)

	ps := NewPhysicsSystem(300, testTick)
	contacts, _ := ecs.Get(w, player, component.EnemyContactsComponent.Kind())
	var got []component.EnemyContact
	for i := 0; i < 60 && len(got) == 0; i++ {
		ps.Update(w)
		got = contacts.Drain()
	}
	if len(got) == 0 {
		t.Fatal("expected a player/enemy contact")
	}
	if got[0].Enemy != uint64(enemy) || !got[0].PlayerDown || !got[0].EnemyUp {
		t.Fatalf("contact = %+v, want a stomp on %v", got[0], enemy)
	}
}
