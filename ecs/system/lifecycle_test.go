package system

import (
	"testing"
	"time"

	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"github.com/milk9111/minimario/lifecycle"
)

const testTick = time.Second / 60

func newTestLifecycle(t *testing.T, w *ecs.World) *LifecycleSystem {
	t.Helper()
	session, err := NewSessionFromWorld(w)
	if err != nil {
		t.Fatalf("NewSessionFromWorld: %v", err)
	}
	return NewLifecycleSystem(lifecycle.NewController(session, lifecycle.DefaultConfig()), testTick, nil)
}

func TestNewSessionFromWorld(t *testing.T) {
	w := newTestWorld(t)
	player := addTestPlayer(t, w, 50, 110)
	goomba := addTestEnemy(t, w, 120, 212, -30)
	coin := addTestCollectible(t, w, "coin", 300, 150)
	mushroom := addTestCollectible(t, w, "supermushroom", 460, 212)

	session, err := NewSessionFromWorld(w)
	if err != nil {
		t.Fatalf("NewSessionFromWorld: %v", err)
	}
	if session.Player.ID != toLifecycleID(player) || !session.Player.Alive || session.Player.Score != 0 {
		t.Fatalf("player = %+v", session.Player)
	}
	if e, ok := session.Enemy(toLifecycleID(goomba)); !ok || e.VelocityX != -30 || e.X != 120 {
		t.Fatalf("enemy = %+v ok=%v", e, ok)
	}
	if c, ok := session.Collectible(toLifecycleID(coin)); !ok || c.Kind != lifecycle.CollectibleCoin {
		t.Fatalf("coin = %+v ok=%v", c, ok)
	}
	if c, ok := session.Collectible(toLifecycleID(mushroom)); !ok || c.Kind != lifecycle.CollectibleMushroom {
		t.Fatalf("mushroom = %+v ok=%v", c, ok)
	}
}

func TestNewSessionFromWorldErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, w *ecs.World)
	}{
		{name: "no player", setup: func(*testing.T, *ecs.World) {}},
		{
			name: "unknown collectible",
			setup: func(t *testing.T, w *ecs.World) {
				addTestPlayer(t, w, 0, 0)
				addTestCollectible(t, w, "star", 10, 10)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			tt.setup(t, w)
			if _, err := NewSessionFromWorld(w); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLifecycleSystemFall(t *testing.T) {
	tests := []struct {
		name      string
		y         float64
		wantAlive bool
	}{
		{name: "just above the kill plane", y: 243, wantAlive: true},
		{name: "at the kill plane", y: 244, wantAlive: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			player := addTestPlayer(t, w, 50, tt.y)
			sys := newTestLifecycle(t, w)

			sys.Update(w)

			life, _ := ecs.Get(w, player, component.PlayerLifeComponent.Kind())
			if life.Alive != tt.wantAlive {
				t.Fatalf("alive = %v, want %v", life.Alive, tt.wantAlive)
			}
			if tt.wantAlive {
				return
			}
			body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
			if body.CollideWorldBounds {
				t.Fatal("dead player should not collide with world bounds")
			}
			anim, _ := ecs.Get(w, player, component.AnimationComponent.Kind())
			if anim.Current != lifecycle.AnimMarioDead {
				t.Fatalf("animation = %q, want %q", anim.Current, lifecycle.AnimMarioDead)
			}
		})
	}
}

func TestLifecycleSystemRestartAfterDeath(t *testing.T) {
	w := newTestWorld(t)
	addTestPlayer(t, w, 50, 300)
	sys := newTestLifecycle(t, w)

	ticks := 0
	for ; ticks < 200; ticks++ {
		sys.Update(w)
		if _, ok := w.First(component.RestartRequestComponent.Kind()); ok {
			break
		}
	}
	elapsed := time.Duration(ticks+1) * testTick
	if elapsed < 2*time.Second || elapsed > 2*time.Second+2*testTick {
		t.Fatalf("restart requested after %v, want about 2s", elapsed)
	}
}

func TestLifecycleSystemCollect(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		wantScore  int
		wantPaused bool
		wantPopup  bool
	}{
		{name: "coin", kind: "coin", wantScore: 100, wantPopup: true},
		{name: "mushroom", kind: "supermushroom", wantPaused: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			player := addTestPlayer(t, w, 50, 110)
			item := addTestCollectible(t, w, tt.kind, 59, 102)
			sys := newTestLifecycle(t, w)

			sys.Update(w)

			if w.IsAlive(item) {
				t.Fatal("collected item should be destroyed")
			}
			life, _ := ecs.Get(w, player, component.PlayerLifeComponent.Kind())
			if life.Score != tt.wantScore {
				t.Fatalf("score = %d, want %d", life.Score, tt.wantScore)
			}
			if got := worldPaused(w); got != tt.wantPaused {
				t.Fatalf("paused = %v, want %v", got, tt.wantPaused)
			}
			if got := countOf(w, component.ScorePopupComponent.Kind()) > 0; got != tt.wantPopup {
				t.Fatalf("popup = %v, want %v", got, tt.wantPopup)
			}
			if tt.wantPaused && (!life.Growing || !life.InputBlocked) {
				t.Fatalf("life = %+v, want growing with input blocked", life)
			}
		})
	}
}

func TestLifecycleSystemGrowthCompletes(t *testing.T) {
	w := newTestWorld(t)
	player := addTestPlayer(t, w, 50, 110)
	addTestCollectible(t, w, "mushroom", 59, 102)
	sys := newTestLifecycle(t, w)

	for i := 0; i < 61; i++ {
		sys.Update(w)
	}

	life, _ := ecs.Get(w, player, component.PlayerLifeComponent.Kind())
	if !life.Grown || life.Growing || life.InputBlocked {
		t.Fatalf("life = %+v, want grown", life)
	}
	if worldPaused(w) {
		t.Fatal("world should resume after growing")
	}
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if body.Width != 18 || body.Height != 32 {
		t.Fatalf("body = %vx%v, want 18x32", body.Width, body.Height)
	}
}

func TestLifecycleSystemEnemyContact(t *testing.T) {
	tests := []struct {
		name        string
		contact     component.EnemyContact
		wantAlive   bool
		wantScore   int
		wantEnemyUp bool
	}{
		{name: "stomp", contact: component.EnemyContact{PlayerDown: true, EnemyUp: true}, wantAlive: true, wantScore: 50},
		{name: "side graze", contact: component.EnemyContact{}, wantAlive: false},
		{name: "half a stomp", contact: component.EnemyContact{PlayerDown: true}, wantAlive: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			player := addTestPlayer(t, w, 50, 110)
			enemy := addTestEnemy(t, w, 60, 126, -30)
			sys := newTestLifecycle(t, w)

			contacts, _ := ecs.Get(w, player, component.EnemyContactsComponent.Kind())
			contacts.Record(uint64(enemy), tt.contact.PlayerDown, tt.contact.EnemyUp)
			sys.Update(w)

			life, _ := ecs.Get(w, player, component.PlayerLifeComponent.Kind())
			if life.Alive != tt.wantAlive || life.Score != tt.wantScore {
				t.Fatalf("life = %+v, want alive=%v score=%d", life, tt.wantAlive, tt.wantScore)
			}
			if !tt.wantAlive {
				return
			}
			if ecs.Has(w, enemy, component.EnemyTagComponent.Kind()) {
				t.Fatal("defeated enemy should lose its tag")
			}
			body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
			if body.InitialVY != -200 {
				t.Fatalf("player vy = %v, want -200", body.InitialVY)
			}

			for i := 0; i < 19 && w.IsAlive(enemy); i++ {
				sys.Update(w)
			}
			if w.IsAlive(enemy) {
				t.Fatal("defeated enemy should be removed after 300ms")
			}
		})
	}
}

func TestLifecycleSystemCullsFallenEnemies(t *testing.T) {
	w := newTestWorld(t)
	addTestPlayer(t, w, 50, 110)
	enemy := addTestEnemy(t, w, 700, 400, -30)
	sys := newTestLifecycle(t, w)

	sys.Update(w)

	if w.IsAlive(enemy) {
		t.Fatal("enemy below the level should be removed")
	}
	if _, ok := sys.Controller().Session().Enemy(toLifecycleID(enemy)); ok {
		t.Fatal("session should forget the removed enemy")
	}
}

func TestLifecycleSystemSteer(t *testing.T) {
	w := newTestWorld(t)
	player := addTestPlayer(t, w, 50, 110)
	touching, _ := ecs.Get(w, player, component.TouchingComponent.Kind())
	touching.Down = true
	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	input.MoveX = -1
	input.Jump = true
	sys := newTestLifecycle(t, w)

	sys.Update(w)

	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if body.InitialVX != -100 || body.InitialVY != -300 {
		t.Fatalf("velocity = (%v, %v), want (-100, -300)", body.InitialVX, body.InitialVY)
	}
	sprite, _ := ecs.Get(w, player, component.SpriteComponent.Kind())
	if !sprite.FacingLeft {
		t.Fatal("expected player to face left")
	}
}
