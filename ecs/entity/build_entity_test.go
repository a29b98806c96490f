package entity

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"github.com/milk9111/minimario/levels"
	"github.com/milk9111/minimario/prefabs"
)

func stubAssets(t *testing.T) {
	t.Helper()
	prevImage, prevAudio := loadImage, loadAudioPlayer
	loadImage = func(string) (*ebiten.Image, error) { return nil, nil }
	loadAudioPlayer = func(string) (*audio.Player, error) { return nil, nil }
	t.Cleanup(func() {
		loadImage, loadAudioPlayer = prevImage, prevAudio
	})
}

func TestBuildPlayer(t *testing.T) {
	stubAssets(t)
	w := ecs.NewWorld()

	e, err := BuildEntityAt(w, "player.yaml", 50, 110)
	if err != nil {
		t.Fatalf("BuildEntityAt: %v", err)
	}

	for name, has := range map[string]bool{
		"player_tag":     ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		"input":          ecs.Has(w, e, component.InputComponent.Kind()),
		"touching":       ecs.Has(w, e, component.TouchingComponent.Kind()),
		"enemy_contacts": ecs.Has(w, e, component.EnemyContactsComponent.Kind()),
		"sprite":         ecs.Has(w, e, component.SpriteComponent.Kind()),
	} {
		if !has {
			t.Errorf("player missing %s", name)
		}
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 50 || tr.Y != 110 || tr.ScaleX != 1 || tr.ScaleY != 1 {
		t.Errorf("transform = %+v", *tr)
	}
	life, _ := ecs.Get(w, e, component.PlayerLifeComponent.Kind())
	if !life.Alive {
		t.Error("player should start alive")
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.Width != 18 || body.Height != 16 || body.GravityScale != 2 || !body.CollideWorldBounds {
		t.Errorf("body = %+v", *body)
	}
	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
	if anim.Current != "mario-idle" || !anim.Playing {
		t.Errorf("animation current=%q playing=%v", anim.Current, anim.Playing)
	}
	if def := anim.Defs["mario-grown-walk"]; def.FrameH != 32 || def.FrameW != 18 || def.FrameCount != 3 {
		t.Errorf("grown walk def = %+v", def)
	}
}

func TestBuildGoombaAndCloud(t *testing.T) {
	stubAssets(t)
	w := ecs.NewWorld()

	g, err := BuildEntity(w, "goomba")
	if err != nil {
		t.Fatalf("goomba: %v", err)
	}
	body, _ := ecs.Get(w, g, component.PhysicsBodyComponent.Kind())
	if body.InitialVX != -30 {
		t.Errorf("goomba InitialVX = %v, want -30", body.InitialVX)
	}
	script, ok := ecs.Get(w, g, component.EnemyScriptComponent.Kind())
	if !ok || script.Speed != 30 {
		t.Errorf("goomba script = %+v", script)
	}

	c, err := BuildEntity(w, "cloud")
	if err != nil {
		t.Fatalf("cloud: %v", err)
	}
	tr, _ := ecs.Get(w, c, component.TransformComponent.Kind())
	if tr.ScaleX != 0.15 || tr.ScaleY != 0.15 {
		t.Errorf("cloud scale = %v,%v", tr.ScaleX, tr.ScaleY)
	}
}

func TestBuildFromSpecErrors(t *testing.T) {
	stubAssets(t)

	tests := []struct {
		name string
		spec prefabs.EntityBuildSpec
		want string
	}{
		{
			name: "no components",
			spec: prefabs.EntityBuildSpec{},
			want: "does not define components",
		},
		{
			name: "unknown component",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{"jetpack": map[string]any{}}},
			want: `no builder for component "jetpack"`,
		},
		{
			name: "zero sized body",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{"physics_body": map[string]any{"width": 0}}},
			want: "size must be positive",
		},
		{
			name: "collectible without kind",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{"collectible": map[string]any{}}},
			want: "kind is required",
		},
		{
			name: "missing initial animation",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{"animation": map[string]any{
				"sheet": "x.png", "frame_w": 8, "frame_h": 8, "current": "nope",
				"defs": map[string]any{"idle": map[string]any{"frame_count": 1}},
			}}},
			want: `"nope" is not defined`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := buildFromSpec(w, "test.yaml", tt.spec)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
			if n := len(w.Entities()); n != 0 {
				t.Fatalf("failed build left %d entities alive", n)
			}
		})
	}
}

func TestBuildLevel(t *testing.T) {
	stubAssets(t)

	lvl, err := levels.Load("", "overworld")
	if err != nil {
		t.Fatalf("levels.Load: %v", err)
	}
	w := ecs.NewWorld()
	built, err := BuildLevel(w, lvl)
	if err != nil {
		t.Fatalf("BuildLevel: %v", err)
	}

	if !ecs.Has(w, built.Player, component.PlayerTagComponent.Kind()) {
		t.Fatal("player entity missing tag")
	}
	tr, _ := ecs.Get(w, built.Player, component.TransformComponent.Kind())
	if tr.X != lvl.Spawn.X || tr.Y != lvl.Spawn.Y {
		t.Errorf("player at %v,%v, want spawn", tr.X, tr.Y)
	}
	if _, _, ok := ecs.First(w, component.CameraComponent.Kind()); !ok {
		t.Error("no camera")
	}
	_, bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width != 2000 || bounds.KillPlane != 244 {
		t.Errorf("bounds = %+v", bounds)
	}
	if _, _, ok := ecs.First(w, component.SimulationComponent.Kind()); !ok {
		t.Error("no simulation singleton")
	}

	counts := map[string]int{}
	ecs.ForEach(w, component.EnemyTagComponent.Kind(), func(ecs.Entity, *component.EnemyTag) { counts["goomba"]++ })
	ecs.ForEach(w, component.SolidTagComponent.Kind(), func(ecs.Entity, *component.SolidTag) { counts["floor"]++ })
	ecs.ForEach(w, component.CollectibleComponent.Kind(), func(_ ecs.Entity, c *component.Collectible) { counts[c.Kind]++ })

	want := map[string]int{
		"goomba":        lvl.Count(levels.EntityGoomba),
		"floor":         lvl.Count(levels.EntityFloor),
		"coin":          lvl.Count(levels.EntityCoin),
		"supermushroom": lvl.Count(levels.EntityMushroom),
	}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("%s count = %d, want %d", k, counts[k], n)
		}
	}
}

func TestApplyProps(t *testing.T) {
	stubAssets(t)
	w := ecs.NewWorld()
	g, err := BuildEntity(w, "goomba.yaml")
	if err != nil {
		t.Fatal(err)
	}

	if err := applyProps(w, g, map[string]any{"velocity_x": 30, "layer": 7.0}); err != nil {
		t.Fatalf("applyProps: %v", err)
	}
	body, _ := ecs.Get(w, g, component.PhysicsBodyComponent.Kind())
	sprite, _ := ecs.Get(w, g, component.SpriteComponent.Kind())
	if body.InitialVX != 30 || sprite.Layer != 7 {
		t.Errorf("InitialVX=%v Layer=%d", body.InitialVX, sprite.Layer)
	}

	if err := applyProps(w, g, map[string]any{"wings": 1}); err == nil {
		t.Error("expected unknown prop error")
	}
	if err := applyProps(w, g, map[string]any{"velocity_x": "fast"}); err == nil {
		t.Error("expected type error")
	}
}
