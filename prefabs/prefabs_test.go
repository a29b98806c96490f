package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/minimario/lifecycle"
)

func TestGameSpecMatchesControllerDefaults(t *testing.T) {
	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	if got, want := spec.LifecycleConfig(), lifecycle.DefaultConfig(); got != want {
		t.Fatalf("LifecycleConfig = %+v, want %+v", got, want)
	}
	if spec.TickDuration() != time.Second/60 {
		t.Fatalf("TickDuration = %v", spec.TickDuration())
	}
	if spec.Background.Color != (color.NRGBA{R: 0x04, G: 0x9c, B: 0xd8, A: 0xff}) {
		t.Fatalf("Background = %v", spec.Background.Color)
	}
}

func TestLifecycleConfigOverlaysNonZero(t *testing.T) {
	var spec GameSpec
	spec.Stomp.Score = 75
	spec.PowerUp.GrowDurationMS = 1500

	cfg := spec.LifecycleConfig()
	want := lifecycle.DefaultConfig()
	want.StompScore = 75
	want.GrowDuration = 1500 * time.Millisecond
	if cfg != want {
		t.Fatalf("LifecycleConfig = %+v, want %+v", cfg, want)
	}
}

func TestEntityPrefabsDecode(t *testing.T) {
	tests := []struct {
		file       string
		components []string
	}{
		{"player.yaml", []string{"player_tag", "transform", "sprite", "animation", "physics_body", "player_life"}},
		{"goomba.yaml", []string{"enemy_tag", "transform", "animation", "physics_body", "enemy_script"}},
		{"coin.yaml", []string{"transform", "animation", "collectible"}},
		{"mushroom.yaml", []string{"transform", "sprite", "collectible"}},
		{"floor.yaml", []string{"solid_tag", "transform", "physics_body"}},
		{"cloud.yaml", []string{"transform", "sprite"}},
		{"camera.yaml", []string{"camera"}},
		{"sounds.yaml", []string{"audio"}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(tt.file)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			for _, name := range tt.components {
				if _, ok := spec.Components[name]; !ok {
					t.Errorf("missing component %q", name)
				}
			}
		})
	}
}

func TestDecodePlayerAnimation(t *testing.T) {
	spec, err := LoadEntityBuildSpec("player")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	anim, err := DecodeComponentSpec[AnimationComponentSpec](spec.Components["animation"])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{
		lifecycle.AnimMarioIdle, lifecycle.AnimMarioWalk, lifecycle.AnimMarioJump, lifecycle.AnimMarioDead,
		lifecycle.AnimMarioGrownIdle, lifecycle.AnimMarioGrownWalk, lifecycle.AnimMarioGrownJump,
	} {
		if _, ok := anim.Defs[key]; !ok {
			t.Errorf("missing animation %q", key)
		}
	}
	if got := anim.Defs[lifecycle.AnimMarioGrownIdle].FrameH; got != 32 {
		t.Errorf("grown frame height = %d, want 32", got)
	}

	body, err := DecodeComponentSpec[PhysicsBodyComponentSpec](spec.Components["physics_body"])
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Width != 18 || body.Height != 16 || !body.CollideWorldBounds {
		t.Errorf("body = %+v", body)
	}
}

func TestDecodeComponentSpecNil(t *testing.T) {
	got, err := DecodeComponentSpec[TransformComponentSpec](nil)
	if err != nil {
		t.Fatalf("decode nil: %v", err)
	}
	if got != (TransformComponentSpec{}) {
		t.Fatalf("got %+v, want zero", got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#049cd8", want: color.NRGBA{R: 0x04, G: 0x9c, B: 0xd8, A: 0xff}},
		{in: "ffffff80", want: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}},
		{in: " #000000 ", want: color.NRGBA{A: 0xff}},
		{in: "#fff", wantErr: true},
		{in: "#zz0000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	prev := Dir()
	SetDir(dir)
	t.Cleanup(func() { SetDir(prev) })

	override := []byte("gravity: 600\nstomp:\n  score: 10\n")
	if err := os.WriteFile(filepath.Join(dir, "game.yaml"), override, 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	if spec.Gravity != 600 || spec.Stomp.Score != 10 {
		t.Fatalf("override not applied: %+v", spec)
	}

	// Files missing on disk still come from the embedded set.
	if _, err := LoadScript("goomba.tengo"); err != nil {
		t.Fatalf("LoadScript fallback: %v", err)
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "player.yaml")
	if err := os.WriteFile(target, []byte("name: player\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Fatalf("event for %q, want %q", name, target)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for yaml edit")
	}
}

func TestIsWatchedFile(t *testing.T) {
	tests := map[string]bool{
		"levels/overworld.yaml": true,
		"PLAYER.YML":            true,
		"scripts/goomba.tengo":  true,
		"assets/mario.png":      false,
		"README":                false,
	}
	for path, want := range tests {
		if got := IsWatchedFile(path); got != want {
			t.Errorf("IsWatchedFile(%q) = %v, want %v", path, got, want)
		}
	}
}
