package entity

import (
	"fmt"
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/minimario/assets"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"github.com/milk9111/minimario/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

// Asset loaders, swapped out in tests so prefabs build without a GPU or an
// audio device.
var (
	loadImage       = assets.LoadImage
	loadAudioPlayer = assets.LoadAudioPlayer
)

var componentRegistry = map[string]componentBuildFn{
	"player_tag":     addPlayerTag,
	"enemy_tag":      addEnemyTag,
	"solid_tag":      addSolidTag,
	"camera_tag":     addCameraTag,
	"input":          addInput,
	"player_life":    addPlayerLife,
	"touching":       addTouching,
	"enemy_contacts": addEnemyContacts,
	"transform":      addTransform,
	"sprite":         addSprite,
	"animation":      addAnimation,
	"audio":          addAudio,
	"physics_body":   addPhysicsBody,
	"collectible":    addCollectible,
	"camera":         addCamera,
	"enemy_script":   addEnemyScript,
}

// Sprite must precede animation, which replaces the sprite image with the
// first frame.
var componentBuildOrder = []string{
	"player_tag",
	"enemy_tag",
	"solid_tag",
	"camera_tag",
	"input",
	"player_life",
	"touching",
	"enemy_contacts",
	"transform",
	"sprite",
	"animation",
	"audio",
	"physics_body",
	"collectible",
	"camera",
	"enemy_script",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec)
}

// BuildEntityAt builds the prefab and moves it to x,y.
func BuildEntityAt(w *ecs.World, prefabPath string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: override transform: %w", prefabPath, err)
	}
	return e, nil
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addEnemyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
}

func addSolidTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SolidTagComponent.Kind(), &component.SolidTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayerLife(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerLifeComponent.Kind(), &component.PlayerLife{Alive: true})
}

func addTouching(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TouchingComponent.Kind(), &component.Touching{})
}

func addEnemyContacts(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EnemyContactsComponent.Kind(), &component.EnemyContacts{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.Scale != 0 {
		if spec.ScaleX == 0 {
			spec.ScaleX = spec.Scale
		}
		if spec.ScaleY == 0 {
			spec.ScaleY = spec.Scale
		}
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      spec.X,
		Y:      spec.Y,
		ScaleX: spec.ScaleX,
		ScaleY: spec.ScaleY,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" {
		img, err := loadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}
	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	sprite.FacingLeft = spec.FacingLeft
	sprite.Layer = spec.Layer

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	if len(spec.Defs) == 0 {
		return fmt.Errorf("animation defines no clips")
	}

	sheets := map[string]*ebiten.Image{}
	sheetFor := func(path string) (*ebiten.Image, error) {
		if img, ok := sheets[path]; ok {
			return img, nil
		}
		img, err := loadImage(path)
		if err != nil {
			return nil, fmt.Errorf("load sheet %q: %w", path, err)
		}
		sheets[path] = img
		return img, nil
	}

	defs := make(map[string]component.AnimationDef, len(spec.Defs))
	for name, d := range spec.Defs {
		path := d.Sheet
		if path == "" {
			path = spec.Sheet
		}
		if path == "" {
			return fmt.Errorf("animation %q has no sheet", name)
		}
		sheet, err := sheetFor(path)
		if err != nil {
			return err
		}
		frameW, frameH := d.FrameW, d.FrameH
		if frameW == 0 {
			frameW = spec.FrameW
		}
		if frameH == 0 {
			frameH = spec.FrameH
		}
		if frameW <= 0 || frameH <= 0 {
			return fmt.Errorf("animation %q: frame size must be positive", name)
		}
		count := d.FrameCount
		if count <= 0 {
			count = 1
		}
		defs[name] = component.AnimationDef{
			Sheet:      sheet,
			Row:        d.Row,
			ColStart:   d.ColStart,
			FrameCount: count,
			FrameW:     frameW,
			FrameH:     frameH,
			FPS:        d.FPS,
			Loop:       d.Loop,
		}
	}

	current := spec.Current
	if _, ok := defs[current]; !ok {
		return fmt.Errorf("initial animation %q is not defined", current)
	}
	playing := true
	if spec.Playing != nil {
		playing = *spec.Playing
	}

	anim := &component.Animation{
		Defs:    defs,
		Current: current,
		Playing: playing,
		Loop:    defs[current].Loop,
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), anim); err != nil {
		return err
	}

	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Image = FrameImage(defs[current], 0)
	}
	return nil
}

// FrameImage cuts frame i of def out of its sheet. A nil sheet yields nil.
func FrameImage(def component.AnimationDef, i int) *ebiten.Image {
	if def.Sheet == nil {
		return nil
	}
	x := (def.ColStart + i) * def.FrameW
	y := def.Row * def.FrameH
	return def.Sheet.SubImage(image.Rect(x, y, x+def.FrameW, y+def.FrameH)).(*ebiten.Image)
}

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	comp, err := buildAudioComponent(spec.Clips)
	if err != nil {
		return err
	}
	if comp == nil {
		return fmt.Errorf("audio defines no clips")
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

func buildAudioComponent(clips []prefabs.AudioClipSpec) (*component.Audio, error) {
	n := len(clips)
	if n == 0 {
		return nil, nil
	}

	comp := &component.Audio{
		Names:   make([]string, 0, n),
		Players: make([]*audio.Player, 0, n),
		Volume:  make([]float64, 0, n),
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}
	for i, clip := range clips {
		player, err := loadAudioPlayer(clip.File)
		if err != nil {
			return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
		}
		vol := clip.Volume
		if vol == 0 {
			vol = 1
		}
		comp.Names = append(comp.Names, clip.Name)
		comp.Players = append(comp.Players, player)
		comp.Volume = append(comp.Volume, vol)
	}
	return comp, nil
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics body size must be positive, got %vx%v", spec.Width, spec.Height)
	}
	if spec.Mass == 0 {
		spec.Mass = 1
	}
	if spec.GravityScale == 0 {
		spec.GravityScale = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:              spec.Width,
		Height:             spec.Height,
		OriginX:            spec.OriginX,
		OriginY:            spec.OriginY,
		Mass:               spec.Mass,
		Friction:           spec.Friction,
		Static:             spec.Static,
		GravityScale:       spec.GravityScale,
		CollideWorldBounds: spec.CollideWorldBounds,
		InitialVX:          spec.VelocityX,
		InitialVY:          spec.VelocityY,
	})
}

type collectibleSpec = prefabs.CollectibleComponentSpec

func addCollectible(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collectibleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collectible spec: %w", err)
	}
	if spec.Kind == "" {
		return fmt.Errorf("collectible kind is required")
	}
	return ecs.Add(w, e, component.CollectibleComponent.Kind(), &component.Collectible{
		Kind:   spec.Kind,
		Width:  spec.Width,
		Height: spec.Height,
	})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Lerp <= 0 || spec.Lerp > 1 {
		spec.Lerp = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Width:  spec.Width,
		Height: spec.Height,
		Lerp:   spec.Lerp,
		Snap:   true,
	})
}

type enemyScriptSpec = prefabs.EnemyScriptComponentSpec

func addEnemyScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[enemyScriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode enemy script spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("enemy script path is required")
	}
	if _, err := prefabs.LoadScript(spec.Path); err != nil {
		return fmt.Errorf("load script %q: %w", spec.Path, err)
	}
	return ecs.Add(w, e, component.EnemyScriptComponent.Kind(), &component.EnemyScript{
		Path:  spec.Path,
		Speed: spec.Speed,
	})
}
