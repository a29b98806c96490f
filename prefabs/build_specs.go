package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is an entity prefab: a name plus one raw block per
// component, decoded by the matching builder.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
	Scale  float64 `yaml:"scale"`
}

type SpriteComponentSpec struct {
	Image      string  `yaml:"image"`
	OriginX    float64 `yaml:"origin_x"`
	OriginY    float64 `yaml:"origin_y"`
	FacingLeft bool    `yaml:"facing_left"`
	Layer      int     `yaml:"layer"`
}

type AnimationDefComponentSpec struct {
	Sheet      string  `yaml:"sheet"`
	Row        int     `yaml:"row"`
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FrameW     int     `yaml:"frame_w"`
	FrameH     int     `yaml:"frame_h"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type AnimationComponentSpec struct {
	Sheet   string                               `yaml:"sheet"`
	FrameW  int                                  `yaml:"frame_w"`
	FrameH  int                                  `yaml:"frame_h"`
	Defs    map[string]AnimationDefComponentSpec `yaml:"defs"`
	Current string                               `yaml:"current"`
	Playing *bool                                `yaml:"playing"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips []AudioClipSpec `yaml:"clips"`
}

type PhysicsBodyComponentSpec struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	OriginX            float64 `yaml:"origin_x"`
	OriginY            float64 `yaml:"origin_y"`
	Mass               float64 `yaml:"mass"`
	Friction           float64 `yaml:"friction"`
	Static             bool    `yaml:"static"`
	GravityScale       float64 `yaml:"gravity_scale"`
	CollideWorldBounds bool    `yaml:"collide_world_bounds"`
	VelocityX          float64 `yaml:"velocity_x"`
	VelocityY          float64 `yaml:"velocity_y"`
}

type CollectibleComponentSpec struct {
	Kind   string  `yaml:"kind"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type CameraComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Lerp   float64 `yaml:"lerp"`
}

type EnemyScriptComponentSpec struct {
	Path  string  `yaml:"path"`
	Speed float64 `yaml:"speed"`
}
