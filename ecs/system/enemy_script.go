package system

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"github.com/milk9111/minimario/prefabs"
)

// EnemyScriptSystem runs each enemy's tengo behaviour script once per tick.
// Scripts read vx, speed, touching_left and touching_right and write vx back.
type EnemyScriptSystem struct {
	logger  *log.Logger
	scripts map[string]*tengo.Compiled
	failed  map[string]bool
}

func NewEnemyScriptSystem(logger *log.Logger) *EnemyScriptSystem {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &EnemyScriptSystem{
		logger:  logger,
		scripts: map[string]*tengo.Compiled{},
		failed:  map[string]bool{},
	}
}

// Reload drops every compiled script so the next update reads them again.
func (s *EnemyScriptSystem) Reload() {
	s.scripts = map[string]*tengo.Compiled{}
	s.failed = map[string]bool{}
}

func (s *EnemyScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil || worldPaused(w) {
		return
	}
	ecs.ForEach2(w, component.EnemyScriptComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, script *component.EnemyScript, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		compiled, err := s.compiled(script.Path)
		if err != nil {
			if !s.failed[script.Path] {
				s.logger.Error("enemy script unavailable", "entity", e, "script", script.Path, "err", err)
				s.failed[script.Path] = true
			}
			return
		}

		var touching component.Touching
		if t, ok := ecs.Get(w, e, component.TouchingComponent.Kind()); ok {
			touching = *t
		}
		v := body.Body.Velocity()
		vx, err := runPatrol(compiled, v.X, script.Speed, touching)
		if err != nil {
			s.logger.Error("enemy script failed", "entity", e, "script", script.Path, "err", err)
			return
		}
		if vx != v.X {
			body.Body.SetVelocity(vx, v.Y)
		}
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && vx != 0 {
			sprite.FacingLeft = vx < 0
		}
	})
}

func (s *EnemyScriptSystem) compiled(path string) (*tengo.Compiled, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if c, ok := s.scripts[path]; ok {
		return c, nil
	}
	if s.failed[path] {
		return nil, fmt.Errorf("script %q failed to compile earlier", path)
	}
	compiled, err := compileEnemyScript(path)
	if err != nil {
		return nil, err
	}
	s.scripts[path] = compiled
	return compiled, nil
}

func compileEnemyScript(path string) (*tengo.Compiled, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	_ = script.Add("vx", 0.0)
	_ = script.Add("speed", 0.0)
	_ = script.Add("touching_left", false)
	_ = script.Add("touching_right", false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return compiled, nil
}

func runPatrol(c *tengo.Compiled, vx, speed float64, touching component.Touching) (float64, error) {
	if err := c.Set("vx", vx); err != nil {
		return 0, err
	}
	if err := c.Set("speed", speed); err != nil {
		return 0, err
	}
	if err := c.Set("touching_left", touching.Left); err != nil {
		return 0, err
	}
	if err := c.Set("touching_right", touching.Right); err != nil {
		return 0, err
	}
	if err := c.Run(); err != nil {
		return 0, err
	}
	return c.Get("vx").Float(), nil
}
