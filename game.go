package main

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/minimario/ecs"
	"github.com/milk9111/minimario/ecs/component"
	"github.com/milk9111/minimario/ecs/entity"
	"github.com/milk9111/minimario/ecs/system"
	"github.com/milk9111/minimario/levels"
	"github.com/milk9111/minimario/lifecycle"
	"github.com/milk9111/minimario/prefabs"
	"github.com/milk9111/minimario/storage"
)

const (
	baseWidth  = 256
	baseHeight = 244
)

type GameOptions struct {
	Level     string
	LevelsDir string
	Debug     bool
	Store     *storage.Store
	Logger    *log.Logger
}

// Game owns one session at a time: a world built from the level, the
// lifecycle controller for its player and the systems that run it.
type Game struct {
	opts   GameOptions
	logger *log.Logger

	world      *ecs.World
	scheduler  *ecs.Scheduler
	controller *lifecycle.Controller
	scripts    *system.EnemyScriptSystem
	hud        *system.HUDSystem
	best       int

	paused  bool
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(opts GameOptions) (*Game, error) {
	if opts.Level == "" {
		opts.Level = "overworld"
	}
	g := &Game{opts: opts, logger: opts.Logger}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.scripts = system.NewEnemyScriptSystem(g.logger.WithPrefix("script"))

	if opts.Store != nil {
		best, err := opts.Store.HighScore(opts.Level)
		if err != nil {
			g.logger.Warn("high score unavailable", "err", err)
		}
		g.best = best
	}

	if err := g.newSession(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Debug {
		g.startWatcher()
	}
	return g, nil
}

// newSession throws the current world away and builds a fresh one.
func (g *Game) newSession() error {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	lvl, err := levels.Load(g.opts.LevelsDir, g.opts.Level)
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}

	w := ecs.NewWorld()
	if _, err := entity.BuildLevel(w, lvl); err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	session, err := system.NewSessionFromWorld(w)
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	controller := lifecycle.NewController(session, spec.LifecycleConfig(), lifecycle.WithLogger(g.logger.WithPrefix("lifecycle")))

	var background color.Color = spec.Background.Color
	if lvl.Background != "" {
		if c, err := prefabs.ParseHexColor(lvl.Background); err == nil {
			background = c
		} else {
			g.logger.Warn("bad level background", "level", lvl.Name, "err", err)
		}
	}

	tick := spec.TickDuration()
	physics := system.NewPhysicsSystem(spec.Gravity, tick)
	g.hud = system.NewHUDSystem(g.best)
	scheduler := ecs.NewScheduler(
		system.NewInputSystem(),
		g.scripts,
		physics,
		system.NewLifecycleSystem(controller, tick, g.logger.WithPrefix("lifecycle")),
		system.NewAnimationSystem(int(time.Second/tick)),
		system.NewTweenSystem(tick),
		system.NewAudioSystem(),
		system.NewCameraSystem(),
		system.NewRenderSystem(background),
		g.hud,
	)
	if g.opts.Debug {
		scheduler.Add(system.NewDebugOverlay(physics, func() *lifecycle.Controller { return g.controller }))
	}

	if g.world != nil {
		system.StopAll(g.world)
	}
	g.world = w
	g.scheduler = scheduler
	g.controller = controller
	ebiten.SetTPS(int(time.Second / tick))

	g.logger.Info("session started", "session", session.ID, "level", g.opts.Level)
	return nil
}

// endSession records the finished run and raises the best score.
func (g *Game) endSession() {
	if g.controller == nil {
		return
	}
	session := g.controller.Session()
	p := g.controller.Player()
	g.best = max(g.best, p.Score)
	g.logger.Info("session ended", "session", session.ID, "score", p.Score, "form", p.Form)

	if g.opts.Store == nil {
		return
	}
	run := storage.Run{
		SessionID: session.ID,
		Level:     g.opts.Level,
		Score:     p.Score,
		Grown:     p.Form == lifecycle.FormGrown,
		Duration:  time.Since(session.StartedAt),
	}
	if _, err := g.opts.Store.SaveRun(run); err != nil {
		g.logger.Warn("run not saved", "session", session.ID, "err", err)
	}
}

// Restart ends the current session and starts a new one. A failed rebuild
// keeps the old world running.
func (g *Game) Restart() {
	g.endSession()
	if err := g.newSession(); err != nil {
		g.logger.Error("restart failed", "err", err)
	}
	g.paused = false
}

// Close records the session in progress and stops the watcher.
func (g *Game) Close() error {
	g.endSession()
	g.controller = nil
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.watcher != nil {
		g.reloadChanged()
	}

	g.scheduler.Update(g.world)

	if _, ok := g.world.First(component.RestartRequestComponent.Kind()); ok {
		g.Restart()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) startWatcher() {
	dirs := []string{g.opts.LevelsDir}
	if dir := prefabs.Dir(); dir != "" {
		dirs = append(dirs, dir, filepath.Join(dir, "scripts"))
	}
	watcher, err := prefabs.NewWatcher(dirs)
	if err != nil {
		g.logger.Warn("hot reload disabled", "err", err)
		return
	}
	g.watcher = watcher
	g.logger.Debug("watching for changes", "dirs", dirs)
}

// reloadChanged restarts the session when a watched file changed since the
// last update.
func (g *Game) reloadChanged() {
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.logger.Warn("watcher error", "err", err)
		}
	default:
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	g.logger.Info("reloading", "files", changed)
	g.scripts.Reload()
	g.Restart()
}
