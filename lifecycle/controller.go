package lifecycle

import (
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

type ContactOutcome int

const (
	ContactIgnored ContactOutcome = iota
	ContactEnemyDefeated
	ContactPlayerKilled
)

func (o ContactOutcome) String() string {
	switch o {
	case ContactIgnored:
		return "ignored"
	case ContactEnemyDefeated:
		return "enemy-defeated"
	case ContactPlayerKilled:
		return "player-killed"
	default:
		return "contact(" + strconv.Itoa(int(o)) + ")"
	}
}

type CollectOutcome int

const (
	CollectIgnored CollectOutcome = iota
	CollectedCoin
	CollectedMushroom
)

func (o CollectOutcome) String() string {
	switch o {
	case CollectIgnored:
		return "ignored"
	case CollectedCoin:
		return "coin"
	case CollectedMushroom:
		return "mushroom"
	default:
		return "collect(" + strconv.Itoa(int(o)) + ")"
	}
}

// MoveIntent is the player's requested movement for one frame. X is in
// [-1, 1]; negative means left.
type MoveIntent struct {
	X    float64
	Jump bool
}

type Option func(*Controller)

func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller applies the life-cycle rules to a borrowed Session. It must not
// outlive the session it was built for.
type Controller struct {
	session *Session
	cfg     Config
	timers  Timers
	logger  *log.Logger
}

func NewController(session *Session, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		session: session,
		cfg:     cfg,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Session() *Session {
	return c.session
}

func (c *Controller) Config() Config {
	return c.cfg
}

// Player returns a copy of the current player state.
func (c *Controller) Player() PlayerState {
	return *c.session.Player
}

func (c *Controller) Stage() Stage {
	return c.session.Player.Stage()
}

// CanControl reports whether movement intents are currently honoured.
func (c *Controller) CanControl() bool {
	p := c.session.Player
	return p.Alive && !p.InputBlocked
}

// Pending reports the time left on the timer for key.
func (c *Controller) Pending(key TimerKey) (time.Duration, bool) {
	return c.timers.Pending(key)
}

// Now returns the controller's simulated clock.
func (c *Controller) Now() time.Duration {
	return c.timers.Now()
}

// Advance moves the controller clock forward and runs due timers.
func (c *Controller) Advance(d time.Duration, sink Sink) {
	c.timers.Advance(d, sink)
}

// SyncPlayer mirrors the engine body into the player state.
func (c *Controller) SyncPlayer(x, y, vx, vy float64) {
	p := c.session.Player
	p.X, p.Y = x, y
	p.VelocityX, p.VelocityY = vx, vy
}

// EvaluateFall kills the player once playerY reaches floorThreshold. It reports
// whether the death sequence started on this call.
func (c *Controller) EvaluateFall(playerY, floorThreshold float64, sink Sink) bool {
	if !c.session.Player.Alive || playerY < floorThreshold {
		return false
	}
	c.kill(sinkOrDiscard(sink), "fall")
	return true
}

// EvaluateEnemyContact resolves a collision between the player and enemy. Only
// a landing from above (player touching down, enemy touching up) defeats the
// enemy; every other contact kills the player.
func (c *Controller) EvaluateEnemyContact(enemy *EnemyState, playerTouchingDown, enemyTouchingUp bool, sink Sink) ContactOutcome {
	p := c.session.Player
	if !p.Alive || enemy == nil || !enemy.Alive {
		return ContactIgnored
	}
	sink = sinkOrDiscard(sink)

	if !(playerTouchingDown && enemyTouchingUp) {
		c.kill(sink, "enemy")
		return ContactPlayerKilled
	}

	enemy.Alive = false
	enemy.VelocityX = 0
	sink.Emit(SetVelocityX{Target: enemy.ID, X: 0})
	sink.Emit(PlayAnimation{Target: enemy.ID, Key: AnimGoombaDead})

	p.VelocityY = c.cfg.StompBounceVelocity
	sink.Emit(SetVelocityY{Target: p.ID, Y: c.cfg.StompBounceVelocity})
	sink.Emit(PlaySound{Key: SoundGoombaStomp, Volume: c.cfg.StompSoundVolume})
	c.award(sink, c.cfg.StompScore, enemy.X, enemy.Y)

	id := enemy.ID
	c.timers.After(EnemyRemovalTimer(id), c.cfg.EnemyRemovalDelay, func(s Sink) {
		c.session.Forget(id)
		s.Emit(DestroyEntity{Target: id})
	})

	c.logger.Debug("enemy stomped", "enemy", id, "score", p.Score)
	return ContactEnemyDefeated
}

// EvaluateCollect consumes item on first overlap. The item is marked consumed
// before anything is emitted, so repeated overlaps in one frame are no-ops.
func (c *Controller) EvaluateCollect(item *CollectibleState, sink Sink) CollectOutcome {
	p := c.session.Player
	if item == nil || item.Consumed || !p.Alive {
		return CollectIgnored
	}
	item.Consumed = true
	sink = sinkOrDiscard(sink)
	sink.Emit(DestroyEntity{Target: item.ID})

	switch item.Kind {
	case CollectibleCoin:
		sink.Emit(PlaySound{Key: SoundCoin, Volume: c.cfg.CoinSoundVolume})
		c.award(sink, c.cfg.CoinScore, item.X, item.Y)
		c.logger.Debug("coin collected", "item", item.ID, "score", p.Score)
		return CollectedCoin
	case CollectibleMushroom:
		sink.Emit(PlaySound{Key: SoundConsumePowerUp, Volume: c.cfg.PowerUpSoundVolume})
		if p.Stage() == StageAliveSmall {
			c.grow(sink)
		}
		return CollectedMushroom
	default:
		return CollectIgnored
	}
}

// Steer turns a movement intent into velocity and animation commands. It
// returns false when the intent was ignored.
func (c *Controller) Steer(intent MoveIntent, grounded bool, sink Sink) bool {
	if !c.CanControl() {
		return false
	}
	sink = sinkOrDiscard(sink)
	p := c.session.Player

	walk, idle, jump := AnimMarioWalk, AnimMarioIdle, AnimMarioJump
	if p.Form == FormGrown {
		walk, idle, jump = AnimMarioGrownWalk, AnimMarioGrownIdle, AnimMarioGrownJump
	}

	switch {
	case intent.X < 0:
		p.VelocityX = -c.cfg.RunSpeed
		sink.Emit(SetVelocityX{Target: p.ID, X: p.VelocityX})
		sink.Emit(SetFacing{Target: p.ID, Left: true})
		if grounded {
			sink.Emit(PlayAnimation{Target: p.ID, Key: walk, Loop: true})
		}
	case intent.X > 0:
		p.VelocityX = c.cfg.RunSpeed
		sink.Emit(SetVelocityX{Target: p.ID, X: p.VelocityX})
		sink.Emit(SetFacing{Target: p.ID, Left: false})
		if grounded {
			sink.Emit(PlayAnimation{Target: p.ID, Key: walk, Loop: true})
		}
	default:
		p.VelocityX = 0
		sink.Emit(SetVelocityX{Target: p.ID, X: 0})
		if grounded {
			sink.Emit(PlayAnimation{Target: p.ID, Key: idle, Loop: true})
		}
	}

	if intent.Jump && grounded {
		p.VelocityY = -c.cfg.JumpSpeed
		sink.Emit(SetVelocityY{Target: p.ID, Y: p.VelocityY})
		sink.Emit(PlayAnimation{Target: p.ID, Key: jump, Loop: true})
	}
	return true
}

func (c *Controller) grow(sink Sink) {
	p := c.session.Player
	p.growing = true
	p.InputBlocked = true
	sink.Emit(SetWorldPaused{Paused: true})
	sink.Emit(PlayAnimation{Target: p.ID, Key: AnimMarioGrownIdle})

	c.timers.After(TimerGrowComplete, c.cfg.GrowDuration, func(s Sink) {
		c.timers.Cancel(TimerGrowFlicker)
		p.growing = false
		p.InputBlocked = false
		p.Form = FormGrown
		s.Emit(SetBodySize{Target: p.ID, Width: c.cfg.GrownWidth, Height: c.cfg.GrownHeight})
		s.Emit(PlayAnimation{Target: p.ID, Key: AnimMarioGrownIdle, Loop: true})
		s.Emit(SetWorldPaused{Paused: false})
		c.logger.Debug("player grown")
	})

	grown := true
	c.timers.Every(TimerGrowFlicker, c.cfg.FlickerInterval, func(s Sink) {
		grown = !grown
		key := AnimMarioIdle
		if grown {
			key = AnimMarioGrownIdle
		}
		s.Emit(PlayAnimation{Target: p.ID, Key: key})
	})
}

// kill starts the death sequence. Callers have checked the player is alive.
func (c *Controller) kill(sink Sink, cause string) {
	p := c.session.Player
	p.Alive = false

	if p.growing {
		c.timers.Cancel(TimerGrowComplete)
		c.timers.Cancel(TimerGrowFlicker)
		p.growing = false
		sink.Emit(SetWorldPaused{Paused: false})
	}
	p.InputBlocked = false

	p.VelocityX = 0
	sink.Emit(SetVelocityX{Target: p.ID, X: 0})
	sink.Emit(SetWorldBoundsCollision{Target: p.ID, Enabled: false})
	sink.Emit(PlayAnimation{Target: p.ID, Key: AnimMarioDead})
	sink.Emit(PlaySound{Key: SoundGameOver, Volume: c.cfg.DeathSoundVolume})

	c.timers.After(TimerDeathImpulse, c.cfg.DeathImpulseDelay, func(s Sink) {
		p.VelocityY = c.cfg.DeathImpulseVelocity
		s.Emit(SetVelocityY{Target: p.ID, Y: c.cfg.DeathImpulseVelocity})
	})
	c.timers.After(TimerDeathRestart, c.cfg.RestartDelay, func(s Sink) {
		s.Emit(RestartSession{})
	})

	c.logger.Info("player died", "cause", cause, "session", c.session.ID, "score", p.Score, "form", p.Form)
}

func (c *Controller) award(sink Sink, points int, x, y float64) {
	if points <= 0 {
		return
	}
	c.session.Player.Score += points
	sink.Emit(SpawnScorePopup{
		Text:    strconv.Itoa(points),
		X:       x,
		Y:       y,
		Rise:    c.cfg.PopupRise,
		RiseFor: c.cfg.PopupRiseFor,
		FadeFor: c.cfg.PopupFadeFor,
	})
}
