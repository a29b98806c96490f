package prefabs

import (
	"time"

	"github.com/milk9111/minimario/lifecycle"
)

// GameSpec is the tuning prefab (game.yaml). Zero fields keep the controller
// defaults.
type GameSpec struct {
	Gravity     float64   `yaml:"gravity"`
	TicksPerSec int       `yaml:"ticks_per_second"`
	Background  YAMLColor `yaml:"background"`

	Player struct {
		RunSpeed  float64 `yaml:"run_speed"`
		JumpSpeed float64 `yaml:"jump_speed"`
	} `yaml:"player"`

	Death struct {
		ImpulseDelayMS  int     `yaml:"impulse_delay_ms"`
		ImpulseVelocity float64 `yaml:"impulse_velocity"`
		RestartDelayMS  int     `yaml:"restart_delay_ms"`
		SoundVolume     float64 `yaml:"sound_volume"`
	} `yaml:"death"`

	Stomp struct {
		BounceVelocity float64 `yaml:"bounce_velocity"`
		Score          int     `yaml:"score"`
		SoundVolume    float64 `yaml:"sound_volume"`
		RemovalDelayMS int     `yaml:"removal_delay_ms"`
	} `yaml:"stomp"`

	Coin struct {
		Score       int     `yaml:"score"`
		SoundVolume float64 `yaml:"sound_volume"`
	} `yaml:"coin"`

	PowerUp struct {
		SoundVolume       float64 `yaml:"sound_volume"`
		GrowDurationMS    int     `yaml:"grow_duration_ms"`
		FlickerIntervalMS int     `yaml:"flicker_interval_ms"`
		GrownWidth        float64 `yaml:"grown_width"`
		GrownHeight       float64 `yaml:"grown_height"`
	} `yaml:"power_up"`

	Popup struct {
		Rise   float64 `yaml:"rise"`
		RiseMS int     `yaml:"rise_ms"`
		FadeMS int     `yaml:"fade_ms"`
	} `yaml:"popup"`
}

func LoadGameSpec() (GameSpec, error) {
	return LoadSpec[GameSpec]("game.yaml")
}

// LifecycleConfig overlays the non-zero tuning values on the controller
// defaults.
func (g GameSpec) LifecycleConfig() lifecycle.Config {
	cfg := lifecycle.DefaultConfig()

	setFloat(&cfg.RunSpeed, g.Player.RunSpeed)
	setFloat(&cfg.JumpSpeed, g.Player.JumpSpeed)

	setDuration(&cfg.DeathImpulseDelay, g.Death.ImpulseDelayMS)
	setFloat(&cfg.DeathImpulseVelocity, g.Death.ImpulseVelocity)
	setDuration(&cfg.RestartDelay, g.Death.RestartDelayMS)
	setFloat(&cfg.DeathSoundVolume, g.Death.SoundVolume)

	setFloat(&cfg.StompBounceVelocity, g.Stomp.BounceVelocity)
	setInt(&cfg.StompScore, g.Stomp.Score)
	setFloat(&cfg.StompSoundVolume, g.Stomp.SoundVolume)
	setDuration(&cfg.EnemyRemovalDelay, g.Stomp.RemovalDelayMS)

	setInt(&cfg.CoinScore, g.Coin.Score)
	setFloat(&cfg.CoinSoundVolume, g.Coin.SoundVolume)

	setFloat(&cfg.PowerUpSoundVolume, g.PowerUp.SoundVolume)
	setDuration(&cfg.GrowDuration, g.PowerUp.GrowDurationMS)
	setDuration(&cfg.FlickerInterval, g.PowerUp.FlickerIntervalMS)
	setFloat(&cfg.GrownWidth, g.PowerUp.GrownWidth)
	setFloat(&cfg.GrownHeight, g.PowerUp.GrownHeight)

	setFloat(&cfg.PopupRise, g.Popup.Rise)
	setDuration(&cfg.PopupRiseFor, g.Popup.RiseMS)
	setDuration(&cfg.PopupFadeFor, g.Popup.FadeMS)
	return cfg
}

// TickDuration is the simulated time covered by one update.
func (g GameSpec) TickDuration() time.Duration {
	tps := g.TicksPerSec
	if tps <= 0 {
		tps = 60
	}
	return time.Second / time.Duration(tps)
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, ms int) {
	if ms > 0 {
		*dst = time.Duration(ms) * time.Millisecond
	}
}
