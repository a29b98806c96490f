package lifecycle

import "time"

// Animation keys shared with the sprite prefabs.
const (
	AnimMarioIdle      = "mario-idle"
	AnimMarioWalk      = "mario-walk"
	AnimMarioJump      = "mario-jump"
	AnimMarioDead      = "mario-dead"
	AnimMarioGrownIdle = "mario-grown-idle"
	AnimMarioGrownWalk = "mario-grown-walk"
	AnimMarioGrownJump = "mario-grown-jump"
	AnimGoombaWalk     = "goomba-walk"
	AnimGoombaDead     = "goomba-dead"
	AnimCoinIdle       = "coin-idle"
)

// Sound keys shared with the sound bank prefab.
const (
	SoundGoombaStomp    = "goomba-stomp"
	SoundCoin           = "coin"
	SoundConsumePowerUp = "consume-powerup"
	SoundGameOver       = "gameover"
)

// Config holds the tuning values of the controller. Velocities are in world
// units per second with y growing downwards.
type Config struct {
	RunSpeed  float64
	JumpSpeed float64

	DeathImpulseDelay    time.Duration
	DeathImpulseVelocity float64
	RestartDelay         time.Duration
	DeathSoundVolume     float64

	StompBounceVelocity float64
	StompScore          int
	StompSoundVolume    float64
	EnemyRemovalDelay   time.Duration

	CoinScore       int
	CoinSoundVolume float64

	PowerUpSoundVolume float64
	GrowDuration       time.Duration
	FlickerInterval    time.Duration
	GrownWidth         float64
	GrownHeight        float64

	PopupRise    float64
	PopupRiseFor time.Duration
	PopupFadeFor time.Duration
}

func DefaultConfig() Config {
	return Config{
		RunSpeed:  100,
		JumpSpeed: 300,

		DeathImpulseDelay:    100 * time.Millisecond,
		DeathImpulseVelocity: -350,
		RestartDelay:         2000 * time.Millisecond,
		DeathSoundVolume:     0.2,

		StompBounceVelocity: -200,
		StompScore:          50,
		StompSoundVolume:    1,
		EnemyRemovalDelay:   300 * time.Millisecond,

		CoinScore:       100,
		CoinSoundVolume: 0.1,

		PowerUpSoundVolume: 1,
		GrowDuration:       1000 * time.Millisecond,
		FlickerInterval:    100 * time.Millisecond,
		GrownWidth:         18,
		GrownHeight:        32,

		PopupRise:    20,
		PopupRiseFor: 500 * time.Millisecond,
		PopupFadeFor: 100 * time.Millisecond,
	}
}
