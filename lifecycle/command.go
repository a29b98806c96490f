package lifecycle

import "time"

// Command is an instruction for the engine layer. The set is closed.
type Command interface {
	command()
}

type SetVelocityX struct {
	Target EntityID
	X      float64
}

type SetVelocityY struct {
	Target EntityID
	Y      float64
}

type SetFacing struct {
	Target EntityID
	Left   bool
}

// SetBodySize resizes the collision bounds (and display size) of Target.
// The bottom edge stays where it is.
type SetBodySize struct {
	Target EntityID
	Width  float64
	Height float64
}

type SetWorldBoundsCollision struct {
	Target  EntityID
	Enabled bool
}

type PlayAnimation struct {
	Target EntityID
	Key    string
	Loop   bool
}

type PlaySound struct {
	Key    string
	Volume float64
}

// SetWorldPaused pauses or resumes physics stepping and animation playback
// for the whole world.
type SetWorldPaused struct {
	Paused bool
}

// SpawnScorePopup creates a short-lived text entity at X,Y. It rises by Rise
// units over RiseFor, fades to transparent over FadeFor, then is removed.
type SpawnScorePopup struct {
	Text    string
	X       float64
	Y       float64
	Rise    float64
	RiseFor time.Duration
	FadeFor time.Duration
}

type DestroyEntity struct {
	Target EntityID
}

type RestartSession struct{}

func (SetVelocityX) command()            {}
func (SetVelocityY) command()            {}
func (SetFacing) command()               {}
func (SetBodySize) command()             {}
func (SetWorldBoundsCollision) command() {}
func (PlayAnimation) command()           {}
func (PlaySound) command()               {}
func (SetWorldPaused) command()          {}
func (SpawnScorePopup) command()         {}
func (DestroyEntity) command()           {}
func (RestartSession) command()          {}

// Sink receives emitted commands in emission order.
type Sink interface {
	Emit(cmd Command)
}

// Commands is a Sink that records everything it is given.
type Commands []Command

func (c *Commands) Emit(cmd Command) {
	*c = append(*c, cmd)
}

// Drain returns the recorded commands and resets the list.
func (c *Commands) Drain() []Command {
	out := *c
	*c = nil
	return out
}

type discard struct{}

func (discard) Emit(Command) {}

func sinkOrDiscard(s Sink) Sink {
	if s == nil {
		return discard{}
	}
	return s
}
