// Package lifecycle holds the player's life-cycle and power-state rules.
//
// Nothing here talks to the engine. Evaluation functions read explicit state,
// mutate it, and emit Commands into a Sink that the engine layer executes.
package lifecycle

import "strconv"

// EntityID identifies an engine entity. The engine layer picks the values.
type EntityID uint64

func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

type Form int

const (
	FormSmall Form = iota
	FormGrown
)

func (f Form) String() string {
	switch f {
	case FormSmall:
		return "small"
	case FormGrown:
		return "grown"
	default:
		return "form(" + strconv.Itoa(int(f)) + ")"
	}
}

// Stage is the combined form × alive state of the player.
type Stage int

const (
	StageAliveSmall Stage = iota
	StageAliveGrowing
	StageAliveGrown
	StageDead
)

func (s Stage) String() string {
	switch s {
	case StageAliveSmall:
		return "alive-small"
	case StageAliveGrowing:
		return "alive-growing"
	case StageAliveGrown:
		return "alive-grown"
	case StageDead:
		return "dead"
	default:
		return "stage(" + strconv.Itoa(int(s)) + ")"
	}
}

type PlayerState struct {
	ID           EntityID
	Alive        bool
	Form         Form
	InputBlocked bool
	VelocityX    float64
	VelocityY    float64
	X            float64
	Y            float64
	Score        int

	growing bool
}

// Stage reports where the player sits in the life-cycle state machine.
func (p *PlayerState) Stage() Stage {
	switch {
	case !p.Alive:
		return StageDead
	case p.growing:
		return StageAliveGrowing
	case p.Form == FormGrown:
		return StageAliveGrown
	default:
		return StageAliveSmall
	}
}

type CollectibleKind int

const (
	CollectibleCoin CollectibleKind = iota
	CollectibleMushroom
)

func (k CollectibleKind) String() string {
	switch k {
	case CollectibleCoin:
		return "coin"
	case CollectibleMushroom:
		return "mushroom"
	default:
		return "collectible(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseCollectibleKind maps prefab names onto kinds.
func ParseCollectibleKind(name string) (CollectibleKind, bool) {
	switch name {
	case "coin":
		return CollectibleCoin, true
	case "mushroom", "supermushroom":
		return CollectibleMushroom, true
	}
	return 0, false
}

type CollectibleState struct {
	ID       EntityID
	Kind     CollectibleKind
	Consumed bool
	X        float64
	Y        float64
}

type EnemyState struct {
	ID        EntityID
	Alive     bool
	VelocityX float64
	X         float64
	Y         float64
}
