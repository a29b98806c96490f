package component

// LevelBounds stores the world-space bounds of the current level and the
// height at which a falling player dies.
type LevelBounds struct {
	Width     float64
	Height    float64
	KillPlane float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
