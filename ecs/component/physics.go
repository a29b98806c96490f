package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// The box is Width×Height with the same fractional origin as the sprite.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Width    float64
	Height   float64
	OriginX  float64
	OriginY  float64
	Mass     float64
	Friction float64
	Static   bool

	// GravityScale multiplies world gravity for this body; 1 when unset.
	GravityScale float64
	// CollideWorldBounds keeps the body inside the level bounds.
	CollideWorldBounds bool

	InitialVX float64
	InitialVY float64

	// Dirty asks the physics system to rebuild the shape from Width/Height.
	Dirty bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Touching records which sides of a body were in contact during the last
// physics step.
type Touching struct {
	Down  bool
	Up    bool
	Left  bool
	Right bool
}

func (t *Touching) Reset() {
	*t = Touching{}
}

var TouchingComponent = NewComponent[Touching]()
