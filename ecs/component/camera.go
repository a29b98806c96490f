package component

// Camera is the top-left corner of the viewport in world space. It follows
// the player, moving Lerp of the remaining distance each tick.
type Camera struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Lerp   float64
	Snap   bool
}

var CameraComponent = NewComponent[Camera]()
