package component

// Transform positions an entity in world space. X,Y is the point the sprite
// origin is pinned to, so with an origin of (0,1) it is the bottom-left corner.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
