package component

// Collectible marks an item the player picks up by overlapping it. The
// overlap box is Width×Height around the transform, using the sprite origin.
type Collectible struct {
	Kind   string
	Width  float64
	Height float64
}

var CollectibleComponent = NewComponent[Collectible]()
