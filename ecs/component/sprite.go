package component

import "github.com/hajimehoshi/ebiten/v2"

// Sprite draws Image with its origin at the entity transform. OriginX and
// OriginY are fractions of the image size.
type Sprite struct {
	Image      *ebiten.Image
	OriginX    float64
	OriginY    float64
	FacingLeft bool
	Layer      int
	Hidden     bool
}

var SpriteComponent = NewComponent[Sprite]()
