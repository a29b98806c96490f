package component

import "github.com/hajimehoshi/ebiten/v2"

type AnimationDef struct {
	Sheet      *ebiten.Image
	Row        int
	ColStart   int // start column (frame 0)
	FrameCount int
	FrameW     int
	FrameH     int
	FPS        float64
	Loop       bool
}

type Animation struct {
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
	Loop       bool
}

var AnimationComponent = NewComponent[Animation]()
