package component

// PlayerLife mirrors the lifecycle controller's view of the player for
// systems that only read it (HUD, camera, input).
type PlayerLife struct {
	Alive        bool
	Grown        bool
	Growing      bool
	InputBlocked bool
	Score        int
}

var PlayerLifeComponent = NewComponent[PlayerLife]()
