package component

// Simulation is a singleton holding world-wide pause state. A paused world
// stops physics, animation and enemy scripts; tweens and timers keep running.
type Simulation struct {
	Paused bool
}

var SimulationComponent = NewComponent[Simulation]()
