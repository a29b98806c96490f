package component

// Input is the controlled entity's intent for the current tick. MoveX is in
// [-1, 1]. Jump is level-triggered: holding it on the ground jumps again.
type Input struct {
	MoveX float64
	Jump  bool
}

var InputComponent = NewComponent[Input]()
