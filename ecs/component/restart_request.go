package component

// RestartRequest is a marker component used to signal the game loop to throw
// the session away and start a new one.
type RestartRequest struct{}

var RestartRequestComponent = NewComponent[RestartRequest]()
