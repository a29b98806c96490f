package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

type SolidTag struct{}

var SolidTagComponent = NewComponent[SolidTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
