package component

// EnemyScript names the tengo script driving an enemy and the speed it hands
// the script.
type EnemyScript struct {
	Path  string
	Speed float64
}

var EnemyScriptComponent = NewComponent[EnemyScript]()
