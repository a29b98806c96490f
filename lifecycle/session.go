package lifecycle

import (
	"time"

	"github.com/google/uuid"
)

// Session owns every piece of lifecycle state for one play-through. A restart
// throws the session away and builds a new one.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	Player       *PlayerState
	Enemies      map[EntityID]*EnemyState
	Collectibles map[EntityID]*CollectibleState
}

func NewSession(player EntityID) *Session {
	return &Session{
		ID:           uuid.New(),
		StartedAt:    time.Now(),
		Player:       &PlayerState{ID: player, Alive: true, Form: FormSmall},
		Enemies:      make(map[EntityID]*EnemyState),
		Collectibles: make(map[EntityID]*CollectibleState),
	}
}

func (s *Session) AddEnemy(id EntityID, x, y, vx float64) *EnemyState {
	e := &EnemyState{ID: id, Alive: true, VelocityX: vx, X: x, Y: y}
	s.Enemies[id] = e
	return e
}

func (s *Session) AddCollectible(id EntityID, kind CollectibleKind, x, y float64) *CollectibleState {
	c := &CollectibleState{ID: id, Kind: kind, X: x, Y: y}
	s.Collectibles[id] = c
	return c
}

func (s *Session) Enemy(id EntityID) (*EnemyState, bool) {
	e, ok := s.Enemies[id]
	return e, ok
}

func (s *Session) Collectible(id EntityID) (*CollectibleState, bool) {
	c, ok := s.Collectibles[id]
	return c, ok
}

// Forget drops state for an entity the engine has removed.
func (s *Session) Forget(id EntityID) {
	delete(s.Enemies, id)
	delete(s.Collectibles, id)
}
