package ecs

import "github.com/hajimehoshi/ebiten/v2"

type System interface {
	Update(w *World)
}

// Drawer is implemented by systems that also render.
type Drawer interface {
	Draw(w *World, screen *ebiten.Image)
}

// Scheduler runs systems in the order they were added. Systems that also
// implement Drawer are drawn in that same order.
type Scheduler struct {
	systems []System
	drawers []Drawer
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

// Add appends system. Nil systems are ignored.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	if d, ok := system.(Drawer); ok {
		s.drawers = append(s.drawers, d)
	}
}

func (s *Scheduler) Update(w *World) {
	if w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, d := range s.drawers {
		d.Draw(w, screen)
	}
}

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
