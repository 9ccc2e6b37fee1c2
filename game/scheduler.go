package game

// System is one stage of a session step.
type System interface {
	Update(s *Session, f *Frame)
}

// Scheduler runs systems in insertion order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	sc := &Scheduler{}
	for _, system := range systems {
		sc.Add(system)
	}
	return sc
}

func (sc *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	sc.systems = append(sc.systems, system)
}

func (sc *Scheduler) Update(s *Session, f *Frame) {
	for _, system := range sc.systems {
		system.Update(s, f)
	}
}
