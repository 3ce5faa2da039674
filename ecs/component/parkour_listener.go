package component

// ParkourListener receives one-way capability notifications, typically an
// animation driver.
type ParkourListener interface {
	CanGrab(canGrab bool)
	ClimbLedge(isClimbing bool)
}

// ParkourListeners fans notifications out to every attached listener.
type ParkourListeners struct {
	Listeners []ParkourListener
}

func (p *ParkourListeners) CanGrab(canGrab bool) {
	if p == nil {
		return
	}
	for _, l := range p.Listeners {
		if l != nil {
			l.CanGrab(canGrab)
		}
	}
}

func (p *ParkourListeners) ClimbLedge(isClimbing bool) {
	if p == nil {
		return
	}
	for _, l := range p.Listeners {
		if l != nil {
			l.ClimbLedge(isClimbing)
		}
	}
}

var ParkourListenersComponent = NewComponent[ParkourListeners]()
