package component

// Timer counts down Remaining seconds and raises Event when it expires. An
// empty Event makes the timer inert.
type Timer struct {
	Name      string
	Remaining float64
	Event     string
}

// Timers is the set of running timers of an entity.
type Timers struct {
	Items []Timer
}

// Set arms or re-arms the named timer.
func (t *Timers) Set(name string, seconds float64, event string) {
	if t == nil {
		return
	}
	for i := range t.Items {
		if t.Items[i].Name == name {
			t.Items[i].Remaining = seconds
			t.Items[i].Event = event
			return
		}
	}
	t.Items = append(t.Items, Timer{Name: name, Remaining: seconds, Event: event})
}

// Active reports whether the named timer is still running.
func (t *Timers) Active(name string) bool {
	if t == nil {
		return false
	}
	for _, item := range t.Items {
		if item.Name == name {
			return true
		}
	}
	return false
}

var TimersComponent = NewComponent[Timers]()
