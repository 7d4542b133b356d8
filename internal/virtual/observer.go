package virtual

// EndObserver reports when the last materialised row enters the window.
// It fires once per entry: the row has to leave the window, or the count
// has to change, before it fires again.
type EndObserver struct {
	fn    func(lastRow int)
	alive bool
	fired bool
	row   int
}

// ObserveEnd registers fn as an end observer.
func (v *Virtualizer) ObserveEnd(fn func(lastRow int)) *EndObserver {
	o := &EndObserver{fn: fn, alive: true, row: -1}
	v.observers = append(v.observers, o)
	v.checkEnd()
	return o
}

// Disconnect stops the observer. A disconnected observer never fires.
func (o *EndObserver) Disconnect() {
	o.alive = false
}

// Connected reports whether the observer is still live.
func (o *EndObserver) Connected() bool {
	return o.alive
}

func (v *Virtualizer) checkEnd() {
	if v.notifying {
		v.recheck = true
		return
	}
	v.notifying = true
	defer func() { v.notifying = false }()

	for {
		v.recheck = false
		v.dispatchEnd()
		if !v.recheck {
			return
		}
	}
}

func (v *Virtualizer) dispatchEnd() {
	live := v.observers[:0]
	for _, o := range v.observers {
		if o.alive {
			live = append(live, o)
		}
	}
	v.observers = live
	if len(live) == 0 {
		return
	}

	last := v.Count() - 1
	visible := false
	if window := v.VisibleWindow(); len(window) > 0 {
		visible = window[len(window)-1] == last
	}

	for _, o := range live {
		if o.row != last {
			o.fired = false
			o.row = last
		}
		if !visible {
			o.fired = false
			continue
		}
		if o.fired || !o.alive {
			continue
		}
		o.fired = true
		o.fn(last)
	}
}
