package canvas

// Deliver routes a raw input event to the event targets the way a browser
// would: presses, wheel, clicks and touch starts go to the canvas; moves
// go to the canvas (hover) and then the document (gestures); releases and
// touch moves and ends go to the document.
func (d *Director) Deliver(ev InputEvent) {
	switch ev.Kind {
	case InputPointerDown, InputWheel, InputClick, InputTouchStart:
		d.canvas.Dispatch(&ev)
	case InputPointerMove:
		d.canvas.Dispatch(&ev)
		d.document.Dispatch(&ev)
	case InputPointerUp, InputTouchMove, InputTouchEnd, InputTouchCancel:
		d.document.Dispatch(&ev)
	}
}

// InjectPress queues a left-button press at the given client coordinates.
// Queued events are delivered one per Tick, before smoothing.
func (d *Director) InjectPress(x, y float64) {
	d.injectQueue = append(d.injectQueue, InputEvent{
		Kind: InputPointerDown, ClientX: x, ClientY: y, Button: MouseButtonLeft,
	})
}

// InjectMove queues a pointer move. Use it between InjectPress and
// InjectRelease to drag.
func (d *Director) InjectMove(x, y float64) {
	d.injectQueue = append(d.injectQueue, InputEvent{
		Kind: InputPointerMove, ClientX: x, ClientY: y, Button: MouseButtonLeft,
	})
}

// InjectRelease queues a left-button release.
func (d *Director) InjectRelease(x, y float64) {
	d.injectQueue = append(d.injectQueue, InputEvent{
		Kind: InputPointerUp, ClientX: x, ClientY: y, Button: MouseButtonLeft,
	})
}

// InjectClick queues a press, a release and the click that follows them.
// Consumes three ticks.
func (d *Director) InjectClick(x, y float64) {
	d.InjectPress(x, y)
	d.InjectRelease(x, y)
	d.injectQueue = append(d.injectQueue, InputEvent{
		Kind: InputClick, ClientX: x, ClientY: y, Button: MouseButtonLeft,
	})
}

// InjectDrag queues a press at (fromX, fromY), frames-2 evenly spaced
// moves ending on (toX, toY) and a release there. Minimum frames is 2, which
// presses and releases without moving.
func (d *Director) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		d.InjectMove(Lerp(fromX, toX, t), Lerp(fromY, toY, t))
	}
	d.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event. Positive deltaY zooms out.
func (d *Director) InjectWheel(x, y, deltaY float64) {
	d.injectQueue = append(d.injectQueue, InputEvent{
		Kind: InputWheel, ClientX: x, ClientY: y, DeltaY: deltaY,
	})
}

// InjectPinch queues a horizontal two-finger pinch centred on (cx, cy):
// the fingers start fromDist apart and end toDist apart after frames-4
// moves. Minimum frames is 5.
func (d *Director) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 5 {
		frames = 5
	}
	pair := func(dist float64) []TouchPoint {
		return []TouchPoint{
			{ID: 1, ClientX: cx - dist/2, ClientY: cy},
			{ID: 2, ClientX: cx + dist/2, ClientY: cy},
		}
	}
	start := pair(fromDist)
	d.injectQueue = append(d.injectQueue,
		InputEvent{Kind: InputTouchStart, Touches: start[:1]},
		InputEvent{Kind: InputTouchStart, Touches: start},
	)
	moves := frames - 4
	for i := 1; i <= moves; i++ {
		t := float64(i) / float64(moves)
		d.injectQueue = append(d.injectQueue,
			InputEvent{Kind: InputTouchMove, Touches: pair(Lerp(fromDist, toDist, t))})
	}
	end := pair(toDist)
	d.injectQueue = append(d.injectQueue,
		InputEvent{Kind: InputTouchEnd, Touches: end[:1]},
		InputEvent{Kind: InputTouchEnd},
	)
}

// Pending returns the number of queued injected events.
func (d *Director) Pending() int {
	return len(d.injectQueue)
}

// processInjectedInput delivers one queued event. Returns true if one was
// consumed.
func (d *Director) processInjectedInput() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	ev := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue[len(d.injectQueue)-1] = InputEvent{}
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]
	d.Deliver(ev)
	return true
}
