package tactile

// syntheticSample is a single injected pointer event. Injected events
// act on contact 0 and are consumed one per frame by Driver.Update,
// exactly like real mouse input would arrive.
type syntheticSample struct {
	kind     syntheticKind
	position Vec2
}

type syntheticKind uint8

const (
	syntheticPress syntheticKind = iota
	syntheticMove
	syntheticRelease
	syntheticCancel
)

// InjectPress queues a contact-0 press at the given screen coordinates.
// The event is consumed on the next Update.
func (d *Driver) InjectPress(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticSample{syntheticPress, Vec2{x, y}})
}

// InjectMove queues a contact-0 movement with the pointer held down.
// Use between InjectPress and InjectRelease to simulate a drag.
func (d *Driver) InjectMove(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticSample{syntheticMove, Vec2{x, y}})
}

// InjectRelease queues a contact-0 release at the given screen coordinates.
func (d *Driver) InjectRelease(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticSample{syntheticRelease, Vec2{x, y}})
}

// InjectCancel queues a cancellation signal at the given screen coordinates.
func (d *Driver) InjectCancel(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticSample{syntheticCancel, Vec2{x, y}})
}

// InjectTap is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two frames.
func (d *Driver) InjectTap(x, y float64) {
	d.InjectPress(x, y)
	d.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), steps-1
// interpolated moves, and release at (toX, toY).
func (d *Driver) InjectDrag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	d.InjectPress(fromX, fromY)
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		d.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	d.InjectRelease(toX, toY)
}

// processInjected pops one event from the queue and feeds it to the
// recognizer. Reports whether an event was consumed (real input is
// skipped for the frame).
func (d *Driver) processInjected(now float64) bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	ev := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	switch ev.kind {
	case syntheticPress:
		d.injectDown = true
		d.injectLast = ev.position
		d.rec.HandleTouch(TouchSample{Index: 0, Time: now, Position: ev.position, Pressed: true})
	case syntheticMove:
		if !d.injectDown {
			return true
		}
		rel := ev.position.Sub(d.injectLast)
		d.injectLast = ev.position
		var vel Vec2
		if dt := now - d.lastTime; dt > 0 {
			vel = rel.Scale(1 / dt)
		}
		d.rec.HandleDrag(DragSample{Index: 0, Time: now, Position: ev.position, Relative: rel, Velocity: vel})
	case syntheticRelease:
		d.injectDown = false
		d.rec.HandleTouch(TouchSample{Index: 0, Time: now, Position: ev.position, Pressed: false})
	case syntheticCancel:
		d.injectDown = false
		d.rec.HandleTouch(TouchSample{Index: -1, Time: now, Position: ev.position, Pressed: false})
	}
	return true
}
