package tactile

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const maxContacts = 10 // contact 0 = mouse, 1-9 = touch

// Driver polls Ebitengine input once per frame and feeds a Recognizer:
// the mouse as contact 0, real touches as contacts 1-9, and bound keys
// or mouse buttons as emulation actions. Call Update from your game's
// Update method.
type Driver struct {
	rec *Recognizer

	mouseDown bool
	mousePos  Vec2
	lastTime  float64

	touchUsed [maxContacts]bool
	touchMap  [maxContacts]ebiten.TouchID
	touchLast [maxContacts]Vec2
	touchIDs  []ebiten.TouchID

	keyBindings    map[Action]ebiten.Key
	buttonBindings map[Action]ebiten.MouseButton
	actionDown     [actionCount]bool

	injectQueue []syntheticSample
	injectDown  bool
	injectLast  Vec2
}

// NewDriver returns a driver feeding rec. It panics on a nil recognizer;
// wiring it up is not recoverable at poll time.
func NewDriver(rec *Recognizer) *Driver {
	if rec == nil {
		panic("tactile: NewDriver with nil recognizer")
	}
	return &Driver{
		rec:            rec,
		keyBindings:    make(map[Action]ebiten.Key),
		buttonBindings: make(map[Action]ebiten.MouseButton),
		lastTime:       timeNow(),
	}
}

// Bind maps a keyboard key to an emulation action. Rebinding an action
// replaces its previous key.
func (d *Driver) Bind(a Action, key ebiten.Key) {
	d.keyBindings[a] = key
}

// BindMouseButton maps a mouse button to an emulation action. The left
// button always doubles as contact 0; binding it suppresses that.
func (d *Driver) BindMouseButton(a Action, button ebiten.MouseButton) {
	d.buttonBindings[a] = button
}

// Unbind removes any key or button bound to the action.
func (d *Driver) Unbind(a Action) {
	delete(d.keyBindings, a)
	delete(d.buttonBindings, a)
}

// Update polls input and advances the recognizer's timers. Call once per
// frame from ebiten.Game.Update.
func (d *Driver) Update() {
	now := timeNow()

	// Injected events replace real input for the frame so the synthetic
	// pointer doesn't fight the physical one.
	if d.processInjected(now) {
		d.rec.Advance(now)
		d.lastTime = now
		return
	}

	d.pollActions(now)
	d.pollMouse(now)
	d.pollTouches(now)
	d.rec.Advance(now)
	d.lastTime = now
}

// pollActions fires HandleAction on key/button edges.
func (d *Driver) pollActions(now float64) {
	for a, key := range d.keyBindings {
		d.updateAction(a, ebiten.IsKeyPressed(key), now)
	}
	for a, button := range d.buttonBindings {
		d.updateAction(a, ebiten.IsMouseButtonPressed(button), now)
	}
}

func (d *Driver) updateAction(a Action, down bool, now float64) {
	if down == d.actionDown[a] {
		return
	}
	d.actionDown[a] = down
	mx, my := ebiten.CursorPosition()
	d.rec.HandleAction(a, down, Vec2{float64(mx), float64(my)}, now)
}

// leftButtonBound reports whether the left mouse button is claimed by an
// action binding.
func (d *Driver) leftButtonBound() bool {
	for _, b := range d.buttonBindings {
		if b == ebiten.MouseButtonLeft {
			return true
		}
	}
	return false
}

// pollMouse treats the left mouse button as contact 0. While an
// emulation mode is active, cursor movement feeds HandleMotion instead.
func (d *Driver) pollMouse(now float64) {
	mx, my := ebiten.CursorPosition()
	pos := Vec2{float64(mx), float64(my)}
	rel := pos.Sub(d.mousePos)
	d.mousePos = pos

	var vel Vec2
	if dt := now - d.lastTime; dt > 0 {
		vel = rel.Scale(1 / dt)
	}

	if d.rec.Mode() != ModeNone {
		if rel != (Vec2{}) {
			d.rec.HandleMotion(pos, rel, vel, now)
		}
		return
	}
	if d.leftButtonBound() {
		return
	}

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case pressed && !d.mouseDown:
		d.mouseDown = true
		d.rec.HandleTouch(TouchSample{Index: 0, Time: now, Position: pos, Pressed: true})
	case !pressed && d.mouseDown:
		d.mouseDown = false
		d.rec.HandleTouch(TouchSample{Index: 0, Time: now, Position: pos, Pressed: false})
	case pressed && rel != (Vec2{}):
		d.rec.HandleDrag(DragSample{Index: 0, Time: now, Position: pos, Relative: rel, Velocity: vel})
	}
}

// pollTouches maps ebiten touch IDs to stable contact slots 1-9 and
// feeds presses, drags, and releases.
func (d *Driver) pollTouches(now float64) {
	d.touchIDs = ebiten.AppendTouchIDs(d.touchIDs[:0])

	var active [maxContacts]bool
	for _, tid := range d.touchIDs {
		slot, isNew := d.touchSlot(tid)
		if slot < 0 {
			continue
		}
		tx, ty := ebiten.TouchPosition(tid)
		pos := Vec2{float64(tx), float64(ty)}

		if isNew {
			d.rec.HandleTouch(TouchSample{Index: slot, Time: now, Position: pos, Pressed: true})
		} else if pos != d.touchLast[slot] {
			rel := pos.Sub(d.touchLast[slot])
			var vel Vec2
			if dt := now - d.lastTime; dt > 0 {
				vel = rel.Scale(1 / dt)
			}
			d.rec.HandleDrag(DragSample{Index: slot, Time: now, Position: pos, Relative: rel, Velocity: vel})
		}
		active[slot] = true
		d.touchLast[slot] = pos
	}

	// Release slots whose touch ID disappeared this frame.
	for i := 1; i < maxContacts; i++ {
		if d.touchUsed[i] && !active[i] {
			d.rec.HandleTouch(TouchSample{Index: i, Time: now, Position: d.touchLast[i], Pressed: false})
			d.touchUsed[i] = false
		}
	}
}

// touchSlot maps an ebiten.TouchID to a contact slot (1-9), reporting
// whether the slot was newly allocated this frame. Returns -1 if all
// slots are taken.
func (d *Driver) touchSlot(tid ebiten.TouchID) (slot int, isNew bool) {
	for i := 1; i < maxContacts; i++ {
		if d.touchUsed[i] && d.touchMap[i] == tid {
			return i, false
		}
	}
	for i := 1; i < maxContacts; i++ {
		if !d.touchUsed[i] {
			d.touchUsed[i] = true
			d.touchMap[i] = tid
			return i, true
		}
	}
	return -1, false
}
