package tactile

import (
	"fmt"
	"math"
	"os"
)

// InteractionMode tracks how single-pointer emulation is currently
// standing in for multi-touch hardware. Real touch streams leave the
// mode at ModeNone.
type InteractionMode uint8

const (
	ModeNone              InteractionMode = iota
	ModePendingSingleDrag                 // primary action held, no motion yet
	ModeActiveSingleDrag                  // pointer motion feeding single drags
	ModeActiveMultiDrag                   // pointer motion split into two fingers
	ModeTwisting                          // pointer motion orbiting a press anchor
)

// --- Handler registry ---

type handlerEntry[T any] struct {
	id uint32
	fn func(T)
}

type handlerList[T any] struct {
	entries []handlerEntry[T]
}

func (l *handlerList[T]) add(id uint32, fn func(T)) {
	l.entries = append(l.entries, handlerEntry[T]{id: id, fn: fn})
}

// remove deletes the entry in place to avoid nil iteration waste.
func (l *handlerList[T]) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id == id {
			copy(l.entries[i:], l.entries[i+1:])
			l.entries[len(l.entries)-1] = handlerEntry[T]{}
			l.entries = l.entries[:len(l.entries)-1]
			return
		}
	}
}

func (l *handlerList[T]) fire(v T) {
	for _, e := range l.entries {
		e.fn(v)
	}
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

type anyHandler struct {
	id uint32
	fn func(GestureKind, any)
}

type handlerRegistry struct {
	any             []anyHandler
	touch           handlerList[TouchContext]
	drag            handlerList[DragContext]
	raw             handlerList[RawContext]
	singleTouch     handlerList[SingleTouchContext]
	singleTap       handlerList[SingleTapContext]
	singleDrag      handlerList[SingleDragContext]
	singleSwipe     handlerList[SingleSwipeContext]
	singleLongPress handlerList[SingleLongPressContext]
	multiDrag       handlerList[MultiDragContext]
	multiTap        handlerList[MultiTapContext]
	multiSwipe      handlerList[MultiSwipeContext]
	multiLongPress  handlerList[MultiLongPressContext]
	pinch           handlerList[PinchContext]
	twist           handlerList[TwistContext]
	cancel          handlerList[CancelContext]
	nextID          uint32
}

// Recognizer turns raw touch, drag, and pointer-motion samples into
// discrete gestures. It owns exactly one live Session, mutates it only
// while processing one sample or one timer fire at a time, and replaces
// it wholesale when a gesture ends. Not safe for concurrent use; feed it
// from a single goroutine, typically the game's Update loop.
type Recognizer struct {
	cfg     Config
	session *Session

	mode                 InteractionMode
	singleTouchCancelled bool
	singleDragEnabled    bool
	twistAnchor          Vec2

	dragStartup oneShotTimer
	longPress   oneShotTimer

	handlers handlerRegistry
	debug    bool
}

// NewRecognizer returns a recognizer using the given thresholds. The
// configuration is validated up front; nothing is recovered mid-session.
func NewRecognizer(cfg Config) (*Recognizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Recognizer{
		cfg:     cfg,
		session: NewSession(),
	}
	r.dragStartup.fn = r.onDragStartup
	r.longPress.fn = r.onLongPress
	return r, nil
}

// SetDebug toggles an emission trace on stderr.
func (r *Recognizer) SetDebug(enabled bool) {
	r.debug = enabled
}

// Config returns the recognizer's thresholds.
func (r *Recognizer) Config() Config {
	return r.cfg
}

// Mode returns the current emulation mode.
func (r *Recognizer) Mode() InteractionMode {
	return r.mode
}

// --- Registration ---

func (r *Recognizer) nextID() uint32 {
	r.handlers.nextID++
	return r.handlers.nextID
}

func register[T any](r *Recognizer, l *handlerList[T], fn func(T)) CallbackHandle {
	id := r.nextID()
	l.add(id, fn)
	return CallbackHandle{remove: func() { l.remove(id) }}
}

// OnGesture registers a catch-all callback that observes every emission.
// It fires before the gesture's specific callbacks.
func (r *Recognizer) OnGesture(fn func(GestureKind, any)) CallbackHandle {
	id := r.nextID()
	r.handlers.any = append(r.handlers.any, anyHandler{id: id, fn: fn})
	return CallbackHandle{remove: func() {
		for i := range r.handlers.any {
			if r.handlers.any[i].id == id {
				copy(r.handlers.any[i:], r.handlers.any[i+1:])
				r.handlers.any[len(r.handlers.any)-1] = anyHandler{}
				r.handlers.any = r.handlers.any[:len(r.handlers.any)-1]
				return
			}
		}
	}}
}

// OnTouch registers a callback for every raw touch sample.
func (r *Recognizer) OnTouch(fn func(TouchContext)) CallbackHandle {
	return register(r, &r.handlers.touch, fn)
}

// OnDrag registers a callback for every raw drag sample.
func (r *Recognizer) OnDrag(fn func(DragContext)) CallbackHandle {
	return register(r, &r.handlers.drag, fn)
}

// OnRaw registers a callback receiving a session snapshot after every update.
func (r *Recognizer) OnRaw(fn func(RawContext)) CallbackHandle {
	return register(r, &r.handlers.raw, fn)
}

// OnSingleTouch registers a callback for primary-contact press/release events.
func (r *Recognizer) OnSingleTouch(fn func(SingleTouchContext)) CallbackHandle {
	return register(r, &r.handlers.singleTouch, fn)
}

// OnSingleTap registers a callback for single-finger taps.
func (r *Recognizer) OnSingleTap(fn func(SingleTapContext)) CallbackHandle {
	return register(r, &r.handlers.singleTap, fn)
}

// OnSingleDrag registers a callback for single-finger drags.
func (r *Recognizer) OnSingleDrag(fn func(SingleDragContext)) CallbackHandle {
	return register(r, &r.handlers.singleDrag, fn)
}

// OnSingleSwipe registers a callback for single-finger swipes.
func (r *Recognizer) OnSingleSwipe(fn func(SingleSwipeContext)) CallbackHandle {
	return register(r, &r.handlers.singleSwipe, fn)
}

// OnSingleLongPress registers a callback for single-finger long presses.
func (r *Recognizer) OnSingleLongPress(fn func(SingleLongPressContext)) CallbackHandle {
	return register(r, &r.handlers.singleLongPress, fn)
}

// OnMultiDrag registers a callback for multi-finger drags.
func (r *Recognizer) OnMultiDrag(fn func(MultiDragContext)) CallbackHandle {
	return register(r, &r.handlers.multiDrag, fn)
}

// OnMultiTap registers a callback for multi-finger taps.
func (r *Recognizer) OnMultiTap(fn func(MultiTapContext)) CallbackHandle {
	return register(r, &r.handlers.multiTap, fn)
}

// OnMultiSwipe registers a callback for multi-finger swipes.
func (r *Recognizer) OnMultiSwipe(fn func(MultiSwipeContext)) CallbackHandle {
	return register(r, &r.handlers.multiSwipe, fn)
}

// OnMultiLongPress registers a callback for multi-finger long presses.
func (r *Recognizer) OnMultiLongPress(fn func(MultiLongPressContext)) CallbackHandle {
	return register(r, &r.handlers.multiLongPress, fn)
}

// OnPinch registers a callback for pinches.
func (r *Recognizer) OnPinch(fn func(PinchContext)) CallbackHandle {
	return register(r, &r.handlers.pinch, fn)
}

// OnTwist registers a callback for twists.
func (r *Recognizer) OnTwist(fn func(TwistContext)) CallbackHandle {
	return register(r, &r.handlers.twist, fn)
}

// OnCancel registers a callback for cancelled gestures.
func (r *Recognizer) OnCancel(fn func(CancelContext)) CallbackHandle {
	return register(r, &r.handlers.cancel, fn)
}

// --- Emission ---

// emitAny runs the catch-all channel. Every specific emission goes
// through here first so a single subscriber can observe all gestures.
func (r *Recognizer) emitAny(kind GestureKind, payload any) {
	if r.debug {
		_, _ = fmt.Fprintf(os.Stderr, "[tactile] %s %+v\n", kind, payload)
	}
	for _, h := range r.handlers.any {
		h.fn(kind, payload)
	}
}

func emit[T any](r *Recognizer, kind GestureKind, l *handlerList[T], ctx T) {
	r.emitAny(kind, ctx)
	l.fire(ctx)
}

// --- Timekeeping ---

// Advance runs any due timers. Drivers call it once per frame with the
// current time; sample handlers call it with the sample's timestamp so
// that a timer that should have fired earlier does so before the sample
// is interpreted.
func (r *Recognizer) Advance(now float64) {
	r.dragStartup.advance(now)
	r.longPress.advance(now)
}

// --- Touch samples ---

// HandleTouch processes one press or release sample.
func (r *Recognizer) HandleTouch(s TouchSample) {
	r.Advance(s.Time)

	if s.Index < 0 {
		r.cancelGesture(s.Position)
		return
	}

	if !s.Pressed {
		// Orphan or duplicate release: nothing recorded for this contact,
		// or it already released.
		if _, down := r.session.presses[s.Index]; !down {
			return
		}
		if _, released := r.session.releases[s.Index]; released {
			return
		}
	}

	r.session.UpdateTouchAt(s, s.Time)
	emit(r, KindTouch, &r.handlers.touch, TouchContext{
		Index: s.Index, Position: s.Position, Pressed: s.Pressed, Time: s.Time,
	})
	emit(r, KindRaw, &r.handlers.raw, r.session.snapshot())

	if s.Pressed {
		r.handlePress(s)
	} else {
		r.handleRelease(s)
	}
}

func (r *Recognizer) handlePress(s TouchSample) {
	if r.session.ActiveTouches() == 1 {
		// First finger down: the single-finger interpretation is live and
		// the long-press clock starts.
		r.singleTouchCancelled = false
		r.longPress.start(s.Time, r.cfg.LongPressTimeThreshold)
		emit(r, KindSingleTouch, &r.handlers.singleTouch, SingleTouchContext{
			Position: s.Position, Pressed: true,
		})
	} else if !r.singleTouchCancelled {
		// Second finger: the gesture is multi-finger from here on.
		r.singleTouchCancelled = true
		r.cancelSingleDrag()
		emit(r, KindSingleTouch, &r.handlers.singleTouch, SingleTouchContext{
			Position: s.Position, Pressed: true,
		})
	}
}

func (r *Recognizer) handleRelease(s TouchSample) {
	if s.Index == 0 {
		emit(r, KindSingleTouch, &r.handlers.singleTouch, SingleTouchContext{
			Position: s.Position, Pressed: false,
		})
		if !r.singleTouchCancelled {
			press := r.session.presses[0]
			distance := s.Position.Distance(press.Position)
			elapsed := r.session.Elapsed()

			// Tap and swipe are independent checks, not an either/or.
			if elapsed < r.cfg.TapTimeLimit && distance <= r.cfg.TapDistanceLimit {
				emit(r, KindSingleTap, &r.handlers.singleTap, newSingleTapContext(r.session))
			}
			if elapsed < r.cfg.SwipeTimeLimit && distance > r.cfg.SwipeDistanceThreshold {
				emit(r, KindSingleSwipe, &r.handlers.singleSwipe, newSingleSwipeContext(r.session))
			}
		}
	}

	if r.session.ActiveTouches() == 0 {
		if r.singleTouchCancelled {
			r.finishMultiGesture()
		}
		r.endGesture()
		return
	}

	r.cancelSingleDrag()
}

// finishMultiGesture runs the multi-tap and multi-swipe checks when the
// last finger of a multi-finger gesture lifts.
func (r *Recognizer) finishMultiGesture() {
	s := r.session
	fingers := s.Size()
	if fingers == 0 {
		return
	}

	ends := s.Endpoints()
	points := make([]Vec2, 0, len(ends))
	for _, p := range ends {
		points = append(points, p)
	}
	endCentroid := Centroid(points)
	pressCentroid := s.Centroid(CategoryPresses, PropertyPosition)
	distance := endCentroid.Distance(pressCentroid)
	elapsed := s.Elapsed()
	lengthLimit := r.cfg.FingerSize * float64(fingers)

	// All fingers must have released within the threshold of each other:
	// rolling the session back to just before the window must show no
	// releases yet. The history reconstruction is genuine, so staggered
	// releases really are rejected here.
	rolled := s.RollbackRelative(r.cfg.MultiFingerReleaseThreshold)
	releasedTogether := len(rolled.releases) == 0

	if elapsed < r.cfg.TapTimeLimit && distance <= r.cfg.TapDistanceLimit &&
		s.IsConsistent(r.cfg.TapDistanceLimit, lengthLimit) && releasedTogether {
		emit(r, KindMultiTap, &r.handlers.multiTap, newMultiTapContext(s))
	}
	if elapsed < r.cfg.SwipeTimeLimit && distance > r.cfg.SwipeDistanceThreshold &&
		s.IsConsistent(r.cfg.SwipeDistanceThreshold, lengthLimit) && releasedTogether {
		emit(r, KindMultiSwipe, &r.handlers.multiSwipe, newMultiSwipeContext(s))
	}
}

// --- Drag samples ---

// HandleDrag processes one drag sample.
func (r *Recognizer) HandleDrag(s DragSample) {
	r.Advance(s.Time)

	if s.Index < 0 {
		r.cancelGesture(s.Position)
		return
	}
	// A drag for a contact that was never pressed (or already released)
	// is late; drop it to keep the session's press-before-drag invariant.
	if _, down := r.session.presses[s.Index]; !down {
		return
	}
	if _, released := r.session.releases[s.Index]; released {
		return
	}

	r.session.UpdateDragAt(s, s.Time)
	emit(r, KindDrag, &r.handlers.drag, DragContext{
		Index: s.Index, Position: s.Position, Relative: s.Relative,
		Velocity: s.Velocity, Time: s.Time,
	})
	emit(r, KindRaw, &r.handlers.raw, r.session.snapshot())

	if len(r.session.drags) > 1 {
		r.cancelSingleDrag()
		switch r.classifyMultiDrag() {
		case KindPinch:
			emit(r, KindPinch, &r.handlers.pinch, newPinchContext(r.session, s))
		case KindTwist:
			emit(r, KindTwist, &r.handlers.twist, newTwistContext(r.session, s))
		default:
			emit(r, KindMultiDrag, &r.handlers.multiDrag, newMultiDragContext(r.session, s))
		}
		return
	}

	if r.singleDragEnabled {
		emit(r, KindSingleDrag, &r.handlers.singleDrag, newSingleDragContext(s))
	} else if !r.dragStartup.running() {
		r.dragStartup.start(s.Time, r.cfg.DragStartupTime)
	}
}

// classifyMultiDrag separates pinch from twist from generic multi-drag
// using only each finger's motion direction against its radial direction
// to the shared centroid. Each finger's angle between those two vectors
// is offset by 45° and bucketed into four 90° sectors: sectors 0 and 2
// are radial motion (pinch), 1 and 3 tangential (twist). Fingers landing
// in sectors of mixed kind make it a plain multi-drag.
func (r *Recognizer) classifyMultiDrag() GestureKind {
	centroid := r.session.Centroid(CategoryDrags, PropertyPosition)

	radial := -1
	for _, d := range r.session.drags {
		toCentroid := centroid.Sub(d.Position)
		angle := math.Mod(toCentroid.AngleTo(d.Relative)+math.Pi/4, 2*math.Pi)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		sector := int(angle/(math.Pi/2)) % 4
		kind := sector % 2 // 0 = radial, 1 = tangential

		if radial == -1 {
			radial = kind
		} else if radial != kind {
			return KindMultiDrag
		}
	}
	if radial == 0 {
		return KindPinch
	}
	return KindTwist
}

// --- Timers ---

// onDragStartup fires once the startup delay elapses; single-drag events
// begin only if exactly one finger is still dragging.
func (r *Recognizer) onDragStartup(float64) {
	if len(r.session.drags) == 1 {
		r.singleDragEnabled = true
	}
}

// onLongPress fires once the hold threshold elapses. If nothing has
// released and the fingers stayed put and together, a long press is
// emitted and the gesture ends.
func (r *Recognizer) onLongPress(float64) {
	s := r.session
	if len(s.releases) > 0 || s.Size() == 0 {
		return
	}

	ends := s.Endpoints()
	points := make([]Vec2, 0, len(ends))
	for _, p := range ends {
		points = append(points, p)
	}
	endCentroid := Centroid(points)
	pressCentroid := s.Centroid(CategoryPresses, PropertyPosition)
	if endCentroid.Distance(pressCentroid) > r.cfg.LongPressDistanceLimit {
		return
	}
	if !s.IsConsistent(r.cfg.TapDistanceLimit, r.cfg.FingerSize*float64(s.Size())) {
		return
	}

	if r.singleTouchCancelled {
		emit(r, KindMultiLongPress, &r.handlers.multiLongPress, newMultiLongPressContext(s))
	} else {
		emit(r, KindSingleLongPress, &r.handlers.singleLongPress, newSingleLongPressContext(s))
	}
	r.endGesture()
}

// --- Lifecycle ---

// cancelSingleDrag stops the startup timer and disables single-drag
// recognition until the timer re-arms and fires again.
func (r *Recognizer) cancelSingleDrag() {
	r.dragStartup.stop()
	r.singleDragEnabled = false
}

// cancelGesture emits Cancel and discards all gesture state. Triggered
// by any sample carrying a negative contact index.
func (r *Recognizer) cancelGesture(position Vec2) {
	emit(r, KindCancel, &r.handlers.cancel, CancelContext{Position: position})
	r.endGesture()
}

// endGesture replaces the session and disarms both timers. Already
// emitted contexts are unaffected; the next press starts a new session.
func (r *Recognizer) endGesture() {
	r.cancelSingleDrag()
	r.longPress.stop()
	r.session = NewSession()
	r.mode = ModeNone
}
