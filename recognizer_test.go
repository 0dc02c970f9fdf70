package tactile

import (
	"testing"
)

// gestureLog records every emission through the catch-all channel.
type gestureLog struct {
	kinds    []GestureKind
	payloads []any
}

func captureGestures(r *Recognizer) *gestureLog {
	l := &gestureLog{}
	r.OnGesture(func(kind GestureKind, payload any) {
		l.kinds = append(l.kinds, kind)
		l.payloads = append(l.payloads, payload)
	})
	return l
}

func (l *gestureLog) count(kind GestureKind) int {
	n := 0
	for _, k := range l.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

func (l *gestureLog) last(kind GestureKind) any {
	for i := len(l.kinds) - 1; i >= 0; i-- {
		if l.kinds[i] == kind {
			return l.payloads[i]
		}
	}
	return nil
}

func newTestRecognizer(t *testing.T) *Recognizer {
	t.Helper()
	r, err := NewRecognizer(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRecognizerRejectsBadConfig(t *testing.T) {
	if _, err := NewRecognizer(Config{}); err == nil {
		t.Fatal("NewRecognizer accepted a zero config")
	}
}

func TestSingleTap(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{100, 100}))
	r.HandleTouch(release(0, 0.10, Vec2{108, 103}))

	if got := log.count(KindSingleTap); got != 1 {
		t.Fatalf("single_tap count = %d, want 1", got)
	}
	tap := log.last(KindSingleTap).(SingleTapContext)
	if !vecNear(tap.Position, Vec2{100, 100}) {
		t.Errorf("tap position = %v, want the press position {100 100}", tap.Position)
	}
	if got := log.count(KindSingleSwipe); got != 0 {
		t.Errorf("single_swipe count = %d, want 0", got)
	}
}

func TestSingleSwipe(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{0, 0}))
	r.HandleTouch(release(0, 0.30, Vec2{300, 0}))

	if got := log.count(KindSingleSwipe); got != 1 {
		t.Fatalf("single_swipe count = %d, want 1", got)
	}
	swipe := log.last(KindSingleSwipe).(SingleSwipeContext)
	if !vecNear(swipe.Position, Vec2{0, 0}) {
		t.Errorf("swipe position = %v, want {0 0}", swipe.Position)
	}
	if !vecNear(swipe.Relative, Vec2{300, 0}) {
		t.Errorf("swipe relative = %v, want {300 0}", swipe.Relative)
	}
	if got := log.count(KindSingleTap); got != 0 {
		t.Errorf("single_tap count = %d, want 0", got)
	}
}

// Tap and swipe are independent threshold checks; a config whose swipe
// distance sits below the tap limit lets one release satisfy both.
func TestTapAndSwipeAreIndependent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SwipeDistanceThreshold = 5
	r, err := NewRecognizer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{0, 0}))
	r.HandleTouch(release(0, 0.10, Vec2{10, 0}))

	if log.count(KindSingleTap) != 1 || log.count(KindSingleSwipe) != 1 {
		t.Errorf("tap=%d swipe=%d, want both exactly 1",
			log.count(KindSingleTap), log.count(KindSingleSwipe))
	}
}

func TestSingleLongPress(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{50, 50}))
	r.Advance(0.80)

	if got := log.count(KindSingleLongPress); got != 1 {
		t.Fatalf("single_long_press count = %d, want 1", got)
	}
	lp := log.last(KindSingleLongPress).(SingleLongPressContext)
	if !vecNear(lp.Position, Vec2{50, 50}) {
		t.Errorf("long press position = %v, want {50 50}", lp.Position)
	}

	// The long press ended the gesture; the pending release is an orphan
	// and must produce no tap or swipe.
	r.HandleTouch(release(0, 0.90, Vec2{50, 50}))
	if log.count(KindSingleTap) != 0 || log.count(KindSingleSwipe) != 0 {
		t.Error("release after a long press produced a tap or swipe")
	}
	if r.session.ActiveTouches() != 0 {
		t.Errorf("activeTouches = %d after long press, want 0", r.session.ActiveTouches())
	}
}

func TestLongPressSuppressedByMovement(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{50, 50}))
	r.HandleDrag(drag(0, 0.10, Vec2{150, 50}, Vec2{100, 0}))
	r.Advance(0.80)

	if got := log.count(KindSingleLongPress); got != 0 {
		t.Errorf("single_long_press count = %d after wandering, want 0", got)
	}
}

func TestLongPressSuppressedByRelease(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	// A prompt tap: the long-press timer was disarmed with the session.
	r.HandleTouch(press(0, 0.00, Vec2{50, 50}))
	r.HandleTouch(release(0, 0.05, Vec2{50, 50}))
	r.Advance(0.80)

	if got := log.count(KindSingleLongPress); got != 0 {
		t.Errorf("single_long_press count = %d after release, want 0", got)
	}
}

func TestMultiLongPress(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{100, 100}))
	r.HandleTouch(press(1, 0.02, Vec2{140, 100}))
	r.Advance(0.80)

	if got := log.count(KindMultiLongPress); got != 1 {
		t.Fatalf("multi_long_press count = %d, want 1", got)
	}
	lp := log.last(KindMultiLongPress).(MultiLongPressContext)
	if !vecNear(lp.Position, Vec2{120, 100}) || lp.Fingers != 2 {
		t.Errorf("multi long press = %+v, want position {120 100}, 2 fingers", lp)
	}
	if got := log.count(KindSingleLongPress); got != 0 {
		t.Errorf("single_long_press count = %d, want 0", got)
	}
}

func TestSingleDragStartup(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{10, 10}))
	// First drag arms the startup timer; nothing emits yet.
	r.HandleDrag(drag(0, 0.005, Vec2{12, 10}, Vec2{2, 0}))
	if got := log.count(KindSingleDrag); got != 0 {
		t.Fatalf("single_drag count = %d before startup, want 0", got)
	}
	// Still inside the startup window.
	r.HandleDrag(drag(0, 0.015, Vec2{14, 10}, Vec2{2, 0}))
	if got := log.count(KindSingleDrag); got != 0 {
		t.Fatalf("single_drag count = %d inside startup window, want 0", got)
	}
	// Past the window: the timer fires on Advance and drags flow.
	r.HandleDrag(drag(0, 0.050, Vec2{20, 10}, Vec2{6, 0}))
	if got := log.count(KindSingleDrag); got != 1 {
		t.Fatalf("single_drag count = %d past startup, want 1", got)
	}
	sd := log.last(KindSingleDrag).(SingleDragContext)
	if !vecNear(sd.Position, Vec2{20, 10}) || !vecNear(sd.Relative, Vec2{6, 0}) {
		t.Errorf("single drag = %+v, want position {20 10} relative {6 0}", sd)
	}
}

// Sector disambiguation: each finger's motion direction is compared with
// its direction to the shared centroid. Radial on all fingers is a
// pinch, tangential on all a twist, anything mixed a multi-drag.
func TestMultiDragDisambiguation(t *testing.T) {
	type dragPair struct {
		first, second DragSample
	}
	tests := []struct {
		name string
		pair dragPair
		want GestureKind
	}{
		{
			"radial outward is a pinch",
			dragPair{
				drag(0, 0.10, Vec2{90, 100}, Vec2{-10, 0}),
				drag(1, 0.11, Vec2{310, 100}, Vec2{10, 0}),
			},
			KindPinch,
		},
		{
			"radial inward is a pinch",
			dragPair{
				drag(0, 0.10, Vec2{110, 100}, Vec2{10, 0}),
				drag(1, 0.11, Vec2{290, 100}, Vec2{-10, 0}),
			},
			KindPinch,
		},
		{
			"tangential is a twist",
			dragPair{
				drag(0, 0.10, Vec2{100, 110}, Vec2{0, 10}),
				drag(1, 0.11, Vec2{300, 90}, Vec2{0, -10}),
			},
			KindTwist,
		},
		{
			"mixed sectors are a multi-drag",
			dragPair{
				drag(0, 0.10, Vec2{110, 100}, Vec2{10, 0}),
				drag(1, 0.11, Vec2{300, 110}, Vec2{0, 10}),
			},
			KindMultiDrag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRecognizer(t)
			log := captureGestures(r)

			r.HandleTouch(press(0, 0.00, Vec2{100, 100}))
			r.HandleTouch(press(1, 0.01, Vec2{300, 100}))
			r.HandleDrag(tt.pair.first)
			r.HandleDrag(tt.pair.second)

			// The second drag sample is the first with two fingers
			// dragging, so exactly one classification must have fired.
			total := log.count(KindPinch) + log.count(KindTwist) + log.count(KindMultiDrag)
			if total != 1 {
				t.Fatalf("classification emissions = %d, want exactly 1", total)
			}
			if got := log.count(tt.want); got != 1 {
				t.Errorf("%v count = %d, want 1 (kinds seen: %v)", tt.want, got, log.kinds)
			}
		})
	}
}

func TestPinchPayload(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{100, 100}))
	r.HandleTouch(press(1, 0.01, Vec2{300, 100}))
	r.HandleDrag(drag(0, 0.10, Vec2{90, 100}, Vec2{-10, 0}))
	r.HandleDrag(drag(1, 0.11, Vec2{310, 100}, Vec2{10, 0}))

	pinch := log.last(KindPinch).(PinchContext)
	if !vecNear(pinch.Position, Vec2{200, 100}) {
		t.Errorf("pinch position = %v, want the drag centroid {200 100}", pinch.Position)
	}
	// Fingers sit at 90 and 310: 110 + 110 from the centroid.
	if !floatNear(pinch.Distance, 220) {
		t.Errorf("pinch distance = %v, want 220", pinch.Distance)
	}
	// The triggering finger moved from 300 to 310: 10 further out.
	if !floatNear(pinch.Relative, 10) {
		t.Errorf("pinch relative = %v, want 10", pinch.Relative)
	}
	if pinch.Fingers != 2 {
		t.Errorf("pinch fingers = %d, want 2", pinch.Fingers)
	}
}

func TestMultiTap(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{100, 100}))
	r.HandleTouch(press(1, 0.01, Vec2{140, 100}))
	r.HandleTouch(release(0, 0.05, Vec2{100, 100}))
	r.HandleTouch(release(1, 0.06, Vec2{140, 100}))

	if got := log.count(KindMultiTap); got != 1 {
		t.Fatalf("multi_tap count = %d, want 1", got)
	}
	tap := log.last(KindMultiTap).(MultiTapContext)
	if !vecNear(tap.Position, Vec2{120, 100}) || tap.Fingers != 2 {
		t.Errorf("multi tap = %+v, want position {120 100}, 2 fingers", tap)
	}
	// The multi-finger release path must not also fire single variants.
	if log.count(KindSingleTap) != 0 {
		t.Error("multi-finger gesture fired a single_tap")
	}
}

// With a genuine history rollback, releases spread wider than the
// release window are rejected. A degenerate always-empty rollback (as
// some engines ship) would have accepted this sequence; this pins the
// chosen behavior.
func TestMultiTapRejectsStaggeredReleases(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{100, 100}))
	r.HandleTouch(press(1, 0.01, Vec2{140, 100}))
	r.HandleTouch(release(0, 0.02, Vec2{100, 100}))
	r.HandleTouch(release(1, 0.19, Vec2{140, 100})) // 0.17s after the first

	if got := log.count(KindMultiTap); got != 0 {
		t.Errorf("multi_tap count = %d for staggered releases, want 0", got)
	}
}

func TestMultiSwipe(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{0, 0}))
	r.HandleTouch(press(1, 0.01, Vec2{40, 0}))
	r.HandleTouch(release(0, 0.25, Vec2{300, 0}))
	r.HandleTouch(release(1, 0.26, Vec2{340, 0}))

	if got := log.count(KindMultiSwipe); got != 1 {
		t.Fatalf("multi_swipe count = %d, want 1", got)
	}
	swipe := log.last(KindMultiSwipe).(MultiSwipeContext)
	if !vecNear(swipe.Position, Vec2{20, 0}) {
		t.Errorf("multi swipe position = %v, want {20 0}", swipe.Position)
	}
	if !vecNear(swipe.Relative, Vec2{300, 0}) {
		t.Errorf("multi swipe relative = %v, want {300 0}", swipe.Relative)
	}
	if swipe.Fingers != 2 {
		t.Errorf("multi swipe fingers = %d, want 2", swipe.Fingers)
	}
	if log.count(KindMultiTap) != 0 {
		t.Error("multi swipe also fired a multi_tap")
	}
}

func TestMultiSwipeRejectsInconsistentMotion(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	// Fingers fly apart: centroid displacement is large but the motion
	// is not shared, so no multi-swipe.
	r.HandleTouch(press(0, 0.00, Vec2{0, 0}))
	r.HandleTouch(press(1, 0.01, Vec2{40, 0}))
	r.HandleTouch(release(0, 0.25, Vec2{-500, 0}))
	r.HandleTouch(release(1, 0.26, Vec2{1040, 0}))

	if got := log.count(KindMultiSwipe); got != 0 {
		t.Errorf("multi_swipe count = %d for diverging fingers, want 0", got)
	}
}

func TestCancelSignal(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{10, 10}))
	r.HandleDrag(drag(0, 0.10, Vec2{20, 10}, Vec2{10, 0}))
	r.HandleTouch(TouchSample{Index: -1, Time: 0.15, Position: Vec2{20, 10}})

	if got := log.count(KindCancel); got != 1 {
		t.Fatalf("cancel count = %d, want 1", got)
	}
	c := log.last(KindCancel).(CancelContext)
	if !vecNear(c.Position, Vec2{20, 10}) {
		t.Errorf("cancel position = %v, want {20 10}", c.Position)
	}
	if r.session.ActiveTouches() != 0 || len(r.session.drags) != 0 {
		t.Errorf("session after cancel: active=%d drags=%d, want both 0",
			r.session.ActiveTouches(), len(r.session.drags))
	}

	// Cancellation works identically from the drag stream.
	r.HandleDrag(DragSample{Index: -1, Time: 0.20, Position: Vec2{5, 5}})
	if got := log.count(KindCancel); got != 2 {
		t.Errorf("cancel count = %d after drag cancel, want 2", got)
	}
}

func TestOrphanReleaseIgnored(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(release(3, 0.00, Vec2{10, 10}))
	if len(log.kinds) != 0 {
		t.Fatalf("orphan release emitted %v, want nothing", log.kinds)
	}
	if r.session.ActiveTouches() != 0 || r.session.Size() != 0 {
		t.Error("orphan release mutated the session")
	}
}

func TestDuplicateReleaseIgnored(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{10, 10}))
	r.HandleTouch(press(1, 0.01, Vec2{50, 10}))
	r.HandleTouch(release(1, 0.05, Vec2{50, 10}))
	before := len(log.kinds)

	r.HandleTouch(release(1, 0.06, Vec2{50, 10}))
	if len(log.kinds) != before {
		t.Error("duplicate release emitted gestures")
	}
	if r.session.ActiveTouches() != 1 {
		t.Errorf("activeTouches = %d after duplicate release, want 1", r.session.ActiveTouches())
	}
}

func TestOrphanDragIgnored(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleDrag(drag(2, 0.00, Vec2{10, 10}, Vec2{5, 0}))
	if len(log.kinds) != 0 {
		t.Fatalf("orphan drag emitted %v, want nothing", log.kinds)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	// Gesture one: a tap.
	r.HandleTouch(press(0, 0.00, Vec2{10, 10}))
	r.HandleTouch(release(0, 0.05, Vec2{10, 10}))
	if r.session.ActiveTouches() != 0 || r.session.Size() != 0 {
		t.Fatal("session not replaced after gesture end")
	}

	// A later press starts a brand-new session with a fresh clock.
	r.HandleTouch(press(0, 5.00, Vec2{99, 99}))
	if r.session.StartTime() != 5.00 {
		t.Errorf("new session startTime = %v, want 5.0", r.session.StartTime())
	}
	r.HandleTouch(release(0, 5.05, Vec2{99, 99}))
	if got := log.count(KindSingleTap); got != 2 {
		t.Errorf("single_tap count across sessions = %d, want 2", got)
	}
}

func TestCatchAllFiresBeforeSpecific(t *testing.T) {
	r := newTestRecognizer(t)

	var order []string
	r.OnGesture(func(kind GestureKind, _ any) {
		if kind == KindSingleTap {
			order = append(order, "any")
		}
	})
	r.OnSingleTap(func(SingleTapContext) {
		order = append(order, "specific")
	})

	r.HandleTouch(press(0, 0.00, Vec2{10, 10}))
	r.HandleTouch(release(0, 0.05, Vec2{10, 10}))

	if len(order) != 2 || order[0] != "any" || order[1] != "specific" {
		t.Errorf("emission order = %v, want [any specific]", order)
	}
}

func TestRawAndSampleChannels(t *testing.T) {
	r := newTestRecognizer(t)

	var touches []TouchContext
	var raws []RawContext
	r.OnTouch(func(ctx TouchContext) { touches = append(touches, ctx) })
	r.OnRaw(func(ctx RawContext) { raws = append(raws, ctx) })

	r.HandleTouch(press(0, 0.00, Vec2{10, 10}))
	if len(touches) != 1 || len(raws) != 1 {
		t.Fatalf("touch=%d raw=%d after press, want 1 and 1", len(touches), len(raws))
	}
	if touches[0].Index != 0 || !touches[0].Pressed {
		t.Errorf("touch context = %+v, want pressed contact 0", touches[0])
	}
	if raws[0].ActiveTouches != 1 || len(raws[0].Presses) != 1 {
		t.Errorf("raw snapshot = %+v, want one active press", raws[0])
	}

	var dragsSeen []DragContext
	r.OnDrag(func(ctx DragContext) { dragsSeen = append(dragsSeen, ctx) })
	r.HandleDrag(drag(0, 0.05, Vec2{15, 10}, Vec2{5, 0}))
	if len(dragsSeen) != 1 || len(raws) != 2 {
		t.Errorf("drag=%d raw=%d after drag, want 1 and 2", len(dragsSeen), len(raws))
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	r := newTestRecognizer(t)

	calls := 0
	handle := r.OnSingleTap(func(SingleTapContext) { calls++ })

	r.HandleTouch(press(0, 0.00, Vec2{10, 10}))
	r.HandleTouch(release(0, 0.05, Vec2{10, 10}))
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	handle.Remove()
	r.HandleTouch(press(0, 1.00, Vec2{10, 10}))
	r.HandleTouch(release(0, 1.05, Vec2{10, 10}))
	if calls != 1 {
		t.Errorf("calls = %d after Remove, want still 1", calls)
	}

	// Removing twice is harmless.
	handle.Remove()
}

func TestSecondFingerCancelsSingleInterpretation(t *testing.T) {
	r := newTestRecognizer(t)
	log := captureGestures(r)

	r.HandleTouch(press(0, 0.00, Vec2{100, 100}))
	r.HandleTouch(press(1, 0.02, Vec2{140, 100}))
	// Contact 0 releases within tap thresholds, but the gesture went
	// multi-finger, so no single tap.
	r.HandleTouch(release(0, 0.05, Vec2{100, 100}))
	if got := log.count(KindSingleTap); got != 0 {
		t.Errorf("single_tap count = %d with a second finger down, want 0", got)
	}

	// Two SingleTouch presses (first and second finger), one release.
	if got := log.count(KindSingleTouch); got != 3 {
		t.Errorf("single_touch count = %d, want 3", got)
	}
}
