package tactile

import "math"

// Emulation lets a single pointer plus a handful of bound keys or
// buttons stand in for multi-touch hardware: an action press synthesizes
// the touch samples a real second finger would have produced, and
// subsequent pointer motion is reinterpreted according to the
// recognizer's InteractionMode.

// Action is one entry of the fixed bindable-action vocabulary.
type Action uint8

const (
	ActionSingleTouch  Action = iota // hold: primary finger down
	ActionMultiTouch                 // hold: two fingers down
	ActionTwist                      // hold: orbit the press point
	ActionPinchOutward               // fire: synthetic outward pinch
	ActionPinchInward                // fire: synthetic inward pinch

	ActionSingleSwipeUp
	ActionSingleSwipeUpRight
	ActionSingleSwipeRight
	ActionSingleSwipeDownRight
	ActionSingleSwipeDown
	ActionSingleSwipeDownLeft
	ActionSingleSwipeLeft
	ActionSingleSwipeUpLeft

	ActionMultiSwipeUp
	ActionMultiSwipeUpRight
	ActionMultiSwipeRight
	ActionMultiSwipeDownRight
	ActionMultiSwipeDown
	ActionMultiSwipeDownLeft
	ActionMultiSwipeLeft
	ActionMultiSwipeUpLeft

	actionCount
)

var actionNames = [...]string{
	"single_touch", "multi_touch", "twist", "pinch_outward", "pinch_inward",
	"single_swipe_up", "single_swipe_up_right", "single_swipe_right",
	"single_swipe_down_right", "single_swipe_down", "single_swipe_down_left",
	"single_swipe_left", "single_swipe_up_left",
	"multi_swipe_up", "multi_swipe_up_right", "multi_swipe_right",
	"multi_swipe_down_right", "multi_swipe_down", "multi_swipe_down_left",
	"multi_swipe_left", "multi_swipe_up_left",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

const (
	// emulatedTouchSpread is the lateral gap between the two synthetic
	// fingers of multi-touch emulation. Y-down screen units.
	emulatedTouchSpread = 40.0

	// emulatedPinchDistance and emulatedPinchStep parameterize the
	// synthetic pinch fired by the pinch actions.
	emulatedPinchDistance = 400.0
	emulatedPinchStep     = 40.0
)

var sqrt2inv = 1 / math.Sqrt2

// swipeDirections maps swipe actions (single then multi, same compass
// order as the constants) to unit vectors, Y-down.
var swipeDirections = [8]Vec2{
	{0, -1},                // up
	{sqrt2inv, -sqrt2inv},  // up-right
	{1, 0},                 // right
	{sqrt2inv, sqrt2inv},   // down-right
	{0, 1},                 // down
	{-sqrt2inv, sqrt2inv},  // down-left
	{-1, 0},                // left
	{-sqrt2inv, -sqrt2inv}, // up-left
}

// HandleAction processes a press or release of a bound action at the
// given pointer position.
func (r *Recognizer) HandleAction(a Action, pressed bool, position Vec2, time float64) {
	switch a {
	case ActionSingleTouch:
		r.HandleTouch(TouchSample{Index: 0, Time: time, Position: position, Pressed: pressed})
		if pressed {
			r.mode = ModePendingSingleDrag
		} else {
			r.mode = ModeNone
		}

	case ActionMultiTouch:
		offset := Vec2{emulatedTouchSpread / 2, 0}
		r.HandleTouch(TouchSample{Index: 0, Time: time, Position: position.Sub(offset), Pressed: pressed})
		r.HandleTouch(TouchSample{Index: 1, Time: time, Position: position.Add(offset), Pressed: pressed})
		if pressed {
			r.mode = ModeActiveMultiDrag
		} else {
			r.mode = ModeNone
		}

	case ActionTwist:
		if pressed {
			r.twistAnchor = position
			r.mode = ModeTwisting
		} else {
			r.mode = ModeNone
		}

	case ActionPinchOutward, ActionPinchInward:
		if !pressed {
			return
		}
		relative := emulatedPinchStep
		if a == ActionPinchInward {
			relative = -relative
		}
		emit(r, KindPinch, &r.handlers.pinch, PinchContext{
			Position: position,
			Relative: relative,
			Distance: emulatedPinchDistance,
			Fingers:  2,
		})

	default:
		if !pressed {
			return
		}
		if a >= ActionSingleSwipeUp && a < ActionMultiSwipeUp {
			dir := swipeDirections[a-ActionSingleSwipeUp]
			emit(r, KindSingleSwipe, &r.handlers.singleSwipe, SingleSwipeContext{
				Position: position,
				Relative: dir.Scale(r.cfg.SwipeDistanceThreshold + 1),
			})
		} else if a >= ActionMultiSwipeUp && a < actionCount {
			dir := swipeDirections[a-ActionMultiSwipeUp]
			emit(r, KindMultiSwipe, &r.handlers.multiSwipe, MultiSwipeContext{
				Position: position,
				Relative: dir.Scale(r.cfg.SwipeDistanceThreshold + 1),
				Fingers:  2,
			})
		}
	}
}

// HandleMotion processes continuous pointer motion. Outside an emulation
// mode it is ignored; drivers convert held-pointer motion into drag
// samples themselves.
func (r *Recognizer) HandleMotion(position, relative, velocity Vec2, time float64) {
	switch r.mode {
	case ModePendingSingleDrag, ModeActiveSingleDrag:
		r.mode = ModeActiveSingleDrag
		r.HandleDrag(DragSample{
			Index: 0, Time: time,
			Position: position, Relative: relative, Velocity: velocity,
		})

	case ModeActiveMultiDrag:
		r.Advance(time)
		offset := Vec2{emulatedTouchSpread / 2, 0}
		var samples [2]DragSample
		for i, p := range [2]Vec2{position.Sub(offset), position.Add(offset)} {
			samples[i] = DragSample{
				Index: i, Time: time,
				Position: p, Relative: relative, Velocity: velocity,
			}
			r.session.UpdateDragAt(samples[i], time)
		}
		// Both fingers must be in the session before either context is
		// built, or the first one reports a single-finger split.
		for _, s := range samples {
			emit(r, KindMultiDrag, &r.handlers.multiDrag, newMultiDragContext(r.session, s))
		}

	case ModeTwisting:
		r.Advance(time)
		before := position.Sub(r.twistAnchor)
		after := position.Add(relative).Sub(r.twistAnchor)
		emit(r, KindTwist, &r.handlers.twist, TwistContext{
			Position: r.twistAnchor,
			Relative: before.AngleTo(after),
			Fingers:  2,
		})
	}
}
