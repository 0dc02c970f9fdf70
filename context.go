package tactile

// Gesture payload contexts. Each is an immutable value computed at
// emission time from the live Session (and, for drag-derived kinds, the
// triggering drag sample). Fields are plain copies, never references into
// the Session, so a context stays valid after the session is reset.

// GestureKind identifies a recognizer output channel.
type GestureKind uint8

const (
	KindTouch           GestureKind = iota // raw touch sample pass-through
	KindDrag                               // raw drag sample pass-through
	KindRaw                                // session snapshot after each update
	KindSingleTouch                        // press/release of a lone contact
	KindSingleTap                          // quick press+release within the tap window
	KindSingleDrag                         // one finger dragging after startup delay
	KindSingleSwipe                        // fast, long single-finger flick
	KindSingleLongPress                    // one finger held still
	KindMultiDrag                          // several fingers dragging independently
	KindMultiTap                           // several fingers tapped together
	KindMultiSwipe                         // several fingers flicked together
	KindMultiLongPress                     // several fingers held still
	KindPinch                              // fingers moving radially to their centroid
	KindTwist                              // fingers moving tangentially to their centroid
	KindCancel                             // gesture aborted
)

func (k GestureKind) String() string {
	switch k {
	case KindTouch:
		return "touch"
	case KindDrag:
		return "drag"
	case KindRaw:
		return "raw"
	case KindSingleTouch:
		return "single_touch"
	case KindSingleTap:
		return "single_tap"
	case KindSingleDrag:
		return "single_drag"
	case KindSingleSwipe:
		return "single_swipe"
	case KindSingleLongPress:
		return "single_long_press"
	case KindMultiDrag:
		return "multi_drag"
	case KindMultiTap:
		return "multi_tap"
	case KindMultiSwipe:
		return "multi_swipe"
	case KindMultiLongPress:
		return "multi_long_press"
	case KindPinch:
		return "pinch"
	case KindTwist:
		return "twist"
	case KindCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// TouchContext carries one raw touch sample as received.
type TouchContext struct {
	Index    int
	Position Vec2
	Pressed  bool
	Time     float64
}

// DragContext carries one raw drag sample as received.
type DragContext struct {
	Index    int
	Position Vec2
	Relative Vec2
	Velocity Vec2
	Time     float64
}

// RawContext is a full snapshot of the session after an update. Maps are
// copies owned by the context.
type RawContext struct {
	Presses       map[int]TouchSample
	Releases      map[int]TouchSample
	Drags         map[int]DragSample
	ActiveTouches int
	StartTime     float64
	Elapsed       float64
}

// SingleTouchContext reports the primary contact going down or up while
// the single-finger interpretation is in play.
type SingleTouchContext struct {
	Position Vec2
	Pressed  bool
}

// SingleTapContext reports a quick press and release. Position is the
// press position.
type SingleTapContext struct {
	Position Vec2
}

// SingleSwipeContext reports a fast single-finger flick. Position is the
// press position; Relative is release minus press.
type SingleSwipeContext struct {
	Position Vec2
	Relative Vec2
}

// SingleLongPressContext reports one finger held still past the
// long-press threshold. Position is the press position.
type SingleLongPressContext struct {
	Position Vec2
}

// SingleDragContext reports one finger dragging.
type SingleDragContext struct {
	Position Vec2
	Relative Vec2
	Velocity Vec2
}

// MultiTapContext reports several fingers tapped together. Position is
// the centroid of the press positions.
type MultiTapContext struct {
	Position Vec2
	Fingers  int
}

// MultiSwipeContext reports several fingers flicked together. Position is
// the press centroid; Relative is end centroid minus press centroid.
type MultiSwipeContext struct {
	Position Vec2
	Relative Vec2
	Fingers  int
}

// MultiLongPressContext reports several fingers held still together.
type MultiLongPressContext struct {
	Position Vec2
	Fingers  int
}

// MultiDragContext reports several fingers dragging without a pinch or
// twist shape. Position is the drag centroid; Relative is the triggering
// sample's movement split evenly across fingers.
type MultiDragContext struct {
	Position Vec2
	Relative Vec2
	Fingers  int
}

// PinchContext reports fingers moving radially with respect to their
// centroid. Distance is the sum of every dragging finger's distance from
// the centroid; Relative is the change in the triggering finger's
// distance from the centroid across its movement (positive = outward).
type PinchContext struct {
	Position Vec2
	Relative float64
	Distance float64
	Fingers  int
}

// TwistContext reports fingers rotating around their centroid. Relative
// is the signed rotation in radians contributed by the triggering
// finger's movement, split across fingers.
type TwistContext struct {
	Position Vec2
	Relative float64
	Fingers  int
}

// CancelContext reports an aborted gesture. Position is the position of
// the cancelling sample.
type CancelContext struct {
	Position Vec2
}

// --- Constructors from the session (and triggering sample) ---

func newSingleTapContext(s *Session) SingleTapContext {
	return SingleTapContext{Position: s.presses[0].Position}
}

func newSingleSwipeContext(s *Session) SingleSwipeContext {
	press := s.presses[0]
	return SingleSwipeContext{
		Position: press.Position,
		Relative: s.releases[0].Position.Sub(press.Position),
	}
}

func newSingleLongPressContext(s *Session) SingleLongPressContext {
	return SingleLongPressContext{Position: s.Centroid(CategoryPresses, PropertyPosition)}
}

func newSingleDragContext(trigger DragSample) SingleDragContext {
	return SingleDragContext{
		Position: trigger.Position,
		Relative: trigger.Relative,
		Velocity: trigger.Velocity,
	}
}

func newMultiTapContext(s *Session) MultiTapContext {
	return MultiTapContext{
		Position: s.Centroid(CategoryPresses, PropertyPosition),
		Fingers:  s.Size(),
	}
}

func newMultiSwipeContext(s *Session) MultiSwipeContext {
	pressCentroid := s.Centroid(CategoryPresses, PropertyPosition)
	ends := s.Endpoints()
	points := make([]Vec2, 0, len(ends))
	for _, p := range ends {
		points = append(points, p)
	}
	endCentroid := Centroid(points)
	return MultiSwipeContext{
		Position: pressCentroid,
		Relative: endCentroid.Sub(pressCentroid),
		Fingers:  s.Size(),
	}
}

func newMultiLongPressContext(s *Session) MultiLongPressContext {
	return MultiLongPressContext{
		Position: s.Centroid(CategoryPresses, PropertyPosition),
		Fingers:  s.Size(),
	}
}

func newMultiDragContext(s *Session, trigger DragSample) MultiDragContext {
	fingers := len(s.drags)
	return MultiDragContext{
		Position: s.Centroid(CategoryDrags, PropertyPosition),
		Relative: trigger.Relative.Scale(1 / float64(fingers)),
		Fingers:  fingers,
	}
}

func newPinchContext(s *Session, trigger DragSample) PinchContext {
	centroid := s.Centroid(CategoryDrags, PropertyPosition)
	var distance float64
	for _, d := range s.drags {
		distance += d.Position.Distance(centroid)
	}
	before := trigger.Position.Sub(trigger.Relative).Distance(centroid)
	after := trigger.Position.Distance(centroid)
	return PinchContext{
		Position: centroid,
		Relative: after - before,
		Distance: distance,
		Fingers:  len(s.drags),
	}
}

func newTwistContext(s *Session, trigger DragSample) TwistContext {
	centroid := s.Centroid(CategoryDrags, PropertyPosition)
	fingers := len(s.drags)
	before := trigger.Position.Sub(trigger.Relative).Sub(centroid)
	after := trigger.Position.Sub(centroid)
	return TwistContext{
		Position: centroid,
		Relative: before.AngleTo(after) / float64(fingers),
		Fingers:  fingers,
	}
}
