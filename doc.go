// Package tactile is a multi-touch gesture recognition engine for
// [Ebitengine].
//
// Tactile turns raw press, release, and drag samples into discrete,
// semantically named gestures: taps, long presses, swipes, drags,
// pinches, and twists, in single- and multi-finger variants. The engine
// itself is input-agnostic; the bundled [Driver] feeds it from
// Ebitengine's mouse, touch, and keyboard state each frame.
//
// # Quick start
//
//	rec, err := tactile.NewRecognizer(tactile.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	rec.OnSingleTap(func(ctx tactile.SingleTapContext) {
//		fmt.Println("tap at", ctx.Position)
//	})
//	rec.OnPinch(func(ctx tactile.PinchContext) {
//		zoom(ctx.Relative)
//	})
//
//	driver := tactile.NewDriver(rec)
//
// Then, in your ebiten.Game:
//
//	func (g *Game) Update() error {
//		driver.Update()
//		return nil
//	}
//
// # How recognition works
//
// The recognizer owns a [Session]: the record of every press, release,
// and drag since the first finger went down. Thresholds from [Config]
// bound each gesture: a tap must release within TapTimeLimit having
// moved at most TapDistanceLimit, a swipe must travel farther than
// SwipeDistanceThreshold within SwipeTimeLimit, and so on.
//
// Multi-finger drags are disambiguated geometrically: each finger's
// motion vector is compared against its direction to the shared
// centroid. All fingers moving radially is a pinch, all tangentially a
// twist, anything mixed a plain multi-drag. There are no extra
// thresholds for this; direction alone decides.
//
// Every emission also fires the catch-all registered with
// [Recognizer.OnGesture], before the gesture's own channel, so one
// subscriber can observe everything.
//
// # Emulation without touch hardware
//
// Bind keys or mouse buttons to [Action] values on the Driver to fake
// multi-touch with a single pointer: hold the multi-touch action and
// move the mouse to multi-drag, hold the twist action to rotate, or tap
// the pinch and swipe actions to fire those gestures directly.
//
// # Feeding samples yourself
//
// Skip the Driver and call [Recognizer.HandleTouch],
// [Recognizer.HandleDrag], and [Recognizer.HandleMotion] with your own
// samples; call [Recognizer.Advance] regularly so the drag-startup and
// long-press timers run. All methods must be called from one goroutine.
// [ScriptRunner] replays JSON-scripted sequences the same way.
//
// [Ebitengine]: https://ebitengine.org
package tactile
