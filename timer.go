package tactile

// oneShotTimer is a deterministic scheduled callback driven by the
// recognizer's time line rather than a goroutine. Timer callbacks run
// inside Advance with exclusive access to the recognizer's session,
// never concurrently with sample processing.
type oneShotTimer struct {
	deadline float64
	armed    bool
	fn       func(now float64)
}

// start arms the timer to fire duration seconds after now. Starting an
// already-armed timer restarts its countdown.
func (t *oneShotTimer) start(now, duration float64) {
	t.deadline = now + duration
	t.armed = true
}

// stop cancels any pending fire.
func (t *oneShotTimer) stop() {
	t.armed = false
}

// running reports whether a fire is pending.
func (t *oneShotTimer) running() bool {
	return t.armed
}

// advance fires the callback once if the deadline has passed. The timer
// disarms before invoking fn so the callback may re-arm it.
func (t *oneShotTimer) advance(now float64) {
	if !t.armed || now < t.deadline {
		return
	}
	fired := t.deadline
	t.armed = false
	if t.fn != nil {
		t.fn(fired)
	}
}
