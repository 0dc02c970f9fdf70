package tactile

import (
	"log"
	"sort"
)

// contactHistory is the append-only per-contact log. Entries within each
// slice are strictly time-ordered because samples arrive in time order.
type contactHistory struct {
	presses  []TouchSample
	releases []TouchSample
	drags    []DragSample
}

// Session is the mutable record of the gesture currently in progress:
// every press, release, and drag since the first contact went down.
// A Recognizer owns exactly one live Session at a time and replaces it
// wholesale when a gesture ends or is cancelled; it is never partially
// cleared and never shared across goroutines.
type Session struct {
	presses  map[int]TouchSample
	releases map[int]TouchSample
	drags    map[int]DragSample
	history  map[int]*contactHistory

	activeTouches int
	startTime     float64
	elapsed       float64
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{
		presses:  make(map[int]TouchSample),
		releases: make(map[int]TouchSample),
		drags:    make(map[int]DragSample),
		history:  make(map[int]*contactHistory),
	}
}

func (s *Session) contact(index int) *contactHistory {
	h := s.history[index]
	if h == nil {
		h = &contactHistory{}
		s.history[index] = h
	}
	return h
}

// UpdateTouch records a press or release, stamping it with the package
// clock. Equivalent to UpdateTouchAt(sample, Now()).
func (s *Session) UpdateTouch(sample TouchSample) {
	s.UpdateTouchAt(sample, timeNow())
}

// UpdateTouchAt records a press or release at the given time.
//
// A press becomes the contact's current press, clears any stale release
// or drag entry from a previous down period, and increments the active
// count; the first concurrently active contact also starts the session
// clock. A release becomes the contact's current release, clears its
// drag entry, and decrements the active count.
func (s *Session) UpdateTouchAt(sample TouchSample, at float64) {
	h := s.contact(sample.Index)
	if sample.Pressed {
		s.presses[sample.Index] = sample
		h.presses = append(h.presses, sample)
		s.activeTouches++
		delete(s.releases, sample.Index)
		delete(s.drags, sample.Index)
		if s.activeTouches == 1 {
			s.startTime = at
		}
	} else {
		s.releases[sample.Index] = sample
		h.releases = append(h.releases, sample)
		s.activeTouches--
		delete(s.drags, sample.Index)
	}
	s.elapsed = at - s.startTime
}

// UpdateDrag records a drag, stamping it with the package clock.
func (s *Session) UpdateDrag(sample DragSample) {
	s.UpdateDragAt(sample, timeNow())
}

// UpdateDragAt records a drag at the given time. The sample becomes the
// contact's current drag and is appended to its history.
func (s *Session) UpdateDragAt(sample DragSample, at float64) {
	s.drags[sample.Index] = sample
	s.contact(sample.Index).drags = append(s.contact(sample.Index).drags, sample)
	s.elapsed = at - s.startTime
}

// Size returns the number of contacts that have pressed this session,
// counting contacts that have since released but not been re-pressed.
func (s *Session) Size() int {
	return len(s.presses)
}

// ActiveTouches returns the number of contacts currently down.
func (s *Session) ActiveTouches() int {
	return s.activeTouches
}

// StartTime returns the time of the session's first press.
func (s *Session) StartTime() float64 {
	return s.startTime
}

// Elapsed returns lastSampleTime - startTime.
func (s *Session) Elapsed() float64 {
	return s.elapsed
}

// Centroid averages the named vector property across the current entries
// of the named category. An empty category yields the zero vector so that
// callers can aggregate without pre-checking. An unsupported
// category/property pairing (Relative exists only on drags) or an
// unrecognized enum value is a soft failure: a diagnostic is logged and
// the zero vector is substituted.
func (s *Session) Centroid(category SampleCategory, property VectorProperty) Vec2 {
	var points []Vec2

	switch category {
	case CategoryPresses, CategoryReleases:
		if property != PropertyPosition {
			log.Printf("tactile: centroid: property %q not available on category %q", property, category)
			return Vec2{}
		}
		m := s.presses
		if category == CategoryReleases {
			m = s.releases
		}
		for _, t := range m {
			points = append(points, t.Position)
		}
	case CategoryDrags:
		switch property {
		case PropertyPosition:
			for _, d := range s.drags {
				points = append(points, d.Position)
			}
		case PropertyRelative:
			for _, d := range s.drags {
				points = append(points, d.Relative)
			}
		default:
			log.Printf("tactile: centroid: unrecognized property %q", property)
			return Vec2{}
		}
	default:
		log.Printf("tactile: centroid: unrecognized category %q", category)
		return Vec2{}
	}

	if len(points) == 0 {
		return Vec2{}
	}
	return Centroid(points)
}

// Endpoints returns, per contact with any record this session, the most
// authoritative known final position: the press position, overridden by
// the latest drag, overridden by the release.
func (s *Session) Endpoints() map[int]Vec2 {
	ends := make(map[int]Vec2, len(s.presses))
	for i, t := range s.presses {
		ends[i] = t.Position
	}
	for i, d := range s.drags {
		ends[i] = d.Position
	}
	for i, t := range s.releases {
		ends[i] = t.Position
	}
	return ends
}

// IsConsistent reports whether all contacts moved together rather than
// independently. For every contact with both a press and an end position
// it requires: the press within lengthLimit of the press centroid, the
// end within lengthLimit of the end centroid, and the difference between
// the contact's press-relative and end-relative displacement below
// diffLimit. Contacts without an end position are skipped.
func (s *Session) IsConsistent(diffLimit, lengthLimit float64) bool {
	if len(s.presses) == 0 {
		return true
	}

	ends := s.Endpoints()
	endPoints := make([]Vec2, 0, len(ends))
	for _, p := range ends {
		endPoints = append(endPoints, p)
	}
	startCentroid := s.Centroid(CategoryPresses, PropertyPosition)
	endCentroid := Centroid(endPoints)

	for i, press := range s.presses {
		end, ok := ends[i]
		if !ok {
			continue
		}
		startOffset := press.Position.Sub(startCentroid)
		endOffset := end.Sub(endCentroid)
		if startOffset.Length() >= lengthLimit {
			return false
		}
		if endOffset.Length() >= lengthLimit {
			return false
		}
		if endOffset.Sub(startOffset).Length() >= diffLimit {
			return false
		}
	}
	return true
}

// RollbackRelative reconstructs the session as it existed threshold
// seconds before its last recorded sample. See RollbackAbsolute.
func (s *Session) RollbackRelative(threshold float64) *Session {
	return s.RollbackAbsolute(s.startTime + s.elapsed - threshold)
}

// RollbackAbsolute reconstructs, from the per-contact history log, the
// session as it existed at time t: every sample with Time <= t is
// replayed in time order into a fresh session. The receiver is not
// modified. Used to answer "had anything happened yet at t", e.g.
// whether all of a gesture's releases landed inside a short window.
func (s *Session) RollbackAbsolute(t float64) *Session {
	type timed struct {
		time  float64
		order int
		apply func(*Session)
	}
	var samples []timed

	n := 0
	for _, h := range s.history {
		for _, ts := range h.presses {
			if ts.Time <= t {
				ts := ts
				samples = append(samples, timed{ts.Time, n, func(rb *Session) { rb.UpdateTouchAt(ts, ts.Time) }})
				n++
			}
		}
		for _, ds := range h.drags {
			if ds.Time <= t {
				ds := ds
				samples = append(samples, timed{ds.Time, n, func(rb *Session) { rb.UpdateDragAt(ds, ds.Time) }})
				n++
			}
		}
		for _, ts := range h.releases {
			if ts.Time <= t {
				ts := ts
				samples = append(samples, timed{ts.Time, n, func(rb *Session) { rb.UpdateTouchAt(ts, ts.Time) }})
				n++
			}
		}
	}

	// Stable order: by time, preserving per-contact press/drag/release
	// ordering on equal stamps.
	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].time != samples[j].time {
			return samples[i].time < samples[j].time
		}
		return samples[i].order < samples[j].order
	})

	rb := NewSession()
	for _, sm := range samples {
		sm.apply(rb)
	}
	return rb
}

// snapshot returns an immutable copy of the session's current maps for
// use in a RawContext. The copies stay valid after the session is reset.
func (s *Session) snapshot() RawContext {
	raw := RawContext{
		Presses:       make(map[int]TouchSample, len(s.presses)),
		Releases:      make(map[int]TouchSample, len(s.releases)),
		Drags:         make(map[int]DragSample, len(s.drags)),
		ActiveTouches: s.activeTouches,
		StartTime:     s.startTime,
		Elapsed:       s.elapsed,
	}
	for i, t := range s.presses {
		raw.Presses[i] = t
	}
	for i, t := range s.releases {
		raw.Releases[i] = t
	}
	for i, d := range s.drags {
		raw.Drags[i] = d
	}
	return raw
}
