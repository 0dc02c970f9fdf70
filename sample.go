package tactile

// TouchSample is one press or release of a single contact. A negative
// Index is a cancellation signal, not a contact.
type TouchSample struct {
	Index    int     // contact index; 0 is the primary pointer
	Time     float64 // seconds, from the same monotonic clock as Now
	Position Vec2
	Pressed  bool
}

// DragSample is one movement of a contact that is currently down.
type DragSample struct {
	Index    int
	Time     float64
	Position Vec2
	Relative Vec2 // movement since the previous sample for this contact
	Velocity Vec2
}

// SampleCategory selects one of the Session's current-sample maps.
type SampleCategory uint8

const (
	CategoryPresses  SampleCategory = iota // latest press per contact
	CategoryReleases                       // latest release per contact
	CategoryDrags                          // latest drag per contact
)

func (c SampleCategory) String() string {
	switch c {
	case CategoryPresses:
		return "presses"
	case CategoryReleases:
		return "releases"
	case CategoryDrags:
		return "drags"
	default:
		return "unknown"
	}
}

// VectorProperty selects which vector field of a sample an aggregation
// reads. Relative only exists on drag samples.
type VectorProperty uint8

const (
	PropertyPosition VectorProperty = iota
	PropertyRelative
)

func (p VectorProperty) String() string {
	switch p {
	case PropertyPosition:
		return "position"
	case PropertyRelative:
		return "relative"
	default:
		return "unknown"
	}
}
