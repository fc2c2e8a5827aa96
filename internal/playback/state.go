package playback

// State is the transport state, tied to the track currently loaded.
//
//	Idle ──Load──▶ Preparing ──ok──▶ Playing ◀──toggle──▶ Paused
//	                   │                │                   │
//	                   ▼                ▼ end of stream     │
//	                 Failed ◀──error── Completed ◀──────────┘
//
// Every Load goes back through Preparing, whatever the state before it.
type State int

const (
	Idle State = iota
	Preparing
	Playing
	Paused
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Preparing:
		return "Preparing"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsActive reports whether a stream is playing or paused.
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// Boundary tells whether a navigation hit an end of the track list.
type Boundary int

const (
	NoBoundary Boundary = iota
	AtEnd
	AtStart
)

func (b Boundary) String() string {
	switch b {
	case NoBoundary:
		return "None"
	case AtEnd:
		return "AtEnd"
	case AtStart:
		return "AtStart"
	default:
		return "Unknown"
	}
}

// Message is the user-facing notice for the boundary.
func (b Boundary) Message() string {
	switch b {
	case AtEnd:
		return "Last song"
	case AtStart:
		return "First song"
	default:
		return ""
	}
}
