package player

// State is the state of the decoder handle.
//
//	Stopped ──Play──▶ Playing ◀──Resume── Paused
//	   ▲                 │                  ▲
//	   └──────Stop───────┴──────Pause───────┘
//
// Pause on a stopped or paused handle is ignored, as is Resume on anything
// but a paused one. Stop is valid from every state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive reports whether a stream is loaded.
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
