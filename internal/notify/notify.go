// Package notify raises desktop notifications for session events.
package notify

const appName = "localplay"

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one popup. A zero ReplacesID opens a new one, otherwise
// the popup with that ID is updated in place.
type Notification struct {
	Title      string
	Body       string
	Icon       string // file path or icon name
	Timeout    int32  // ms; -1 leaves it to the daemon
	ReplacesID uint32
	Urgency    Urgency
}

// Notifier shows and closes notifications. Notify returns the ID the daemon
// assigned, 0 when nothing was shown.
type Notifier interface {
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Disabled returns a Notifier that drops everything.
func Disabled() Notifier {
	return stubNotifier{}
}

type stubNotifier struct{}

func (stubNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (stubNotifier) Close(uint32) error                  { return nil }
