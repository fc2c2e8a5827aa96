package playback

const eventBufferSize = 16

// Subscription delivers session events. Sends never block: a subscriber
// that falls more than eventBufferSize events behind loses the overflow.
// Done is closed when the session is closed.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	PositionChanged <-chan PositionUpdate
	Boundary        <-chan BoundaryEvent
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	stateCh    chan StateChange
	trackCh    chan TrackChange
	positionCh chan PositionUpdate
	boundaryCh chan BoundaryEvent
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		trackCh:    make(chan TrackChange, eventBufferSize),
		positionCh: make(chan PositionUpdate, eventBufferSize),
		boundaryCh: make(chan BoundaryEvent, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.PositionChanged = s.positionCh
	s.Boundary = s.boundaryCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func send[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
	}
}

func (s *Subscription) sendState(e StateChange)       { send(s.stateCh, e) }
func (s *Subscription) sendTrack(e TrackChange)       { send(s.trackCh, e) }
func (s *Subscription) sendPosition(e PositionUpdate) { send(s.positionCh, e) }
func (s *Subscription) sendBoundary(e BoundaryEvent)  { send(s.boundaryCh, e) }
func (s *Subscription) sendError(e ErrorEvent)        { send(s.errorCh, e) }
