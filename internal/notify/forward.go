package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/playback"
)

const trackTimeout = 5000

// Forward turns track changes and playback errors from sub into
// notifications. Track notifications replace one another. It returns when
// ctx is done or the session closes.
func Forward(ctx context.Context, sub *playback.Subscription, n Notifier) {
	f := forwarder{n: n}
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			f.drain(sub)
			return
		case e := <-sub.TrackChanged:
			f.track(e)
		case e := <-sub.Error:
			f.failure(e)
		}
	}
}

type forwarder struct {
	n    Notifier
	last uint32
}

func (f *forwarder) drain(sub *playback.Subscription) {
	for {
		select {
		case e := <-sub.TrackChanged:
			f.track(e)
		case e := <-sub.Error:
			f.failure(e)
		default:
			return
		}
	}
}

func (f *forwarder) track(e playback.TrackChange) {
	id, err := f.n.Notify(Notification{
		Title:      e.Track.DisplayTitle(),
		Body:       trackBody(e),
		Icon:       catalog.CoverArt(e.Track),
		Timeout:    trackTimeout,
		ReplacesID: f.last,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		logrus.Debugf("Track notification: %v", err)
		return
	}
	f.last = id
}

func (f *forwarder) failure(e playback.ErrorEvent) {
	if _, err := f.n.Notify(Notification{
		Title:   appName,
		Body:    e.Message(),
		Timeout: -1,
		Urgency: UrgencyCritical,
	}); err != nil {
		logrus.Debugf("Error notification: %v", err)
	}
}

func trackBody(e playback.TrackChange) string {
	var parts []string
	if e.Track.Artist != "" {
		parts = append(parts, e.Track.Artist)
	}
	if e.Track.Album != "" {
		parts = append(parts, e.Track.Album)
	}
	pos := fmt.Sprintf("%d/%d", e.Index+1, e.Total)
	if len(parts) == 0 {
		return pos
	}
	return strings.Join(parts, " - ") + " (" + pos + ")"
}
