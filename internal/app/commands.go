package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/localplay/internal/engine"
	"github.com/llehouerou/localplay/internal/playback"
)

const toastDuration = 3 * time.Second

// LoadCatalogCmd loads the catalog off the UI goroutine. It may block on
// a permission prompt.
func LoadCatalogCmd(ctx context.Context, e *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		return CatalogLoadedMsg{Catalog: e.LoadCatalog(ctx)}
	}
}

// PlayCmd plays catalog track i.
func PlayCmd(ctx context.Context, e *engine.Engine, i int) tea.Cmd {
	return func() tea.Msg {
		return PlayResultMsg{Err: e.Play(ctx, i)}
	}
}

// ToastExpiryCmd hides toast id after toastDuration.
func ToastExpiryCmd(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// WatchSession waits for the next session event. It must be re-issued
// after each event it delivers.
func WatchSession(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg(e)
		case e := <-sub.TrackChanged:
			return TrackChangedMsg(e)
		case e := <-sub.PositionChanged:
			return PositionMsg(e)
		case e := <-sub.Boundary:
			return BoundaryMsg(e)
		case e := <-sub.Error:
			return ErrorMsg(e)
		case <-sub.Done:
			return SessionClosedMsg{}
		}
	}
}

// WatchPrompts waits for the next permission question.
func WatchPrompts(ch <-chan PromptRequest) tea.Cmd {
	return waitForChannel(ch, func(r PromptRequest, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return PromptMsg(r)
	})
}

// waitForChannel creates a command that waits for a value from a channel
// and converts it to a message. onResult gets false once ch is closed.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}
