// Package keymap defines key bindings and action dispatch for the TUI.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionHelp   Action = "help"
	ActionRescan Action = "rescan"

	// Playback actions
	ActionPlayPause           Action = "play_pause"
	ActionNextTrack           Action = "next_track"
	ActionPrevTrack           Action = "prev_track"
	ActionSeekForward         Action = "seek_forward"
	ActionSeekBack            Action = "seek_back"
	ActionSeekTo              Action = "seek_to"
	ActionTogglePlayerDisplay Action = "toggle_player_display"

	// List navigation actions
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionJumpStart  Action = "jump_start"
	ActionJumpEnd    Action = "jump_end"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionJumpActive Action = "jump_active"
	ActionSelect     Action = "select"

	// Prompt answers
	ActionConfirm Action = "confirm"
	ActionDecline Action = "decline"
)

// Binding maps keys to an action and documents it.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "list", "prompt"
}

// All contains every key binding, in help order.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionRescan, []string{"ctrl+r"}, "Rescan library", "global"},

	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"l", "right"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"h", "left"}, "Seek -5s", "playback"},
	{ActionSeekTo, []string{":"}, "Seek to time", "playback"},
	{ActionTogglePlayerDisplay, []string{"v"}, "Toggle player display", "playback"},

	{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	{ActionJumpStart, []string{"g", "home"}, "First track", "list"},
	{ActionJumpEnd, []string{"G", "end"}, "Last track", "list"},
	{ActionPageUp, []string{"ctrl+u"}, "Half page up", "list"},
	{ActionPageDown, []string{"ctrl+d"}, "Half page down", "list"},
	{ActionJumpActive, []string{"c"}, "Jump to playing track", "list"},
	{ActionSelect, []string{"enter"}, "Play selected track", "list"},

	{ActionConfirm, []string{"y", "Y"}, "Allow", "prompt"},
	{ActionDecline, []string{"n", "N", "esc"}, "Deny", "prompt"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
