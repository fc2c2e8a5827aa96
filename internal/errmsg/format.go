// Package errmsg formats errors for display in the player.
package errmsg

import "fmt"

// Op names an operation that can fail, phrased to follow "Failed to".
type Op string

const (
	// Library
	OpCatalogLoad Op = "load songs"
	OpLibraryScan Op = "scan library"
	OpIndexOpen   Op = "open media index"

	// Playback
	OpPlaybackStart Op = "start playback"
	OpPlaybackPlay  Op = "play"
	OpPlaybackSkip  Op = "change track"
	OpPlaybackPause Op = "toggle pause"
	OpPlaybackSeek  Op = "seek"

	// Desktop integration
	OpMPRISStart Op = "start media controls"

	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize player"
)

// Format returns "Failed to <op>: <err>", or "" for a nil error.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith is Format with the subject of the operation, typically a
// track title, quoted after the operation.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	if subject == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, subject, err)
}
