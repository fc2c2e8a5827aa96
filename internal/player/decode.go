package player

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
)

// ErrUnsupportedFormat is returned for files no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// IsMusicFile reports whether the path has an extension a decoder handles.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extWAV:
		return true
	}
	return false
}

// decode picks a decoder by extension. The returned streamer owns rc; on
// error rc has already been closed.
func decode(rc io.ReadCloser, format string) (beep.StreamSeekCloser, beep.Format, error) {
	switch format {
	case extMP3:
		return decodeMP3(rc)
	case extFLAC:
		// Some taggers prepend ID3v2 to FLAC, which the FLAC decoder rejects
		if rs, ok := rc.(io.ReadSeeker); ok {
			if err := skipID3v2(rs); err != nil {
				rc.Close()
				return nil, beep.Format{}, err
			}
		}
		return flac.Decode(rc)
	case extWAV:
		return wav.Decode(rc)
	default:
		rc.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Probe decodes the source header and returns the stream length.
func Probe(src Source) (time.Duration, error) {
	rc, err := src.Open()
	if err != nil {
		return 0, err
	}
	streamer, format, err := decode(rc, src.Format)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}

// skipID3v2 positions r after a leading ID3v2 tag, or at the start if there
// is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < len(header) || string(header[:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// syncsafe integer: 7 significant bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
