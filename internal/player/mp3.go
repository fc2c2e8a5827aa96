package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// mp3Stream adapts go-mp3, which seeks to exact samples, to beep.
type mp3Stream struct {
	decoder *mp3.Decoder
	closer  io.Closer
	format  beep.Format
	err     error
	buf     []byte
}

func decodeMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	decoder, err := mp3.NewDecoder(rc)
	if err != nil {
		rc.Close()
		return nil, beep.Format{}, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		rc.Close()
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Stream{decoder: decoder, closer: rc, format: format, buf: make([]byte, 8192)}, format, nil
}

// Stream decodes interleaved 16-bit stereo frames into samples.
func (d *mp3Stream) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil {
		return 0, false
	}

	const frameSize = 4
	want := len(samples) * frameSize
	if len(d.buf) < want {
		d.buf = make([]byte, want)
	}

	read, err := io.ReadFull(d.decoder, d.buf[:want])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		d.err = err
		return 0, false
	}

	n = read / frameSize
	for i := range n {
		off := i * frameSize
		left := int16(binary.LittleEndian.Uint16(d.buf[off:]))    //nolint:gosec // pcm
		right := int16(binary.LittleEndian.Uint16(d.buf[off+2:])) //nolint:gosec // pcm
		samples[i][0] = float64(left) / 32768
		samples[i][1] = float64(right) / 32768
	}
	return n, n > 0
}

func (d *mp3Stream) Err() error {
	return d.err
}

func (d *mp3Stream) Len() int {
	return int(max(d.decoder.SampleCount(), 0))
}

func (d *mp3Stream) Position() int {
	return int(d.decoder.SamplePosition())
}

// Seek moves to sample p, clamped to the stream bounds.
func (d *mp3Stream) Seek(p int) error {
	p = min(max(p, 0), d.Len())
	if err := d.decoder.SeekToSample(int64(p)); err != nil {
		return err
	}
	d.err = nil
	return nil
}

func (d *mp3Stream) Close() error {
	return d.closer.Close()
}
