// Package audiofile loads and writes the planar float32 buffers the hosts
// render: MP3, FLAC and WAV in, 16-bit WAV out.
package audiofile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Buffer is planar audio: Channels[ch][frame]
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewBuffer allocates a silent buffer
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	b := &Buffer{SampleRate: sampleRate, Channels: make([][]float32, channels)}
	for ch := range b.Channels {
		b.Channels[ch] = make([]float32, frames)
	}
	return b
}

// Frames returns the number of sample frames
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// NumChannels returns the channel count
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// Stereo returns b with exactly two channels. Mono is duplicated and
// channels beyond the second are dropped.
func (b *Buffer) Stereo() *Buffer {
	switch len(b.Channels) {
	case 0:
		return NewBuffer(b.SampleRate, 2, 0)
	case 1:
		right := make([]float32, len(b.Channels[0]))
		copy(right, b.Channels[0])
		return &Buffer{SampleRate: b.SampleRate, Channels: [][]float32{b.Channels[0], right}}
	default:
		return &Buffer{SampleRate: b.SampleRate, Channels: b.Channels[:2]}
	}
}

// Decode reads an audio file, choosing the decoder by extension
func Decode(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var buf *Buffer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		buf, err = DecodeMP3(f)
	case ".flac":
		buf, err = DecodeFLAC(f)
	case ".wav", ".wave":
		buf, err = DecodeWAV(f)
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

// interleavedToPlanar splits interleaved integer samples scaled by 1/fullScale
func interleavedToPlanar[T int | int16 | int32](data []T, channels int, fullScale float32) [][]float32 {
	frames := len(data) / channels
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			out[ch][i] = float32(data[i*channels+ch]) / fullScale
		}
	}
	return out
}
