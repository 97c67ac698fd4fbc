package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 decodes a whole MP3 stream. The decoder always yields 16-bit
// stereo.
func DecodeMP3(r io.Reader) (*Buffer, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return &Buffer{
		SampleRate: decoder.SampleRate(),
		Channels:   interleavedToPlanar(samples, 2, 1<<15),
	}, nil
}
