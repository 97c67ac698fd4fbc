package audiofile

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

// DecodeFLAC decodes a whole FLAC stream at its native bit depth
func DecodeFLAC(r io.Reader) (*Buffer, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	fullScale := float32(int64(1) << (info.BitsPerSample - 1))

	buf := &Buffer{
		SampleRate: int(info.SampleRate),
		Channels:   make([][]float32, channels),
	}
	if info.NSamples > 0 {
		for ch := range buf.Channels {
			buf.Channels[ch] = make([]float32, 0, info.NSamples)
		}
	}

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac frame: %w", err)
		}

		for ch := 0; ch < channels; ch++ {
			for _, s := range frame.Subframes[ch].Samples[:frame.BlockSize] {
				buf.Channels[ch] = append(buf.Channels[ch], float32(s)/fullScale)
			}
		}
	}

	return buf, nil
}
