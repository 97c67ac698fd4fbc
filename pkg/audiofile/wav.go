package audiofile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const pcmFormat = 1

// DecodeWAV decodes an integer PCM WAV file
func DecodeWAV(r io.ReadSeeker) (*Buffer, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, errors.New("not a valid WAV file")
	}
	if d.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: WAV audio format %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav decode error: %w", err)
	}

	channels := pcm.Format.NumChannels
	if channels <= 0 {
		return nil, errors.New("WAV file declares no channels")
	}

	if d.BitDepth == 0 || d.BitDepth > 32 {
		return nil, fmt.Errorf("%w: WAV bit depth %d", ErrUnsupportedFormat, d.BitDepth)
	}
	fullScale := float32(int64(1) << (d.BitDepth - 1))
	if d.BitDepth == 8 {
		// 8-bit WAV is unsigned, centred on 128
		for i := range pcm.Data {
			pcm.Data[i] -= 128
		}
	}

	return &Buffer{
		SampleRate: pcm.Format.SampleRate,
		Channels:   interleavedToPlanar(pcm.Data, channels, fullScale),
	}, nil
}

// EncodeWAV writes buf as 16-bit PCM. Samples outside [-1, 1] are clipped.
func EncodeWAV(w io.WriteSeeker, buf *Buffer) error {
	channels := buf.NumChannels()
	if channels == 0 {
		return errors.New("no channels to encode")
	}

	frames := buf.Frames()
	data := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			data[i*channels+ch] = toInt16(buf.Channels[ch][i])
		}
	}

	e := wav.NewEncoder(w, buf.SampleRate, 16, channels, pcmFormat)
	err := e.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: buf.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	})
	if err != nil {
		return fmt.Errorf("wav encode error: %w", err)
	}
	return e.Close()
}

// WriteWAV creates path and writes buf to it as 16-bit PCM
func WriteWAV(path string, buf *Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeWAV(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toInt16(s float32) int {
	v := math.Round(float64(s) * math.MaxInt16)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < -math.MaxInt16 {
		return -math.MaxInt16
	}
	return int(v)
}
