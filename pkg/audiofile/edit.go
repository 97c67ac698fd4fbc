package audiofile

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Trim scales every channel by a gain in decibels
func Trim(buf *Buffer, db float64) {
	g := float32(core.DBToLinear(db))
	for _, ch := range buf.Channels {
		for i := range ch {
			ch[i] *= g
		}
	}
}

// Fade applies a Hann-shaped fade-in and fade-out of n frames to each end.
// n is capped at half the buffer length.
func Fade(buf *Buffer, n int) {
	frames := buf.Frames()
	if n > frames/2 {
		n = frames / 2
	}
	if n <= 0 {
		return
	}

	// rising half of the window, then the falling half
	w := window.Generate(window.TypeHann, 2*n)
	rise, fall := w[:n], w[n:]

	head := make([]float64, n)
	tail := make([]float64, n)
	for _, ch := range buf.Channels {
		for i := 0; i < n; i++ {
			head[i] = float64(ch[i])
			tail[i] = float64(ch[frames-n+i])
		}

		vecmath.MulBlockInPlace(head, rise)
		vecmath.MulBlockInPlace(tail, fall)

		for i := 0; i < n; i++ {
			ch[i] = float32(head[i])
			ch[frames-n+i] = float32(tail[i])
		}
	}
}
