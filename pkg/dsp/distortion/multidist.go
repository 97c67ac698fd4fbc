// Package distortion provides the MultiDist waveshaping transfer function.
package distortion

import "fmt"

// Mode selects the shaping curve
type Mode int32

const (
	// ModeDefault adds the input scaled by 20 * gain * 10
	ModeDefault Mode = iota
	// ModeHarsh adds the input scaled by 50 * gain * 10
	ModeHarsh
)

// Drive factors and output ceiling
const (
	DefaultDrive float32 = 20.0
	HarshDrive   float32 = 50.0
	GainScale    float32 = 10.0
	ClipLevel    float32 = 0.8
)

// String returns the display name of the mode
func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "Default"
	case ModeHarsh:
		return "Harsh"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is one of the defined modes
func (m Mode) Valid() bool {
	return m == ModeDefault || m == ModeHarsh
}

// Label is the display name. Modes outside the defined set also show
// their raw value.
func (m Mode) Label() string {
	if m.Valid() {
		return m.String()
	}
	return fmt.Sprintf("%s (%d)", m, int32(m))
}

// Shape applies the selected curve to one sample and hard clips the
// result to ±ClipLevel. Modes outside the defined set add nothing, so the
// output is the clipped input. At zero gain the added term is zero for
// every finite x, so the product is skipped where x*drive would overflow.
func Shape(x, gain float32, mode Mode) float32 {
	if gain == 0 {
		return Clip(x)
	}

	y := x
	switch mode {
	case ModeDefault:
		y = x + x*DefaultDrive*gain*GainScale
	case ModeHarsh:
		y = x + x*HarshDrive*gain*GainScale
	}
	return Clip(y)
}

// Clip limits a sample to ±ClipLevel
func Clip(y float32) float32 {
	if y > ClipLevel {
		y = ClipLevel
	}
	if y < -ClipLevel {
		y = -ClipLevel
	}
	return y
}

// ProcessBlock32 shapes numSamples samples of every input channel into the
// output channel with the same index. Output must have at least as many
// channels and samples as the input; this is not checked.
func ProcessBlock32(input, output [][]float32, numSamples int, gain float32, mode Mode) {
	for ch := range input {
		in := input[ch]
		out := output[ch]
		for i := 0; i < numSamples; i++ {
			out[i] = Shape(in[i], gain, mode)
		}
	}
}
