package distortion

import (
	"math"
	"testing"
)

const tolerance = 1e-6

func clamp(y, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, y))
}

func TestShape(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		for _, g := range []float32{0, 0.001, 0.01, 0.1, 0.5, 1} {
			for x := float32(-1.0); x <= 1.0; x += 0.0625 {
				want := clamp(float64(x)+float64(x)*200*float64(g), -0.8, 0.8)
				got := Shape(x, g, ModeDefault)
				if math.Abs(float64(got)-want) > tolerance {
					t.Errorf("Shape(%f, %f, Default) = %f, want %f", x, g, got, want)
				}
			}
		}
	})

	t.Run("Harsh", func(t *testing.T) {
		for _, g := range []float32{0, 0.001, 0.01, 0.1, 0.5, 1} {
			for x := float32(-1.0); x <= 1.0; x += 0.0625 {
				want := clamp(float64(x)+float64(x)*500*float64(g), -0.8, 0.8)
				got := Shape(x, g, ModeHarsh)
				if math.Abs(float64(got)-want) > tolerance {
					t.Errorf("Shape(%f, %f, Harsh) = %f, want %f", x, g, got, want)
				}
			}
		}
	})

	t.Run("Scenarios", func(t *testing.T) {
		tests := []struct {
			name string
			x    float32
			gain float32
			mode Mode
			want float64
		}{
			{"default clips", 0.01, 0.5, ModeDefault, 0.8},
			{"harsh passes", 0.01, 0.1, ModeHarsh, 0.51},
			{"negative clips", -0.01, 0.5, ModeDefault, -0.8},
			{"harsh small", 0.001, 0.1, ModeHarsh, 0.051},
		}

		for _, tt := range tests {
			got := Shape(tt.x, tt.gain, tt.mode)
			if math.Abs(float64(got)-tt.want) > tolerance {
				t.Errorf("%s: Shape(%f, %f, %s) = %f, want %f", tt.name, tt.x, tt.gain, tt.mode, got, tt.want)
			}
		}
	})
}

func TestShapeClipInvariant(t *testing.T) {
	inputs := []float32{0, 1e-6, -1e-6, 0.3, -0.3, 1, -1, 10, -10, 1e6, -1e6, math.MaxFloat32, -math.MaxFloat32}
	gains := []float32{0, 0.5, 1, 2, -1, 1e6, math.MaxFloat32, -math.MaxFloat32}

	for _, mode := range []Mode{ModeDefault, ModeHarsh, Mode(2), Mode(-1)} {
		for _, x := range inputs {
			for _, g := range gains {
				y := Shape(x, g, mode)
				if y > ClipLevel || y < -ClipLevel || math.IsNaN(float64(y)) {
					t.Errorf("Shape(%g, %g, %d) = %g escapes [-0.8, 0.8]", x, g, mode, y)
				}
			}
		}
	}
}

func TestShapeZeroGain(t *testing.T) {
	for _, mode := range []Mode{ModeDefault, ModeHarsh} {
		for _, x := range []float32{-0.8, -0.5, 0, 0.25, 0.8} {
			if got := Shape(x, 0, mode); got != x {
				t.Errorf("Shape(%f, 0, %s) = %f, want input unchanged", x, mode, got)
			}
		}

		if got := Shape(1.5, 0, mode); got != ClipLevel {
			t.Errorf("Shape(1.5, 0, %s) = %f, want %f", mode, got, ClipLevel)
		}
		if got := Shape(math.MaxFloat32, 0, mode); got != ClipLevel {
			t.Errorf("Shape(MaxFloat32, 0, %s) = %f, want %f", mode, got, ClipLevel)
		}
		if got := Shape(-math.MaxFloat32, 0, mode); got != -ClipLevel {
			t.Errorf("Shape(-MaxFloat32, 0, %s) = %f, want %f", mode, got, -ClipLevel)
		}
		if got := Shape(-3, 0, mode); got != -ClipLevel {
			t.Errorf("Shape(-3, 0, %s) = %f, want %f", mode, got, -ClipLevel)
		}
	}
}

func TestShapeUnknownMode(t *testing.T) {
	// Undefined mode indices add no distortion term
	for _, mode := range []Mode{2, 7, -1} {
		if got := Shape(0.25, 1, mode); got != 0.25 {
			t.Errorf("Shape(0.25, 1, %d) = %f, want 0.25", mode, got)
		}
		if got := Shape(0.95, 1, mode); got != ClipLevel {
			t.Errorf("Shape(0.95, 1, %d) = %f, want clip", mode, got)
		}
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode  Mode
		name  string
		label string
		valid bool
	}{
		{ModeDefault, "Default", "Default", true},
		{ModeHarsh, "Harsh", "Harsh", true},
		{Mode(5), "Unknown", "Unknown (5)", false},
		{Mode(-1), "Unknown", "Unknown (-1)", false},
	}

	for _, tt := range tests {
		if tt.mode.String() != tt.name {
			t.Errorf("Mode(%d).String() = %s, want %s", tt.mode, tt.mode.String(), tt.name)
		}
		if tt.mode.Valid() != tt.valid {
			t.Errorf("Mode(%d).Valid() = %v, want %v", tt.mode, tt.mode.Valid(), tt.valid)
		}
		if got := tt.mode.Label(); got != tt.label {
			t.Errorf("Mode(%d).Label() = %s, want %s", tt.mode, got, tt.label)
		}
	}
}

func TestProcessBlock32(t *testing.T) {
	input := [][]float32{
		{0.0, 0.001, -0.001, 0.01, 0.5},
		{-0.5, 0.002, 0.0, -0.01, 0.0001},
	}
	output := [][]float32{
		make([]float32, 5),
		make([]float32, 5),
	}

	ProcessBlock32(input, output, 5, 0.1, ModeHarsh)

	for ch := range input {
		for i, x := range input[ch] {
			want := Shape(x, 0.1, ModeHarsh)
			if output[ch][i] != want {
				t.Errorf("ProcessBlock32[%d][%d] = %f, want %f", ch, i, output[ch][i], want)
			}
		}
	}

	t.Run("InPlace", func(t *testing.T) {
		buf := [][]float32{{0.01, -0.01}}
		ProcessBlock32(buf, buf, 2, 0.5, ModeDefault)
		if buf[0][0] != ClipLevel || buf[0][1] != -ClipLevel {
			t.Errorf("In-place processing = %v, want [0.8 -0.8]", buf[0])
		}
	})

	t.Run("ShortBlock", func(t *testing.T) {
		in := [][]float32{{0.1, 0.1, 0.1}}
		out := [][]float32{{9, 9, 9}}
		ProcessBlock32(in, out, 2, 0, ModeDefault)
		if out[0][2] != 9 {
			t.Errorf("Samples past numSamples must stay untouched, got %f", out[0][2])
		}
	})
}

func BenchmarkProcessBlock32(b *testing.B) {
	input := [][]float32{make([]float32, 512), make([]float32, 512)}
	output := [][]float32{make([]float32, 512), make([]float32, 512)}

	for i := range input[0] {
		input[0][i] = float32(i)/512.0*2.0 - 1.0
		input[1][i] = -input[0][i]
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ProcessBlock32(input, output, 512, 0.5, ModeHarsh)
	}
}
