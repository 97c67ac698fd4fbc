// Package analysis measures what MultiDist does to a test tone: level,
// crest factor and harmonic distortion before and after the plugin.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"
	"github.com/cwbudde/algo-dsp/measure/thd"
	timestats "github.com/cwbudde/algo-dsp/stats/time"

	"github.com/redetach/multidist/pkg/host"
	"github.com/redetach/multidist/pkg/multidist"
	"github.com/redetach/multidist/pkg/plugin"
)

// Config describes the test tone and the render
type Config struct {
	SampleRate float64
	Frequency  float64
	Amplitude  float64
	FFTSize    int
	BlockSize  int
}

// DefaultConfig returns a 1 kHz tone at 48 kHz, small enough to stay out
// of the clipper at default gain
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		Frequency:  1000,
		Amplitude:  0.005,
		FFTSize:    8192,
		BlockSize:  512,
	}
}

func (c Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %g", c.SampleRate)
	}
	if c.Frequency <= 0 || c.Frequency >= c.SampleRate/2 {
		return fmt.Errorf("frequency %g Hz outside (0, %g)", c.Frequency, c.SampleRate/2)
	}
	if c.FFTSize < 64 || c.FFTSize&(c.FFTSize-1) != 0 {
		return fmt.Errorf("FFT size must be a power of two >= 64: %d", c.FFTSize)
	}
	if c.BlockSize <= 0 {
		return errors.New("block size must be > 0")
	}
	return nil
}

// Levels summarises one signal in the time domain
type Levels struct {
	Peak    float64
	PeakDB  float64
	RMS     float64
	RMSDB   float64
	Crest   float64
	CrestDB float64
	DC      float64
}

func levelsOf(s timestats.Stats) Levels {
	return Levels{
		Peak:    s.Peak,
		PeakDB:  s.Peak_dB,
		RMS:     s.RMS,
		RMSDB:   s.RMS_dB,
		Crest:   s.CrestFactor,
		CrestDB: s.CrestFactor_dB,
		DC:      s.DC,
	}
}

// Report is the outcome of one measurement
type Report struct {
	Settings multidist.Settings
	// Frequency is the tone actually generated, moved onto an FFT bin
	Frequency float64
	Input     Levels
	Output    Levels
	// GainDB is the output RMS relative to the input RMS
	GainDB     float64
	Distortion thd.Result
}

// Measure renders a sine through a fresh MultiDist instance with the given
// settings and analyses the result
func Measure(settings multidist.Settings, cfg Config) (*Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	bin := math.Round(cfg.Frequency * float64(cfg.FFTSize) / cfg.SampleRate)
	if bin < 1 {
		bin = 1
	}
	freq := bin * cfg.SampleRate / float64(cfg.FFTSize)

	gen := signal.NewGenerator(core.WithSampleRate(cfg.SampleRate))
	tone, err := gen.Sine(freq, cfg.Amplitude, cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("generate tone: %w", err)
	}

	input := make([]float32, len(tone))
	for i, v := range tone {
		input[i] = float32(v)
	}

	offline, err := host.NewOffline(plugin.NewComponent(multidist.Plugin{}), cfg.SampleRate, cfg.BlockSize)
	if err != nil {
		return nil, err
	}
	defer offline.Close()

	out, err := offline.Render([][]float32{input, input}, []host.Automation{
		{Frame: 0, ID: multidist.ParamGain, Value: float64(settings.Gain)},
		{Frame: 0, ID: multidist.ParamSelection, Value: float64(settings.Mode)},
	})
	if err != nil {
		return nil, err
	}

	// the input is analysed after the float32 round trip the plugin sees
	in64 := make([]float64, len(input))
	out64 := make([]float64, len(input))
	for i := range input {
		in64[i] = float64(input[i])
		out64[i] = float64(out[0][i])
	}

	r := &Report{
		Settings:  settings,
		Frequency: freq,
		Input:     levelsOf(timestats.Calculate(in64)),
		Output:    levelsOf(timestats.Calculate(out64)),
		Distortion: thd.AnalyzeSignal(out64, thd.Config{
			SampleRate:      cfg.SampleRate,
			FFTSize:         cfg.FFTSize,
			FundamentalFreq: freq,
		}),
	}
	if r.Input.RMS > 0 && r.Output.RMS > 0 {
		r.GainDB = 20 * math.Log10(r.Output.RMS/r.Input.RMS)
	}

	return r, nil
}

// String formats the report for a terminal
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Settings:     gain %.4f, mode %s\n", r.Settings.Gain, r.Settings.Mode.Label())
	fmt.Fprintf(&sb, "Tone:         %.2f Hz\n", r.Frequency)
	fmt.Fprintf(&sb, "              %10s %10s\n", "in", "out")
	fmt.Fprintf(&sb, "Peak (dBFS):  %10.2f %10.2f\n", r.Input.PeakDB, r.Output.PeakDB)
	fmt.Fprintf(&sb, "RMS (dBFS):   %10.2f %10.2f\n", r.Input.RMSDB, r.Output.RMSDB)
	fmt.Fprintf(&sb, "Crest (dB):   %10.2f %10.2f\n", r.Input.CrestDB, r.Output.CrestDB)
	fmt.Fprintf(&sb, "Gain:         %.2f dB\n", r.GainDB)
	fmt.Fprintf(&sb, "THD:          %.4f%% (%.2f dB)\n", r.Distortion.THD*100, r.Distortion.THD_dB)
	fmt.Fprintf(&sb, "THD+N:        %.4f%%\n", r.Distortion.THDN*100)
	fmt.Fprintf(&sb, "Odd / even:   %.4f / %.4f\n", r.Distortion.OddHD, r.Distortion.EvenHD)
	return sb.String()
}
