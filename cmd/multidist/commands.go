package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/redetach/multidist/internal/tui"
	"github.com/redetach/multidist/pkg/analysis"
	"github.com/redetach/multidist/pkg/audiofile"
	"github.com/redetach/multidist/pkg/dsp/distortion"
	"github.com/redetach/multidist/pkg/framework/bus"
	"github.com/redetach/multidist/pkg/framework/debug"
	"github.com/redetach/multidist/pkg/host"
	"github.com/redetach/multidist/pkg/multidist"
	vst3plugin "github.com/redetach/multidist/pkg/plugin"
	"github.com/redetach/multidist/pkg/vst3"
)

// settingsFlags are the parameter flags shared by every command
type settingsFlags struct {
	gain *float64
	mode *string
}

func addSettingsFlags(fs *flag.FlagSet) settingsFlags {
	return settingsFlags{
		gain: fs.Float64("gain", multidist.DefaultGain, "Gain, normalized 0-1"),
		mode: fs.String("mode", "default", "Distortion mode: default or harsh"),
	}
}

// resolve turns the flags into normalized parameter values using the
// component's own parsers
func (f settingsFlags) resolve(c *vst3plugin.Component) (multidist.Settings, error) {
	if *f.gain < 0 || *f.gain > 1 {
		return multidist.Settings{}, fmt.Errorf("gain %g outside 0-1", *f.gain)
	}
	mode, err := c.GetParamValueByString(multidist.ParamSelection, *f.mode)
	if err != nil {
		return multidist.Settings{}, fmt.Errorf("mode %q: %w", *f.mode, err)
	}
	return multidist.Settings{
		Gain: float32(*f.gain),
		Mode: distortion.Mode(int32(mode)),
	}, nil
}

func automationFor(s multidist.Settings) []host.Automation {
	return []host.Automation{
		{Frame: 0, ID: multidist.ParamGain, Value: float64(s.Gain)},
		{Frame: 0, ID: multidist.ParamSelection, Value: float64(s.Mode)},
	}
}

// newInstance creates a component through the factory, the way a host would
func newInstance() (*vst3plugin.Component, error) {
	classes := vst3plugin.Classes()
	if len(classes) == 0 {
		return nil, vst3.ErrNotInitialized
	}
	return vst3plugin.CreateInstance(classes[0].CID)
}

func loadInput(path string, trim float64) (*audiofile.Buffer, error) {
	if path == "" {
		return nil, errors.New("-in is required")
	}
	buf, err := audiofile.Decode(path)
	if err != nil {
		return nil, err
	}
	if trim != 0 {
		audiofile.Trim(buf, trim)
	}
	debug.Info("loaded %s: %d Hz, %d channels, %d frames",
		filepath.Base(path), buf.SampleRate, buf.NumChannels(), buf.Frames())
	return buf, nil
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	in := fs.String("in", "", "Input file (MP3, FLAC, WAV)")
	out := fs.String("out", "", "Output WAV file")
	trim := fs.Float64("trim", 0, "Input trim in dB")
	fadeMs := fs.Float64("fade", 0, "Fade in/out length in milliseconds")
	block := fs.Int("block", 512, "Processing block size in samples")
	sf := addSettingsFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("-out is required")
	}

	buf, err := loadInput(*in, *trim)
	if err != nil {
		return err
	}

	c, err := newInstance()
	if err != nil {
		return err
	}
	settings, err := sf.resolve(c)
	if err != nil {
		return err
	}

	if n := buf.NumChannels(); n > c.MaxInputChannels() {
		debug.Warn("%s has %d channels, rendering the first %d", filepath.Base(*in), n, c.MaxInputChannels())
		buf = buf.Stereo()
	}

	offline, err := host.NewOffline(c, float64(buf.SampleRate), *block)
	if err != nil {
		return err
	}
	defer offline.Close()

	start := time.Now()
	rendered, err := offline.Render(buf.Channels, automationFor(settings))
	if err != nil {
		return err
	}
	debug.Info("rendered %d frames in %s", buf.Frames(), time.Since(start))

	result := &audiofile.Buffer{SampleRate: buf.SampleRate, Channels: rendered}
	if *fadeMs > 0 {
		audiofile.Fade(result, int(*fadeMs*float64(buf.SampleRate)/1000))
	}

	if err := audiofile.WriteWAV(*out, result); err != nil {
		return err
	}
	debug.Info("wrote %s", *out)
	return nil
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	def := analysis.DefaultConfig()
	freq := fs.Float64("freq", def.Frequency, "Test tone frequency in Hz")
	amp := fs.Float64("amp", def.Amplitude, "Test tone amplitude")
	rate := fs.Float64("rate", def.SampleRate, "Sample rate in Hz")
	fftSize := fs.Int("fft", def.FFTSize, "Analysis length, a power of two")
	sf := addSettingsFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := newInstance()
	if err != nil {
		return err
	}
	settings, err := sf.resolve(c)
	if err != nil {
		return err
	}

	cfg := def
	cfg.Frequency = *freq
	cfg.Amplitude = *amp
	cfg.SampleRate = *rate
	cfg.FFTSize = *fftSize

	report, err := analysis.Measure(settings, cfg)
	if err != nil {
		return err
	}
	fmt.Print(report)
	return nil
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	in := fs.String("in", "", "Input file (MP3, FLAC, WAV)")
	trim := fs.Float64("trim", 0, "Input trim in dB")
	block := fs.Int("block", 512, "Processing block size in samples")
	sf := addSettingsFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	buf, err := loadInput(*in, *trim)
	if err != nil {
		return err
	}
	buf = buf.Stereo()

	c, err := newInstance()
	if err != nil {
		return err
	}
	settings, err := sf.resolve(c)
	if err != nil {
		return err
	}

	live, err := host.NewLive(c, buf.Channels, float64(buf.SampleRate), *block)
	if err != nil {
		return err
	}
	defer live.Close()

	live.Set(multidist.ParamGain, float64(settings.Gain))
	live.Set(multidist.ParamSelection, float64(settings.Mode))

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   buf.SampleRate,
		ChannelCount: host.LiveChannels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	// the terminal belongs to the TUI while it runs
	if *logFile == "" {
		debug.SetOutput(io.Discard)
		defer debug.SetOutput(os.Stderr)
	}

	player := ctx.NewPlayer(live)
	player.Play()
	defer player.Close()

	model := tui.NewModel(live, live.Profiler(), filepath.Base(*in), float64(buf.SampleRate), settings)
	if _, err := tui.Run(model).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	debug.Info("%s", live.Profiler().AudioReport())
	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := newInstance()
	if err != nil {
		return err
	}
	info := c.Info()
	if err := info.ValidateUID(); err != nil {
		return err
	}

	factory := vst3plugin.GetFactoryInfo()
	fmt.Printf("%s %s by %s (%s)\n", info.Name, info.Version, info.Vendor, info.Category)
	fmt.Printf("ID:      %s\n", info.ID)
	fmt.Printf("UID:     %s\n", info.UIDString())
	fmt.Printf("Vendor:  %s <%s>\n", factory.Vendor, factory.URL)

	fmt.Println("\nClasses:")
	for _, class := range vst3plugin.Classes() {
		fmt.Printf("  %X  %-26s %s\n", class.CID, class.Category, class.Name)
	}

	fmt.Println("\nBuses:")
	for _, mt := range []int32{vst3.MediaTypeAudio, vst3.MediaTypeEvent} {
		for _, dir := range []int32{vst3.BusDirectionInput, vst3.BusDirectionOutput} {
			for i := int32(0); i < c.GetBusCount(mt, dir); i++ {
				b, err := c.GetBusInfo(mt, dir, i)
				if err != nil {
					return err
				}
				kind := "audio"
				if bus.MediaType(b.MediaType) == bus.MediaTypeEvent {
					kind = "event"
				}
				fmt.Printf("  %-10s %s, %d channels\n", b.Name, kind, b.ChannelCount)
			}
		}
	}

	fmt.Println("\nParameters:")
	for i := int32(0); i < c.GetParameterCount(); i++ {
		p, err := c.GetParameterInfo(i)
		if err != nil {
			return err
		}
		def, err := c.GetParamStringByValue(p.ID, p.DefaultValue)
		if err != nil {
			return err
		}
		fmt.Printf("  %d  %-10s steps=%d default=%s %s\n", p.ID, p.Title, p.StepCount, def, p.Units)
	}
	return nil
}
