package multidist

import (
	"sync/atomic"

	"github.com/redetach/multidist/pkg/dsp/distortion"
	"github.com/redetach/multidist/pkg/framework/bus"
	"github.com/redetach/multidist/pkg/framework/param"
	"github.com/redetach/multidist/pkg/framework/plugin"
	"github.com/redetach/multidist/pkg/framework/process"
	"github.com/redetach/multidist/pkg/vst3"
)

// Session is one processor instance. Its settings are owned by the audio
// thread; the parameter registry only mirrors them for display and state.
type Session struct {
	*plugin.BaseProcessor

	settings Settings

	// held directly so the audio thread never takes the registry lock
	gain      *param.Parameter
	selection *param.Parameter

	// set when a state blob was loaded into the registry
	reload atomic.Bool
}

// NewSession creates a session with default settings
func NewSession() *Session {
	s := &Session{
		BaseProcessor: plugin.NewBaseProcessor(bus.NewEffectConfiguration()),
		settings:      DefaultSettings(),
		gain: param.NormalizedParameter(ParamGain, "Gain", DefaultGain).
			Unit("dB").
			Build(),
		selection: param.Choice(ParamSelection, "Selection", []param.ChoiceOption{
			{Name: distortion.ModeDefault.String(), Aliases: []string{"normal"}},
			{Name: distortion.ModeHarsh.String(), Aliases: []string{"hard"}},
		}).Build(),
	}

	// IDs are constants, so Add cannot fail
	_ = s.GetParameters().Add(s.gain, s.selection)

	return s
}

// Settings returns the settings the next block will use. Audio thread only.
func (s *Session) Settings() Settings {
	return s.settings
}

// ApplyParameterChanges runs the parameter stage for one block
func (s *Session) ApplyParameterChanges(changes vst3.ParameterChanges) {
	s.syncState()

	if changes == nil || changes.ParameterCount() == 0 {
		return
	}

	ApplyParameterChanges(changes, &s.settings)

	s.gain.SetValue(float64(s.settings.Gain))
	s.selection.SetValue(float64(s.settings.Mode))
}

// ProcessAudio shapes every sample of every input channel with the block's
// settings
func (s *Session) ProcessAudio(ctx *process.Context) {
	s.syncState()

	distortion.ProcessBlock32(ctx.Input, ctx.Output, ctx.NumSamples(), s.settings.Gain, s.settings.Mode)
}

// StateLoaded re-seeds the settings from the registry before the next block
func (s *Session) StateLoaded() {
	s.reload.Store(true)
}

func (s *Session) syncState() {
	if !s.reload.CompareAndSwap(true, false) {
		return
	}
	s.settings = Settings{
		Gain: float32(s.gain.GetValue()),
		Mode: distortion.Mode(int32(s.selection.GetValue())),
	}
}
