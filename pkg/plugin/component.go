package plugin

import (
	"fmt"

	"github.com/redetach/multidist/pkg/framework/bus"
	"github.com/redetach/multidist/pkg/framework/debug"
	"github.com/redetach/multidist/pkg/framework/param"
	"github.com/redetach/multidist/pkg/framework/plugin"
	"github.com/redetach/multidist/pkg/framework/process"
	"github.com/redetach/multidist/pkg/framework/state"
	"github.com/redetach/multidist/pkg/vst3"
)

var (
	_ vst3.IComponent      = (*Component)(nil)
	_ vst3.IAudioProcessor = (*Component)(nil)
	_ vst3.IEditController = (*Component)(nil)
)

// Component drives a Processor through the host contract. It combines the
// audio processor and edit controller roles over one parameter registry.
type Component struct {
	info      plugin.Info
	processor Processor
	params    *param.Registry
	buses     *bus.Configuration
	state     *state.Manager

	// optional processor capabilities, resolved once
	changes  ParameterChangeHandler
	listener StateListener

	ctx         *process.Context
	setup       vst3.ProcessSetup
	initialized bool
	active      bool
	processing  bool
}

// NewComponent creates a component around a fresh processor of p
func NewComponent(p Plugin) *Component {
	processor := p.CreateProcessor()

	c := &Component{
		info:      p.GetInfo(),
		processor: processor,
		params:    processor.GetParameters(),
		buses:     processor.GetBuses(),
		setup: vst3.ProcessSetup{
			ProcessMode:        vst3.ProcessModeRealtime,
			SymbolicSampleSize: vst3.SymbolicSample32,
			MaxSamplesPerBlock: 1024,
			SampleRate:         44100,
		},
	}

	if sp, ok := processor.(StateProvider); ok {
		c.state = sp.GetState()
	} else {
		c.state = state.NewManager(c.params)
	}
	c.changes, _ = processor.(ParameterChangeHandler)
	c.listener, _ = processor.(StateListener)

	channels := c.buses.ActiveChannelCount(bus.DirectionInput)
	if out := c.buses.ActiveChannelCount(bus.DirectionOutput); out > channels {
		channels = out
	}
	c.ctx = process.NewContext(int(channels))
	c.ctx.SampleRate = c.setup.SampleRate

	return c
}

// Info returns the plugin metadata
func (c *Component) Info() plugin.Info {
	return c.info
}

// MaxInputChannels returns the number of channels the active input buses
// can carry into a block
func (c *Component) MaxInputChannels() int {
	return int(c.buses.ActiveChannelCount(bus.DirectionInput))
}

// Processor returns the wrapped processor
func (c *Component) Processor() Processor {
	return c.processor
}

// IPluginBase methods

// Initialize prepares the component for use by a host
func (c *Component) Initialize(context interface{}) error {
	c.initialized = true
	debug.Debug("%s: initialized", c.info.Name)
	return nil
}

// Terminate releases the component
func (c *Component) Terminate() error {
	if c.active {
		if err := c.SetActive(false); err != nil {
			return err
		}
	}
	c.initialized = false
	return nil
}

// IComponent methods

// GetControllerClassID returns the class ID of the edit controller
func (c *Component) GetControllerClassID() [16]byte {
	return c.info.ControllerUID()
}

// SetIOMode is accepted and ignored
func (c *Component) SetIOMode(mode int32) error {
	return nil
}

// GetBusCount returns the number of buses of a media type and direction
func (c *Component) GetBusCount(mediaType, direction int32) int32 {
	return c.buses.GetBusCount(bus.MediaType(mediaType), bus.Direction(direction))
}

// GetBusInfo describes one bus
func (c *Component) GetBusInfo(mediaType, direction, index int32) (*vst3.BusInfo, error) {
	b := c.buses.GetBusInfo(bus.MediaType(mediaType), bus.Direction(direction), index)
	if b == nil {
		return nil, fmt.Errorf("bus %d: %w", index, vst3.ErrInvalidArgument)
	}
	info := b.VST3()
	return &info, nil
}

// ActivateBus activates or deactivates a bus
func (c *Component) ActivateBus(mediaType, direction, index int32, state bool) error {
	err := c.buses.SetBusActive(bus.MediaType(mediaType), bus.Direction(direction), index, state)
	if err != nil {
		return fmt.Errorf("%w: %v", vst3.ErrInvalidArgument, err)
	}
	return nil
}

// SetActive starts or stops the processor
func (c *Component) SetActive(state bool) error {
	if state == c.active {
		return nil
	}
	if err := c.processor.SetActive(state); err != nil {
		return fmt.Errorf("set active %t: %w", state, err)
	}
	c.active = state
	debug.Info("%s: active=%t", c.info.Name, state)
	return nil
}

// SetState restores processor state from the host
func (c *Component) SetState(stream vst3.Stream) error {
	if err := c.state.Load(stream); err != nil {
		debug.Warn("%s: state load failed: %v", c.info.Name, err)
		return fmt.Errorf("load state: %w", err)
	}
	if c.listener != nil {
		c.listener.StateLoaded()
	}
	debug.Info("%s: state loaded", c.info.Name)
	return nil
}

// GetState writes processor state for the host
func (c *Component) GetState(stream vst3.Stream) error {
	if err := c.state.Save(stream); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	debug.Debug("%s: state saved", c.info.Name)
	return nil
}

// IAudioProcessor methods

// SetBusArrangements accepts only the arrangements matching the bus layout
func (c *Component) SetBusArrangements(inputs, outputs []int64) error {
	check := func(direction bus.Direction, arrs []int64) error {
		if int32(len(arrs)) != c.buses.GetBusCount(bus.MediaTypeAudio, direction) {
			return vst3.ErrInvalidArgument
		}
		for i, arr := range arrs {
			if c.buses.GetBusInfo(bus.MediaTypeAudio, direction, int32(i)).SpeakerArrangement() != arr {
				return vst3.ErrInvalidArgument
			}
		}
		return nil
	}

	if err := check(bus.DirectionInput, inputs); err != nil {
		return err
	}
	return check(bus.DirectionOutput, outputs)
}

// GetBusArrangement returns the speaker arrangement of an audio bus
func (c *Component) GetBusArrangement(direction, index int32) (int64, error) {
	b := c.buses.GetBusInfo(bus.MediaTypeAudio, bus.Direction(direction), index)
	if b == nil {
		return vst3.SpeakerArrEmpty, fmt.Errorf("bus %d: %w", index, vst3.ErrInvalidArgument)
	}
	return b.SpeakerArrangement(), nil
}

// CanProcessSampleSize reports support for 32-bit float processing only
func (c *Component) CanProcessSampleSize(symbolicSampleSize int32) error {
	if symbolicSampleSize == vst3.SymbolicSample32 {
		return nil
	}
	debug.Warn("%s: sample size %d not supported", c.info.Name, symbolicSampleSize)
	return vst3.ErrNotImplemented
}

// GetLatencySamples returns the processor latency
func (c *Component) GetLatencySamples() uint32 {
	return uint32(c.processor.GetLatencySamples())
}

// SetupProcessing stores the processing setup and initializes the processor
func (c *Component) SetupProcessing(setup *vst3.ProcessSetup) error {
	if setup == nil || setup.SampleRate <= 0 || setup.MaxSamplesPerBlock <= 0 {
		return vst3.ErrInvalidArgument
	}
	if err := c.CanProcessSampleSize(setup.SymbolicSampleSize); err != nil {
		return err
	}
	if err := c.processor.Initialize(setup.SampleRate, setup.MaxSamplesPerBlock); err != nil {
		return fmt.Errorf("initialize processor: %w", err)
	}

	c.setup = *setup
	c.ctx.SampleRate = setup.SampleRate
	debug.Info("%s: setup %.0f Hz, %d samples", c.info.Name, setup.SampleRate, setup.MaxSamplesPerBlock)
	return nil
}

// SetProcessing is accepted and recorded
func (c *Component) SetProcessing(state bool) error {
	c.processing = state
	return nil
}

// Process runs one block. Parameter changes are applied first, then audio
// is processed unless the block carries no input or output bus.
func (c *Component) Process(data *vst3.ProcessData) error {
	if data == nil {
		return vst3.ErrInvalidArgument
	}

	if c.changes != nil && data.InputParameterChanges != nil {
		c.changes.ApplyParameterChanges(data.InputParameterChanges)
	}

	if data.NumInputs() == 0 || data.NumOutputs() == 0 {
		return nil
	}
	if data.SymbolicSampleSize != vst3.SymbolicSample32 {
		return vst3.ErrNotImplemented
	}

	c.ctx.Load(data)
	c.processor.ProcessAudio(c.ctx)
	return nil
}

// GetTailSamples returns the processor tail length
func (c *Component) GetTailSamples() uint32 {
	return uint32(c.processor.GetTailSamples())
}

// IEditController methods

// SetComponentState syncs the controller with a processor state blob
func (c *Component) SetComponentState(stream vst3.Stream) error {
	if err := c.state.Load(stream); err != nil {
		return fmt.Errorf("load component state: %w", err)
	}
	return nil
}

// GetParameterCount returns the number of parameters
func (c *Component) GetParameterCount() int32 {
	return c.params.Count()
}

// GetParameterInfo describes the parameter at index
func (c *Component) GetParameterInfo(index int32) (*vst3.ParameterInfo, error) {
	p := c.params.GetByIndex(index)
	if p == nil {
		return nil, fmt.Errorf("parameter index %d: %w", index, vst3.ErrInvalidArgument)
	}
	info := p.Info()
	return &info, nil
}

// GetParamStringByValue formats a normalized value for display
func (c *Component) GetParamStringByValue(id uint32, value float64) (string, error) {
	p := c.params.Get(id)
	if p == nil {
		return "", fmt.Errorf("parameter %d: %w", id, vst3.ErrInvalidArgument)
	}
	return p.FormatValue(value), nil
}

// GetParamValueByString parses a display string into a normalized value
func (c *Component) GetParamValueByString(id uint32, str string) (float64, error) {
	p := c.params.Get(id)
	if p == nil {
		return 0, fmt.Errorf("parameter %d: %w", id, vst3.ErrInvalidArgument)
	}
	v, err := p.ParseValue(str)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", vst3.ErrInvalidArgument, err)
	}
	return v, nil
}

// NormalizedParamToPlain converts to the plain range; unknown IDs pass through
func (c *Component) NormalizedParamToPlain(id uint32, normalized float64) float64 {
	if p := c.params.Get(id); p != nil {
		return p.Denormalize(normalized)
	}
	return normalized
}

// PlainParamToNormalized converts from the plain range; unknown IDs pass through
func (c *Component) PlainParamToNormalized(id uint32, plain float64) float64 {
	if p := c.params.Get(id); p != nil {
		return p.Normalize(plain)
	}
	return plain
}

// GetParamNormalized returns the controller's value of a parameter
func (c *Component) GetParamNormalized(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// SetParamNormalized sets the controller's value of a parameter. The audio
// processor only follows values that arrive through process data.
func (c *Component) SetParamNormalized(id uint32, value float64) error {
	p := c.params.Get(id)
	if p == nil {
		return fmt.Errorf("parameter %d: %w", id, vst3.ErrInvalidArgument)
	}
	p.SetValue(value)
	return nil
}
