package vst3

// AudioBusBuffers holds the channel buffers of one audio bus for one block.
// Only the 32-bit sample layout is populated by this framework.
type AudioBusBuffers struct {
	NumChannels      int32
	SilenceFlags     uint64
	ChannelBuffers32 [][]float32
}

// ProcessContext carries the host transport state for a block
type ProcessContext struct {
	State           uint32
	SampleRate      float64
	ProjectTimeSecs float64
	BarPositionPPQ  float64
	Tempo           float64
}

// ProcessData is everything the host hands the processor for one block.
// Output buffers are written in place.
type ProcessData struct {
	ProcessMode        int32
	SymbolicSampleSize int32
	NumSamples         int32

	Inputs  []AudioBusBuffers
	Outputs []AudioBusBuffers

	InputParameterChanges  ParameterChanges
	OutputParameterChanges ParameterChanges

	Context *ProcessContext
}

// NumInputs returns the number of input buses
func (d *ProcessData) NumInputs() int32 {
	return int32(len(d.Inputs))
}

// NumOutputs returns the number of output buses
func (d *ProcessData) NumOutputs() int32 {
	return int32(len(d.Outputs))
}

// NewAudioBusBuffers wraps planar channel slices as a bus
func NewAudioBusBuffers(channels [][]float32) AudioBusBuffers {
	return AudioBusBuffers{
		NumChannels:      int32(len(channels)),
		ChannelBuffers32: channels,
	}
}
