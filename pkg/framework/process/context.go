// Package process provides the per-block view of host buffers handed to
// audio processors.
package process

import (
	"github.com/redetach/multidist/pkg/vst3"
)

// Context provides a clean API for audio processing with zero allocations.
// It is filled once per block from the host's ProcessData and reused.
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	numSamples int

	// backing storage for Input/Output, sized at construction
	inputs  [][]float32
	outputs [][]float32
}

// NewContext creates a new process context able to address maxChannels
// channels per direction without allocating
func NewContext(maxChannels int) *Context {
	return &Context{
		inputs:  make([][]float32, maxChannels),
		outputs: make([][]float32, maxChannels),
	}
}

// Load points the context at bus 0 of data. Channels beyond the context's
// capacity are ignored.
func (c *Context) Load(data *vst3.ProcessData) {
	c.numSamples = int(data.NumSamples)
	c.Input = bind(c.inputs, data.Inputs)
	c.Output = bind(c.outputs, data.Outputs)
}

func bind(dst [][]float32, buses []vst3.AudioBusBuffers) [][]float32 {
	if len(buses) == 0 {
		return dst[:0]
	}
	n := copy(dst, buses[0].ChannelBuffers32)
	if int(buses[0].NumChannels) < n {
		n = int(buses[0].NumChannels)
	}
	return dst[:n]
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	return c.numSamples
}

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}
