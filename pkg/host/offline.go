package host

import (
	"fmt"
	"sort"

	"github.com/redetach/multidist/pkg/framework/debug"
	"github.com/redetach/multidist/pkg/plugin"
	"github.com/redetach/multidist/pkg/vst3"
)

// Automation is one parameter change at an absolute frame of the render
type Automation struct {
	Frame int
	ID    uint32
	Value float64
}

// Offline renders whole signals through a component in fixed blocks
type Offline struct {
	component *plugin.Component
	blockSize int
	changes   *vst3.ParameterChangeList
}

// NewOffline prepares c for offline rendering
func NewOffline(c *plugin.Component, sampleRate float64, blockSize int) (*Offline, error) {
	if err := start(c, vst3.ProcessModeOffline, sampleRate, blockSize); err != nil {
		return nil, err
	}

	return &Offline{
		component: c,
		blockSize: blockSize,
		changes:   vst3.NewParameterChangeList(vst3.DefaultMaxQueues, vst3.DefaultMaxPoints),
	}, nil
}

// Render processes input and returns a new buffer with the same layout.
// Input wider than the component's active input buses is rejected.
// Each automation point is delivered in the block containing its frame,
// so a change takes effect from the start of that block. Points before
// frame 0 land in the first block; points past the end are dropped.
func (o *Offline) Render(input [][]float32, automation []Automation) ([][]float32, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("render: no input channels: %w", vst3.ErrInvalidArgument)
	}
	if limit := o.component.MaxInputChannels(); len(input) > limit {
		return nil, fmt.Errorf("render: %d input channels, the component takes %d: %w",
			len(input), limit, vst3.ErrInvalidArgument)
	}
	frames := len(input[0])
	for ch, in := range input {
		if len(in) != frames {
			return nil, fmt.Errorf("render: channel %d has %d frames, want %d: %w",
				ch, len(in), frames, vst3.ErrInvalidArgument)
		}
	}

	points := make([]Automation, len(automation))
	copy(points, automation)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Frame < points[j].Frame
	})

	output := make([][]float32, len(input))
	for ch := range output {
		output[ch] = make([]float32, frames)
	}

	inViews := make([][]float32, len(input))
	outViews := make([][]float32, len(input))
	data := vst3.ProcessData{
		ProcessMode:           vst3.ProcessModeOffline,
		SymbolicSampleSize:    vst3.SymbolicSample32,
		Inputs:                make([]vst3.AudioBusBuffers, 1),
		Outputs:               make([]vst3.AudioBusBuffers, 1),
		InputParameterChanges: o.changes,
	}

	next := 0
	for pos := 0; pos < frames; pos += o.blockSize {
		n := o.blockSize
		if pos+n > frames {
			n = frames - pos
		}

		o.changes.Clear()
		for ; next < len(points) && points[next].Frame < pos+n; next++ {
			p := points[next]
			offset := p.Frame - pos
			if offset < 0 {
				offset = 0
			}
			if !o.changes.AddPoint(p.ID, int32(offset), p.Value) {
				return nil, fmt.Errorf("render: frame %d: %w", p.Frame, ErrAutomationOverflow)
			}
		}

		for ch := range input {
			inViews[ch] = input[ch][pos : pos+n]
			outViews[ch] = output[ch][pos : pos+n]
		}
		data.NumSamples = int32(n)
		data.Inputs[0] = vst3.NewAudioBusBuffers(inViews)
		data.Outputs[0] = vst3.NewAudioBusBuffers(outViews)

		if err := o.component.Process(&data); err != nil {
			return nil, fmt.Errorf("render: block at frame %d: %w", pos, err)
		}
	}

	if dropped := len(points) - next; dropped > 0 {
		debug.Debug("render: dropped %d automation points past frame %d", dropped, frames)
	}

	return output, nil
}

// Close deactivates the component
func (o *Offline) Close() error {
	return stop(o.component)
}
