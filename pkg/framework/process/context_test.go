package process

import (
	"testing"

	"github.com/redetach/multidist/pkg/vst3"
)

func planar(channels, numSamples int) [][]float32 {
	buf := make([][]float32, channels)
	for ch := range buf {
		buf[ch] = make([]float32, numSamples)
	}
	return buf
}

func newData(numSamples int32, channels int) *vst3.ProcessData {
	in := vst3.NewAudioBusBuffers(planar(channels, int(numSamples)))
	out := vst3.NewAudioBusBuffers(planar(channels, int(numSamples)))
	return &vst3.ProcessData{
		NumSamples: numSamples,
		Inputs:     []vst3.AudioBusBuffers{in},
		Outputs:    []vst3.AudioBusBuffers{out},
	}
}

func TestContextLoad(t *testing.T) {
	ctx := NewContext(2)
	data := newData(64, 2)

	ctx.Load(data)

	if ctx.NumSamples() != 64 {
		t.Errorf("Expected 64 samples, got %d", ctx.NumSamples())
	}
	if ctx.NumInputChannels() != 2 || ctx.NumOutputChannels() != 2 {
		t.Errorf("Expected 2/2 channels, got %d/%d", ctx.NumInputChannels(), ctx.NumOutputChannels())
	}
	if &ctx.Input[1][0] != &data.Inputs[0].ChannelBuffers32[1][0] {
		t.Error("Input should alias the host buffer")
	}
}

func TestContextLoadNoBuses(t *testing.T) {
	ctx := NewContext(2)
	ctx.Load(&vst3.ProcessData{NumSamples: 32})

	if ctx.NumInputChannels() != 0 || ctx.NumOutputChannels() != 0 {
		t.Error("Expected no channels without buses")
	}
}

func TestContextLoadCapacity(t *testing.T) {
	ctx := NewContext(1)
	ctx.Load(newData(16, 2))

	if ctx.NumInputChannels() != 1 {
		t.Errorf("Expected channel count capped at 1, got %d", ctx.NumInputChannels())
	}
}

func TestContextLoadNoAllocs(t *testing.T) {
	ctx := NewContext(2)
	data := newData(128, 2)

	allocs := testing.AllocsPerRun(100, func() {
		ctx.Load(data)
	})
	if allocs != 0 {
		t.Errorf("Load allocated %.1f times per run", allocs)
	}
}
