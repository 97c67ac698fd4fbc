package host

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/redetach/multidist/pkg/framework/debug"
	"github.com/redetach/multidist/pkg/plugin"
	"github.com/redetach/multidist/pkg/vst3"
)

// Live channel layout and sample format
const (
	LiveChannels       = 2
	LiveBytesPerSample = 2
	liveFrameBytes     = LiveChannels * LiveBytesPerSample
)

// DefaultInboxSize is the number of edits that can wait for the next block
const DefaultInboxSize = 64

// Edit is a parameter change sent from a control goroutine
type Edit struct {
	ID    uint32
	Value float64
}

// Live streams a source through a component as 16-bit little-endian
// interleaved stereo. Read is called from the output device's goroutine;
// Set may be called from any goroutine.
type Live struct {
	component *plugin.Component
	source    [][]float32
	frames    int
	blockSize int

	inbox   chan Edit
	dropped atomic.Int64
	changes *vst3.ParameterChangeList

	in, out [][]float32
	data    vst3.ProcessData

	pcm     []byte
	pending []byte

	pos      atomic.Int64
	profiler *debug.AudioProcessProfiler
}

// NewLive prepares c for real-time streaming of source. A mono source is
// played on both channels; extra channels are ignored.
func NewLive(c *plugin.Component, source [][]float32, sampleRate float64, blockSize int) (*Live, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("live: no source channels: %w", vst3.ErrInvalidArgument)
	}
	if err := start(c, vst3.ProcessModeRealtime, sampleRate, blockSize); err != nil {
		return nil, err
	}

	l := &Live{
		component: c,
		source:    source,
		frames:    len(source[0]),
		blockSize: blockSize,
		inbox:     make(chan Edit, DefaultInboxSize),
		changes:   vst3.NewParameterChangeList(vst3.DefaultMaxQueues, vst3.DefaultMaxPoints),
		in:        make([][]float32, LiveChannels),
		out:       make([][]float32, LiveChannels),
		pcm:       make([]byte, blockSize*liveFrameBytes),
		profiler:  debug.NewAudioProcessProfiler(sampleRate),
	}
	for ch := 0; ch < LiveChannels; ch++ {
		l.in[ch] = make([]float32, blockSize)
		l.out[ch] = make([]float32, blockSize)
	}
	l.data = vst3.ProcessData{
		ProcessMode:           vst3.ProcessModeRealtime,
		SymbolicSampleSize:    vst3.SymbolicSample32,
		Inputs:                []vst3.AudioBusBuffers{vst3.NewAudioBusBuffers(l.in)},
		Outputs:               []vst3.AudioBusBuffers{vst3.NewAudioBusBuffers(l.out)},
		InputParameterChanges: l.changes,
	}

	return l, nil
}

// Set queues a parameter change for the next block. It never blocks and
// reports false if the inbox is full.
func (l *Live) Set(id uint32, value float64) bool {
	select {
	case l.inbox <- Edit{ID: id, Value: value}:
		return true
	default:
		l.dropped.Add(1)
		return false
	}
}

// Value returns the normalized value the processor last mirrored for id
func (l *Live) Value(id uint32) float64 {
	return l.component.GetParamNormalized(id)
}

// Dropped returns the number of edits rejected because the inbox was full
// or the block's change list had no room
func (l *Live) Dropped() int64 {
	return l.dropped.Load()
}

// Profiler returns the block timer
func (l *Live) Profiler() *debug.AudioProcessProfiler {
	return l.profiler
}

// Position returns the number of source frames rendered so far
func (l *Live) Position() int {
	return int(l.pos.Load())
}

// Frames returns the length of the source
func (l *Live) Frames() int {
	return l.frames
}

// Read implements io.Reader. It returns io.EOF once the whole source has
// been rendered and delivered.
func (l *Live) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		if int(l.pos.Load()) >= l.frames {
			return 0, io.EOF
		}
		if err := l.renderBlock(); err != nil {
			return 0, err
		}
	}

	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}

func (l *Live) renderBlock() error {
	pos := int(l.pos.Load())
	n := l.blockSize
	if pos+n > l.frames {
		n = l.frames - pos
	}

	l.changes.Clear()
	l.drainInbox()

	for ch := 0; ch < LiveChannels; ch++ {
		src := l.source[min(ch, len(l.source)-1)]
		copy(l.in[ch][:n], src[pos:pos+n])
	}
	l.data.NumSamples = int32(n)

	start := l.profiler.Begin()
	err := l.component.Process(&l.data)
	l.profiler.End(start, n)
	if err != nil {
		return fmt.Errorf("live: block at frame %d: %w", pos, err)
	}

	for i := 0; i < n; i++ {
		for ch := 0; ch < LiveChannels; ch++ {
			off := i*liveFrameBytes + ch*LiveBytesPerSample
			binary.LittleEndian.PutUint16(l.pcm[off:], uint16(toPCM16(l.out[ch][i])))
		}
	}

	l.pending = l.pcm[:n*liveFrameBytes]
	l.pos.Store(int64(pos + n))
	return nil
}

func (l *Live) drainInbox() {
	for {
		select {
		case e := <-l.inbox:
			if !l.changes.AddPoint(e.ID, 0, e.Value) {
				l.dropped.Add(1)
			}
		default:
			return
		}
	}
}

// Close deactivates the component
func (l *Live) Close() error {
	return stop(l.component)
}

func toPCM16(s float32) int16 {
	v := math.Round(float64(s) * math.MaxInt16)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < -math.MaxInt16 {
		return -math.MaxInt16
	}
	return int16(v)
}
