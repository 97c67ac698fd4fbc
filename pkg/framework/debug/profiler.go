package debug

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync/atomic"
	"time"
)

// Section accumulates timing statistics for one profiled code path.
// Recording uses atomics only, so it is safe on the audio thread.
type Section struct {
	name  string
	count atomic.Uint64
	total atomic.Int64
	min   atomic.Int64
	max   atomic.Int64
	last  atomic.Int64
}

func newSection(name string) *Section {
	s := &Section{name: name}
	s.min.Store(math.MaxInt64)
	return s
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Record adds one measurement.
func (s *Section) Record(elapsed time.Duration) {
	d := int64(elapsed)
	s.count.Add(1)
	s.total.Add(d)
	s.last.Store(d)

	for {
		cur := s.min.Load()
		if d >= cur || s.min.CompareAndSwap(cur, d) {
			break
		}
	}
	for {
		cur := s.max.Load()
		if d <= cur || s.max.CompareAndSwap(cur, d) {
			break
		}
	}
}

// Measurement is a point-in-time copy of a section's statistics.
type Measurement struct {
	Name  string
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration
}

// Average returns the average time for this measurement.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// Snapshot copies the current statistics.
func (s *Section) Snapshot() Measurement {
	m := Measurement{
		Name:  s.name,
		Count: s.count.Load(),
		Total: time.Duration(s.total.Load()),
		Max:   time.Duration(s.max.Load()),
		Last:  time.Duration(s.last.Load()),
	}
	if m.Count > 0 {
		m.Min = time.Duration(s.min.Load())
	}
	return m
}

// Reset clears the section.
func (s *Section) Reset() {
	s.count.Store(0)
	s.total.Store(0)
	s.min.Store(math.MaxInt64)
	s.max.Store(0)
	s.last.Store(0)
}

// Profiler holds a fixed set of sections declared up front. The set never
// changes after construction, so lookups need no lock.
type Profiler struct {
	sections map[string]*Section
	enabled  atomic.Bool
}

// NewProfiler creates a profiler with the given section names.
func NewProfiler(names ...string) *Profiler {
	p := &Profiler{sections: make(map[string]*Section, len(names))}
	for _, name := range names {
		p.sections[name] = newSection(name)
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Section returns the named section, or nil if it was not declared.
func (p *Profiler) Section(name string) *Section {
	return p.sections[name]
}

// Time measures the execution time of fn under the named section.
func (p *Profiler) Time(name string, fn func()) {
	s := p.sections[name]
	if s == nil || !p.enabled.Load() {
		fn()
		return
	}
	start := time.Now()
	fn()
	s.Record(time.Since(start))
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	for _, s := range p.sections {
		s.Reset()
	}
}

// Report generates a performance report.
func (p *Profiler) Report() string {
	names := make([]string, 0, len(p.sections))
	for name := range p.sections {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Performance Report:\n")
	sb.WriteString("==================\n\n")

	for _, name := range names {
		m := p.sections[name].Snapshot()
		if m.Count == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s:\n", name)
		fmt.Fprintf(&sb, "  Count:   %d\n", m.Count)
		fmt.Fprintf(&sb, "  Total:   %v\n", m.Total)
		fmt.Fprintf(&sb, "  Average: %v\n", m.Average())
		fmt.Fprintf(&sb, "  Min:     %v\n", m.Min)
		fmt.Fprintf(&sb, "  Max:     %v\n", m.Max)
		fmt.Fprintf(&sb, "  Last:    %v\n\n", m.Last)
	}

	return sb.String()
}

// ProcessSection is the section AudioProcessProfiler times blocks under.
const ProcessSection = "ProcessAudio"

// AudioProcessProfiler times processing blocks against their real-time
// budget (block length divided by sample rate).
type AudioProcessProfiler struct {
	*Profiler
	block      *Section
	sampleRate float64
	// last and peak load as float64 bits
	load atomic.Uint64
	peak atomic.Uint64
}

// NewAudioProcessProfiler creates a profiler specialized for audio processing.
func NewAudioProcessProfiler(sampleRate float64) *AudioProcessProfiler {
	p := NewProfiler(ProcessSection)
	return &AudioProcessProfiler{
		Profiler:   p,
		block:      p.Section(ProcessSection),
		sampleRate: sampleRate,
	}
}

// Begin marks the start of a block.
func (a *AudioProcessProfiler) Begin() time.Time {
	if !a.enabled.Load() {
		return time.Time{}
	}
	return time.Now()
}

// End records a block of numSamples that started at start and updates the
// DSP load.
func (a *AudioProcessProfiler) End(start time.Time, numSamples int) {
	if start.IsZero() || numSamples <= 0 {
		return
	}
	elapsed := time.Since(start)
	a.block.Record(elapsed)

	budget := float64(numSamples) / a.sampleRate * float64(time.Second)
	load := float64(elapsed) / budget
	a.load.Store(math.Float64bits(load))
	if load > math.Float64frombits(a.peak.Load()) {
		a.peak.Store(math.Float64bits(load))
	}
}

// Load returns the most recent block's processing time as a fraction of
// its budget.
func (a *AudioProcessProfiler) Load() float64 {
	return math.Float64frombits(a.load.Load())
}

// PeakLoad returns the highest load seen since construction or Reset.
func (a *AudioProcessProfiler) PeakLoad() float64 {
	return math.Float64frombits(a.peak.Load())
}

// Reset clears measurements and load figures.
func (a *AudioProcessProfiler) Reset() {
	a.Profiler.Reset()
	a.load.Store(0)
	a.peak.Store(0)
}

// AudioReport generates an audio-specific performance report.
func (a *AudioProcessProfiler) AudioReport() string {
	var sb strings.Builder
	sb.WriteString(a.Report())
	sb.WriteString("Audio Processing Stats:\n")
	fmt.Fprintf(&sb, "  Sample Rate:  %.0f Hz\n", a.sampleRate)
	fmt.Fprintf(&sb, "  DSP Load:     %.2f%%\n", a.Load()*100)
	fmt.Fprintf(&sb, "  Peak Load:    %.2f%%\n", a.PeakLoad()*100)
	return sb.String()
}
