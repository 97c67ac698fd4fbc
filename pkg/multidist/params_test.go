package multidist

import (
	"testing"

	"github.com/redetach/multidist/pkg/dsp/distortion"
	"github.com/redetach/multidist/pkg/vst3"
)

// brokenQueue reports points it cannot deliver
type brokenQueue struct{ id vst3.ParamID }

func (q brokenQueue) ParameterID() vst3.ParamID { return q.id }
func (q brokenQueue) PointCount() int32         { return 3 }
func (q brokenQueue) Point(int32) (int32, vst3.ParamValue, bool) {
	return 0, 0.9, false
}

// queueSet is a ParameterChanges over arbitrary queues
type queueSet []vst3.ParamValueQueue

func (s queueSet) ParameterCount() int32 { return int32(len(s)) }
func (s queueSet) ParameterData(i int32) vst3.ParamValueQueue {
	return s[i]
}

func queue(id vst3.ParamID, values ...float64) *vst3.ParamQueue {
	q := vst3.NewParamQueue(id, len(values)+1)
	for i, v := range values {
		q.AddPoint(int32(i), v)
	}
	return q
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Gain != 0.5 || s.Mode != distortion.ModeDefault {
		t.Errorf("DefaultSettings() = %+v, want {0.5 Default}", s)
	}
}

func TestApplyParameterChanges(t *testing.T) {
	tests := []struct {
		name    string
		changes vst3.ParameterChanges
		want    Settings
	}{
		{
			name:    "NilChanges",
			changes: nil,
			want:    Settings{Gain: 0.5, Mode: distortion.ModeDefault},
		},
		{
			name:    "NoQueues",
			changes: queueSet{},
			want:    Settings{Gain: 0.5, Mode: distortion.ModeDefault},
		},
		{
			name:    "LastPointByPosition",
			changes: queueSet{queue(ParamGain, 0.1, 0.9, 0.3)},
			want:    Settings{Gain: 0.3, Mode: distortion.ModeDefault},
		},
		{
			name:    "GainNotClamped",
			changes: queueSet{queue(ParamGain, 1.7)},
			want:    Settings{Gain: 1.7, Mode: distortion.ModeDefault},
		},
		{
			name:    "NegativeGainNotClamped",
			changes: queueSet{queue(ParamGain, -0.25)},
			want:    Settings{Gain: -0.25, Mode: distortion.ModeDefault},
		},
		{
			name:    "SelectionOne",
			changes: queueSet{queue(ParamSelection, 1.0)},
			want:    Settings{Gain: 0.5, Mode: distortion.ModeHarsh},
		},
		{
			name:    "SelectionTruncates",
			changes: queueSet{queue(ParamSelection, 0.99)},
			want:    Settings{Gain: 0.5, Mode: distortion.ModeDefault},
		},
		{
			name:    "SelectionOutOfRange",
			changes: queueSet{queue(ParamSelection, 2.7)},
			want:    Settings{Gain: 0.5, Mode: distortion.Mode(2)},
		},
		{
			name:    "BothParameters",
			changes: queueSet{queue(ParamSelection, 0, 1), queue(ParamGain, 0.1)},
			want:    Settings{Gain: 0.1, Mode: distortion.ModeHarsh},
		},
		{
			name:    "EmptyQueueSkipped",
			changes: queueSet{queue(ParamGain), queue(ParamSelection, 1)},
			want:    Settings{Gain: 0.5, Mode: distortion.ModeHarsh},
		},
		{
			name:    "FailedReadSkipped",
			changes: queueSet{brokenQueue{id: ParamGain}},
			want:    Settings{Gain: 0.5, Mode: distortion.ModeDefault},
		},
		{
			name:    "NilQueueSkipped",
			changes: queueSet{nil, queue(ParamGain, 0.2)},
			want:    Settings{Gain: 0.2, Mode: distortion.ModeDefault},
		},
		{
			name:    "UnknownIDIgnored",
			changes: queueSet{queue(42, 0.7), queue(ParamGain, 0.6)},
			want:    Settings{Gain: 0.6, Mode: distortion.ModeDefault},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			ApplyParameterChanges(tt.changes, &s)
			if s != tt.want {
				t.Errorf("got %+v, want %+v", s, tt.want)
			}
		})
	}
}

func TestApplyParameterChangesKeepsUntouched(t *testing.T) {
	s := Settings{Gain: 0.8, Mode: distortion.ModeHarsh}

	ApplyParameterChanges(queueSet{queue(ParamGain, 0.2)}, &s)
	if s.Mode != distortion.ModeHarsh {
		t.Errorf("Mode changed without a queue: %v", s.Mode)
	}

	ApplyParameterChanges(queueSet{queue(ParamSelection, 0)}, &s)
	if s.Gain != 0.2 {
		t.Errorf("Gain changed without a queue: %v", s.Gain)
	}
}

func TestApplyParameterChangesNoAllocs(t *testing.T) {
	list := vst3.NewParameterChangeList(4, 8)
	list.AddPoint(ParamGain, 0, 0.2)
	list.AddPoint(ParamGain, 64, 0.4)
	list.AddPoint(ParamSelection, 12, 1)

	s := DefaultSettings()
	allocs := testing.AllocsPerRun(100, func() {
		ApplyParameterChanges(list, &s)
	})
	if allocs != 0 {
		t.Errorf("ApplyParameterChanges allocated %.1f times per run", allocs)
	}
}
