// Package multidist is the MultiDist waveshaping distortion: its parameter
// set, the per-block parameter stage and the audio session that feeds the
// distortion engine.
package multidist

import (
	"github.com/redetach/multidist/pkg/dsp/distortion"
	"github.com/redetach/multidist/pkg/vst3"
)

// Parameter IDs
const (
	ParamGain uint32 = iota
	ParamSelection
)

// DefaultGain is the normalized gain before any automation arrives
const DefaultGain = 0.5

// Settings are the values the engine reads once per block
type Settings struct {
	Gain float32
	Mode distortion.Mode
}

// DefaultSettings returns the settings in effect before the first block
func DefaultSettings() Settings {
	return Settings{
		Gain: DefaultGain,
		Mode: distortion.ModeDefault,
	}
}

type paramSetter func(s *Settings, value vst3.ParamValue)

// Fixed ID to setter table. Gain is taken as-is; the selection is
// truncated toward zero, so only a value of exactly 1.0 selects Harsh.
var paramSetters = [...]paramSetter{
	ParamGain: func(s *Settings, value vst3.ParamValue) {
		s.Gain = float32(value)
	},
	ParamSelection: func(s *Settings, value vst3.ParamValue) {
		s.Mode = distortion.Mode(int32(value))
	},
}

// ApplyParameterChanges resolves the block's queues into s. Each queue
// contributes its last point by position; empty queues, unreadable points
// and unknown IDs are skipped.
func ApplyParameterChanges(changes vst3.ParameterChanges, s *Settings) {
	if changes == nil {
		return
	}

	count := changes.ParameterCount()
	for i := int32(0); i < count; i++ {
		queue := changes.ParameterData(i)
		if queue == nil {
			continue
		}

		points := queue.PointCount()
		if points <= 0 {
			continue
		}

		_, value, ok := queue.Point(points - 1)
		if !ok {
			continue
		}

		id := queue.ParameterID()
		if int(id) < len(paramSetters) {
			paramSetters[id](s, value)
		}
	}
}
