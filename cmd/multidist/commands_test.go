package main

import (
	"testing"

	"github.com/redetach/multidist/pkg/dsp/distortion"
	"github.com/redetach/multidist/pkg/multidist"
	vst3plugin "github.com/redetach/multidist/pkg/plugin"
)

func TestSettingsFlagsResolve(t *testing.T) {
	c := vst3plugin.NewComponent(multidist.Plugin{})

	tests := []struct {
		name    string
		gain    float64
		mode    string
		want    multidist.Settings
		wantErr bool
	}{
		{"Harsh", 0.3, "harsh", multidist.Settings{Gain: 0.3, Mode: distortion.ModeHarsh}, false},
		{"HarshAlias", 1, "hard", multidist.Settings{Gain: 1, Mode: distortion.ModeHarsh}, false},
		{"Default", 0, "Default", multidist.Settings{Gain: 0, Mode: distortion.ModeDefault}, false},
		{"DefaultAlias", 0.5, "normal", multidist.Settings{Gain: 0.5, Mode: distortion.ModeDefault}, false},
		{"GainBelowRange", -0.1, "default", multidist.Settings{}, true},
		{"GainAboveRange", 1.5, "default", multidist.Settings{}, true},
		{"UnknownMode", 0.5, "crunchy", multidist.Settings{}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gain, mode := test.gain, test.mode
			got, err := settingsFlags{gain: &gain, mode: &mode}.resolve(c)
			if test.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}
			if got != test.want {
				t.Errorf("expected %+v, got %+v", test.want, got)
			}
		})
	}
}

func TestAutomationFor(t *testing.T) {
	s := multidist.Settings{Gain: 0.25, Mode: distortion.ModeHarsh}

	points := automationFor(s)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	values := map[uint32]float64{}
	for _, p := range points {
		if p.Frame != 0 {
			t.Errorf("parameter %d starts at frame %d, want 0", p.ID, p.Frame)
		}
		values[p.ID] = p.Value
	}
	if values[multidist.ParamGain] != 0.25 {
		t.Errorf("expected gain 0.25, got %f", values[multidist.ParamGain])
	}
	if values[multidist.ParamSelection] != float64(distortion.ModeHarsh) {
		t.Errorf("expected selection %d, got %f", distortion.ModeHarsh, values[multidist.ParamSelection])
	}
}
