package param

import (
	"math"
	"testing"
)

func TestChoice(t *testing.T) {
	param := Choice(1, "Selection", []ChoiceOption{
		{Name: "Default", Aliases: []string{"normal"}},
		{Name: "Harsh", Aliases: []string{"hard"}},
	}).Build()

	if param.StepCount != 1 {
		t.Errorf("Expected step count 1, got %d", param.StepCount)
	}
	if param.Flags&IsList == 0 {
		t.Error("Choice parameter should carry the list flag")
	}
	if param.GetValue() != 0 {
		t.Errorf("Expected default normalized value 0, got %f", param.GetValue())
	}

	t.Run("Formatter", func(t *testing.T) {
		tests := []struct {
			normalized float64
			expected   string
		}{
			{0, "Default"},
			{0.25, "Default"},
			{0.5, "Harsh"},
			{1, "Harsh"},
		}

		for _, test := range tests {
			if result := param.FormatValue(test.normalized); result != test.expected {
				t.Errorf("FormatValue(%f) = %s, want %s", test.normalized, result, test.expected)
			}
		}
	})

	t.Run("Parser", func(t *testing.T) {
		tests := []struct {
			input      string
			normalized float64
		}{
			{"Default", 0},
			{"normal", 0},
			{"harsh", 1},
			{" HARD ", 1},
		}

		for _, test := range tests {
			normalized, err := param.ParseValue(test.input)
			if err != nil {
				t.Errorf("ParseValue(%s) error: %v", test.input, err)
				continue
			}
			if normalized != test.normalized {
				t.Errorf("ParseValue(%s) = %f, want %f", test.input, normalized, test.normalized)
			}
		}

		if _, err := param.ParseValue("crunchy"); err == nil {
			t.Error("Expected error for unknown option")
		}
	})
}

func TestNormalizedParameter(t *testing.T) {
	param := NormalizedParameter(0, "Gain", 0.5).Unit("dB").Build()

	if param.GetValue() != 0.5 || param.DefaultValue != 0.5 {
		t.Errorf("Expected default 0.5, got value %f default %f", param.GetValue(), param.DefaultValue)
	}

	if s := param.FormatValue(0.25); s != "0.2500" {
		t.Errorf("FormatValue(0.25) = %s, want 0.2500", s)
	}

	for _, in := range []string{"0.75", "0.75 dB", " 0.75dB"} {
		v, err := param.ParseValue(in)
		if err != nil {
			t.Errorf("ParseValue(%q) error: %v", in, err)
			continue
		}
		if math.Abs(v-0.75) > 1e-12 {
			t.Errorf("ParseValue(%q) = %f, want 0.75", in, v)
		}
	}

	if _, err := param.ParseValue("loud"); err == nil {
		t.Error("Expected parse error")
	}

	shown := param.FormatValue(0.3) + " " + param.Unit
	if v, err := param.ParseValue(shown); err != nil || math.Abs(v-0.3) > 1e-12 {
		t.Errorf("ParseValue(%q) = %f, %v; want 0.3", shown, v, err)
	}
}

func TestParameterClamp(t *testing.T) {
	param := New(3, "Level").Range(-10, 10).Default(0).Build()

	if param.GetValue() != 0.5 {
		t.Errorf("Expected normalized default 0.5, got %f", param.GetValue())
	}

	param.SetValue(1.5)
	if param.GetValue() != 1 {
		t.Errorf("SetValue should clamp above 1, got %f", param.GetValue())
	}

	param.SetValue(-0.2)
	if param.GetValue() != 0 {
		t.Errorf("SetValue should clamp below 0, got %f", param.GetValue())
	}

	param.SetPlainValue(5)
	if math.Abs(param.GetPlainValue()-5) > 1e-12 {
		t.Errorf("Plain round trip = %f, want 5", param.GetPlainValue())
	}

	info := param.Info()
	if info.ID != 3 || info.Title != "Level" || info.DefaultValue != 0.5 {
		t.Errorf("Unexpected info %+v", info)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	gain := NormalizedParameter(0, "Gain", 0.5).Build()
	sel := Choice(1, "Selection", []ChoiceOption{{Name: "Default"}, {Name: "Harsh"}}).Build()

	if err := r.Add(gain, sel); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := r.Add(NormalizedParameter(0, "Dup", 0).Build()); err == nil {
		t.Error("Expected duplicate ID to be rejected")
	}

	if r.Count() != 2 {
		t.Errorf("Expected 2 parameters, got %d", r.Count())
	}

	if r.GetByIndex(1) != sel || r.GetByIndex(2) != nil || r.GetByIndex(-1) != nil {
		t.Error("GetByIndex returned the wrong parameter")
	}

	if r.Get(0) != gain || r.Get(42) != nil {
		t.Error("Get returned the wrong parameter")
	}

	if all := r.All(); len(all) != 2 || all[0] != gain || all[1] != sel {
		t.Error("All returned parameters out of registration order")
	}
}
