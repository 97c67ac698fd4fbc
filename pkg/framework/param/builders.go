package param

import (
	"fmt"
	"strconv"
	"strings"
)

// ChoiceOption represents a single entry of a list parameter
type ChoiceOption struct {
	Name    string
	Aliases []string
}

// Choice creates a list parameter whose plain value is the entry index.
// The host sees StepCount = len(options)-1, so normalized 0 selects the
// first entry and 1 the last.
func Choice(id uint32, name string, options []ChoiceOption) *Builder {
	formatter := func(value float64) string {
		index := int(value)
		if index >= 0 && index < len(options) {
			return options[index].Name
		}
		return "Unknown"
	}

	parser := func(str string) (float64, error) {
		s := strings.TrimSpace(str)
		for i, opt := range options {
			if strings.EqualFold(s, opt.Name) {
				return float64(i), nil
			}
			for _, alias := range opt.Aliases {
				if strings.EqualFold(s, alias) {
					return float64(i), nil
				}
			}
		}
		return 0, fmt.Errorf("unknown option: %s", str)
	}

	steps := int32(len(options) - 1)
	if steps < 1 {
		steps = 1
	}

	return New(id, name).
		Range(0, float64(steps)).
		Steps(steps).
		Default(0).
		Flags(CanAutomate|IsList).
		Formatter(formatter, parser)
}

// NormalizedParameter creates a continuous 0-1 parameter whose plain and
// normalized values coincide, displayed with four decimals. Gain pairs it
// with Unit("dB"): the host shows "0.5000 dB" but the number stays the
// normalized value, so the parser drops a trailing "dB" and reads it back.
func NormalizedParameter(id uint32, name string, defaultValue float64) *Builder {
	return New(id, name).
		Range(0, 1).
		Default(defaultValue).
		Formatter(func(v float64) string {
			return strconv.FormatFloat(v, 'f', 4, 64)
		}, func(s string) (float64, error) {
			s = strings.TrimSpace(s)
			for _, unit := range []string{"dB", "db"} {
				s = strings.TrimSpace(strings.TrimSuffix(s, unit))
			}
			return strconv.ParseFloat(s, 64)
		})
}
