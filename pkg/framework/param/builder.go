package param

// Builder assembles a Parameter step by step. Every setter returns the
// builder so a declaration reads as one chain ending in Build.
type Builder struct {
	param *Parameter
}

// New starts an automatable 0-1 parameter. ShortName mirrors Name; hosts
// that truncate titles get the full name.
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:        id,
			Name:      name,
			ShortName: name,
			Min:       0,
			Max:       1,
			Flags:     CanAutomate,
		},
	}
}

// Range sets the plain bounds. Call it before Default.
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default takes a plain value and stores it normalized against the
// current range.
func (b *Builder) Default(value float64) *Builder {
	b.param.DefaultValue = b.param.Normalize(value)
	return b
}

// Unit sets the label hosts print next to the value. It is a label only.
// The formatter never appends it, so a formatter's parser has to accept
// the value both with and without the unit suffix. NormalizedParameter
// does this for "dB".
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Steps makes the parameter discrete; 0 keeps it continuous
func (b *Builder) Steps(count int32) *Builder {
	b.param.StepCount = count
	return b
}

func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// Formatter installs the display pair. parse must invert format, and the
// two work on plain values.
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the parameter with its current value set to the default
func (b *Builder) Build() *Parameter {
	b.param.SetValue(b.param.DefaultValue)
	return b.param
}
