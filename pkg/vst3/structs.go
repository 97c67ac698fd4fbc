package vst3

// ProcessSetup contains audio processing configuration
type ProcessSetup struct {
	ProcessMode        int32
	SymbolicSampleSize int32
	MaxSamplesPerBlock int32
	SampleRate         float64
}

// ParameterInfo describes a parameter
type ParameterInfo struct {
	ID           uint32
	Title        string
	ShortTitle   string
	Units        string
	StepCount    int32
	DefaultValue float64
	UnitID       int32
	Flags        int32
}

// BusInfo describes an audio or event bus
type BusInfo struct {
	MediaType    int32
	Direction    int32
	ChannelCount int32
	Name         string
	BusType      int32
	Flags        uint32
}

// Media types
const (
	MediaTypeAudio int32 = 0
	MediaTypeEvent int32 = 1
)

// Bus directions
const (
	BusDirectionInput  int32 = 0
	BusDirectionOutput int32 = 1
)

// Bus types
const (
	BusTypeMain int32 = 0
	BusTypeAux  int32 = 1
)

// Bus flags
const (
	BusDefaultActive uint32 = 1 << 0
)

// Symbolic sample sizes
const (
	SymbolicSample32 int32 = 0
	SymbolicSample64 int32 = 1
)

// Process modes
const (
	ProcessModeRealtime int32 = 0
	ProcessModePrefetch int32 = 1
	ProcessModeOffline  int32 = 2
)

// Speaker arrangements
const (
	SpeakerArrEmpty  int64 = 0
	SpeakerArrMono   int64 = 1 << 19
	SpeakerArrStereo int64 = 1<<0 | 1<<1
)

// Parameter flags
const (
	ParameterCanAutomate     int32 = 1 << 0
	ParameterIsReadOnly      int32 = 1 << 1
	ParameterIsWrapAround    int32 = 1 << 2
	ParameterIsList          int32 = 1 << 3
	ParameterIsHidden        int32 = 1 << 4
	ParameterIsProgramChange int32 = 1 << 15
	ParameterIsBypass        int32 = 1 << 16
)
