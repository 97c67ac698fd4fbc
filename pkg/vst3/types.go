// Package vst3 describes the host contract a plugin component is driven
// through: result codes, process data, parameter change queues, bus and
// parameter descriptors, and state streams.
package vst3

import "errors"

// Result mirrors the host's tresult codes.
type Result int32

// Result codes
const (
	ResultNoInterface     Result = -1
	ResultOK              Result = 0
	ResultTrue            Result = ResultOK
	ResultFalse           Result = 1
	ResultInvalidArgument Result = 2
	ResultNotImplemented  Result = 3
	ResultInternalError   Result = 4
	ResultNotInitialized  Result = 5
	ResultOutOfMemory     Result = 6
)

// Basic type aliases
type (
	ParamID    = uint32
	ParamValue = float64
	Sample32   = float32
	Sample64   = float64
)

// Interface IDs
var (
	IIDFUnknown = [16]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
	}
	IIDIPluginFactory = [16]byte{
		0x7A, 0x4D, 0x81, 0x1C, 0x52, 0x11, 0x4A, 0x1F,
		0xAE, 0xD9, 0xD2, 0xEE, 0x0B, 0x43, 0xBF, 0x9F,
	}
)

// Class categories
const (
	CategoryAudioEffect = "Audio Module Class"
)

// Error codes
type Error int

const (
	ErrNotImplemented  Error = -1
	ErrInvalidArgument Error = -2
	ErrNotInitialized  Error = -3
	ErrInternal        Error = -4
)

func (e Error) Error() string {
	switch e {
	case ErrNotImplemented:
		return "not implemented"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrNotInitialized:
		return "not initialized"
	case ErrInternal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// ResultFromError maps a Go error onto the code handed back to the host.
// Wrapped sentinels are unwrapped; any other error becomes ResultFalse.
func ResultFromError(err error) Result {
	if err == nil {
		return ResultOK
	}

	var e Error
	if !errors.As(err, &e) {
		return ResultFalse
	}

	switch e {
	case ErrNotImplemented:
		return ResultNotImplemented
	case ErrInvalidArgument:
		return ResultInvalidArgument
	case ErrNotInitialized:
		return ResultNotInitialized
	case ErrInternal:
		return ResultInternalError
	default:
		return ResultFalse
	}
}
