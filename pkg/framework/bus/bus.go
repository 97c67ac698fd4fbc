// Package bus provides VST3 audio bus configuration and management.
package bus

import (
	"fmt"

	"github.com/redetach/multidist/pkg/vst3"
)

// MediaType represents the type of bus
type MediaType int32

const (
	// MediaTypeAudio represents audio bus type
	MediaTypeAudio = MediaType(vst3.MediaTypeAudio)
	// MediaTypeEvent represents event/MIDI bus type
	MediaTypeEvent = MediaType(vst3.MediaTypeEvent)
)

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput = Direction(vst3.BusDirectionInput)
	// DirectionOutput represents output bus
	DirectionOutput = Direction(vst3.BusDirectionOutput)
)

// Type represents the bus type
type Type int32

const (
	// TypeMain represents main bus
	TypeMain = Type(vst3.BusTypeMain)
	// TypeAux represents auxiliary bus
	TypeAux = Type(vst3.BusTypeAux)
)

// Info contains bus configuration
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// VST3 converts the bus description to the host-facing form
func (i *Info) VST3() vst3.BusInfo {
	var flags uint32
	if i.BusType == TypeMain {
		flags = vst3.BusDefaultActive
	}
	return vst3.BusInfo{
		MediaType:    int32(i.MediaType),
		Direction:    int32(i.Direction),
		ChannelCount: i.ChannelCount,
		Name:         i.Name,
		BusType:      int32(i.BusType),
		Flags:        flags,
	}
}

// SpeakerArrangement returns the arrangement matching the channel count
func (i *Info) SpeakerArrangement() int64 {
	switch i.ChannelCount {
	case 1:
		return vst3.SpeakerArrMono
	case 2:
		return vst3.SpeakerArrStereo
	default:
		return vst3.SpeakerArrEmpty
	}
}

// Configuration manages audio and event buses
type Configuration struct {
	audioBuses []Info
	eventBuses []Info
}

// NewStereoConfiguration creates a standard stereo I/O configuration
func NewStereoConfiguration() *Configuration {
	return &Configuration{
		audioBuses: []Info{
			{
				MediaType:    MediaTypeAudio,
				Direction:    DirectionInput,
				ChannelCount: 2,
				Name:         "Stereo In",
				BusType:      TypeMain,
				IsActive:     true,
			},
			{
				MediaType:    MediaTypeAudio,
				Direction:    DirectionOutput,
				ChannelCount: 2,
				Name:         "Stereo Out",
				BusType:      TypeMain,
				IsActive:     true,
			},
		},
	}
}

// NewEffectConfiguration creates the stereo I/O layout of an insert effect
// with an event input for automation and notes.
func NewEffectConfiguration() *Configuration {
	c := NewStereoConfiguration()
	c.AddEventBus(DirectionInput, "Event In")
	return c
}

func (c *Configuration) buses(mediaType MediaType) []Info {
	if mediaType == MediaTypeEvent {
		return c.eventBuses
	}
	return c.audioBuses
}

// GetBusCount returns the number of buses for a given type and direction
func (c *Configuration) GetBusCount(mediaType MediaType, direction Direction) int32 {
	count := int32(0)

	for _, bus := range c.buses(mediaType) {
		if bus.Direction == direction {
			count++
		}
	}

	return count
}

// GetBusInfo returns information about a specific bus
func (c *Configuration) GetBusInfo(mediaType MediaType, direction Direction, index int32) *Info {
	buses := c.buses(mediaType)

	busIndex := int32(0)
	for i := range buses {
		if buses[i].Direction == direction {
			if busIndex == index {
				return &buses[i]
			}
			busIndex++
		}
	}

	return nil
}

// SetBusActive activates or deactivates a bus
func (c *Configuration) SetBusActive(mediaType MediaType, direction Direction, index int32, active bool) error {
	bus := c.GetBusInfo(mediaType, direction, index)
	if bus == nil {
		return fmt.Errorf("bus not found: type=%d, direction=%d, index=%d", mediaType, direction, index)
	}
	bus.IsActive = active
	return nil
}

// ActiveChannelCount returns the total channel count of active audio buses
// in one direction
func (c *Configuration) ActiveChannelCount(direction Direction) int32 {
	total := int32(0)
	for _, bus := range c.audioBuses {
		if bus.Direction == direction && bus.IsActive {
			total += bus.ChannelCount
		}
	}
	return total
}

// AddEventBus adds an event bus (for MIDI input)
func (c *Configuration) AddEventBus(direction Direction, name string) {
	c.eventBuses = append(c.eventBuses, Info{
		MediaType:    MediaTypeEvent,
		Direction:    direction,
		ChannelCount: 1,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
}
