// Package plugin turns a Processor into a host-facing component and keeps
// the process-wide plugin registration the factory reads from.
package plugin

import (
	"fmt"
	"sync"

	"github.com/redetach/multidist/pkg/framework/bus"
	"github.com/redetach/multidist/pkg/framework/param"
	"github.com/redetach/multidist/pkg/framework/plugin"
	"github.com/redetach/multidist/pkg/framework/process"
	"github.com/redetach/multidist/pkg/framework/state"
	"github.com/redetach/multidist/pkg/vst3"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates a new instance of the audio processor
	CreateProcessor() Processor
}

// Processor handles the actual audio processing
type Processor interface {
	// Initialize is called when the host announces the processing setup
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio processes audio - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the plugin's latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32
}

// ParameterChangeHandler is implemented by processors that consume the
// block's parameter queues themselves. It runs on the audio thread before
// ProcessAudio, also for blocks without audio buses.
type ParameterChangeHandler interface {
	ApplyParameterChanges(changes vst3.ParameterChanges)
}

// StateListener is notified after a state blob has been loaded into the
// parameter registry.
type StateListener interface {
	StateLoaded()
}

// StateProvider supplies a state manager other than the default one over
// the processor's registry.
type StateProvider interface {
	GetState() *state.Manager
}

// FactoryInfo describes the vendor behind the plugin factory
type FactoryInfo struct {
	Vendor string
	URL    string
	Email  string
}

// ClassInfo describes one class exported by the factory
type ClassInfo struct {
	CID         [16]byte
	Cardinality int32
	Category    string
	Name        string
}

// Class categories and cardinality
const (
	CategoryComponentController = "Component Controller Class"
	ManyInstances               = int32(0x7FFFFFFF)
)

var (
	registryMu        sync.RWMutex
	globalPlugin      Plugin
	globalFactoryInfo = FactoryInfo{
		Vendor: "redetach",
		URL:    "https://github.com/redetach/multidist",
		Email:  "",
	}
)

// Register sets the global plugin instance
func Register(p Plugin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	globalPlugin = p
}

// Registered returns the global plugin instance, or nil
func Registered() Plugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return globalPlugin
}

// SetFactoryInfo sets the factory information
func SetFactoryInfo(info FactoryInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()
	globalFactoryInfo = info
}

// GetFactoryInfo returns the factory information
func GetFactoryInfo() FactoryInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return globalFactoryInfo
}

// Classes lists the classes the registered plugin exports: the audio
// processor followed by its edit controller.
func Classes() []ClassInfo {
	p := Registered()
	if p == nil {
		return nil
	}

	info := p.GetInfo()
	return []ClassInfo{
		{
			CID:         info.UID(),
			Cardinality: ManyInstances,
			Category:    vst3.CategoryAudioEffect,
			Name:        info.Name,
		},
		{
			CID:         info.ControllerUID(),
			Cardinality: ManyInstances,
			Category:    CategoryComponentController,
			Name:        info.Name + " Controller",
		},
	}
}

// CreateInstance creates a component for the given class ID. Both the
// processor and the controller class resolve to a combined component.
func CreateInstance(cid [16]byte) (*Component, error) {
	p := Registered()
	if p == nil {
		return nil, fmt.Errorf("no plugin registered: %w", vst3.ErrNotInitialized)
	}

	info := p.GetInfo()
	if cid != info.UID() && cid != info.ControllerUID() {
		return nil, fmt.Errorf("unknown class %X: %w", cid, vst3.ErrInvalidArgument)
	}

	return NewComponent(p), nil
}
