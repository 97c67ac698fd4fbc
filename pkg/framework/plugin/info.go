// Package plugin holds plugin metadata and the base processor shared by
// plugin implementations.
package plugin

import (
	"errors"

	"github.com/google/uuid"

	"github.com/redetach/multidist/pkg/vst3"
)

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx", "Instrument")
}

// Class IDs already shipped to hosts. Projects saved against them must keep
// resolving, so these IDs never go through derivation.
var knownUIDs = map[string]struct{ processor, controller [16]byte }{
	"com.redetach.multidist": {
		processor: [16]byte{
			0xDC, 0xA5, 0x45, 0xFC, 0x4C, 0x29, 0x5B, 0xB9,
			0x8B, 0x1D, 0x32, 0xA3, 0x30, 0x15, 0x97, 0x77,
		},
		controller: [16]byte{
			0xA8, 0x30, 0x21, 0x13, 0x68, 0xBC, 0x57, 0x2E,
			0x8E, 0x29, 0x86, 0x96, 0x1B, 0x17, 0xB9, 0x3C,
		},
	},
}

// UID returns the processor class ID. Unknown IDs get a name-based (SHA-1)
// UUID so the same plugin ID always yields the same class ID.
func (i Info) UID() [16]byte {
	if known, ok := knownUIDs[i.ID]; ok {
		return known.processor
	}
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(i.ID))
}

// ControllerUID returns the edit controller class ID
func (i Info) ControllerUID() [16]byte {
	if known, ok := knownUIDs[i.ID]; ok {
		return known.controller
	}
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(i.ID+".controller"))
}

// UIDString formats the processor class ID for display
func (i Info) UIDString() string {
	return uuid.UUID(i.UID()).String()
}

// ValidateUID reports whether the plugin ID yields usable class IDs
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return errors.New("plugin ID is empty")
	}

	uid := i.UID()
	if uid == ([16]byte{}) {
		return errors.New("plugin UID is all zeros")
	}
	if uid == i.ControllerUID() {
		return errors.New("processor and controller UIDs collide")
	}

	for _, iid := range [][16]byte{
		vst3.IIDFUnknown,
		vst3.IIDIPluginFactory,
		vst3.IIDIComponent,
		vst3.IIDIAudioProcessor,
		vst3.IIDIEditController,
	} {
		if uid == iid {
			return errors.New("plugin UID collides with an interface ID")
		}
	}

	return nil
}
