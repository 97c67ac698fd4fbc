// Package state persists parameter values as a versioned binary blob.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/redetach/multidist/pkg/framework/param"
)

const magic = "MDIST1"

// ErrInvalidFormat is returned when a blob does not start with the state header
var ErrInvalidFormat = errors.New("invalid state format")

// Manager handles plugin state saving and loading
type Manager struct {
	version  uint32
	registry *param.Registry
	save     SaveFunc
	load     LoadFunc
}

// SaveFunc allows plugins to save additional state beyond parameters
type SaveFunc func(w io.Writer) error

// LoadFunc reads back what the matching SaveFunc wrote
type LoadFunc func(r io.Reader) error

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  1,
		registry: registry,
	}
}

// SetCustomState registers functions for saving and loading custom state
func (m *Manager) SetCustomState(save SaveFunc, load LoadFunc) {
	m.save = save
	m.load = load
}

// Save writes the plugin state to a writer
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	params := m.registry.All()
	header := struct {
		Version uint32
		Count   int32
	}{m.version, int32(len(params))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range params {
		entry := struct {
			ID    uint32
			Value float64
		}{p.ID, p.GetValue()}
		if err := binary.Write(w, binary.LittleEndian, entry); err != nil {
			return fmt.Errorf("write parameter %d: %w", p.ID, err)
		}
	}

	if m.save == nil {
		return binary.Write(w, binary.LittleEndian, uint32(0))
	}

	// Mark that custom data follows
	if err := binary.Write(w, binary.LittleEndian, uint32(1)); err != nil {
		return err
	}
	return m.save(w)
}

// Load reads the plugin state from a reader. Unknown parameter IDs are
// skipped so newer blobs still load.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if string(header) != magic {
		return ErrInvalidFormat
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	if version > m.version {
		return fmt.Errorf("state version %d is newer than supported version %d", version, m.version)
	}

	var paramCount int32
	if err := binary.Read(r, binary.LittleEndian, &paramCount); err != nil {
		return fmt.Errorf("read parameter count: %w", err)
	}
	if paramCount < 0 {
		return fmt.Errorf("%w: negative parameter count %d", ErrInvalidFormat, paramCount)
	}

	// Values are only applied once the whole list has been read
	type entry struct {
		ID    uint32
		Value float64
	}
	entries := make([]entry, paramCount)
	if err := binary.Read(r, binary.LittleEndian, entries); err != nil {
		return fmt.Errorf("read parameters: %w", err)
	}

	for _, e := range entries {
		if p := m.registry.Get(e.ID); p != nil {
			p.SetValue(e.Value)
		}
	}

	var hasCustom uint32
	if err := binary.Read(r, binary.LittleEndian, &hasCustom); err != nil {
		return fmt.Errorf("read custom marker: %w", err)
	}

	if hasCustom != 0 && m.load != nil {
		return m.load(r)
	}

	return nil
}
