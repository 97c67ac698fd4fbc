// Package host drives a plugin component the way a DAW would: setup,
// activation, per-block parameter changes and audio buffers.
package host

import (
	"errors"
	"fmt"

	"github.com/redetach/multidist/pkg/plugin"
	"github.com/redetach/multidist/pkg/vst3"
)

// ErrAutomationOverflow is returned when a block receives more automation
// points than its change list can hold
var ErrAutomationOverflow = errors.New("too many automation points in one block")

// start brings a component into the processing state
func start(c *plugin.Component, mode int32, sampleRate float64, blockSize int) error {
	if blockSize <= 0 {
		return fmt.Errorf("block size %d: %w", blockSize, vst3.ErrInvalidArgument)
	}

	if err := c.Initialize(nil); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	setup := vst3.ProcessSetup{
		ProcessMode:        mode,
		SymbolicSampleSize: vst3.SymbolicSample32,
		MaxSamplesPerBlock: int32(blockSize),
		SampleRate:         sampleRate,
	}
	if err := c.SetupProcessing(&setup); err != nil {
		return fmt.Errorf("setup processing: %w", err)
	}
	if err := c.SetActive(true); err != nil {
		return err
	}
	return c.SetProcessing(true)
}

// stop takes a component out of the processing state and terminates it
func stop(c *plugin.Component) error {
	if err := c.SetProcessing(false); err != nil {
		return err
	}
	if err := c.SetActive(false); err != nil {
		return err
	}
	return c.Terminate()
}
