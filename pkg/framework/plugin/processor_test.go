package plugin

import (
	"errors"
	"testing"
)

func TestBaseProcessorCallbacks(t *testing.T) {
	b := NewBaseProcessor(nil)

	if b.GetBuses() == nil || b.GetParameters() == nil || b.GetState() == nil {
		t.Fatal("Expected default buses, registry and state manager")
	}

	var initRate float64
	var resets int
	b.OnInitialize(func(sampleRate float64, maxBlockSize int32) error {
		initRate = sampleRate
		return nil
	})
	b.OnReset(func() { resets++ })
	b.OnSetActive(func(active bool) error {
		if active {
			return errors.New("refused")
		}
		return nil
	})

	if err := b.Initialize(48000, 256); err != nil {
		t.Fatal(err)
	}
	if initRate != 48000 || b.SampleRate() != 48000 || b.MaxBlockSize() != 256 {
		t.Errorf("Unexpected setup: rate=%f callback=%f block=%d", b.SampleRate(), initRate, b.MaxBlockSize())
	}

	if err := b.SetActive(true); err == nil {
		t.Error("Expected activation error from callback")
	}
	if err := b.SetActive(false); err != nil {
		t.Errorf("Deactivation failed: %v", err)
	}
	if resets != 1 {
		t.Errorf("Expected one reset on deactivation, got %d", resets)
	}
}
