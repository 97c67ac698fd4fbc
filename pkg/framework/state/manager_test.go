package state

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/redetach/multidist/pkg/framework/param"
)

func newRegistry(t *testing.T) *param.Registry {
	t.Helper()
	r := param.NewRegistry()
	err := r.Add(
		param.NormalizedParameter(0, "Gain", 0.5).Build(),
		param.Choice(1, "Selection", []param.ChoiceOption{{Name: "Default"}, {Name: "Harsh"}}).Build(),
	)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestSaveLoad(t *testing.T) {
	src := newRegistry(t)
	src.Get(0).SetValue(0.8)
	src.Get(1).SetValue(1)

	var buf bytes.Buffer
	if err := NewManager(src).Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	dst := newRegistry(t)
	if err := NewManager(dst).Load(&buf); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := dst.Get(0).GetValue(); got != 0.8 {
		t.Errorf("Gain = %f, want 0.8", got)
	}
	if got := dst.Get(1).GetValue(); got != 1 {
		t.Errorf("Selection = %f, want 1", got)
	}
}

func TestLoadErrors(t *testing.T) {
	var valid bytes.Buffer
	if err := NewManager(newRegistry(t)).Save(&valid); err != nil {
		t.Fatal(err)
	}

	newer := append([]byte(magic), 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(newer[len(magic):], 99)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"Empty", nil, io.EOF},
		{"BadMagic", []byte("NOTOURS-------"), ErrInvalidFormat},
		{"Truncated", valid.Bytes()[:len(valid.Bytes())-6], io.ErrUnexpectedEOF},
		{"NewerVersion", newer, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRegistry(t)
			r.Get(0).SetValue(0.3)

			err := NewManager(r).Load(bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if r.Get(0).GetValue() != 0.3 {
				t.Error("Failed load must not change parameters")
			}
		})
	}
}

func TestCustomState(t *testing.T) {
	m := NewManager(newRegistry(t))
	var loaded []byte
	m.SetCustomState(
		func(w io.Writer) error {
			_, err := w.Write([]byte("extra"))
			return err
		},
		func(r io.Reader) error {
			var err error
			loaded, err = io.ReadAll(r)
			return err
		},
	)

	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatal(err)
	}
	if err := m.Load(&buf); err != nil {
		t.Fatal(err)
	}
	if string(loaded) != "extra" {
		t.Errorf("Custom state = %q, want extra", loaded)
	}
}
