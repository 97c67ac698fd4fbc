package vst3

import (
	"bytes"
	"errors"
	"io"
)

// Seek origins for Stream.Seek, matching the host's IBStream modes
const (
	SeekSet = io.SeekStart
	SeekCur = io.SeekCurrent
	SeekEnd = io.SeekEnd
)

// Stream is the host's state stream (IBStream) seen from Go
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
}

// MemoryStream is an in-memory Stream, used when the host state has to
// be produced or consumed without a host-provided stream.
type MemoryStream struct {
	buf []byte
	pos int64
}

// NewMemoryStream creates a stream over a copy of data
func NewMemoryStream(data []byte) *MemoryStream {
	return &MemoryStream{buf: append([]byte(nil), data...)}
}

// Read reads from the current position
func (s *MemoryStream) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.buf)) {
		return 0, io.EOF
	}
	n := copy(p, s.buf[s.pos:])
	s.pos += int64(n)
	return n, nil
}

// Write writes at the current position, growing the buffer as needed
func (s *MemoryStream) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	n := copy(s.buf[s.pos:end], p)
	s.pos = end
	return n, nil
}

// Seek moves the stream position
func (s *MemoryStream) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case SeekSet:
		abs = offset
	case SeekCur:
		abs = s.pos + offset
	case SeekEnd:
		abs = int64(len(s.buf)) + offset
	default:
		return 0, errors.New("vst3: invalid seek whence")
	}
	if abs < 0 {
		return 0, errors.New("vst3: negative position")
	}
	s.pos = abs
	return abs, nil
}

// Bytes returns the full stream contents
func (s *MemoryStream) Bytes() []byte {
	return s.buf
}

// ReadAll reads everything from the current position to the end
func ReadAll(s Stream) ([]byte, error) {
	var b bytes.Buffer
	if _, err := io.Copy(&b, s); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
