package draw

import (
	"fmt"
	"log/slog"

	"github.com/corvidae/plume/render/core"
)

// GPU copy alignment: index payloads are padded to this before upload.
const copyAlign = 4

// bufferSlot is one growable GPU buffer. A slot keeps its buffer as long as
// the required size fits; growth releases the old buffer and allocates one
// of exactly the required size.
type bufferSlot struct {
	kind  core.BufferKind
	label string
	buf   core.Buffer
	size  int
}

func (s *bufferSlot) ensure(b core.Backend, log *slog.Logger, required int) error {
	if s.buf != nil && required <= s.size {
		return nil
	}
	if s.buf != nil {
		log.Debug("buffer grow", "buffer", s.label, "from", s.size, "to", required)
		s.buf.Release()
		s.buf = nil
	}
	buf, err := b.CreateBuffer(s.kind, required)
	if err != nil {
		return fmt.Errorf("draw: create %s buffer (%d bytes): %w", s.label, required, err)
	}
	s.buf = buf
	s.size = required
	return nil
}

func (s *bufferSlot) upload(data []byte) error {
	if err := s.buf.Write(0, data); err != nil {
		return fmt.Errorf("draw: upload %s buffer: %w", s.label, err)
	}
	return nil
}

func (s *bufferSlot) release() {
	if s.buf != nil {
		s.buf.Release()
		s.buf = nil
		s.size = 0
	}
}
