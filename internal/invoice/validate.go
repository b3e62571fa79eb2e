package invoice

import (
	"bytes"
	"errors"
	"fmt"
)

// MinDocumentSize is the plausibility floor; anything smaller is treated as
// a truncated or empty document.
const MinDocumentSize = 1000

var magic = []byte("%PDF")

// ErrRenderFailure matches every *RenderError via errors.Is.
var ErrRenderFailure = errors.New("invoice: render failure")

// RenderError reports a structurally invalid document. Rendering is pure, so
// the caller may simply render again.
type RenderError struct {
	Reason string
	Size   int
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("invoice: render failure: %s (%d bytes)", e.Reason, e.Size)
}

func (e *RenderError) Is(target error) bool { return target == ErrRenderFailure }

func (e *RenderError) Retryable() bool { return true }

// Validate checks the output buffer before it is served.
func Validate(buf []byte) error {
	switch {
	case len(buf) == 0:
		return &RenderError{Reason: "empty buffer"}
	case !bytes.HasPrefix(buf, magic):
		return &RenderError{Reason: "missing %PDF header", Size: len(buf)}
	case len(buf) < MinDocumentSize:
		return &RenderError{Reason: "document suspiciously small", Size: len(buf)}
	}
	return nil
}
