package docModel

import (
	"errors"
	"fmt"
)

// ErrEmptyCorpus is returned when extraction produced no usable chunks,
// which blocks index building.
var ErrEmptyCorpus = errors.New("no chunks in corpus")

// ExtractionError wraps a per-page or per-sheet failure. These are
// recoverable: the failing unit is skipped and the rest of the document
// is still processed.
type ExtractionError struct {
	DocName string
	Unit    string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s of %s: %v", e.Unit, e.DocName, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// GenerationUnavailableError is the typed outcome of a failed model
// invocation: binary not found, non-zero exit, timeout or empty output.
// The underlying cause is always carried, never swallowed.
type GenerationUnavailableError struct {
	Backend string
	Cause   error
}

func (e *GenerationUnavailableError) Error() string {
	return fmt.Sprintf("model generation unavailable (%s backend): %v", e.Backend, e.Cause)
}

func (e *GenerationUnavailableError) Unwrap() error { return e.Cause }

// IsGenerationUnavailable reports whether err is a typed generation
// failure, so callers can show a fallback message instead of crashing.
func IsGenerationUnavailable(err error) bool {
	var ge *GenerationUnavailableError
	return errors.As(err, &ge)
}
