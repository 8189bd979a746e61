package interfaces

import (
	"context"

	"github.com/doctract/doctract/pkg/types"
)

// Extractor defines one native text extraction strategy. It produces the
// raw bytes emitted by the underlying tool; normalization and the language
// gate are applied by the caller.
type Extractor interface {
	// Extract extracts raw text bytes from the given file
	Extract(ctx context.Context, inputFile string) ([]byte, error)

	// SupportsFile checks if this extractor supports the given file kind
	SupportsFile(kind types.FileKind) bool

	// Name returns the name of the extractor
	Name() string
}

// DocumentExtractor runs the whole strategy chain for one document and
// returns the final normalized, validated text
type DocumentExtractor interface {
	// Extract extracts text from a document, applying the full fallback
	// chain
	Extract(ctx context.Context, inputFile string) (string, error)
}
