package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"github.com/doctract/doctract/pkg/interfaces"
	"github.com/doctract/doctract/pkg/types"
	"github.com/doctract/doctract/pkg/utils"
)

// PDFTextExtractor reads the embedded text layer of a PDF in-process. It
// is the secondary native attempt for PDFs whose generic conversion
// failed; image-only scans come back empty and fall through to OCR.
type PDFTextExtractor struct {
	name   string
	logger zerolog.Logger
}

// NewPDFTextExtractor creates a new PDF text-layer extractor
func NewPDFTextExtractor(log zerolog.Logger) interfaces.Extractor {
	return &PDFTextExtractor{
		name:   "pdftext",
		logger: log,
	}
}

// Extract reads the PDF text layer as raw bytes
func (e *PDFTextExtractor) Extract(ctx context.Context, inputFile string) (raw []byte, err error) {
	e.logger.Debug().Str("file", inputFile).Msg("reading PDF text layer")

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// The pdf reader panics on some damaged cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			raw = nil
			err = utils.NewUnsupportedError("may not be a PDF file",
				fmt.Errorf("pdf reader panic: %v", r))
		}
	}()

	f, r, err := pdf.Open(inputFile)
	if err != nil {
		return nil, classifyPDFError(err)
	}
	defer f.Close()

	var buf bytes.Buffer
	plain, err := r.GetPlainText()
	if err != nil {
		return nil, classifyPDFError(err)
	}
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, utils.NewToolError("failed to read PDF text stream", err)
	}

	return buf.Bytes(), nil
}

// SupportsFile checks if this extractor supports the given file kind
func (e *PDFTextExtractor) SupportsFile(kind types.FileKind) bool {
	return kind == types.FileKindPDF
}

// Name returns the name of the extractor
func (e *PDFTextExtractor) Name() string {
	return e.name
}

// classifyPDFError maps reader failures onto the closed error kinds. A
// file the reader cannot even parse is not a usable PDF; anything else is
// a tool failure.
func classifyPDFError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "malformed") || strings.Contains(msg, "not a pdf") ||
		strings.Contains(msg, "invalid pdf") || strings.Contains(msg, "trailer") {
		return utils.NewUnsupportedError("may not be a PDF file", err)
	}
	return utils.NewToolError("PDF text layer extraction failed", err)
}
