// Package extract implements the per-document extraction strategy chain:
// a native attempt chosen by file kind, a PDF-specific secondary attempt,
// and an OCR fallback for documents whose native text is empty or fails
// the language gate.
package extract

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/doctract/doctract/pkg/config"
	"github.com/doctract/doctract/pkg/interfaces"
	"github.com/doctract/doctract/pkg/langgate"
	"github.com/doctract/doctract/pkg/textnorm"
	"github.com/doctract/doctract/pkg/types"
	"github.com/doctract/doctract/pkg/utils"
)

// Chain runs the ordered extraction strategies for one document
type Chain struct {
	opts   types.Options
	logger zerolog.Logger

	doc     interfaces.Extractor
	generic interfaces.Extractor
	pdfText interfaces.Extractor
	html    interfaces.Extractor
	ocr     interfaces.OCREngine
	gate    *langgate.Gate
}

// NewChain wires the chain with its production collaborators. The
// language detector model is only loaded when the gate is enabled.
func NewChain(cfg *config.Config, log zerolog.Logger, opts types.Options) *Chain {
	var detector interfaces.LanguageDetector
	if len(opts.AllowedLangs) > 0 {
		detector = langgate.NewLinguaDetector()
	}

	ocr := NewTesseractEngine(cfg, log)
	ocr.Lang = opts.OCRLang

	return &Chain{
		opts:    opts,
		logger:  log,
		doc:     NewAntiwordExtractor(cfg, log),
		generic: NewCalibreExtractor(cfg, log),
		pdfText: NewPDFTextExtractor(log),
		html:    NewHTMLExtractor(log),
		ocr:     ocr,
		gate:    langgate.New(detector, opts.AllowedLangs, log),
	}
}

// Extract runs the strategy chain for one document and returns the
// normalized, validated text
func (c *Chain) Extract(ctx context.Context, inputFile string) (string, error) {
	kind := types.KindOf(inputFile)

	if c.opts.ForceOCR {
		return c.extractWithOCR(ctx, inputFile, kind, nil)
	}

	raw, nativeErr := c.nativeAttempt(ctx, inputFile, kind)

	var text string
	softErr := nativeErr
	if softErr == nil {
		text, softErr = c.validate(raw)
	}

	if softErr == nil {
		return textnorm.CollapseWhitespace(text), nil
	}

	c.logger.Debug().Err(softErr).Str("file", inputFile).Msg("native extraction yielded no usable text")

	if !c.opts.Tolerant || !c.opts.UseOCR {
		return "", softErr
	}

	return c.extractWithOCR(ctx, inputFile, kind, softErr)
}

// nativeAttempt performs the non-OCR extraction for the file kind. Each
// strategy declares the kinds it handles: antiword claims legacy .doc,
// the in-process HTML parser claims markup, the generic converter takes
// everything else, with the PDF text layer as a secondary attempt when
// the generic converter fails on a PDF.
func (c *Chain) nativeAttempt(ctx context.Context, inputFile string, kind types.FileKind) ([]byte, error) {
	switch {
	case c.doc.SupportsFile(kind):
		return c.doc.Extract(ctx, inputFile)
	case c.html.SupportsFile(kind):
		return c.html.Extract(ctx, inputFile)
	default:
		raw, err := c.generic.Extract(ctx, inputFile)
		if err != nil && c.pdfText.SupportsFile(kind) {
			c.logger.Debug().Err(err).Str("file", inputFile).
				Msg("generic conversion failed, trying PDF text layer")
			return c.pdfText.Extract(ctx, inputFile)
		}
		return raw, err
	}
}

// validate normalizes a native attempt's raw bytes and applies the
// language gate. Empty output and rejected languages both classify as
// no extractable text.
func (c *Chain) validate(raw []byte) (string, error) {
	text, err := textnorm.Normalize(raw, c.opts.RemoveAccents)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", utils.NewNoTextError("no text extractable from the specified file")
	}
	if !c.gate.Accept(text) {
		return "", utils.NewNoTextError("no text extractable or language unrecognized from the specified file")
	}
	return text, nil
}

// extractWithOCR runs the OCR strategy. OCR is the last resort: its
// output is returned as long as it is non-blank after normalization and
// is never re-run through the language gate.
func (c *Chain) extractWithOCR(ctx context.Context, inputFile string, kind types.FileKind, softErr error) (string, error) {
	c.logger.Info().Str("file", inputFile).Msg("decoding document via OCR, this takes a while")

	var raw []byte
	var err error
	if kind == types.FileKindPDF {
		raw, err = c.ocr.ExtractTextFromPDF(ctx, inputFile)
	} else {
		raw, err = c.ocr.ExtractTextFromImage(ctx, inputFile)
	}
	if err != nil {
		return "", err
	}

	text, err := textnorm.Normalize(raw, c.opts.RemoveAccents)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		// OCR produced nothing either; surface the original soft
		// failure when there is one
		if softErr != nil {
			return "", softErr
		}
		return "", utils.NewNoTextError("no text extractable from the specified file")
	}

	return textnorm.CollapseWhitespace(text), nil
}

var _ interfaces.DocumentExtractor = (*Chain)(nil)
