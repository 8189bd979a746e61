package types

import (
	"path/filepath"
	"strings"
)

// FileKind classifies an input document by its filename extension
type FileKind string

const (
	FileKindPDF   FileKind = "pdf"
	FileKindDoc   FileKind = "doc"
	FileKindDocx  FileKind = "docx"
	FileKindHTML  FileKind = "html"
	FileKindImage FileKind = "image"
	FileKindOther FileKind = "other"
)

// imageExtensions lists raster formats handed straight to the OCR engine
var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"bmp": true, "webp": true, "tiff": true, "tif": true,
	"pbm": true, "pgm": true, "ppm": true,
}

// KindOf infers the file kind from the path's extension
func KindOf(path string) FileKind {
	ext := strings.ToLower(filepath.Ext(path))
	ext = strings.TrimPrefix(ext, ".")

	switch {
	case ext == "pdf":
		return FileKindPDF
	case ext == "doc":
		return FileKindDoc
	case ext == "docx":
		return FileKindDocx
	case ext == "html" || ext == "htm" || ext == "xhtml":
		return FileKindHTML
	case imageExtensions[ext]:
		return FileKindImage
	default:
		return FileKindOther
	}
}

// Options control the extraction pipeline for a whole run
type Options struct {
	// UseOCR enables the OCR fallback when native extraction yields no
	// usable text
	UseOCR bool

	// ForceOCR skips all native attempts and goes straight to OCR
	ForceOCR bool

	// Tolerant continues past per-document failures instead of aborting
	// the batch
	Tolerant bool

	// RemoveAccents transliterates accented characters to plain ASCII
	RemoveAccents bool

	// AllowedLangs is the language allow-list for the quality gate.
	// Empty disables the gate.
	AllowedLangs []string

	// OCRLang is an optional language hint passed to the OCR engine
	OCRLang string
}

// RunReport aggregates the outcome of one batch run. Results maps the
// document basename to its extracted text; Errors lists the paths of
// documents whose extraction failed but was tolerated.
type RunReport struct {
	Results map[string]string
	Errors  []string
}

// NewRunReport creates an empty run report
func NewRunReport() *RunReport {
	return &RunReport{
		Results: make(map[string]string),
	}
}
