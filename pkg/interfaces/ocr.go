package interfaces

import "context"

// OCREngine defines the interface for OCR implementations
type OCREngine interface {
	// Name returns the name of the OCR tool
	Name() string

	// ExtractTextFromImage extracts raw text bytes from an image file
	ExtractTextFromImage(ctx context.Context, imagePath string) ([]byte, error)

	// ExtractTextFromPDF extracts raw text bytes from a PDF by
	// rasterizing each page and recognizing them in page order
	ExtractTextFromPDF(ctx context.Context, pdfPath string) ([]byte, error)
}

// LanguageDetector classifies the language of a text. It is an opaque
// collaborator; only the top-ranked guess and its probability are used.
type LanguageDetector interface {
	// Detect returns the highest-ranked (language code, probability)
	// guess for the text
	Detect(text string) (lang string, prob float64, err error)
}
