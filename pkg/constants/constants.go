package constants

// Application constants
const (
	AppName = "doctract"
)

// File processing constants
const (
	// Default file permissions
	DefaultFilePermission = 0644
	DefaultDirPermission  = 0755

	// Output file naming
	TextFileExtension = ".txt"
)

// Batch defaults
const (
	// DefaultFiletypes is the semicolon-separated default extension filter
	DefaultFiletypes = "pdf;docx;doc"

	// DefaultLangFilter is the semicolon-separated default language
	// allow-list for the quality gate
	DefaultLangFilter = "en;fr;nl"
)

// Language gate constants
const (
	// LangConfidenceThreshold is the classifier confidence required for
	// the top-ranked language guess to pass the gate
	LangConfidenceThreshold = 0.9
)

// External tool defaults, overridable via environment variables
const (
	DefaultAntiwordPath  = "antiword"
	DefaultCalibrePath   = "ebook-convert"
	DefaultTesseractPath = "tesseract"
	DefaultPdftoppmPath  = "pdftoppm"
)

// Log levels
const (
	DefaultLogLevel = "info"
)
