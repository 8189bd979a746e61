package constants

import (
	"os/exec"
	"runtime"
)

// PlatformConfig lists per-platform candidate locations for the external
// tools the pipeline shells out to
type PlatformConfig struct {
	AntiwordPaths  []string
	CalibrePaths   []string
	TesseractPaths []string
	PdftoppmPaths  []string
}

// GetPlatformConfig returns platform-specific tool locations
func GetPlatformConfig() *PlatformConfig {
	switch runtime.GOOS {
	case "windows":
		return &PlatformConfig{
			AntiwordPaths: []string{
				"antiword.exe",
				"C:\\antiword\\antiword.exe",
			},
			CalibrePaths: []string{
				"ebook-convert.exe",
				"C:\\Program Files\\Calibre2\\ebook-convert.exe",
				"C:\\Program Files (x86)\\Calibre2\\ebook-convert.exe",
			},
			TesseractPaths: []string{
				"tesseract.exe",
				"C:\\Program Files\\Tesseract-OCR\\tesseract.exe",
			},
			PdftoppmPaths: []string{
				"pdftoppm.exe",
			},
		}
	case "darwin":
		return &PlatformConfig{
			AntiwordPaths: []string{
				DefaultAntiwordPath,
				"/usr/local/bin/antiword",
				"/opt/homebrew/bin/antiword",
			},
			CalibrePaths: []string{
				"/Applications/calibre.app/Contents/MacOS/ebook-convert",
				DefaultCalibrePath,
				"/usr/local/bin/ebook-convert",
				"/opt/homebrew/bin/ebook-convert",
			},
			TesseractPaths: []string{
				DefaultTesseractPath,
				"/usr/local/bin/tesseract",
				"/opt/homebrew/bin/tesseract",
			},
			PdftoppmPaths: []string{
				DefaultPdftoppmPath,
				"/usr/local/bin/pdftoppm",
				"/opt/homebrew/bin/pdftoppm",
			},
		}
	default: // Linux and other Unix-like systems
		return &PlatformConfig{
			AntiwordPaths: []string{
				DefaultAntiwordPath,
				"/usr/bin/antiword",
				"/usr/local/bin/antiword",
			},
			CalibrePaths: []string{
				DefaultCalibrePath,
				"/usr/bin/ebook-convert",
				"/usr/local/bin/ebook-convert",
				"/snap/bin/ebook-convert",
			},
			TesseractPaths: []string{
				DefaultTesseractPath,
				"/usr/bin/tesseract",
				"/usr/local/bin/tesseract",
			},
			PdftoppmPaths: []string{
				DefaultPdftoppmPath,
				"/usr/bin/pdftoppm",
				"/usr/local/bin/pdftoppm",
			},
		}
	}
}

// FindTool returns the first candidate resolvable on this system, or the
// first candidate as-is so the eventual exec failure names the tool
func FindTool(candidates []string) string {
	for _, candidate := range candidates {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}

// IsWindows returns true if running on Windows
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
