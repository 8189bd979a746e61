package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/doctract/doctract/pkg/config"
	"github.com/doctract/doctract/pkg/interfaces"
	"github.com/doctract/doctract/pkg/utils"
)

// TesseractEngine performs OCR by shelling out to tesseract. Tesseract
// cannot write recognized text to stdout in every supported version, so
// each invocation targets a temporary output file that is read back and
// removed. PDFs are rasterized page by page with pdftoppm first.
type TesseractEngine struct {
	config *config.Config
	logger zerolog.Logger

	// Lang is an optional language hint for tesseract (e.g. "fra");
	// empty uses the engine default
	Lang string
}

// NewTesseractEngine creates a new tesseract OCR engine
func NewTesseractEngine(cfg *config.Config, log zerolog.Logger) *TesseractEngine {
	return &TesseractEngine{
		config: cfg,
		logger: log,
	}
}

// Name returns the name of the OCR tool
func (e *TesseractEngine) Name() string {
	return "tesseract"
}

// ExtractTextFromImage runs tesseract on a single image file and returns
// the recognized raw bytes
func (e *TesseractEngine) ExtractTextFromImage(ctx context.Context, imagePath string) ([]byte, error) {
	// tesseract needs absolute paths
	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		return nil, utils.NewIOError("failed to resolve image path", err)
	}

	e.logger.Debug().Str("image", absPath).Msg("running tesseract")

	scope := utils.NewTempScope(e.logger)
	var content []byte

	runErr := scope.WithCleanup(func() error {
		outputFile, err := scope.CreateTempFile("ocr-", ".txt")
		if err != nil {
			return utils.NewIOError("failed to create temporary output file", err)
		}

		// tesseract always appends .txt to the output base
		outputBase := strings.TrimSuffix(outputFile, ".txt")

		args := []string{absPath, outputBase}
		if e.Lang != "" {
			args = append(args, "-l", e.Lang)
		}

		var stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, e.config.TesseractPath, args...)
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			return classifyTesseractError(stderr.String(), err)
		}

		content, err = os.ReadFile(outputFile)
		if err != nil {
			return utils.NewIOError("error reading tesseract output file", err)
		}
		return nil
	})
	if runErr != nil {
		return nil, runErr
	}

	return content, nil
}

// ExtractTextFromPDF rasterizes each PDF page into a fresh temporary
// directory, recognizes the pages in lexicographic (= page) order and
// concatenates the raw outputs with no separator. The directory is
// removed on every exit path.
func (e *TesseractEngine) ExtractTextFromPDF(ctx context.Context, pdfPath string) ([]byte, error) {
	e.logger.Debug().Str("pdf", pdfPath).Msg("rasterizing PDF for OCR")

	scope := utils.NewTempScope(e.logger)
	var contents [][]byte

	runErr := scope.WithCleanup(func() error {
		tempDir, err := scope.CreateTempDir("ocr-pages-")
		if err != nil {
			return utils.NewIOError("failed to create temporary page directory", err)
		}

		base := filepath.Join(tempDir, "conv")

		var stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, e.config.PdftoppmPath, pdfPath, base)
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			return utils.NewToolError(
				fmt.Sprintf("pdftoppm rasterization failed: %s", stderr.String()), err)
		}

		// os.ReadDir returns entries sorted by filename, which matches
		// pdftoppm's zero-padded page numbering
		entries, err := os.ReadDir(tempDir)
		if err != nil {
			return utils.NewIOError("failed to list rasterized pages", err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			pagePath := filepath.Join(tempDir, entry.Name())
			pageContent, err := e.ExtractTextFromImage(ctx, pagePath)
			if err != nil {
				return err
			}
			contents = append(contents, pageContent)
		}
		return nil
	})
	if runErr != nil {
		return nil, runErr
	}

	return bytes.Join(contents, nil), nil
}

// classifyTesseractError maps a tesseract failure onto the closed error
// kinds using its stderr, once, at this boundary
func classifyTesseractError(stderr string, cause error) error {
	if strings.Contains(stderr, "Unsupported image type") {
		return utils.NewUnsupportedError("unsupported image type", cause)
	}
	return utils.NewToolError(
		fmt.Sprintf("tesseract OCR failed: %s", strings.TrimSpace(stderr)), cause)
}

var _ interfaces.OCREngine = (*TesseractEngine)(nil)
