package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/doctract/doctract/pkg/config"
	"github.com/doctract/doctract/pkg/interfaces"
	"github.com/doctract/doctract/pkg/types"
	"github.com/doctract/doctract/pkg/utils"
)

// CalibreExtractor is the generic document parser. It shells out to
// calibre's ebook-convert, which reads most document formats and writes a
// plain text rendition to a temporary file.
type CalibreExtractor struct {
	name   string
	config *config.Config
	logger zerolog.Logger
}

// NewCalibreExtractor creates a new calibre generic extractor
func NewCalibreExtractor(cfg *config.Config, log zerolog.Logger) interfaces.Extractor {
	return &CalibreExtractor{
		name:   "calibre",
		config: cfg,
		logger: log,
	}
}

// Extract converts a document to raw text bytes using ebook-convert
func (e *CalibreExtractor) Extract(ctx context.Context, inputFile string) ([]byte, error) {
	e.logger.Debug().Str("file", inputFile).Msg("running calibre conversion")

	// A .docx that is not a valid zip container is not a readable
	// document at all; classify it here, at the tool boundary.
	if types.KindOf(inputFile) == types.FileKindDocx {
		if err := probeZipContainer(inputFile); err != nil {
			return nil, utils.NewUnsupportedError("file is not a zip file", err)
		}
	}

	scope := utils.NewTempScope(e.logger)
	var content []byte

	err := scope.WithCleanup(func() error {
		outputFile, err := scope.CreateTempFile("calibre-", ".txt")
		if err != nil {
			return utils.NewIOError("failed to create temporary output file", err)
		}

		var stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, e.config.CalibrePath, inputFile, outputFile)
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			return utils.NewToolError(
				fmt.Sprintf("calibre conversion failed: %s", stderr.String()), err)
		}

		content, err = os.ReadFile(outputFile)
		if err != nil {
			return utils.NewIOError("error reading calibre-converted file", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return content, nil
}

// SupportsFile checks if this extractor supports the given file kind
func (e *CalibreExtractor) SupportsFile(kind types.FileKind) bool {
	switch kind {
	case types.FileKindDoc, types.FileKindImage:
		return false
	default:
		return true
	}
}

// Name returns the name of the extractor
func (e *CalibreExtractor) Name() string {
	return e.name
}

// probeZipContainer verifies that the file opens as a zip archive
func probeZipContainer(path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	return r.Close()
}
