package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/doctract/doctract/pkg/config"
	"github.com/doctract/doctract/pkg/interfaces"
	"github.com/doctract/doctract/pkg/types"
	"github.com/doctract/doctract/pkg/utils"
)

// AntiwordExtractor converts legacy .doc files using the antiword binary.
// The generic converter historically mishandles this format, so .doc goes
// straight here with no generic attempt.
type AntiwordExtractor struct {
	name   string
	config *config.Config
	logger zerolog.Logger
}

// NewAntiwordExtractor creates a new antiword extractor
func NewAntiwordExtractor(cfg *config.Config, log zerolog.Logger) interfaces.Extractor {
	return &AntiwordExtractor{
		name:   "antiword",
		config: cfg,
		logger: log,
	}
}

// Extract converts a .doc file to raw text bytes
func (e *AntiwordExtractor) Extract(ctx context.Context, inputFile string) ([]byte, error) {
	e.logger.Debug().Str("file", inputFile).Msg("running antiword conversion")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.config.AntiwordPath, inputFile)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, utils.NewToolError(
			fmt.Sprintf("antiword conversion failed: %s", stderr.String()), err)
	}

	return stdout.Bytes(), nil
}

// SupportsFile checks if this extractor supports the given file kind
func (e *AntiwordExtractor) SupportsFile(kind types.FileKind) bool {
	return kind == types.FileKindDoc
}

// Name returns the name of the extractor
func (e *AntiwordExtractor) Name() string {
	return e.name
}
