// Package batch drives extraction over a set of input documents. It
// enumerates candidates deterministically, invokes the strategy chain per
// document, and classifies failures into silent skips, tolerated errors
// and fatal aborts.
package batch

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/doctract/doctract/pkg/interfaces"
	"github.com/doctract/doctract/pkg/types"
	"github.com/doctract/doctract/pkg/utils"
)

// Driver accumulates the run report across a whole batch. It owns the
// results and error collections exclusively; documents are processed one
// at a time, each to completion.
type Driver struct {
	extractor interfaces.DocumentExtractor
	logger    zerolog.Logger
	tolerant  bool
}

// NewDriver creates a batch driver over the given document extractor
func NewDriver(extractor interfaces.DocumentExtractor, log zerolog.Logger, tolerant bool) *Driver {
	return &Driver{
		extractor: extractor,
		logger:    log,
		tolerant:  tolerant,
	}
}

// ExtractAll processes every candidate document under the given inputs.
// Each input is either a directory (walked recursively with entries in
// sorted order) or a single file. Candidates whose name does not end with
// one of the filetype suffixes are skipped without record. Results are
// keyed by basename; a later document with the same basename overwrites
// an earlier one.
func (d *Driver) ExtractAll(ctx context.Context, inputs []string, filetypes []string) (*types.RunReport, error) {
	candidates, err := d.enumerate(inputs, filetypes)
	if err != nil {
		return nil, err
	}

	report := types.NewRunReport()

	for _, docPath := range candidates {
		d.logger.Debug().Str("file", docPath).Msg("processing file")

		text, err := d.extractor.Extract(ctx, docPath)
		if err != nil {
			if err := d.classifyFailure(docPath, err, report); err != nil {
				return nil, err
			}
			continue
		}

		report.Results[filepath.Base(docPath)] = text
	}

	return report, nil
}

// enumerate flattens the inputs into an ordered candidate list. File
// inputs keep their given order; directory inputs are walked recursively
// with lexically sorted entries for determinism.
func (d *Driver) enumerate(inputs []string, filetypes []string) ([]string, error) {
	var candidates []string

	for _, input := range inputs {
		if utils.IsDir(input) {
			err := filepath.WalkDir(input, func(path string, entry fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if entry.IsDir() {
					return nil
				}
				if matchesFiletype(path, filetypes) {
					candidates = append(candidates, path)
				}
				return nil
			})
			if err != nil {
				return nil, utils.WrapError(err, utils.ErrorKindIO, "failed to walk input directory "+input)
			}
			continue
		}

		if matchesFiletype(input, filetypes) {
			candidates = append(candidates, input)
		}
	}

	return candidates, nil
}

// classifyFailure decides what a per-document failure means for the run.
// Inputs that were never readable documents, and documents with no
// extractable text, are skipped silently. Everything else is tolerated
// and recorded, or aborts the batch when tolerance is off.
func (d *Driver) classifyFailure(docPath string, err error, report *types.RunReport) error {
	switch utils.KindOf(err) {
	case utils.ErrorKindUnsupported, utils.ErrorKindNoText:
		d.logger.Debug().Err(err).Str("file", docPath).
			Msg("file might not contain any text or unrecognized format, skipping")
		return nil
	default:
		if d.tolerant {
			d.logger.Warn().Err(err).Str("file", docPath).
				Msg("error while processing file")
			report.Errors = append(report.Errors, docPath)
			return nil
		}
		return err
	}
}

// matchesFiletype checks the path against the allowed suffixes. An empty
// filter accepts everything.
func matchesFiletype(path string, filetypes []string) bool {
	if len(filetypes) == 0 {
		return true
	}
	for _, ft := range filetypes {
		if ft != "" && strings.HasSuffix(path, ft) {
			return true
		}
	}
	return false
}
