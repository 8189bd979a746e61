package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/doctract/doctract/pkg/batch"
	"github.com/doctract/doctract/pkg/config"
	"github.com/doctract/doctract/pkg/constants"
	"github.com/doctract/doctract/pkg/extract"
	"github.com/doctract/doctract/pkg/types"
	"github.com/doctract/doctract/pkg/utils"
)

var (
	inputPaths      []string
	outputPath      string
	filetypes       string
	accentRemove    bool
	ocrDisable      bool
	ocrForce        bool
	tolerantDisable bool
	langFilter      string
	ocrLang         string
	logFile         string
	verbose         bool
	silent          bool
)

// AppHandler encapsulates the batch run: configuration, logging, the
// extraction chain and the output writing
type AppHandler struct {
	config    *config.Config
	logger    zerolog.Logger
	logCloser io.Closer
}

// NewAppHandler creates an application handler
func NewAppHandler() *AppHandler {
	return &AppHandler{}
}

// Run validates the inputs, runs the batch extraction and writes one
// text file per successfully extracted document
func (h *AppHandler) Run() error {
	inputs, outputDir, err := h.resolvePaths()
	if err != nil {
		return err
	}

	if err := h.initialize(); err != nil {
		return err
	}
	defer h.closeLog()

	opts := types.Options{
		UseOCR:        !ocrDisable,
		ForceOCR:      ocrForce,
		Tolerant:      !tolerantDisable,
		RemoveAccents: accentRemove,
		AllowedLangs:  splitList(langFilter),
		OCRLang:       ocrLang,
	}

	h.printf("== %s ==\n", constants.AppName)
	h.printf("Extracting text contents, please wait...\n")

	chain := extract.NewChain(h.config, h.logger, opts)
	driver := batch.NewDriver(chain, h.logger, opts.Tolerant)

	report, err := driver.ExtractAll(context.Background(), inputs, splitList(filetypes))
	if err != nil {
		return err
	}

	h.printf("Total documents successfully extracted: %d\n", len(report.Results))

	if len(report.Errors) > 0 {
		h.printf("Total number of unreadable documents: %d. Here is the detailed list:\n", len(report.Errors))
		for _, docPath := range report.Errors {
			h.printf("* %s\n", docPath)
		}
	}

	if err := h.writeResults(report, outputDir); err != nil {
		return err
	}
	h.printf("Saved extracted text contents to %s\n", outputDir)

	return nil
}

// resolvePaths expands and validates the input and output paths
func (h *AppHandler) resolvePaths() ([]string, string, error) {
	var inputs []string
	for _, raw := range inputPaths {
		path, err := utils.ExpandPath(strings.TrimRight(raw, "/\\"))
		if err != nil {
			return nil, "", utils.WrapError(err, utils.ErrorKindValidation, "error resolving input path")
		}
		if !utils.PathExists(path) {
			return nil, "", utils.NewValidationError(
				fmt.Sprintf("specified input path does not exist: %s", path), nil)
		}
		inputs = append(inputs, path)
	}

	outputDir, err := utils.ExpandPath(strings.TrimRight(outputPath, "/\\"))
	if err != nil {
		return nil, "", utils.WrapError(err, utils.ErrorKindValidation, "error resolving output path")
	}
	if !utils.IsDir(outputDir) {
		return nil, "", utils.NewValidationError(
			"specified output path does not exist or is not a directory", nil)
	}

	return inputs, outputDir, nil
}

// initialize loads the configuration and sets up logging
func (h *AppHandler) initialize() error {
	h.config = config.LoadConfigWithEnvOverrides()

	if verbose {
		h.config.EnableVerbose = true
	}
	h.config.Silent = silent
	h.config.LogFile = logFile

	if err := h.config.Validate(); err != nil {
		return err
	}

	logger, err := h.setupLogger()
	if err != nil {
		return err
	}
	h.logger = logger

	return nil
}

// setupLogger builds a zerolog logger writing to the console and, when
// --log is given, to the log file as well
func (h *AppHandler) setupLogger() (zerolog.Logger, error) {
	var writers []io.Writer

	if !h.config.Silent {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if h.config.LogFile != "" {
		f, err := os.OpenFile(h.config.LogFile,
			os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.DefaultFilePermission)
		if err != nil {
			return zerolog.Nop(), utils.NewIOError("failed to open log file", err)
		}
		h.logCloser = f
		writers = append(writers, f)
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	level := zerolog.InfoLevel
	if h.config.EnableVerbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return logger, nil
}

// closeLog closes the log file writer, if any
func (h *AppHandler) closeLog() {
	if h.logCloser != nil {
		h.logCloser.Close()
		h.logCloser = nil
	}
}

// writeResults writes one <basename>.txt file per extracted document into
// the output directory, overwriting pre-existing files of the same name
func (h *AppHandler) writeResults(report *types.RunReport, outputDir string) error {
	for name, text := range report.Results {
		outFile := filepath.Join(outputDir, name+constants.TextFileExtension)
		if err := os.WriteFile(outFile, []byte(text), constants.DefaultFilePermission); err != nil {
			return utils.NewIOError("failed to write output file "+outFile, err)
		}
		h.logger.Debug().Str("file", outFile).Msg("wrote extracted text")
	}
	return nil
}

// printf prints user-facing progress to stdout unless --silent is set
func (h *AppHandler) printf(format string, args ...interface{}) {
	if !silent {
		fmt.Printf(format, args...)
	}
}

// splitList splits a semicolon-separated flag value into a list; an empty
// value yields nil, which disables the corresponding filter
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ";") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "doctract",
	Short: "Batch text extractor for PDF, DOC, DOCX and scanned documents",
	Long: `doctract extracts plain text from heterogeneous document files (PDF,
DOC, DOCX, images and other formats) using a chain of extraction
strategies: a generic converter, format-specific fallbacks and OCR for
documents without a usable text layer.

Each successfully extracted document is written as <basename>.txt into
the output directory. The run report lists documents that could not be
read.

External tools: antiword (.doc), calibre's ebook-convert (generic
conversion), tesseract (OCR) and pdftoppm (PDF rasterization). Tool
paths are auto-detected and can be overridden via ANTIWORD_PATH,
CALIBRE_PATH, TESSERACT_PATH and PDFTOPPM_PATH.

Examples:
  doctract -i ./archive -o ./texts                      # recursive batch run
  doctract -i scan.pdf -o . --ocr_force --ocr_lang fra  # OCR a scanned PDF
  doctract -i docs -o out --filetypes "pdf;doc" -a      # ASCII-only output
  doctract -i docs -o out --lang_filter ""              # disable language gate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler := NewAppHandler()
		if err := handler.Run(); err != nil {
			if appErr, ok := err.(*utils.AppError); ok {
				return fmt.Errorf("(%s) %s", appErr.Kind, appErr.Error())
			}
			return err
		}
		return nil
	},
	SilenceUsage: true,
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.Flags().StringSliceVarP(&inputPaths, "input", "i", nil,
		"Input files or directories to analyze (pdf, docx, doc or any other supported type)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output folder where to store the extracted text files")
	rootCmd.Flags().StringVar(&filetypes, "filetypes", constants.DefaultFiletypes,
		"Filter by filetype suffix, semicolon-separated (e.g. pdf;docx;doc)")
	rootCmd.Flags().BoolVarP(&accentRemove, "accent_remove", "a", false,
		"Replace accentuated characters by their non-accentuated counterpart")
	rootCmd.Flags().BoolVar(&ocrDisable, "ocr_disable", false,
		"Disable OCR, which is used if a document is unreadable otherwise")
	rootCmd.Flags().BoolVar(&ocrForce, "ocr_force", false,
		"Force OCR usage for any document type")
	rootCmd.Flags().BoolVar(&tolerantDisable, "tolerant_disable", false,
		"Abort the whole run on the first extraction error instead of skipping")
	rootCmd.Flags().StringVar(&langFilter, "lang_filter", constants.DefaultLangFilter,
		"Filter extracted text by language, semicolon-separated (e.g. fr;en); empty disables the check")
	rootCmd.Flags().StringVar(&ocrLang, "ocr_lang", "",
		"Language hint passed to the OCR engine (e.g. fra); empty uses the engine default")
	rootCmd.Flags().StringVarP(&logFile, "log", "l", "",
		"Path to a log file (output is written to both the console and the log file)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Verbose mode (show per-document progress and error details)")
	rootCmd.Flags().BoolVar(&silent, "silent", false,
		"No console output (a --log file, if specified, is still written)")

	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("output")
}
