package utils

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/doctract/doctract/pkg/interfaces"
)

// TempScope tracks temporary files and directories created during a single
// extraction attempt and removes them when the attempt finishes, success or
// failure. Temporary resources must never outlive the attempt that created
// them, or disk usage grows unbounded across a large batch.
type TempScope struct {
	tempFiles  []string
	tempDirs   []string
	cleanupFns []func() error
	mu         sync.Mutex
	logger     zerolog.Logger
}

// NewTempScope creates a new per-attempt temporary resource scope
func NewTempScope(log zerolog.Logger) *TempScope {
	return &TempScope{logger: log}
}

// CreateTempDir creates a tracked temporary directory
func (ts *TempScope) CreateTempDir(prefix string) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	tempDir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	ts.tempDirs = append(ts.tempDirs, tempDir)
	ts.logger.Debug().Str("dir", tempDir).Msg("created temp directory")
	return tempDir, nil
}

// CreateTempFile creates a tracked, closed temporary file and returns its
// path, ready to be handed to an external tool as an output target
func (ts *TempScope) CreateTempFile(prefix, suffix string) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	f, err := os.CreateTemp("", prefix+"*"+suffix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	ts.tempFiles = append(ts.tempFiles, f.Name())
	ts.logger.Debug().Str("file", f.Name()).Msg("created temp file")
	return f.Name(), nil
}

// RegisterCleanupFunc registers an additional cleanup function
func (ts *TempScope) RegisterCleanupFunc(fn func() error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.cleanupFns = append(ts.cleanupFns, fn)
}

// WithCleanup executes a function and releases all tracked resources on
// every exit path
func (ts *TempScope) WithCleanup(fn func() error) error {
	defer func() {
		if err := ts.Cleanup(); err != nil {
			ts.logger.Warn().Err(err).Msg("temporary file cleanup failed")
		}
	}()
	return fn()
}

// Cleanup removes all tracked temporary resources
func (ts *TempScope) Cleanup() error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	var errs []error

	for _, fn := range ts.cleanupFns {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, file := range ts.tempFiles {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("failed to remove temp file %s: %w", file, err))
		}
	}

	for _, dir := range ts.tempDirs {
		if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("failed to remove temp dir %s: %w", dir, err))
		}
	}

	ts.tempFiles = ts.tempFiles[:0]
	ts.tempDirs = ts.tempDirs[:0]
	ts.cleanupFns = ts.cleanupFns[:0]

	if len(errs) > 0 {
		return fmt.Errorf("cleanup failed with %d errors: %v", len(errs), errs)
	}
	return nil
}

var _ interfaces.TempManager = (*TempScope)(nil)
