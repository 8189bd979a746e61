package interfaces

// TempManager manages temporary files scoped to a single extraction
// attempt. All tracked resources are removed when the attempt returns.
type TempManager interface {
	// CreateTempDir creates a temporary directory
	CreateTempDir(prefix string) (string, error)

	// CreateTempFile creates a temporary file
	CreateTempFile(prefix, suffix string) (string, error)

	// RegisterCleanupFunc registers a cleanup function
	RegisterCleanupFunc(fn func() error)

	// WithCleanup executes a function with automatic cleanup
	WithCleanup(fn func() error) error

	// Cleanup releases all tracked resources
	Cleanup() error
}
