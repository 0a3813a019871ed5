package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for per-file errors and summaries
	// (typically os.Stderr), so Writer carries only the product.
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// View selects the product to render.
	View View

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary writes run statistics to ErrorWriter after results.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool

	// TermWidth truncates long leaf text in tree output. Zero disables
	// truncation; New fills it in from Writer when it is a terminal.
	TermWidth int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		View:        ViewSource,
		Color:       "auto",
	}
}
