// Package config defines core configuration types for tsxflat.
// These types are pure data structures with no dependency on the loader.
package config

// OutputFormat specifies how command results are rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// Language values accepted by the language setting.
const (
	LanguageAuto       = "auto"
	LanguageTSX        = "tsx"
	LanguageTypeScript = "typescript"
	LanguageJavaScript = "javascript"
)

// DefaultMaxDepth is the default nesting limit for linearization.
const DefaultMaxDepth = 4096

// DepsConfig controls the dependency graph command.
type DepsConfig struct {
	// SourceRoots are searched, in order, for bare import specifiers.
	SourceRoots []string `mapstructure:"source_roots" yaml:"source_roots"`

	// Extensions are tried, in order, when resolving a specifier.
	// The empty string means the specifier as written.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// StripPrefix is removed from file paths in diagram labels.
	StripPrefix string `mapstructure:"strip_prefix" yaml:"strip_prefix"`

	// Title is written as the diagram title when set.
	Title string `mapstructure:"title" yaml:"title"`
}

// Config is the root configuration structure for tsxflat.
type Config struct {
	// Language selects the grammar: auto, tsx, typescript or javascript.
	Language string `mapstructure:"language" yaml:"language"`

	// Format is the output format.
	Format OutputFormat `mapstructure:"format" yaml:"format"`

	// Jobs specifies the number of parallel workers (0 = GOMAXPROCS).
	Jobs int `mapstructure:"jobs" yaml:"jobs"`

	// MaxDepth bounds syntax tree nesting.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Extensions lists the file extensions discovered in directories.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Deps configures the dependency graph.
	Deps DepsConfig `mapstructure:"deps" yaml:"deps"`

	// CLI-level options (not persisted to config files).

	// Check makes src compare the regenerated text with the input.
	Check bool `mapstructure:"-" yaml:"-"`

	// Output is a file to write instead of stdout.
	Output string `mapstructure:"-" yaml:"-"`
}

// DefaultExtensions are the source extensions discovered by default.
func DefaultExtensions() []string {
	return []string{".tsx", ".ts", ".jsx", ".js", ".mts", ".cts", ".mjs", ".cjs"}
}

// DefaultDepsExtensions are tried in order when resolving imports.
func DefaultDepsExtensions() []string {
	return []string{"", ".ts", ".js", ".jsx", ".tsx"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Language:   LanguageAuto,
		Format:     FormatText,
		Jobs:       0, // 0 means use GOMAXPROCS
		MaxDepth:   DefaultMaxDepth,
		Ignore:     nil,
		Extensions: DefaultExtensions(),
		Deps: DepsConfig{
			SourceRoots: []string{"src"},
			Extensions:  DefaultDepsExtensions(),
		},
	}
}
