// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldCommand    = "command"

	// Configuration fields.
	FieldLanguage = "language"
	FieldFormat   = "format"
	FieldJobs     = "jobs"
	FieldMaxDepth = "max_depth"
	FieldConfig   = "config"

	// Per-file fields.
	FieldRecords = "records"
	FieldBytes   = "bytes"
	FieldErrors  = "syntax_errors"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesFailed     = "files_failed"

	// Dependency graph fields.
	FieldSession   = "session"
	FieldSpecifier = "specifier"
	FieldResolved  = "resolved"
	FieldModules   = "modules"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
