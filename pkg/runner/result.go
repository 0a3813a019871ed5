package runner

import (
	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/syntax"
)

// FileOutcome holds everything produced for one input file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Language is the grammar the file was parsed with.
	Language string

	// Tree is the parsed syntax tree. Nil when Error is set.
	Tree *syntax.Tree

	// Sequence is the linearized record sequence. Nil when Error is set.
	Sequence flat.Sequence

	// Error is set if the file could not be read, parsed or linearized.
	Error error
}

// Content returns the source bytes, or nil when the file failed.
func (o FileOutcome) Content() []byte {
	if o.Tree == nil {
		return nil
	}
	return o.Tree.Content
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// Records is the total number of records across all sequences.
	Records int

	// SyntaxErrors counts ERROR nodes the grammar recovered from.
	SyntaxErrors int

	// FilesWithSyntaxErrors is the number of files containing ERROR nodes.
	FilesWithSyntaxErrors int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to process.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasSyntaxErrors reports whether any file parsed with recovered errors.
func (r *Result) HasSyntaxErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.SyntaxErrors > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Records += len(outcome.Sequence)

	errs := countSyntaxErrors(outcome.Sequence)
	r.Stats.SyntaxErrors += errs
	if errs > 0 {
		r.Stats.FilesWithSyntaxErrors++
	}
}

func countSyntaxErrors(seq flat.Sequence) int {
	n := 0
	for i := range seq {
		if seq[i].Kind.Family == syntax.FamilyError {
			n++
		}
	}
	return n
}
