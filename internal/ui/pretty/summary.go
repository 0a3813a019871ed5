package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/tsxflat/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files, 1240 records, 1 failed, 2 syntax errors in 1 file".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("%d %s", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)),
		fmt.Sprintf("%d %s", stats.Records, plural(stats.Records, "record", "records")),
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	if stats.SyntaxErrors > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d syntax %s in %d %s",
			stats.SyntaxErrors, plural(stats.SyntaxErrors, "error", "errors"),
			stats.FilesWithSyntaxErrors, plural(stats.FilesWithSyntaxErrors, wordFile, wordFiles),
		)))
	}

	if stats.FilesErrored == 0 && stats.SyntaxErrors == 0 {
		return s.Success.Render("OK") + s.Dim.Render(" ("+strings.Join(parts, ", ")+")") + "\n"
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files processed:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("  Records:           " +
		s.SummaryValue.Render(strconv.Itoa(stats.Records)) + "\n")

	if stats.SyntaxErrors > 0 {
		builder.WriteString("  Syntax errors:     " +
			s.Warning.Render(strconv.Itoa(stats.SyntaxErrors)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be processed"))
	case stats.SyntaxErrors > 0:
		builder.WriteString(s.Warning.Render("Completed with recovered syntax errors"))
	default:
		builder.WriteString(s.Success.Render("All files processed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
