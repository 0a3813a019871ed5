package pretty

import (
	"fmt"
	"strings"
)

// FormatFileError formats a per-file failure.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// FormatFileHeader formats the heading printed before each file's output
// when several files are rendered together.
func (s *Styles) FormatFileHeader(path string) string {
	return s.Dim.Render("==> ") + s.FilePath.Render(path) + s.Dim.Render(" <==")
}

// FormatDiffLine colors a single unified diff line.
func (s *Styles) FormatDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return s.DiffHeader.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}

// FormatDiff colors every line of a unified diff.
func (s *Styles) FormatDiff(diff string) string {
	var builder strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		builder.WriteString(s.FormatDiffLine(body))
		builder.WriteString("\n")
	}
	return builder.String()
}
