package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatDiff Format = "diff"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "diff":
		return FormatDiff, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, diff", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}

// View selects which product of a linearized file is rendered.
type View string

// Views, one per command.
const (
	ViewSource     View = "src"
	ViewRecords    View = "records"
	ViewTree       View = "tree"
	ViewComponents View = "components"
	ViewOutline    View = "outline"
	ViewTokens     View = "tokens"
)

// IsValid returns true if the view is known.
func (v View) IsValid() bool {
	switch v {
	case ViewSource, ViewRecords, ViewTree, ViewComponents, ViewOutline, ViewTokens:
		return true
	default:
		return false
	}
}
