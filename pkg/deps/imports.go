package deps

import (
	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/query"
	"github.com/yaklabco/tsxflat/pkg/syntax"
)

//nolint:gochecknoglobals // Read-only matchers.
var (
	matchString    = syntax.Is(syntax.FamilyString)
	matchArguments = syntax.Match{Family: syntax.FamilyOther, Variant: "arguments"}
	matchCall      = syntax.Match{Family: syntax.FamilyOther, Variant: "call_expression"}
	matchFrom      = syntax.Match{Family: syntax.FamilyToken, Variant: "from"}
)

// Imports returns the module specifiers a file refers to, in source order
// and without duplicates. It recognizes import statements, re-exports
// ("export ... from"), require calls and dynamic import calls whose
// argument is a string literal.
func Imports(seq flat.Sequence) []string {
	var specs []string
	seen := make(map[string]struct{})

	add := func(str int) {
		spec, ok := unquote(seq[str].Text)
		if !ok || spec == "" {
			return
		}
		if _, dup := seen[spec]; dup {
			return
		}
		seen[spec] = struct{}{}
		specs = append(specs, spec)
	}

	for i := range seq {
		rec := seq[i]
		switch {
		case rec.Kind.Family == syntax.FamilyImport:
			if str, ok := query.FindChild(seq, i, matchString); ok {
				add(str)
			}
		case rec.Kind.Family == syntax.FamilyExport:
			if _, ok := query.FindChild(seq, i, matchFrom); !ok {
				continue
			}
			if str, ok := query.FindChild(seq, i, matchString); ok {
				add(str)
			}
		case matchCall.Matches(rec.Kind):
			if !isLoaderCall(seq, i) {
				continue
			}
			args, ok := query.FindChild(seq, i, matchArguments)
			if !ok {
				continue
			}
			if str, ok := query.FindChild(seq, args, matchString); ok {
				add(str)
			}
		}
	}

	return specs
}

// isLoaderCall reports whether the call at i invokes require or import.
func isLoaderCall(seq flat.Sequence, i int) bool {
	callee := i + 1
	if !seq.Valid(callee) || seq[callee].Level != seq[i].Level+1 {
		return false
	}
	switch seq[callee].Text {
	case "require", "import":
		return true
	default:
		return false
	}
}

// unquote strips the quotes of a string literal. Specifiers with escape
// sequences are kept as written.
func unquote(lit string) (string, bool) {
	if len(lit) < 2 {
		return "", false
	}
	quote := lit[0]
	if (quote != '\'' && quote != '"') || lit[len(lit)-1] != quote {
		return "", false
	}
	return lit[1 : len(lit)-1], true
}
