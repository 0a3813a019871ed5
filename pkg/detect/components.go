// Package detect recognizes structural patterns in a flat.Sequence:
// UI components and a compact outline of declarations, returns and markup.
package detect

import (
	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/query"
	"github.com/yaklabco/tsxflat/pkg/syntax"
)

// Component is a declaration whose body produces markup.
type Component struct {
	Exported bool   `json:"exported"`
	Name     string `json:"name"`
}

// String renders the component the way the CLI prints it.
func (c Component) String() string {
	if c.Exported {
		return "export " + c.Name
	}
	return c.Name
}

//nolint:gochecknoglobals // Read-only matchers.
var (
	matchIdentifier = syntax.Is(syntax.FamilyIdentifier)
	matchExport     = syntax.Is(syntax.FamilyExport)
	matchArrow      = syntax.Is(syntax.FamilyArrowFunction)
	matchElement    = syntax.Is(syntax.FamilyMarkupElement)
	matchSelfClose  = syntax.Is(syntax.FamilyMarkupSelfClosing)
	matchOpening    = syntax.Is(syntax.FamilyMarkupOpening)
)

// Components returns, in document order, the function declarations and
// arrow-function variable statements that produce markup. Only markup in
// the scope following the declaration's name counts. A matched
// declaration's subtree is skipped, so nested functions are not reported.
func Components(seq flat.Sequence) []Component {
	var out []Component

	for i := 0; i < len(seq); {
		switch seq[i].Kind.Family {
		case syntax.FamilyFunction:
			if c, ok := functionComponent(seq, i); ok {
				out = append(out, c)
			}
			i = query.EndOfSubtree(seq, i)

		case syntax.FamilyVariableStatement:
			arrow, ok := query.FindDescendant(seq, i, matchArrow)
			if !ok {
				i++
				continue
			}
			if c, ok := arrowComponent(seq, i, arrow); ok {
				out = append(out, c)
			}
			i = query.EndOfSubtree(seq, i)

		default:
			i++
		}
	}

	return out
}

func functionComponent(seq flat.Sequence, fn int) (Component, bool) {
	name, ok := query.FindChild(seq, fn, matchIdentifier)
	if !ok || !producesMarkup(seq, name) {
		return Component{}, false
	}
	return Component{Exported: isExported(seq, fn), Name: seq[name].Text}, true
}

func arrowComponent(seq flat.Sequence, stmt, arrow int) (Component, bool) {
	name, ok := boundName(seq, stmt, arrow)
	if !ok || !producesMarkup(seq, name) {
		return Component{}, false
	}
	return Component{Exported: isExported(seq, stmt), Name: seq[name].Text}, true
}

// boundName finds the identifier an arrow function is assigned to: the
// name child of the nearest enclosing declarator inside stmt. Type
// annotations sit between the two and are skipped.
func boundName(seq flat.Sequence, stmt, arrow int) (int, bool) {
	for p, ok := query.Parent(seq, arrow); ok && p > stmt; p, ok = query.Parent(seq, p) {
		if seq[p].Kind.Family == syntax.FamilyVariableDeclarator {
			return query.FindChild(seq, p, matchIdentifier)
		}
	}
	return query.FindPreceding(seq, arrow, matchIdentifier)
}

func producesMarkup(seq flat.Sequence, name int) bool {
	_, ok := query.FindAny(seq, name, query.FindFollowing, matchElement, matchSelfClose)
	return ok
}

func isExported(seq flat.Sequence, decl int) bool {
	_, ok := query.FindAncestor(seq, decl, matchExport)
	return ok
}
