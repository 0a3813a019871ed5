package detect

import (
	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/query"
	"github.com/yaklabco/tsxflat/pkg/syntax"
)

// Entry is one line of the outline. Exported is nil for kinds that cannot
// be exported; Name is empty when no name was resolved.
type Entry struct {
	Depth    int         `json:"depth"`
	Kind     syntax.Kind `json:"kind"`
	Exported *bool       `json:"exported,omitempty"`
	Name     string      `json:"name,omitempty"`
}

// Outline collects return statements, function declarations, arrow-function
// variable statements and markup elements, then compacts their levels into
// display depths.
func Outline(seq flat.Sequence) []Entry {
	var out []Entry

	for i := range seq {
		rec := seq[i]
		switch rec.Kind.Family {
		case syntax.FamilyReturn:
			out = append(out, Entry{Depth: rec.Level, Kind: rec.Kind})

		case syntax.FamilyFunction:
			e := Entry{Depth: rec.Level, Kind: rec.Kind, Exported: exportedFlag(seq, i)}
			if name, ok := query.FindChild(seq, i, matchIdentifier); ok {
				e.Name = seq[name].Text
			}
			out = append(out, e)

		case syntax.FamilyVariableStatement:
			arrow, ok := query.FindDescendant(seq, i, matchArrow)
			if !ok {
				continue
			}
			e := Entry{Depth: rec.Level, Kind: seq[arrow].Kind, Exported: exportedFlag(seq, i)}
			if name, ok := boundName(seq, i, arrow); ok {
				e.Name = seq[name].Text
			}
			out = append(out, e)

		case syntax.FamilyMarkupElement:
			e := Entry{Depth: rec.Level, Kind: rec.Kind}
			if name, ok := query.FindDescendantPath(seq, i, matchOpening, matchIdentifier); ok {
				e.Name = seq[name].Text
			}
			out = append(out, e)

		case syntax.FamilyMarkupSelfClosing:
			e := Entry{Depth: rec.Level, Kind: rec.Kind}
			if name, ok := query.FindChild(seq, i, matchIdentifier); ok {
				e.Name = seq[name].Text
			}
			out = append(out, e)
		}
	}

	return Compact(out)
}

func exportedFlag(seq flat.Sequence, decl int) *bool {
	exported := isExported(seq, decl)
	return &exported
}

// Compact renumbers entry depths in place. A stack holds the raw levels of
// the open entries; each entry pops deeper levels, pushes its own if new,
// and takes its stack index as depth. Compact(Compact(x)) == Compact(x).
func Compact(entries []Entry) []Entry {
	var levels []int

	for i := range entries {
		level := entries[i].Depth
		for len(levels) > 0 && levels[len(levels)-1] > level {
			levels = levels[:len(levels)-1]
		}
		if len(levels) == 0 || levels[len(levels)-1] < level {
			levels = append(levels, level)
		}
		entries[i].Depth = len(levels) - 1
	}

	return entries
}
