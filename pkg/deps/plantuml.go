package deps

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// PlantUMLOptions controls diagram rendering.
type PlantUMLOptions struct {
	// Title is written as the diagram title when set.
	Title string

	// StripPrefix is removed from the start of every path.
	StripPrefix string
}

// WritePlantUML renders g as a left-to-right PlantUML component diagram:
// one rectangle per module, labelled with its base name, then one arrow
// per import.
func WritePlantUML(w io.Writer, g *Graph, opts PlantUMLOptions) error {
	var b strings.Builder

	b.WriteString("@startuml dependencies\n")
	if opts.Title != "" {
		fmt.Fprintf(&b, "title %s\n", opts.Title)
	}
	b.WriteString("skinparam shadowing false\n")
	b.WriteString("scale 0.8\n")
	b.WriteString("skinparam packageStyle Rectangle\n")
	b.WriteString("left to right direction\n")
	b.WriteString("\n")

	if g != nil {
		for _, m := range g.Modules {
			name := displayPath(m.Path, opts.StripPrefix)
			fmt.Fprintf(&b, "rectangle %q as %s\n", path.Base(name), alias(name))
		}
		for _, m := range g.Modules {
			from := alias(displayPath(m.Path, opts.StripPrefix))
			for _, imp := range m.Imports {
				fmt.Fprintf(&b, "%s --> %s\n", from, alias(displayPath(imp, opts.StripPrefix)))
			}
		}
	}

	b.WriteString("@enduml\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	return nil
}

func displayPath(p, prefix string) string {
	p = filepath.ToSlash(p)
	if prefix != "" {
		p = strings.TrimPrefix(p, filepath.ToSlash(prefix))
		p = strings.TrimPrefix(p, "/")
	}
	return p
}

// alias turns a path into a PlantUML identifier. Every byte outside
// [A-Za-z0-9_] becomes an underscore.
func alias(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
