package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if strings.EqualFold(opts.Format, "json") {
		return generateJSONTemplate()
	}
	return generateYAMLTemplate(), nil
}

// generateYAMLTemplate creates a commented YAML template.
func generateYAMLTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# tsxflat configuration
# See: https://github.com/yaklabco/tsxflat

# Grammar: auto, tsx, typescript or javascript
language: auto

# Output format: text or json
# format: text

# Number of parallel workers (0 = auto)
# jobs: 0

# Deepest syntax nesting accepted before a file is rejected
# max_depth: 4096

# File patterns to ignore (glob patterns)
# ignore:
#   - "node_modules/**"
#   - "dist/**"

# Extensions discovered when a directory is given
extensions:
`)
	for _, ext := range DefaultExtensions() {
		fmt.Fprintf(&buf, "  - %q\n", ext)
	}

	buf.WriteString(`
# Dependency graph settings
deps:
  # Directories searched for non-relative imports
  source_roots:
    - "src"
  # Extensions tried in order ("" = as written)
  extensions:
`)
	for _, ext := range DefaultDepsExtensions() {
		fmt.Fprintf(&buf, "    - %q\n", ext)
	}
	buf.WriteString(`  # Prefix removed from diagram labels
  # strip_prefix: "src/"
  # Diagram title
  # title: "Dependencies"
`)

	return buf.Bytes()
}

// generateJSONTemplate renders the defaults as indented JSON.
func generateJSONTemplate() ([]byte, error) {
	cfg := NewConfig()
	doc := map[string]any{
		"language":   cfg.Language,
		"format":     cfg.Format,
		"jobs":       cfg.Jobs,
		"max_depth":  cfg.MaxDepth,
		"ignore":     []string{},
		"extensions": cfg.Extensions,
		"deps": map[string]any{
			"source_roots": cfg.Deps.SourceRoots,
			"extensions":   cfg.Deps.Extensions,
			"strip_prefix": "",
			"title":        "",
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}
	return append(data, '\n'), nil
}
