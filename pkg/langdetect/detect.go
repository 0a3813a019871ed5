// Package langdetect picks the tree-sitter grammar for a source file.
// It uses go-enry for extension, shebang and content classification and
// falls back to TSX, the most permissive of the supported grammars.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Grammar names understood by the tree-sitter adapter.
const (
	TSX        = "tsx"
	TypeScript = "typescript"
	JavaScript = "javascript"

	// Auto asks Resolve to detect the grammar.
	Auto = "auto"
)

// extensionGrammars is consulted before go-enry, which maps some of these
// extensions ambiguously.
//
//nolint:gochecknoglobals // Read-only lookup table.
var extensionGrammars = map[string]string{
	".tsx": TSX,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".jsx": JavaScript,
	".js":  JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
}

// classifierCandidates are the enry languages the classifier may choose.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{"TypeScript", "TSX", "JavaScript"}

// Resolve returns setting unless it is empty or Auto, in which case the
// grammar is detected from path and content.
func Resolve(setting, path string, content []byte) string {
	if setting != "" && setting != Auto {
		return setting
	}
	return Detect(path, content)
}

// Detect returns the grammar for a file. It never fails: unknown input
// is parsed as TSX.
func Detect(path string, content []byte) string {
	// Strategy 1: known extensions.
	if g, ok := extensionGrammars[strings.ToLower(filepath.Ext(path))]; ok {
		return g
	}

	// Strategy 2: enry's extension table.
	if path != "" {
		if lang, safe := enry.GetLanguageByExtension(path); safe {
			if g := normalize(lang); g != "" {
				return g
			}
		}
	}

	if len(content) == 0 {
		return TSX
	}

	// Strategy 3: shebang (node, deno, ts-node).
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		if g := normalize(lang); g != "" {
			return g
		}
	}

	// Strategy 4: markup in content always needs a JSX-capable grammar.
	if looksLikeMarkup(content) {
		return TSX
	}

	// Strategy 5: classifier among the supported languages.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe {
		if g := normalize(lang); g != "" {
			return g
		}
	}

	return TSX
}

// looksLikeMarkup checks for closing or self-closing tags.
func looksLikeMarkup(content []byte) bool {
	return bytes.Contains(content, []byte("</")) || bytes.Contains(content, []byte("/>"))
}

// normalize converts go-enry language names to grammar names, or "" for
// languages no grammar handles.
func normalize(lang string) string {
	switch strings.ToLower(lang) {
	case "tsx":
		return TSX
	case "typescript":
		return TypeScript
	case "javascript", "jsx":
		return JavaScript
	default:
		return ""
	}
}
