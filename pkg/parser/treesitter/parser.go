// Package treesitter parses TypeScript, TSX and JavaScript with tree-sitter
// and converts the result into a syntax.Tree.
package treesitter

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/yaklabco/tsxflat/pkg/syntax"
)

// Supported grammar names.
const (
	LanguageTSX        = "tsx"
	LanguageTypeScript = "typescript"
	LanguageJavaScript = "javascript"
)

// DefaultMaxFileSize is the largest input accepted by default (10 MiB).
const DefaultMaxFileSize = 10 * 1024 * 1024

var (
	// ErrUnsupportedLanguage is returned for an unknown grammar name.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrInvalidContent is returned for content that is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")

	// ErrFileTooLarge is returned when content exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// Languages returns the supported grammar names.
func Languages() []string {
	return []string{LanguageTSX, LanguageTypeScript, LanguageJavaScript}
}

func grammar(language string) (*sitter.Language, error) {
	switch language {
	case LanguageTSX:
		return tsx.GetLanguage(), nil
	case LanguageTypeScript:
		return typescript.GetLanguage(), nil
	case LanguageJavaScript:
		return javascript.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxFileSize sets the largest accepted input in bytes.
// Non-positive values keep the default.
func WithMaxFileSize(bytes int) Option {
	return func(p *Parser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// Parser converts source bytes of one language into syntax trees.
// A Parser is safe for concurrent use; each Parse call owns its own
// tree-sitter parser.
type Parser struct {
	language    string
	grammar     *sitter.Language
	maxFileSize int
}

// New returns a parser for language.
func New(language string, opts ...Option) (*Parser, error) {
	lang, err := grammar(language)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		language:    language,
		grammar:     lang,
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Language returns the grammar name.
func (p *Parser) Language() string {
	return p.language
}

// Parse parses content and returns its syntax tree. Syntax errors do not
// fail the parse; they appear as Error-family nodes.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	if len(content) > p.maxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, path, len(content), p.maxFileSize)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidContent, path)
	}

	source := make([]byte, len(content))
	copy(source, content)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.grammar)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse of %s: %w", path, err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%w: %s produced no root node", ErrInvalidContent, path)
	}

	node, comments := convert(root, source)
	syntax.Assemble(node, comments, len(source))

	return syntax.NewTree(path, p.language, source, node), nil
}
