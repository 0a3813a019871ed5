// Package deps builds a module dependency graph by following import
// specifiers from an entry file, and renders it as a PlantUML diagram.
package deps

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/tsxflat/internal/logging"
	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/fsutil"
	"github.com/yaklabco/tsxflat/pkg/langdetect"
	"github.com/yaklabco/tsxflat/pkg/runner"
)

// ErrNoEntry is returned when the entry file cannot be scanned.
var ErrNoEntry = errors.New("entry file could not be scanned")

// Module is one scanned file and the files it imports.
type Module struct {
	Path    string
	Imports []string
}

// Graph lists modules in the order they were first reached.
type Graph struct {
	Modules []Module
}

// Session is a single dependency scan. It owns the set of visited files,
// so separate sessions never share results.
type Session struct {
	// ID identifies the session in log output.
	ID uuid.UUID

	resolver  *Resolver
	newParser runner.ParserFactory
	language  string
	flatOpts  flat.Options

	visited  map[string]struct{}
	modules  []Module
	failures map[string]error
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLanguage forces a grammar instead of detecting it per file.
func WithLanguage(language string) SessionOption {
	return func(s *Session) {
		s.language = language
	}
}

// WithFlatOptions sets the linearization options.
func WithFlatOptions(opts flat.Options) SessionOption {
	return func(s *Session) {
		s.flatOpts = opts
	}
}

// NewSession creates an empty session.
func NewSession(resolver *Resolver, newParser runner.ParserFactory, opts ...SessionOption) *Session {
	s := &Session{
		ID:        uuid.New(),
		resolver:  resolver,
		newParser: newParser,
		flatOpts:  flat.DefaultOptions(),
		visited:   make(map[string]struct{}),
		failures:  make(map[string]error),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan follows imports depth-first from entry. Files that fail to read or
// parse are recorded in Failures and left without imports; only a failure
// of the entry itself, or cancellation, is returned.
func (s *Session) Scan(ctx context.Context, entry string) error {
	ctx = logging.WithFields(ctx, logging.FieldSession, s.ID.String())
	logger := logging.FromContext(ctx)

	entry = filepath.Clean(entry)
	stack := []string{entry}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("scan cancelled: %w", err)
		}

		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := s.visited[path]; seen {
			continue
		}
		s.visited[path] = struct{}{}

		imports, err := s.scanFile(ctx, logger, path)
		if err != nil {
			if path == entry {
				return fmt.Errorf("%w: %s: %w", ErrNoEntry, path, err)
			}
			logger.Warn("skipping module", logging.FieldPath, path, logging.FieldError, err)
			s.failures[path] = err
		}

		s.modules = append(s.modules, Module{Path: path, Imports: imports})

		// Push in reverse so the first import is scanned next.
		for i := len(imports) - 1; i >= 0; i-- {
			if _, seen := s.visited[imports[i]]; !seen {
				stack = append(stack, imports[i])
			}
		}
	}

	logger.Debug("scan complete", logging.FieldModules, len(s.modules))
	return nil
}

func (s *Session) scanFile(ctx context.Context, logger *log.Logger, path string) ([]string, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	parser, err := s.newParser(langdetect.Resolve(s.language, path, content))
	if err != nil {
		return nil, err
	}

	tree, err := parser.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	seq, err := flat.Linearize(tree, s.flatOpts)
	if err != nil {
		return nil, err
	}

	var resolved []string
	for _, spec := range Imports(seq) {
		file, ok := s.resolver.Resolve(path, spec)
		if !ok {
			logger.Debug("unresolved import", logging.FieldPath, path, logging.FieldSpecifier, spec)
			continue
		}
		logger.Debug("import resolved",
			logging.FieldPath, path,
			logging.FieldSpecifier, spec,
			logging.FieldResolved, file,
		)
		resolved = append(resolved, file)
	}

	return dedupe(resolved), nil
}

// Graph returns the modules scanned so far.
func (s *Session) Graph() *Graph {
	modules := make([]Module, len(s.modules))
	copy(modules, s.modules)
	return &Graph{Modules: modules}
}

// Failures returns the files that could not be scanned, keyed by path.
func (s *Session) Failures() map[string]error {
	out := make(map[string]error, len(s.failures))
	for path, err := range s.failures {
		out[path] = err
	}
	return out
}

// dedupe keeps the first occurrence of each path. Two specifiers such as
// "./a" and "./a.ts" can resolve to one file.
func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
