package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover expands opts.Paths into the sorted, de-duplicated list of absolute
// source file paths to process.
//
// Directories are walked for files whose extension is in opts.Extensions.
// Hidden entries below a walked root are skipped. A file named directly is
// kept whatever its extension, so "tsxflat records build/gen.txt" still
// works, but exclude globs apply to it as they do to walked files.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include pattern: %w", err)
	}

	d := &discoverer{
		workDir:  workDir,
		exts:     extensionSet(opts.effectiveExtensions()),
		exclude:  exclude,
		include:  include,
		follow:   opts.FollowSymlinks,
		seen:     make(map[string]struct{}),
		visiting: make(map[string]struct{}),
	}

	for _, p := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := d.add(ctx, p); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// discoverer accumulates files across all requested paths.
type discoverer struct {
	workDir string
	exts    map[string]struct{}
	exclude globSet
	include globSet
	follow  bool

	seen     map[string]struct{}
	visiting map[string]struct{}
	files    []string
}

// add handles one user-supplied path.
func (d *discoverer) add(ctx context.Context, input string) error {
	abs := input
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(d.workDir, abs)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	if !info.IsDir() {
		if !d.exclude.match(d.rel(abs), false) {
			d.keep(abs)
		}
		return nil
	}
	return d.walk(ctx, abs)
}

// walk collects source files under root. Directory symlinks are walked
// through their target when following is enabled; a target already on the
// current walk path is skipped so cycles terminate.
func (d *discoverer) walk(ctx context.Context, root string) error {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolved = root
	}
	if _, busy := d.visiting[resolved]; busy {
		return nil
	}
	d.visiting[resolved] = struct{}{}
	defer delete(d.visiting, resolved)

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		switch {
		case entry.IsDir():
			if hidden || d.exclude.match(d.rel(path), true) {
				return filepath.SkipDir
			}
			return nil
		case hidden:
			return nil
		case entry.Type()&fs.ModeSymlink != 0:
			return d.visitLink(ctx, path)
		}

		if d.wanted(path) {
			d.keep(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// visitLink resolves a symlink met during a walk. Broken links and links to
// unreadable targets are ignored.
func (d *discoverer) visitLink(ctx context.Context, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken links are not source files
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are not source files
	}

	if !info.IsDir() {
		if d.wanted(path) {
			d.keep(path)
		}
		return nil
	}
	if !d.follow || d.exclude.match(d.rel(path), true) {
		return nil
	}
	return d.walk(ctx, target)
}

// wanted applies the extension and glob filters to a walked file.
func (d *discoverer) wanted(path string) bool {
	if _, ok := d.exts[strings.ToLower(filepath.Ext(path))]; !ok {
		return false
	}
	rel := d.rel(path)
	if d.exclude.match(rel, false) {
		return false
	}
	return len(d.include) == 0 || d.include.match(rel, false)
}

func (d *discoverer) keep(path string) {
	if _, dup := d.seen[path]; dup {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

// rel returns path relative to the working directory in slash form, or the
// slash form of path itself when it lies on another volume.
func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = struct{}{}
	}
	return set
}

// pathGlob is one compiled ignore or include pattern. A "**" segment may
// stand for zero directories, so "**/x" also matches "x" at the top and
// "a/**/x" matches "a/x"; those spellings are kept as extra forms.
type pathGlob struct {
	forms []glob.Glob
	// base matches the file name alone; set for patterns without a slash
	// such as "*.test.tsx".
	base glob.Glob
}

type globSet []pathGlob

// compileGlobs compiles slash-separated patterns where "*" stays inside one
// path segment and "**" crosses segments.
func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))
	for _, raw := range patterns {
		pattern := filepath.ToSlash(strings.TrimSpace(raw))
		if pattern == "" {
			continue
		}

		spellings := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
			spellings = append(spellings, rest)
		}
		for _, sp := range slices.Clone(spellings) {
			if collapsed := strings.ReplaceAll(sp, "/**/", "/"); collapsed != sp {
				spellings = append(spellings, collapsed)
			}
		}

		var pg pathGlob
		for _, sp := range spellings {
			g, err := glob.Compile(sp, '/')
			if err != nil {
				return nil, fmt.Errorf("compile %q: %w", raw, err)
			}
			pg.forms = append(pg.forms, g)
		}
		if !strings.Contains(pattern, "/") {
			pg.base = pg.forms[0]
		}
		set = append(set, pg)
	}
	return set, nil
}

// match reports whether any pattern selects rel. For directories the path
// is also tried with a trailing slash so "dist/**" prunes "dist" itself.
func (s globSet) match(rel string, dir bool) bool {
	base := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		base = rel[i+1:]
	}
	for _, pg := range s {
		if pg.base != nil && pg.base.Match(base) {
			return true
		}
		for _, g := range pg.forms {
			if g.Match(rel) || (dir && g.Match(rel+"/")) {
				return true
			}
		}
	}
	return false
}
