package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"runtime"
)

// appDir is the directory name used under system and user config roots.
const appDir = "tsxflat"

// ConfigPaths holds the configuration file found for each layer. An empty
// field means the layer has no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// configLayer is one file-backed source in merge order.
type configLayer struct {
	name    string
	path    string
	skipped bool
}

// layers lists the file layers from lowest to highest precedence.
func (p *ConfigPaths) layers(opts LoadOptions) []configLayer {
	return []configLayer{
		{name: "system", path: p.System, skipped: opts.IgnoreSystemConfig},
		{name: "user", path: p.User, skipped: opts.IgnoreUserConfig},
		{name: "project", path: p.Project, skipped: opts.IgnoreProjectConfig},
		{name: "explicit", path: p.Explicit},
	}
}

// projectConfigFiles are tried in each directory, first match wins. The
// JSON name is what "tsxflat init --format json" writes; YAML parses it.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".tsxflat.yml",
	".tsxflat.yaml",
	"tsxflat.yml",
	"tsxflat.yaml",
	".tsxflat.json",
}

// layerConfigFiles are the names looked up inside system and user dirs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var layerConfigFiles = []string{"config.yaml", "config.yml"}

// projectBoundaries mark a repository root; the upward search ends there.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectBoundaries = []string{".git", ".hg", ".svn"}

// locator resolves config locations against an environment. Tests swap the
// lookups to avoid touching the real home directory.
type locator struct {
	getenv  func(string) string
	homeDir func() (string, error)
	goos    string
}

func defaultLocator() locator {
	return locator{getenv: os.Getenv, homeDir: os.UserHomeDir, goos: runtime.GOOS}
}

// DiscoverPaths finds the system, user and project config files for a run
// started in workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	return defaultLocator().discover(ctx, workDir)
}

// FindProjectConfig searches startDir and its parents for a project config
// file. The search stops at a repository root, the home directory or the
// filesystem root. It returns "" when nothing is found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	return defaultLocator().project(ctx, startDir)
}

func (l locator) discover(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := l.project(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFile(l.systemDir(), layerConfigFiles),
		User:    firstFile(l.userDir(), layerConfigFiles),
		Project: project,
	}, nil
}

// systemDir is /etc/tsxflat, or %ProgramData%\tsxflat on Windows.
func (l locator) systemDir() string {
	if l.goos != "windows" {
		return filepath.Join("/etc", appDir)
	}
	root := l.getenv("ProgramData")
	if root == "" {
		root = `C:\ProgramData`
	}
	return filepath.Join(root, appDir)
}

// userDir follows XDG_CONFIG_HOME with the ~/.config fallback.
func (l locator) userDir() string {
	root := l.getenv("XDG_CONFIG_HOME")
	if root == "" {
		home, err := l.homeDir()
		if err != nil {
			return ""
		}
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, appDir)
}

func (l locator) project(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := l.homeDir() //nolint:errcheck // no home means no home boundary
	for dir := range ancestors(start) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if found := firstFile(dir, projectConfigFiles); found != "" {
			return found, nil
		}
		if dir == home || hasDir(dir, projectBoundaries) {
			break
		}
	}
	return "", nil
}

// ancestors yields dir and each of its parents up to the filesystem root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// hasDir reports whether dir contains any of the named subdirectories.
func hasDir(dir string, names []string) bool {
	for _, name := range names {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
