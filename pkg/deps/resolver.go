package deps

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver maps import specifiers to files on disk.
//
// A relative specifier ("./x", "../x", ".", "..") is resolved against the
// importing file's directory. A bare specifier is tried under each source
// root in order. Each base path is tried with every extension in order,
// then as a directory holding an index file. Absolute specifiers and
// packages that resolve nowhere are reported as unresolved.
type Resolver struct {
	SourceRoots []string
	Extensions  []string
}

// NewResolver returns a resolver. An empty extension list means the
// specifier must name a file exactly.
func NewResolver(sourceRoots, extensions []string) *Resolver {
	if len(extensions) == 0 {
		extensions = []string{""}
	}
	return &Resolver{SourceRoots: sourceRoots, Extensions: extensions}
}

// Resolve returns the file an import in importer refers to.
func (r *Resolver) Resolve(importer, specifier string) (string, bool) {
	if specifier == "" || filepath.IsAbs(specifier) || strings.HasPrefix(specifier, "/") {
		return "", false
	}

	if isRelative(specifier) {
		base := filepath.Join(filepath.Dir(importer), filepath.FromSlash(specifier))
		return r.resolveBase(base)
	}

	for _, root := range r.SourceRoots {
		base := filepath.Join(root, filepath.FromSlash(specifier))
		if file, ok := r.resolveBase(base); ok {
			return file, true
		}
	}
	return "", false
}

func isRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// resolveBase tries base+ext, then base/index+ext.
func (r *Resolver) resolveBase(base string) (string, bool) {
	if file, ok := r.withExtensions(base); ok {
		return file, true
	}
	return r.withExtensions(filepath.Join(base, "index"))
}

func (r *Resolver) withExtensions(base string) (string, bool) {
	for _, ext := range r.Extensions {
		candidate := base + ext
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return filepath.Clean(candidate), true
		}
	}
	return "", false
}
