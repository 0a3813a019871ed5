package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content so that readers see either the old
// file or the new one, never a partial diagram or listing. The content goes
// to a temp file next to the destination, which is then renamed over it. A
// zero mode means DefaultFileMode.
//
// A symlink is written through: its target is replaced and the link kept.
// A destination that exists but is not a regular file, such as /dev/stdout
// or a FIFO, is written in place since it cannot be renamed over.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	target, info, err := resolveDestination(path)
	if err != nil {
		return err
	}
	if info != nil && !info.Mode().IsRegular() {
		return writeInPlace(target, content)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}
	return renameInto(target, content, mode)
}

// WriteAtomicIfChanged is WriteAtomic that skips the write when a regular
// file at path already holds content. A zero mode keeps the existing file's
// permissions. It reports whether the file was written.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		_, existing, err := ReadFile(ctx, path)
		if err != nil {
			return false, fmt.Errorf("read existing: %w", err)
		}
		if existing.Hash == sha256.Sum256(content) {
			return false, nil
		}
		if mode == 0 {
			mode = existing.Mode.Perm()
		}
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}

// resolveDestination follows symlinks in path. A path that does not exist
// yet is returned as is with a nil FileInfo.
func resolveDestination(path string) (string, os.FileInfo, error) {
	target, err := filepath.EvalSymlinks(path)
	if errors.Is(err, fs.ErrNotExist) {
		return path, nil, nil
	}
	if err != nil {
		return "", nil, classify(path, "resolve", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		return "", nil, classify(target, "stat", err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	return target, info, nil
}

// renameInto writes content to a temp file beside path and renames it into
// place. The temp file never outlives a failed write.
func renameInto(path string, content []byte, mode os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	steps := []struct {
		op  string
		run func() error
	}{
		{"write", func() error { _, werr := tmp.Write(content); return werr }},
		{"sync", tmp.Sync},
		{"close", tmp.Close},
		{"chmod", func() error { return os.Chmod(tmp.Name(), mode) }},
		{"rename", func() error { return os.Rename(tmp.Name(), path) }},
	}
	for _, step := range steps {
		if err = step.run(); err != nil {
			return fmt.Errorf("%s temp file: %w", step.op, err)
		}
	}
	return nil
}

func writeInPlace(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return classify(path, "open", err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
