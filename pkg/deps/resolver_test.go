package deps_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsxflat/pkg/deps"
)

// project lays out files under a temp dir and returns it.
func project(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{
		"src/App.tsx":                 "",
		"src/util.ts":                 "",
		"src/util.js":                 "",
		"src/components/index.tsx":    "",
		"src/components/Button.jsx":   "",
		"src/exact":                   "",
		"src/lib/format/index.ts":     "",
		"vendor/shared/helpers.ts":    "",
		"src/components/Card/Card.ts": "",
	})
	src := filepath.Join(dir, "src")
	importer := filepath.Join(src, "App.tsx")

	resolver := deps.NewResolver(
		[]string{src, filepath.Join(dir, "vendor")},
		[]string{"", ".ts", ".js", ".jsx", ".tsx"},
	)

	tests := []struct {
		name      string
		importer  string
		specifier string
		want      string
		ok        bool
	}{
		{name: "extension order prefers ts", importer: importer, specifier: "./util", want: "src/util.ts", ok: true},
		{name: "explicit extension", importer: importer, specifier: "./util.js", want: "src/util.js", ok: true},
		{name: "exact file without extension", importer: importer, specifier: "./exact", want: "src/exact", ok: true},
		{name: "directory index", importer: importer, specifier: "./components", want: "src/components/index.tsx", ok: true},
		{
			name:      "parent relative",
			importer:  filepath.Join(src, "components", "Button.jsx"),
			specifier: "../util",
			want:      "src/util.ts",
			ok:        true,
		},
		{
			name:      "dot is the importer's index",
			importer:  filepath.Join(src, "components", "Button.jsx"),
			specifier: ".",
			want:      "src/components/index.tsx",
			ok:        true,
		},
		{name: "bare under first root", importer: importer, specifier: "lib/format", want: "src/lib/format/index.ts", ok: true},
		{name: "bare under second root", importer: importer, specifier: "shared/helpers", want: "vendor/shared/helpers.ts", ok: true},
		{name: "directory without index", importer: importer, specifier: "./components/Card", ok: false},
		{name: "package", importer: importer, specifier: "react", ok: false},
		{name: "absolute", importer: importer, specifier: "/etc/hosts", ok: false},
		{name: "missing", importer: importer, specifier: "./nope", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := resolver.Resolve(tc.importer, tc.specifier)
			require.Equal(t, tc.ok, ok, got)
			if !tc.ok {
				return
			}
			assert.Equal(t, filepath.Join(dir, filepath.FromSlash(tc.want)), got)
		})
	}
}

func TestResolver_DefaultExtensions(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"a.ts": ""})
	resolver := deps.NewResolver(nil, nil)

	_, ok := resolver.Resolve(filepath.Join(dir, "main.ts"), "./a")
	assert.False(t, ok)

	got, ok := resolver.Resolve(filepath.Join(dir, "main.ts"), "./a.ts")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "a.ts"), got)
}
