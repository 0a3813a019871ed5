package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsxflat/internal/cli"
)

const appSource = `// App shell.
export const App = () => (
  <main>
    <Header />
  </main>
);

function helper() {
  return 1;
}
`

// project writes files under a temp dir with an empty config file and
// returns the dir and the config path.
func project(t *testing.T, files map[string]string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfgFile := filepath.Join(t.TempDir(), ".tsxflat.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("language: auto\n"), 0o644))
	return dir, cfgFile
}

// execute runs the root command and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--color", "never"))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_Src(t *testing.T) {
	t.Parallel()

	dir, cfg := project(t, map[string]string{"App.tsx": appSource})

	stdout, _, err := execute(t, "src", "--config", cfg, filepath.Join(dir, "App.tsx"))
	require.NoError(t, err)
	assert.Equal(t, appSource, stdout)
}

func TestIntegration_SrcCheck(t *testing.T) {
	t.Parallel()

	t.Run("exact round trip", func(t *testing.T) {
		t.Parallel()

		dir, cfg := project(t, map[string]string{"App.tsx": appSource})

		stdout, stderr, err := execute(t, "src", "--check", "--config", cfg, dir)
		require.NoError(t, err)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "1 file round-trip exactly")
	})

	t.Run("tabs are normalized", func(t *testing.T) {
		t.Parallel()

		dir, cfg := project(t, map[string]string{"tabs.ts": "function f() {\n\treturn 1;\n}\n"})

		stdout, stderr, err := execute(t, "src", "--check", "--config", cfg, dir)
		require.ErrorIs(t, err, cli.ErrRoundTripMismatch)
		assert.Equal(t, cli.ExitMismatch, cli.ExitCode(err))
		assert.Contains(t, stdout, "-\treturn 1;")
		assert.Contains(t, stdout, "+ ")
		assert.Contains(t, stderr, "1 of 1 file differ after regeneration")
	})
}

func TestIntegration_Components(t *testing.T) {
	t.Parallel()

	dir, cfg := project(t, map[string]string{
		"App.tsx":    appSource,
		"Footer.jsx": "const Footer = () => <footer/>;\n",
	})

	stdout, _, err := execute(t, "components", "--config", cfg, "--jobs", "2", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "export App\n")
	assert.Contains(t, stdout, "Footer\n")
	assert.NotContains(t, stdout, "helper")
	assert.Contains(t, stdout, "==> ", "multiple files get headers")
}

func TestIntegration_ComponentsJSON(t *testing.T) {
	t.Parallel()

	dir, cfg := project(t, map[string]string{"App.tsx": appSource})

	stdout, _, err := execute(t, "components", "--format", "json", "--config", cfg, filepath.Join(dir, "App.tsx"))
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, true, got[0]["exported"])
	assert.Equal(t, "App", got[0]["name"])
}

func TestIntegration_Records(t *testing.T) {
	t.Parallel()

	dir, cfg := project(t, map[string]string{"a.ts": "let x = 1;\n"})

	stdout, _, err := execute(t, "records", "--compact", "--config", cfg, filepath.Join(dir, "a.ts"))
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &records))
	require.NotEmpty(t, records)
	assert.Equal(t, "end_of_file", records[len(records)-1]["kind"])
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(stdout), "\n")+1, "compact output is one line")
}

func TestIntegration_TreeAndTokens(t *testing.T) {
	t.Parallel()

	dir, cfg := project(t, map[string]string{"App.tsx": appSource})
	file := filepath.Join(dir, "App.tsx")

	stdout, _, err := execute(t, "tree", "--config", cfg, file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "program\n"), stdout)
	assert.Contains(t, stdout, "identifier App")

	stdout, _, err = execute(t, "tokens", "--config", cfg, file)
	require.NoError(t, err)
	assert.Contains(t, stdout, `identifier 27 "App"`)
}

func TestIntegration_Outline(t *testing.T) {
	t.Parallel()

	dir, cfg := project(t, map[string]string{"App.tsx": appSource})

	stdout, _, err := execute(t, "outline", "--config", cfg, filepath.Join(dir, "App.tsx"))
	require.NoError(t, err)
	assert.Contains(t, stdout, `"App"`)
	assert.Contains(t, stdout, `"main"`)
	assert.Contains(t, stdout, `"Header"`)
}

func TestIntegration_FailedFile(t *testing.T) {
	t.Parallel()

	// With a depth limit of 2 the statement parses but the markup does not.
	dir, cfg := project(t, map[string]string{
		"App.tsx": appSource,
		"ok.ts":   "x;\n",
	})

	stdout, stderr, err := execute(t, "src", "--summary", "--max-depth", "2", "--config", cfg, dir)
	require.ErrorIs(t, err, cli.ErrFilesFailed)
	assert.True(t, cli.IsReported(err))

	assert.Equal(t, "x;\n", stdout)
	assert.Contains(t, stderr, "App.tsx")
	assert.Contains(t, stderr, "1 failed")
}

func TestIntegration_MissingPath(t *testing.T) {
	t.Parallel()

	dir, cfg := project(t, nil)

	_, _, err := execute(t, "src", "--config", cfg, filepath.Join(dir, "missing.tsx"))
	require.Error(t, err)
	assert.False(t, cli.IsReported(err))
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestIntegration_Output(t *testing.T) {
	t.Parallel()

	dir, cfg := project(t, map[string]string{"App.tsx": appSource})
	out := filepath.Join(t.TempDir(), "app.txt")

	stdout, _, err := execute(t, "src", "--config", cfg, "-o", out, filepath.Join(dir, "App.tsx"))
	require.NoError(t, err)
	assert.Empty(t, stdout)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, appSource, string(got))
}

func TestIntegration_Deps(t *testing.T) {
	t.Parallel()

	dir, cfg := project(t, map[string]string{
		"src/index.tsx":             "import { App } from './App';\nimport React from 'react';\n",
		"src/App.tsx":               "import Header from 'components/Header';\n" + appSource,
		"src/components/Header.tsx": "export default function Header() { return <h1/>; }\n",
	})
	src := filepath.Join(dir, "src")

	stdout, _, err := execute(t, "deps", "--config", cfg,
		"--source-root", src,
		"--strip-prefix", src+string(filepath.Separator),
		"--title", "Sample",
		filepath.Join(src, "index.tsx"),
	)
	require.NoError(t, err)

	want := `@startuml dependencies
title Sample
skinparam shadowing false
scale 0.8
skinparam packageStyle Rectangle
left to right direction

rectangle "index.tsx" as index_tsx
rectangle "App.tsx" as App_tsx
rectangle "Header.tsx" as components_Header_tsx
index_tsx --> App_tsx
App_tsx --> components_Header_tsx
@enduml
`
	assert.Equal(t, want, stdout)
}

func TestIntegration_DepsMissingEntry(t *testing.T) {
	t.Parallel()

	dir, cfg := project(t, nil)

	_, _, err := execute(t, "deps", "--config", cfg, filepath.Join(dir, "index.tsx"))
	require.Error(t, err)
	assert.False(t, cli.IsReported(err))
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir, _ := project(t, map[string]string{"App.tsx": appSource})
	cfg := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("jobs: -3\n"), 0o644))

	_, _, err := execute(t, "src", "--config", cfg, dir)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, content []byte)
	}{
		{
			name:   "yaml",
			format: "yaml",
			check: func(t *testing.T, content []byte) {
				assert.Contains(t, string(content), "language: auto")
				assert.Contains(t, string(content), "source_roots:")
			},
		},
		{
			name:   "json",
			format: "json",
			check: func(t *testing.T, content []byte) {
				var doc map[string]any
				require.NoError(t, json.Unmarshal(content, &doc))
				assert.Equal(t, "auto", doc["language"])
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(t.TempDir(), "config."+tc.format)

			_, _, err := execute(t, "init", "--format", tc.format, "--output", out)
			require.NoError(t, err)

			content, err := os.ReadFile(out)
			require.NoError(t, err)
			tc.check(t, content)

			_, _, err = execute(t, "init", "--format", tc.format, "--output", out)
			require.Error(t, err, "existing file needs --force")
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

			_, _, err = execute(t, "init", "--force", "--format", tc.format, "--output", out)
			require.NoError(t, err)
		})
	}
}
