//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/tsxflat"
	mainPkg = "./cmd/tsxflat"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"rt":  Bench.RoundTrip,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles bin/tsxflat with version info when any Go source changed.
// The grammars are C, so the build needs cgo and a C compiler.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building tsxflat...")
	return sh.RunWith(cgoEnv(), "go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Check formats, lints and tests in that order.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install for the tsxflat command.
func Install() error {
	fmt.Println("Installing tsxflat...")
	return sh.RunWith(cgoEnv(), "go", "install", "-ldflags", ldflags(), mainPkg)
}

// Deps downloads modules and tidies go.mod.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage renders coverage.out from the last test run as HTML.
func Coverage() error {
	st.Deps(Test.Default)
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	fmt.Println("Wrote coverage.html")
	return nil
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race",
		"-coverprofile=coverage.out", "-covermode=atomic", "./...")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race", "./...")
}

// Grammar runs only the packages that link the tree-sitter grammars.
func (Test) Grammar() error {
	return gotestsum("testname", "./pkg/parser/...", "./pkg/runner/...", "./internal/cli/...")
}

// Fuzz exercises the atomic writer for FUZZTIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "30s")
	return sh.RunV("go", "test", "-run", "^$", "-fuzz", "FuzzWriteThenRead", "-fuzztime", fuzzTime, "./pkg/fsutil")
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nrun 'stave lint:fmt'", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunWith(cgoEnv(), "go", "vet", "./...")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs every check a pull request must pass.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Bench.RoundTrip,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("✓ CI gate passed")
	return nil
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	changed, err := changedBy([]string{"go.mod", "go.sum"}, "go", "mod", "tidy")
	if err != nil {
		return err
	}
	if len(changed) > 0 {
		return fmt.Errorf("go mod tidy changed %s; commit the result", strings.Join(changed, ", "))
	}
	return nil
}

// Cross builds for the release architectures of the host OS. Each target
// other than the host needs CC_<GOARCH> naming a cross C compiler.
func (CI) Cross() error {
	for _, arch := range []string{"amd64", "arm64"} {
		env := cgoEnv()
		env["GOOS"] = runtime.GOOS
		env["GOARCH"] = arch

		ccVar := "CC_" + strings.ToUpper(arch)
		switch cc := os.Getenv(ccVar); {
		case cc != "":
			env["CC"] = cc
		case arch != runtime.GOARCH:
			fmt.Printf("skip %s/%s: %s not set\n", runtime.GOOS, arch, ccVar)
			continue
		}

		fmt.Printf("build %s/%s\n", runtime.GOOS, arch)
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s/%s: %w", runtime.GOOS, arch, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Default runs Go benchmarks.
func (Bench) Default() error {
	return gotestsum("pkgname-and-test-fails", "-run", "^$", "-bench=.", "-benchmem", "./...")
}

// RoundTrip checks that every source file under TSXFLAT_CORPUS (default:
// the current directory) regenerates byte for byte.
func (Bench) RoundTrip() error {
	st.Deps(Build)
	return sh.RunV(binary, "src", "--check", "--summary", corpus())
}

// Records times a full records dump of TSXFLAT_CORPUS.
func (Bench) Records() error {
	st.Deps(Build)
	start := time.Now()
	out, err := sh.Output(binary, "records", "--compact", corpus())
	if err != nil {
		return err
	}
	fmt.Printf("records: %d bytes in %s\n", len(out), time.Since(start).Round(time.Millisecond))
	return nil
}

// ---------------------------------------------------------------------------
// Helpers (unexported, not targets)
// ---------------------------------------------------------------------------

func corpus() string {
	return cmp.Or(os.Getenv("TSXFLAT_CORPUS"), ".")
}

// cgoEnv forces cgo on; the tree-sitter grammars do not build without it.
func cgoEnv() map[string]string {
	return map[string]string{"CGO_ENABLED": "1"}
}

// gotestsum runs go test through gotestsum with the given output format.
// STAVE_NUM_PROCESSORS bounds package and test parallelism.
func gotestsum(format string, testArgs ...string) error {
	n := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", n, "-parallel", n}, testArgs...)
	return sh.RunWith(cgoEnv(), "go", args...)
}

// changedBy runs a command and reports which of files it modified.
func changedBy(files []string, cmd string, args ...string) ([]string, error) {
	before := make([][]byte, len(files))
	for i, f := range files {
		data, err := os.ReadFile(f)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		before[i] = data
	}

	if err := sh.RunV(cmd, args...); err != nil {
		return nil, err
	}

	var changed []string
	for i, f := range files {
		after, err := os.ReadFile(f)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		if !bytes.Equal(before[i], after) {
			changed = append(changed, f)
		}
	}
	return changed, nil
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags stamps the version variables read by cmd/tsxflat.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
