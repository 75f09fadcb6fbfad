package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/swagen/internal/profile"
)

const sampleConfig = `petstore:
  file: petstore.yaml
  output: out/petstore.ts
  generator: typescript
gopkg:
  file: petstore.yaml
  output: out/petstore.go
  generator: go
  options:
    package: petstore
  transforms:
    operationName: [pascal-case, "prefix:Do"]
old:
  file: petstore.yaml
  output: out/old.py
  generator: python
  skip: true
`

// setup writes the petstore document and a configuration into a temp dir
// and returns the configuration path.
func setup(t *testing.T, config string) string {
	t.Helper()
	dir := t.TempDir()
	doc, err := os.ReadFile(filepath.Join("testdata", "petstore.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "petstore.yaml"), doc, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	path := filepath.Join(dir, "swagen.yaml")
	if err := os.WriteFile(path, []byte(config), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func assertContains(t *testing.T, s, want string) {
	t.Helper()
	if !strings.Contains(s, want) {
		t.Fatalf("expected %q in:\n%s", want, s)
	}
}

func assertUsageError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %T: %v", err, err)
	}
}

func profileNames(t *testing.T, path string) []string {
	t.Helper()
	conf, err := profile.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return conf.Names()
}

func TestUnknownFlag_ShowsHelpAndUsageError(t *testing.T) {
	t.Parallel()
	_, err := execute(t, "generate", "--unknown-flag")
	assertUsageError(t, err)
	if !strings.Contains(err.Error(), "unknown flag") || !strings.Contains(err.Error(), "Usage:") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	assertContains(t, out, "swagen "+Version)
}

func TestUsageErrorIs(t *testing.T) {
	t.Parallel()
	err := newUsageError("bad")
	if !errors.Is(err, ErrUsage) || err.Error() != "bad" {
		t.Fatalf("unexpected usage error: %v", err)
	}
	if errors.Is(errors.New("bad"), ErrUsage) {
		t.Fatalf("plain errors must not match ErrUsage")
	}

	wrapped := usageErrorf("lookup: %w", profile.ErrNotFound)
	if !errors.Is(wrapped, ErrUsage) || !errors.Is(wrapped, profile.ErrNotFound) {
		t.Fatalf("expected both ErrUsage and the cause to match: %v", wrapped)
	}
	if wrapped.Error() != "lookup: "+profile.ErrNotFound.Error() {
		t.Fatalf("unexpected message: %q", wrapped.Error())
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errors.New("boom"), 1},
		{newUsageError("bad"), 2},
		{errors.Join(errors.New("boom"), newUsageError("bad")), 2},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()
	got := suggest("petstor", []string{"gopkg", "petstore", "old"})
	if len(got) != 1 || got[0] != "petstore" {
		t.Fatalf("unexpected suggestions: %v", got)
	}
	if got := suggest("zzz", []string{"petstore"}); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
}

func TestNormalizeFlag(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]string{
		"no_input":        "no-input",
		"convertOpenAPI3": "convert-openapi3",
		"dry-run":         "dry-run",
	} {
		if got := string(normalizeFlag(nil, in)); got != want {
			t.Fatalf("normalizeFlag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizedFlagsParse(t *testing.T) {
	t.Parallel()
	cfg := setup(t, sampleConfig)
	out, err := execute(t, "--config", cfg, "list", "--details")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertContains(t, out, "petstore")
	if _, err := execute(t, "--config", cfg, "generate", "petstore", "--dry_run"); err != nil {
		t.Fatalf("generate --dry_run: %v", err)
	}
}
