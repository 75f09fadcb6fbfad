package cli

import (
	"path/filepath"
	"testing"

	"github.com/mark3labs/swagen/internal/profile"
)

func TestInit_FromFlags(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "swagen.toml")

	out, err := execute(t, "--config", path, "init", "--no-input",
		"--name", "api",
		"--source", "https://example.com/swagger.json",
		"--output", "api/client.go",
		"--generator", "Go",
		"--option", "package=api",
	)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	assertContains(t, out, "saved to")

	conf, err := profile.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if conf.Format != profile.TOML {
		t.Fatalf("expected TOML, got %s", conf.Format)
	}
	p, ok := conf.Get("api")
	if !ok {
		t.Fatalf("profile not saved: %v", conf.Names())
	}
	if p.URL != "https://example.com/swagger.json" || p.File != "" {
		t.Fatalf("unexpected source: file=%q url=%q", p.File, p.URL)
	}
	if p.Generator != "go" || p.Mode != "net-http" || p.Option("package") != "api" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestInit_AppendsToExistingConfig(t *testing.T) {
	t.Parallel()
	cfg := setup(t, sampleConfig)

	_, err := execute(t, "--config", cfg, "init", "--no-input",
		"--name", "web", "--source", "petstore.yaml", "--output", "web.ts", "--generator", "typescript")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	names := profileNames(t, cfg)
	if len(names) != 4 || names[3] != "web" {
		t.Fatalf("unexpected profiles: %v", names)
	}
}

func TestInit_ExistingWithoutForce(t *testing.T) {
	t.Parallel()
	cfg := setup(t, sampleConfig)
	args := []string{"--config", cfg, "init", "--no-input",
		"--name", "petstore", "--source", "petstore.yaml", "--output", "other.ts", "--generator", "typescript"}

	_, err := execute(t, args...)
	assertUsageError(t, err)
	assertContains(t, err.Error(), "already exists")

	if _, err := execute(t, append(args, "--force")...); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	conf, err := profile.Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p, _ := conf.Get("petstore"); p.Output != "other.ts" {
		t.Fatalf("profile not replaced: %+v", p)
	}
}

func TestInit_Validation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	tests := map[string][]string{
		"missing values":  {"--source", "a.json"},
		"bad format":      {"--source", "a.json", "--output", "a.ts", "--generator", "typescript", "--format", "xml"},
		"unknown mode":    {"--source", "a.json", "--output", "a.ts", "--generator", "typescript", "--mode", "axios"},
		"go needs option": {"--source", "a.json", "--output", "a.go", "--generator", "go"},
		"reserved":        {"--source", "a.json", "--output", "a.ts", "--generator", "core"},
	}
	for name, flags := range tests {
		path := filepath.Join(dir, name+".yaml")
		args := append([]string{"--config", path, "init", "--no-input"}, flags...)
		_, err := execute(t, args...)
		if err == nil {
			t.Fatalf("%s: expected an error", name)
		}
		assertUsageError(t, err)
	}
}

func TestInit_Prompts(t *testing.T) {
	prev := promptProfile
	t.Cleanup(func() { promptProfile = prev })
	promptProfile = func(o *options, ic *InitConfig) error {
		ic.Source = "petstore.yaml"
		ic.Output = "petstore.py"
		ic.Generator = "python"
		return nil
	}

	path := filepath.Join(t.TempDir(), "swagen.json")
	if _, err := execute(t, "--config", path, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	conf, err := profile.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p, ok := conf.Get("default")
	if !ok || p.Generator != "python" || p.Mode != "requests" || p.File != "petstore.yaml" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}
