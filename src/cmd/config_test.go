package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConfigInit(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "conf", "cli.yml")

	out, err := execute(t, "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(out, "Created config file: "+path) {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("default config is not valid YAML: %v", err)
	}
	for _, section := range []string{"api", "cache", "logging", "output"} {
		if _, ok := parsed[section]; !ok {
			t.Errorf("default config missing %q section", section)
		}
	}

	if _, err := execute(t, "--config", path, "config", "init"); err == nil {
		t.Error("config init should refuse to overwrite")
	}
}

func TestDefaultConfigLoads(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "cli.yml")
	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		t.Fatal(err)
	}

	// The generated file must parse and leave every command usable
	if out, err := execute(t, "--config", path, "ability", "blaze"); err != nil {
		t.Fatalf("ability error = %v\n%s", err, out)
	}
}

func TestConfigGet(t *testing.T) {
	setup(t)

	out, err := execute(t, "config", "get", "api.parallel")
	if err != nil {
		t.Fatalf("config get error = %v", err)
	}
	if strings.TrimSpace(out) != "8" {
		t.Errorf("api.parallel = %q, want 8", out)
	}

	if _, err := execute(t, "config", "get", "api.nope"); err == nil {
		t.Error("unknown key should fail")
	}
}

func TestConfigSet(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "cli.yml")

	out, err := execute(t, "--config", path, "config", "set", "output.language", "de")
	if err != nil {
		t.Fatalf("config set error = %v", err)
	}
	if !strings.Contains(out, "Set output.language = de") {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var parsed struct {
		Output struct {
			Language string `yaml:"language"`
		} `yaml:"output"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("saved config is not valid YAML: %v", err)
	}
	if parsed.Output.Language != "de" {
		t.Errorf("saved language = %q", parsed.Output.Language)
	}

	if _, err := execute(t, "--config", path, "config", "set", "api.nope", "1"); err == nil {
		t.Error("setting an unknown key should fail")
	}
}

func TestConfigShow(t *testing.T) {
	setup(t)

	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("config show is not YAML: %v\n%s", err, out)
	}
	if !strings.Contains(out, "base_url:") {
		t.Errorf("config show = %q", out)
	}
}

func TestConfigPath(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "work.yml")

	out, err := execute(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}
}
