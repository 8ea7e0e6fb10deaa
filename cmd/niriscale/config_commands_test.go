package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	isolateHome(t)
	target := filepath.Join(t.TempDir(), "niriscale", "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected output to name target path: %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[scales]") {
		t.Fatal("sample should mention [scales]")
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite failed: %v", err)
	}
}

func TestConfigShowDefaults(t *testing.T) {
	isolateHome(t)

	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "# defaults; no file at") {
		t.Fatalf("expected defaults banner: %q", out)
	}
	if !strings.Contains(out, "direction = 'forwards'") && !strings.Contains(out, "direction = \"forwards\"") {
		t.Fatalf("expected direction in rendered config: %q", out)
	}
}

func TestConfigShowLoadedFile(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[scales]\nvalues = [1.0, 2.0]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCLI(t, "config", "show", "--path", path)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "# loaded from "+path) {
		t.Fatalf("expected loaded banner: %q", out)
	}
	if !strings.Contains(out, "2.0") {
		t.Fatalf("expected scale values in output: %q", out)
	}
}
