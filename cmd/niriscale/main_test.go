package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"niriscale/internal/niri"
	"niriscale/internal/testsupport"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(niri.SocketEnv, "")
}

func TestCycleForwards(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.1),
	}, "eDP-1")

	out, err := runCLI(t, "--socket", fake.SocketPath(), "-s", "1.0", "-s", "1.1", "-s", "1.2")
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}
	if !strings.Contains(out, "Scaling eDP-1 to 1.2") {
		t.Fatalf("unexpected output: %q", out)
	}

	applied := fake.Applied()
	if len(applied) != 1 {
		t.Fatalf("expected exactly one scale command, got %d", len(applied))
	}
	if applied[0].Output != "eDP-1" || applied[0].Scale != 1.2 {
		t.Fatalf("unexpected application: %+v", applied[0])
	}
}

func TestCycleBackwards(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.1),
	}, "eDP-1")

	_, err := runCLI(t, "--socket", fake.SocketPath(),
		"-s", "1.0", "-s", "1.1", "-s", "1.2", "--direction", "backwards")
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}

	applied := fake.Applied()
	if len(applied) != 1 || applied[0].Scale != 1.0 {
		t.Fatalf("expected 1.0 applied, got %+v", applied)
	}
}

func TestCycleWrapsAround(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.2),
	}, "eDP-1")

	_, err := runCLI(t, "--socket", fake.SocketPath(), "-s", "1.0", "-s", "1.1", "-s", "1.2")
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}

	applied := fake.Applied()
	if len(applied) != 1 || applied[0].Scale != 1.0 {
		t.Fatalf("expected wraparound to 1.0, got %+v", applied)
	}
}

func TestCycleEmptyScaleListIsUsageError(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.0),
	}, "eDP-1")

	_, err := runCLI(t, "--socket", fake.SocketPath())
	if err == nil {
		t.Fatal("expected usage error for empty scale list")
	}
	if !strings.Contains(err.Error(), "no scales configured") {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.Applied()) != 0 {
		t.Fatal("no scale command should have been issued")
	}
}

func TestCycleUnknownDirection(t *testing.T) {
	isolateHome(t)
	_, err := runCLI(t, "-s", "1.0", "--direction", "sideways")
	if err == nil {
		t.Fatal("expected error for unknown direction")
	}
}

func TestCycleNamedOutput(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.0),
		"DP-3":  testsupport.Output("DP-3", 2.0),
	}, "eDP-1")

	_, err := runCLI(t, "--socket", fake.SocketPath(), "-s", "1.5", "-s", "2.0", "-o", "DP-3")
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}

	applied := fake.Applied()
	if len(applied) != 1 || applied[0].Output != "DP-3" || applied[0].Scale != 1.5 {
		t.Fatalf("expected DP-3 scaled to 1.5, got %+v", applied)
	}
}

func TestCycleUnknownOutput(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.0),
	}, "eDP-1")

	_, err := runCLI(t, "--socket", fake.SocketPath(), "-s", "1.0", "-o", "HDMI-A-1")
	if err == nil || !strings.Contains(err.Error(), "could not find an output named HDMI-A-1") {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.Applied()) != 0 {
		t.Fatal("no scale command should have been issued")
	}
}

func TestCycleNoFocusedOutput(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.0),
	}, "")

	_, err := runCLI(t, "--socket", fake.SocketPath(), "-s", "1.0")
	if err == nil || !strings.Contains(err.Error(), "no focused output") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCycleAllOutputs(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.0),
		"DP-3":  testsupport.Output("DP-3", 1.5),
	}, "eDP-1")

	_, err := runCLI(t, "--socket", fake.SocketPath(), "-s", "1.0", "-s", "1.5", "-o", "@all")
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}

	applied := fake.Applied()
	if len(applied) != 2 {
		t.Fatalf("expected one command per output, got %d", len(applied))
	}
	byOutput := map[string]float64{}
	for _, a := range applied {
		byOutput[a.Output] = a.Scale
	}
	if byOutput["eDP-1"] != 1.5 || byOutput["DP-3"] != 1.0 {
		t.Fatalf("unexpected applications: %v", byOutput)
	}
}

func TestCycleDryRun(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.0),
	}, "eDP-1")

	out, err := runCLI(t, "--socket", fake.SocketPath(), "-s", "1.0", "-s", "1.5", "--dry-run")
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !strings.Contains(out, "Would scale eDP-1 to 1.5") {
		t.Fatalf("unexpected output: %q", out)
	}
	if len(fake.Applied()) != 0 {
		t.Fatal("dry run must not issue scale commands")
	}
}

func TestCycleJSONOutput(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.0),
	}, "eDP-1")

	out, err := runCLI(t, "--socket", fake.SocketPath(), "-s", "1.0", "-s", "1.5", "--json")
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}

	var transitions []struct {
		Output  string  `json:"output"`
		From    float64 `json:"from"`
		To      float64 `json:"to"`
		Applied bool    `json:"applied"`
	}
	if err := json.Unmarshal([]byte(out), &transitions); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", out, err)
	}
	if len(transitions) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(transitions))
	}
	tr := transitions[0]
	if tr.Output != "eDP-1" || tr.From != 1.0 || tr.To != 1.5 || !tr.Applied {
		t.Fatalf("unexpected transition: %+v", tr)
	}
}

func TestCycleScalesAndDirectionFromConfig(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.25),
	}, "eDP-1")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := "[scales]\nvalues = [1.0, 1.25, 1.5]\ndirection = \"backwards\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := runCLI(t, "--socket", fake.SocketPath(), "--config", configPath)
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}

	applied := fake.Applied()
	if len(applied) != 1 || applied[0].Scale != 1.0 {
		t.Fatalf("expected config-driven backwards step to 1.0, got %+v", applied)
	}
}

func TestCycleFlagsOverrideConfig(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.0),
	}, "eDP-1")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := "[scales]\nvalues = [3.0, 4.0]\ndirection = \"backwards\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := runCLI(t, "--socket", fake.SocketPath(), "--config", configPath,
		"-s", "1.0", "-s", "2.0", "--direction", "forwards")
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}

	applied := fake.Applied()
	if len(applied) != 1 || applied[0].Scale != 2.0 {
		t.Fatalf("expected flag-driven step to 2.0, got %+v", applied)
	}
}

func TestCycleCompositorRejection(t *testing.T) {
	isolateHome(t)
	fake := testsupport.StartCompositor(t, map[string]niri.Output{
		"eDP-1": testsupport.Output("eDP-1", 1.0),
	}, "eDP-1")
	fake.FailWith("output busy")

	_, err := runCLI(t, "--socket", fake.SocketPath(), "-s", "1.0", "-s", "1.5")
	if err == nil || !strings.Contains(err.Error(), "output busy") {
		t.Fatalf("expected rejection to surface, got %v", err)
	}
}

func TestCycleMissingSocket(t *testing.T) {
	isolateHome(t)
	missing := filepath.Join(t.TempDir(), "missing.sock")

	_, err := runCLI(t, "--socket", missing, "-s", "1.0")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected missing-socket error, got %v", err)
	}
}

func TestCycleNoSocketConfigured(t *testing.T) {
	isolateHome(t)

	_, err := runCLI(t, "-s", "1.0")
	if err == nil || !strings.Contains(err.Error(), niri.SocketEnv) {
		t.Fatalf("expected socket resolution error, got %v", err)
	}
}
