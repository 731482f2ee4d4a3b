package automation

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	data := `name: smoke
steps:
  - scene: binary
    duration: 0.5
  - scene: random
    count: 4
    integrator: symplectic
    duration: 0.5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "smoke" || len(s.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", s)
	}
	if s.Steps[1].Count != 4 || s.Steps[1].Integrator != "symplectic" {
		t.Errorf("step 2 = %+v", s.Steps[1])
	}
}

func TestLoadScenario_NoSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte("name: empty\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestRunScenario(t *testing.T) {
	base := config.DefaultConfig()
	base.Seed = 1
	s := &Scenario{Steps: []ScenarioStep{
		{Scene: "binary", Duration: 0.5},
		{Scene: "random", Count: 4, Duration: 0.5},
	}}

	results, err := RunScenario(context.Background(), s, base, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if got := len(results[0].Result.Final); got != 2 {
		t.Errorf("binary step ended with %d bodies", got)
	}
	if got := len(results[1].Result.Final); got != 4 {
		t.Errorf("random step ended with %d bodies", got)
	}
	if base.Scene != config.DefaultScene {
		t.Error("steps must not modify the base config")
	}
}

func TestRunScenario_BadStep(t *testing.T) {
	s := &Scenario{Steps: []ScenarioStep{{Integrator: "rk4"}}}
	_, err := RunScenario(context.Background(), s, config.DefaultConfig(), io.Discard)
	if !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Scene = "binary"
	base.Duration = 0.5

	results, err := RunSweep(context.Background(), DtSweep{DtMin: 0.01, DtMax: 0.05, NumSteps: 3}, base, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	if math.Abs(results[0].Dt-0.01) > 1e-12 || math.Abs(results[2].Dt-0.05) > 1e-12 {
		t.Errorf("dt endpoints = %v, %v", results[0].Dt, results[2].Dt)
	}
	if results[0].Steps <= results[2].Steps {
		t.Error("smaller dt should take more steps")
	}
	stable, _ := SweepStats(results)
	if stable != 3 {
		t.Errorf("stable = %d", stable)
	}
}

func TestRunSweep_InvalidRange(t *testing.T) {
	_, err := RunSweep(context.Background(), DtSweep{DtMin: 0.1, DtMax: 0.01, NumSteps: 2}, config.DefaultConfig(), io.Discard)
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}
