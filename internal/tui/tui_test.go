package tui

import (
	"bytes"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/statesim/internal/control"
	"github.com/san-kum/statesim/internal/dynamo"
	"github.com/san-kum/statesim/internal/logging"
	"github.com/san-kum/statesim/internal/sim"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func started(t *testing.T) model {
	t.Helper()
	app := NewInteractiveApp(1, logging.Discard())
	next, cmd := app.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected tick command after starting")
	}
	m := next.(model)
	if m.state != stateSim || m.sim == nil {
		t.Fatalf("expected simulation state, got %v", m.state)
	}
	return m
}

func TestMenuSelectsSpecies(t *testing.T) {
	m := started(t)
	if m.sim.Species() != dynamo.Argon {
		t.Errorf("expected argon, got %s", m.sim.Species())
	}
	if !strings.Contains(m.View(), "argon") {
		t.Error("view should name the species")
	}
}

func TestSimKeys(t *testing.T) {
	m := started(t)
	before := m.sim.NumberOfMolecules()

	tests := []struct {
		name  string
		key   tea.KeyMsg
		check func(m model) bool
	}{
		{"heat", tea.KeyMsg{Type: tea.KeyUp}, func(m model) bool { return m.sim.HeatingCoolingAmount() == heatingStep }},
		{"stop heating", runes("0"), func(m model) bool { return m.sim.HeatingCoolingAmount() == 0 }},
		{"cool", tea.KeyMsg{Type: tea.KeyDown}, func(m model) bool { return m.sim.HeatingCoolingAmount() == -heatingStep }},
		{"pause", tea.KeyMsg{Type: tea.KeySpace}, func(m model) bool { return m.paused }},
		{"inject", runes("i"), func(m model) bool { return m.sim.NumberOfMolecules() == before+1 }},
		{"thermostat", runes("t"), func(m model) bool { return m.sim.ThermostatMode() == dynamo.NoThermostat }},
		{"lower lid", runes("["), func(m model) bool { return m.sim.TargetContainerHeight() == sim.InitialContainerHeight-lidStep }},
		{"more bath collisions", runes("."), func(m model) bool {
			return math.Abs(m.sim.CollisionProbability()-(control.DefaultCollisionProbability+collisionStep)) < 1e-12
		}},
		{"fewer bath collisions", runes(","), func(m model) bool {
			return math.Abs(m.sim.CollisionProbability()-control.DefaultCollisionProbability) < 1e-12
		}},
		{"gas", runes("G"), func(m model) bool { return m.status == "" }},
	}

	for _, tt := range tests {
		next, _ := m.Update(tt.key)
		m = next.(model)
		if !tt.check(m) {
			t.Errorf("%s: unexpected state", tt.name)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(model).state != stateMenu {
		t.Error("esc should return to the menu")
	}
}

func TestTickAdvancesUnlessPaused(t *testing.T) {
	m := started(t)
	next, _ := m.Update(tickMsg{})
	m = next.(model)
	if m.sim.Tick() != 1 || len(m.pressure) != 1 {
		t.Fatalf("expected one tick, got %d", m.sim.Tick())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	next, _ = next.Update(tickMsg{})
	if next.(model).sim.Tick() != 1 {
		t.Error("paused model advanced")
	}
}

func TestLiveRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 1000)
	m := sim.NewModel(sim.Options{Seed: 1})
	if err := m.SetPhase(dynamo.Solid); err != nil {
		t.Fatal(err)
	}

	r.OnStep(m.Snapshot())
	out := buf.String()
	if !strings.Contains(out, "neon") || !strings.Contains(out, "n=81") {
		t.Errorf("unexpected frame:\n%s", out)
	}

	buf.Reset()
	r.OnStep(m.Snapshot())
	if buf.Len() != 0 {
		t.Error("second frame within the frame interval should be skipped")
	}
}

func TestMenuStartsEverySpecies(t *testing.T) {
	app := NewInteractiveApp(1, logging.Discard())
	for i, want := range app.species {
		m := *app
		m.cursor = i
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		got := next.(model)
		if got.sim.Species() != want {
			t.Errorf("entry %d started %s, want %s", i, got.sim.Species(), want)
		}
		if _, ok := speciesInfo[want]; !ok {
			t.Errorf("%s has no menu description", want)
		}
	}
	if len(app.species) != 5 || app.species[2] != dynamo.DiatomicOxygen {
		t.Errorf("unexpected species menu %v", app.species)
	}
}
