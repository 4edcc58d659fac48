package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/minseo-dev/kinsim/internal/kinet"
)

func sampleResult() *kinet.Result {
	return &kinet.Result{
		Times: []float64{0, 0.1, 0.2},
		States: []kinet.State{
			{1.0, 0.0},
			{0.9, 0.1},
			{0.81, 0.19},
		},
		StepsTaken: 2,
		Metrics:    map[string]float64{"mass_drift": 0},
	}
}

func sampleMeta() RunMetadata {
	return RunMetadata{
		Name:        "decay",
		Dt:          0.1,
		TEnd:        0.2,
		Temperature: 298.15,
		Integrator:  "rk4",
		Species:     []string{"A", "B"},
		Equations:   []string{"A -> B"},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(sampleMeta(), sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(runID, "decay_") {
		t.Errorf("run id should carry the run name, got %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.ID != runID {
		t.Errorf("id mismatch: %s vs %s", meta.ID, runID)
	}
	if len(meta.Species) != 2 || meta.Species[0] != "A" {
		t.Errorf("species not persisted: %v", meta.Species)
	}

	times, states, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 3 || len(states) != 3 {
		t.Fatalf("series shape: %d times, %d states", len(times), len(states))
	}
	if states[2][0] != 0.81 {
		t.Errorf("series value: got %g, want 0.81", states[2][0])
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatalf("fresh store should be empty, got %d runs", len(runs))
	}

	if _, err := st.Save(sampleMeta(), sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/kinsim-test")
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Error("missing base dir should list zero runs")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []string{"A", "B"}, sampleResult()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,A,B" {
		t.Errorf("header: got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,1,0") {
		t.Errorf("first row: got %q", lines[1])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleMeta(), sampleResult()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"steps": 3`, `"A -> B"`, `"species"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON export missing %s", want)
		}
	}
}
