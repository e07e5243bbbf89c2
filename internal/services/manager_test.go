package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/config"
	"github.com/a-mhatre/studylog-tui/internal/models"
	"github.com/a-mhatre/studylog-tui/internal/services/compute"
)

const exportPayload = `/*O_o*/
google.visualization.Query.setResponse({"version":"0.6","reqId":"0","status":"ok","table":{
"cols":[{"id":"A","label":"Timestamp","type":"string"},{"id":"B","label":"Book Title","type":"string"}],
"rows":[
{"c":[{"v":"2025-01-01"},{"v":"Go in Action"},null,null,null,null,{"v":"Ch 1"},{"v":"completed"},{"v":20.0},{"v":30.0},{"v":"b1"}]}
]}});`

func testManager(t *testing.T) *Manager {
	t.Helper()
	return testManagerWithGoal(t, 0)
}

func testManagerWithGoal(t *testing.T, goal float64) *Manager {
	t.Helper()

	dir := t.TempDir()
	exportPath := filepath.Join(dir, "export.json")
	if err := os.WriteFile(exportPath, []byte(exportPayload), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	m, err := NewManager(&config.Config{
		DatabasePath:   filepath.Join(dir, "studylog.db"),
		LocalDataPath:  exportPath,
		DailyPagesGoal: goal,
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func waitForCompute(t *testing.T, ch chan ServiceEvent) ComputeDoneEvent {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case event := <-ch:
			if done, ok := event.(ComputeDoneEvent); ok {
				return done
			}
		case <-deadline:
			t.Fatal("timed out waiting for a compute event")
			return ComputeDoneEvent{}
		}
	}
}

func TestManager_RecomputeDeliversBundle(t *testing.T) {
	m := testManager(t)
	ch, _ := m.Subscribe()
	defer m.Unsubscribe(ch)

	m.Recompute()
	done := waitForCompute(t, ch)

	if done.Result.Bundle.Empty() {
		t.Fatal("expected a non-empty bundle")
	}
	if done.Result.Interval != models.IntervalDaily {
		t.Errorf("Interval = %v, want daily", done.Result.Interval)
	}
	if len(done.Result.Rollups) != 1 || done.Result.Rollups[0].BookID != "b1" {
		t.Errorf("Rollups = %+v", done.Result.Rollups)
	}
}

func TestManager_CycleInterval(t *testing.T) {
	m := testManager(t)
	ch, _ := m.Subscribe()
	defer m.Unsubscribe(ch)

	if m.Interval() != models.IntervalDaily {
		t.Fatalf("initial interval = %v", m.Interval())
	}

	next := m.CycleInterval()
	if next != models.IntervalWeekly {
		t.Errorf("CycleInterval() = %v, want weekly", next)
	}

	// The switch schedules a pass for the new interval.
	for {
		done := waitForCompute(t, ch)
		if done.Result.Interval == models.IntervalWeekly {
			break
		}
	}
}

func TestManager_DropsSupersededComputeResult(t *testing.T) {
	m := testManager(t)
	ch, _ := m.Subscribe()
	defer m.Unsubscribe(ch)

	m.Recompute()

	// A result whose token does not match the most recent request must
	// never reach subscribers, even when it is already queued.
	m.handleComputeResult(compute.Result{
		Token:    99999,
		Interval: models.IntervalDaily,
		Bundle:   &models.ComputedBundle{Version: "superseded"},
	})

	deadline := time.After(500 * time.Millisecond)
	for {
		select {
		case event := <-ch:
			if done, ok := event.(ComputeDoneEvent); ok {
				if done.Result.Bundle != nil && done.Result.Bundle.Version == "superseded" {
					t.Fatal("superseded result was broadcast")
				}
			}
		case <-deadline:
			return
		}
	}
}

func TestManager_Target(t *testing.T) {
	m := testManagerWithGoal(t, 10)

	if got := m.Target(models.IntervalWeekly); got != 70 {
		t.Errorf("Target(weekly) = %v, want 70", got)
	}
	if got := m.Target(models.IntervalDaily); got != 10 {
		t.Errorf("Target(daily) = %v, want 10", got)
	}
}

func TestManager_EmptyAuxiliarySheets(t *testing.T) {
	m := testManager(t)

	if series := m.TestSeries(models.IntervalWeekly); series != nil {
		t.Errorf("TestSeries() = %+v, want nil without a tests sheet", series)
	}
	if syllabus := m.Syllabus(); syllabus != nil {
		t.Errorf("Syllabus() = %+v, want nil without a syllabus sheet", syllabus)
	}
}
