package audiohal

import (
	"log/slog"
	"testing"

	"github.com/haldev/audiohal/internal/mixer/mock"
)

func actionFor(m *mock.Mixer, name string, v int64) *ctlAction {
	c, ok := m.ControlByName(name)
	if !ok {
		panic("no such control: " + name)
	}
	return &ctlAction{control: c, kind: valInt, intValue: v}
}

func TestExecPathRunsActionsInOrder(t *testing.T) {
	m := mock.New()
	m.AddInt("a", 1, 0, 100, 0)
	m.AddInt("b", 1, 0, 100, 0)

	p := &path{name: "on", actions: []*ctlAction{
		actionFor(m, "a", 1),
		actionFor(m, "b", 2),
	}}
	if err := execPath(slog.Default(), m, p); err != nil {
		t.Fatalf("execPath: %v", err)
	}
	if len(m.WriteLog) != 2 {
		t.Fatalf("expected 2 writes, got %d", len(m.WriteLog))
	}
	if m.WriteLog[0].Control != "a" || m.WriteLog[1].Control != "b" {
		t.Errorf("writes out of order: %+v", m.WriteLog)
	}
}

func TestExecPathNilIsNoop(t *testing.T) {
	if err := execPath(slog.Default(), mock.New(), nil); err != nil {
		t.Errorf("execPath(nil): %v", err)
	}
}

// TestExecPathBestEffortContinuesPastFailure verifies that a failing
// ctl write does not stop the remaining actions from running, and that
// the first failure (not the last) is what's returned.
func TestExecPathBestEffortContinuesPastFailure(t *testing.T) {
	m := mock.New()
	m.AddInt("a", 1, 0, 100, 0)
	m.AddInt("b", 1, 0, 100, 0)
	m.AddInt("c", 1, 0, 100, 0)
	m.FailOn["a"] = errBoom
	m.FailOn["c"] = errBoom

	p := &path{name: "on", actions: []*ctlAction{
		actionFor(m, "a", 1),
		actionFor(m, "b", 2),
		actionFor(m, "c", 3),
	}}
	err := execPath(slog.Default(), m, p)
	if err == nil {
		t.Fatal("expected an error")
	}

	// b, between the two failures, must still have been written.
	bc, ok := m.ControlByName("b")
	if !ok {
		t.Fatal("control b missing")
	}
	vals, _ := m.ReadInt(bc)
	if len(vals) != 1 || vals[0] != 2 {
		t.Errorf("control b was not written despite earlier failure: %v", vals)
	}
}

func TestExecActionBoolClampsToZeroOrOne(t *testing.T) {
	m := mock.New()
	m.AddBool("mute", 1, 0)
	c, _ := m.ControlByName("mute")
	a := &ctlAction{control: c, kind: valInt, intValue: 5}
	if err := execAction(slog.Default(), m, a); err != nil {
		t.Fatalf("execAction: %v", err)
	}
	vals, _ := m.ReadInt(c)
	if vals[0] != 1 {
		t.Errorf("bool write of 5 stored as %d, want 1", vals[0])
	}
}

func TestExecActionMarksControlChanged(t *testing.T) {
	m := mock.New()
	m.AddInt("gain", 1, 0, 100, 0)
	c, _ := m.ControlByName("gain")
	if c.Changed {
		t.Fatal("control marked Changed before any write")
	}
	a := &ctlAction{control: c, kind: valInt, intValue: 10}
	if err := execAction(slog.Default(), m, a); err != nil {
		t.Fatalf("execAction: %v", err)
	}
	if !c.Changed {
		t.Error("control not marked Changed after write")
	}
}
