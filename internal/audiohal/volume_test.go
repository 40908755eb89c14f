package audiohal

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/haldev/audiohal/internal/mixer"
	"github.com/haldev/audiohal/internal/mixer/mock"
)

var errBoom = errors.New("boom")

func TestScaleVolume(t *testing.T) {
	cases := []struct {
		min, max int64
		pc       int
		want     int64
	}{
		{0, 100, 0, 0},
		{0, 100, 100, 100},
		{0, 100, 50, 50},
		{-60, 0, 0, -60},
		{-60, 0, 100, 0},
		{-60, 0, 50, -30},
	}
	for _, c := range cases {
		got := scaleVolume(c.min, c.max, c.pc)
		if got != c.want {
			t.Errorf("scaleVolume(%d, %d, %d) = %d, want %d", c.min, c.max, c.pc, got, c.want)
		}
	}
}

func newTestStreamDef(left, right *volCtl) *streamDef {
	return &streamDef{typ: "pcm", dir: "out", leftVol: left, rightVol: right}
}

func TestSetHwVolumeRejectsOutOfRangePercent(t *testing.T) {
	m := mock.New()
	sd := newTestStreamDef(nil, nil)
	log := slog.Default()

	cases := []struct{ left, right int }{
		{-1, 50}, {50, 101}, {200, 0},
	}
	for _, c := range cases {
		err := setHwVolume(log, m, sd, c.left, c.right)
		if err == nil {
			t.Errorf("setHwVolume(%d, %d): expected error, got nil", c.left, c.right)
		}
	}
	if len(m.WriteLog) != 0 {
		t.Errorf("expected no mixer writes on rejected percent, got %d", len(m.WriteLog))
	}
}

func TestSetHwVolumeLeftOnlyAveragesBothPercents(t *testing.T) {
	m := mock.New()
	m.AddInt("left_vol", 1, 0, 100, 0)
	sd := newTestStreamDef(&volCtl{controlName: "left_vol"}, nil)

	if err := setHwVolume(slog.Default(), m, sd, 20, 80); err != nil {
		t.Fatalf("setHwVolume: %v", err)
	}
	if len(m.WriteLog) != 1 {
		t.Fatalf("expected 1 write, got %d", len(m.WriteLog))
	}
	// (20+80)/2 = 50, scaled onto 0..100 is 50.
	if v := m.WriteLog[0].Value; v != int64(50) {
		t.Errorf("leftvol write = %v, want 50", v)
	}
}

func TestSetHwVolumeRightOnlyUsesRightPercentAlone(t *testing.T) {
	m := mock.New()
	m.AddInt("right_vol", 1, 0, 100, 0)
	sd := newTestStreamDef(nil, &volCtl{controlName: "right_vol"})

	if err := setHwVolume(slog.Default(), m, sd, 20, 80); err != nil {
		t.Fatalf("setHwVolume: %v", err)
	}
	if len(m.WriteLog) != 1 {
		t.Fatalf("expected 1 write, got %d", len(m.WriteLog))
	}
	if v := m.WriteLog[0].Value; v != int64(80) {
		t.Errorf("rightvol write = %v, want 80 (rightPc alone, not averaged)", v)
	}
}

func TestSetHwVolumeBothCtlsWrittenIndependently(t *testing.T) {
	m := mock.New()
	m.AddInt("left_vol", 1, 0, 100, 0)
	m.AddInt("right_vol", 1, 0, 100, 0)
	sd := newTestStreamDef(&volCtl{controlName: "left_vol"}, &volCtl{controlName: "right_vol"})

	if err := setHwVolume(slog.Default(), m, sd, 10, 90); err != nil {
		t.Fatalf("setHwVolume: %v", err)
	}
	if len(m.WriteLog) != 2 {
		t.Fatalf("expected 2 writes, got %d", len(m.WriteLog))
	}
	byControl := map[string]any{}
	for _, e := range m.WriteLog {
		byControl[e.Control] = e.Value
	}
	if byControl["left_vol"] != int64(10) {
		t.Errorf("left_vol write = %v, want 10", byControl["left_vol"])
	}
	if byControl["right_vol"] != int64(90) {
		t.Errorf("right_vol write = %v, want 90", byControl["right_vol"])
	}
}

func TestSetHwVolumeNoCtlsIsNoop(t *testing.T) {
	m := mock.New()
	sd := newTestStreamDef(nil, nil)
	if err := setHwVolume(slog.Default(), m, sd, 10, 90); err != nil {
		t.Fatalf("setHwVolume with no volume ctls: %v", err)
	}
	if len(m.WriteLog) != 0 {
		t.Errorf("expected no writes, got %d", len(m.WriteLog))
	}
}

func TestSetHwVolumeReportsWriteFailure(t *testing.T) {
	m := mock.New()
	m.AddInt("left_vol", 1, 0, 100, 0)
	m.FailOn["left_vol"] = errBoom
	sd := newTestStreamDef(&volCtl{controlName: "left_vol"}, nil)

	if err := setHwVolume(slog.Default(), m, sd, 10, 10); err == nil {
		t.Fatal("expected error from failing mixer write")
	}
}

func TestVolRangeOverridesControlRange(t *testing.T) {
	c := &mixer.Control{Kind: mixer.KindInt, Min: 0, Max: 100}
	vc := &volCtl{hasMin: true, min: 10, hasMax: true, max: 90}
	min, max := volRange(vc, c)
	if min != 10 || max != 90 {
		t.Errorf("volRange = (%d, %d), want (10, 90)", min, max)
	}
}

func TestVolRangeFallsBackToControlRange(t *testing.T) {
	c := &mixer.Control{Kind: mixer.KindInt, Min: -60, Max: 0}
	vc := &volCtl{}
	min, max := volRange(vc, c)
	if min != -60 || max != 0 {
		t.Errorf("volRange = (%d, %d), want (-60, 0)", min, max)
	}
}
