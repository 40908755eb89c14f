package audiohal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/haldev/audiohal/internal/mixer/mock"
)

const routingDoc = `<audiohal>
  <mixer card="0"/>
  <device name="speaker">
    <path name="on"><ctl name="spk_pwr" val="1"/></path>
    <path name="off"><ctl name="spk_pwr" val="0"/></path>
  </device>
  <device name="headphone">
    <path name="on"><ctl name="hp_pwr" val="1"/></path>
    <path name="off"><ctl name="hp_pwr" val="0"/></path>
  </device>
  <stream type="pcm" dir="out" instances="2">
    <ctl function="leftvol" name="vol"/>
  </stream>
  <stream name="voice-call" type="hw" dir="out"/>
</audiohal>`

func newTestEngine(t *testing.T) (*Engine, *mock.Mixer) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "audiohal.xml"), []byte(routingDoc), 0o644); err != nil {
		t.Fatalf("writing document: %v", err)
	}
	m := mock.New()
	m.AddBool("spk_pwr", 1, 0)
	m.AddBool("hp_pwr", 1, 0)
	m.AddInt("vol", 1, 0, 100, 0)

	e, err := InitAudioConfig("audiohal.xml", dir, m, nil)
	if err != nil {
		t.Fatalf("InitAudioConfig: %v", err)
	}
	return e, m
}

func TestOpenAnonymousAndApplyRouteFiresOnTransitionOnly(t *testing.T) {
	e, m := newTestEngine(t)

	s, err := e.OpenAnonymous(bitSpeaker, 0, OpenConfig{Format: "pcm"})
	if err != nil {
		t.Fatalf("OpenAnonymous: %v", err)
	}
	onWrites := countWrites(m, "spk_pwr")
	if onWrites != 1 {
		t.Fatalf("expected 1 write to spk_pwr after first activation, got %d", onWrites)
	}

	s2, err := e.OpenAnonymous(bitSpeaker, 0, OpenConfig{Format: "pcm"})
	if err != nil {
		t.Fatalf("OpenAnonymous (second): %v", err)
	}
	if countWrites(m, "spk_pwr") != 1 {
		t.Fatal("second stream routing to an already-active device should not refire the on path")
	}

	if err := e.ReleaseStream(s); err != nil {
		t.Fatalf("ReleaseStream: %v", err)
	}
	if countWrites(m, "spk_pwr") != 1 {
		t.Fatal("releasing one of two streams should not fire the off path while the other still routes the device")
	}

	if err := e.ReleaseStream(s2); err != nil {
		t.Fatalf("ReleaseStream: %v", err)
	}
	if countWrites(m, "spk_pwr") != 2 {
		t.Fatalf("expected off path to fire once the last stream releases the device, got %d writes", countWrites(m, "spk_pwr"))
	}
}

func TestApplyRouteMovesBetweenDevices(t *testing.T) {
	e, m := newTestEngine(t)

	s, err := e.OpenAnonymous(bitSpeaker, 0, OpenConfig{Format: "pcm"})
	if err != nil {
		t.Fatalf("OpenAnonymous: %v", err)
	}
	if err := e.ApplyRoute(s, bitHeadphone); err != nil {
		t.Fatalf("ApplyRoute: %v", err)
	}
	if countWrites(m, "spk_pwr") != 2 {
		t.Errorf("expected speaker to be turned on then off, got %d writes", countWrites(m, "spk_pwr"))
	}
	if countWrites(m, "hp_pwr") != 1 {
		t.Errorf("expected headphone on path to fire once, got %d writes", countWrites(m, "hp_pwr"))
	}
}

func TestOpenAnonymousEnforcesInstanceLimit(t *testing.T) {
	e, _ := newTestEngine(t)

	for i := 0; i < 2; i++ {
		if _, err := e.OpenAnonymous(0, 0, OpenConfig{Format: "pcm"}); err != nil {
			t.Fatalf("OpenAnonymous #%d: %v", i, err)
		}
	}
	if _, err := e.OpenAnonymous(0, 0, OpenConfig{Format: "pcm"}); err == nil {
		t.Fatal("expected ResourceLimit error after instance limit reached")
	}
}

func TestOpenNamedResolvesHwStream(t *testing.T) {
	e, _ := newTestEngine(t)
	s, err := e.OpenNamed("voice-call")
	if err != nil {
		t.Fatalf("OpenNamed: %v", err)
	}
	if !s.IsHardware() {
		t.Error("expected voice-call to resolve to a hw stream")
	}
}

func TestOpenNamedUnknownNameFails(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.OpenNamed("does-not-exist"); err == nil {
		t.Fatal("expected NotFound error for unknown named stream")
	}
}

func TestGlobalPseudoStreamAlwaysOpenable(t *testing.T) {
	e, _ := newTestEngine(t)

	s, err := e.OpenNamed("global")
	if err != nil {
		t.Fatalf("OpenNamed(\"global\"): %v", err)
	}
	if e.GlobalRefcount() != 1 {
		t.Errorf("expected global refcount 1 after first open, got %d", e.GlobalRefcount())
	}

	s2, err := e.OpenNamed("global")
	if err != nil {
		t.Fatalf("OpenNamed(\"global\") second: %v", err)
	}
	if e.GlobalRefcount() != 2 {
		t.Errorf("expected global refcount 2, got %d", e.GlobalRefcount())
	}

	if err := e.ReleaseStream(s); err != nil {
		t.Fatalf("ReleaseStream: %v", err)
	}
	if e.GlobalRefcount() != 1 {
		t.Errorf("expected global refcount 1 after releasing one, got %d", e.GlobalRefcount())
	}
	if err := e.ReleaseStream(s2); err != nil {
		t.Fatalf("ReleaseStream: %v", err)
	}
	if e.GlobalRefcount() != 0 {
		t.Errorf("expected global refcount 0, got %d", e.GlobalRefcount())
	}
}

func TestActivatingAnyDeviceBumpsGlobalRefcount(t *testing.T) {
	e, _ := newTestEngine(t)
	s, err := e.OpenAnonymous(bitSpeaker, 0, OpenConfig{Format: "pcm"})
	if err != nil {
		t.Fatalf("OpenAnonymous: %v", err)
	}
	if e.GlobalRefcount() != 1 {
		t.Errorf("expected global refcount to follow per-device activation, got %d", e.GlobalRefcount())
	}
	if err := e.ReleaseStream(s); err != nil {
		t.Fatalf("ReleaseStream: %v", err)
	}
	if e.GlobalRefcount() != 0 {
		t.Errorf("expected global refcount back to 0 after release, got %d", e.GlobalRefcount())
	}
}

func countWrites(m *mock.Mixer, control string) int {
	n := 0
	for _, e := range m.WriteLog {
		if e.Control == control {
			n++
		}
	}
	return n
}
