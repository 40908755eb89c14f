package audiohal

import (
	"testing"

	"github.com/haldev/audiohal/internal/mixer/mock"
)

func TestParseCtlIntDecimalAndHex(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"-7", -7},
		{"0x2a", 42},
		{"0X2A", 42},
		{"-0x10", -16},
	}
	for _, c := range cases {
		got, err := parseCtlInt(c.in)
		if err != nil {
			t.Errorf("parseCtlInt(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseCtlInt(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseCtlIntRejectsGarbage(t *testing.T) {
	if _, err := parseCtlInt("not-a-number"); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestParseByteList(t *testing.T) {
	got, err := parseByteList("0x01,0x02,0xff")
	if err != nil {
		t.Fatalf("parseByteList: %v", err)
	}
	want := []byte{0x01, 0x02, 0xff}
	if len(got) != len(want) {
		t.Fatalf("parseByteList length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestParseByteListEmpty(t *testing.T) {
	got, err := parseByteList("")
	if err != nil {
		t.Fatalf("parseByteList(\"\"): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestParseCtlActionRejectsUnknownControl(t *testing.T) {
	m := mock.New()
	_, err := parseCtlAction(xmlCtl{Name: "missing", Val: "1"}, m, "")
	if err == nil {
		t.Fatal("expected error for unresolved control")
	}
}

func TestParseCtlActionRejectsValAndFileTogether(t *testing.T) {
	m := mock.New()
	m.AddByte("coeffs", 4)
	_, err := parseCtlAction(xmlCtl{Name: "coeffs", Val: "0x01", File: "x.bin"}, m, "")
	if err == nil {
		t.Fatal("expected error: val and file are mutually exclusive")
	}
}

func TestParseCtlActionEnumRejectsIllegalValue(t *testing.T) {
	m := mock.New()
	m.AddEnum("mode", []string{"a", "b"}, 0)
	_, err := parseCtlAction(xmlCtl{Name: "mode", Val: "c"}, m, "")
	if err == nil {
		t.Fatal("expected error for illegal enum value")
	}
}

func TestParseCtlActionResolvesBoolAndInt(t *testing.T) {
	m := mock.New()
	m.AddBool("mute", 1, 0)
	m.AddInt("gain", 1, 0, 100, 0)

	a, err := parseCtlAction(xmlCtl{Name: "mute", Val: "1"}, m, "")
	if err != nil {
		t.Fatalf("bool ctl: %v", err)
	}
	if a.kind != valInt || a.intValue != 1 {
		t.Errorf("bool ctl resolved as kind=%v value=%v", a.kind, a.intValue)
	}

	a, err = parseCtlAction(xmlCtl{Name: "gain", Val: "50"}, m, "")
	if err != nil {
		t.Fatalf("int ctl: %v", err)
	}
	if a.kind != valInt || a.intValue != 50 {
		t.Errorf("int ctl resolved as kind=%v value=%v", a.kind, a.intValue)
	}
}

func TestParseCtlActionIndexOutOfRange(t *testing.T) {
	m := mock.New()
	m.AddInt("gain", 2, 0, 100, 0)
	idx := 5
	_, err := parseCtlAction(xmlCtl{Name: "gain", Val: "1", Index: &idx}, m, "")
	if err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}
