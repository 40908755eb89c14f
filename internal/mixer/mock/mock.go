// Package mock implements an in-memory mixer.Mixer used by tests and by
// the validate command, to drive the routing engine without a real
// kernel mixer. The serving path in main.go does not use it.
package mock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/haldev/audiohal/internal/mixer"
)

// Mixer is a fully in-memory mixer.Mixer. Writes are recorded in
// WriteLog for assertions; failing controls can be configured via
// FailOn to exercise the engine's best-effort write-failure handling.
type Mixer struct {
	byName map[string]*mixer.Control
	byID   map[int]*mixer.Control
	order  []*mixer.Control

	values map[int][]int64  // bool/int controls, by id
	enum   map[int]int      // current enum index, by id
	bytes  map[int][]byte   // byte controls, by id

	WriteLog []WriteEntry
	FailOn   map[string]error
}

// WriteEntry records a single write for test assertions.
type WriteEntry struct {
	Control string
	Index   int // -1 for "all elements" or n/a
	Value   any
}

// New returns an empty Mixer.
func New() *Mixer {
	return &Mixer{
		byName: make(map[string]*mixer.Control),
		byID:   make(map[int]*mixer.Control),
		values: make(map[int][]int64),
		enum:   make(map[int]int),
		bytes:  make(map[int][]byte),
		FailOn: make(map[string]error),
	}
}

// AddBool registers a boolean control with N elements, each initialized
// to init (normalized to 0/1).
func (m *Mixer) AddBool(name string, n int, init int64) *mixer.Control {
	c := m.add(name, mixer.KindBool, n)
	vals := make([]int64, n)
	norm := int64(0)
	if init != 0 {
		norm = 1
	}
	for i := range vals {
		vals[i] = norm
	}
	m.values[c.ID] = vals
	return c
}

// AddInt registers an integer control with N elements, a (min,max)
// range, and an initial value applied to every element.
func (m *Mixer) AddInt(name string, n int, min, max, init int64) *mixer.Control {
	c := m.add(name, mixer.KindInt, n)
	c.Min, c.Max = min, max
	vals := make([]int64, n)
	for i := range vals {
		vals[i] = init
	}
	m.values[c.ID] = vals
	return c
}

// AddEnum registers an enum control with the given legal strings and
// an initial selection index.
func (m *Mixer) AddEnum(name string, names []string, initIdx int) *mixer.Control {
	c := m.add(name, mixer.KindEnum, 1)
	c.EnumNames = append([]string(nil), names...)
	m.enum[c.ID] = initIdx
	return c
}

// AddByte registers a byte control of fixed length n, initialized to
// zero octets.
func (m *Mixer) AddByte(name string, n int) *mixer.Control {
	c := m.add(name, mixer.KindByte, n)
	m.bytes[c.ID] = make([]byte, n)
	return c
}

func (m *Mixer) add(name string, k mixer.Kind, n int) *mixer.Control {
	id := len(m.order) + 1
	c := &mixer.Control{ID: id, Name: name, Kind: k, N: n}
	m.byName[name] = c
	m.byID[id] = c
	m.order = append(m.order, c)
	return c
}

func (m *Mixer) Controls() []*mixer.Control { return m.order }

func (m *Mixer) ControlByName(name string) (*mixer.Control, bool) {
	c, ok := m.byName[name]
	return c, ok
}

func (m *Mixer) ControlByID(id int) (*mixer.Control, bool) {
	c, ok := m.byID[id]
	return c, ok
}

func (m *Mixer) failure(name string) error {
	if err, ok := m.FailOn[name]; ok {
		return err
	}
	return nil
}

func (m *Mixer) WriteInt(c *mixer.Control, idx int, value int64) error {
	if err := m.failure(c.Name); err != nil {
		return err
	}
	if c.Kind == mixer.KindBool {
		if value != 0 {
			value = 1
		}
	}
	vals := m.values[c.ID]
	if idx < 0 {
		for i := range vals {
			vals[i] = value
		}
		m.WriteLog = append(m.WriteLog, WriteEntry{Control: c.Name, Index: -1, Value: value})
	} else {
		if idx >= len(vals) {
			return fmt.Errorf("mock: index %d out of range for %q (n=%d)", idx, c.Name, len(vals))
		}
		vals[idx] = value
		m.WriteLog = append(m.WriteLog, WriteEntry{Control: c.Name, Index: idx, Value: value})
	}
	c.Changed = true
	return nil
}

func (m *Mixer) WriteEnum(c *mixer.Control, name string) error {
	if err := m.failure(c.Name); err != nil {
		return err
	}
	idx := c.EnumIndex(name)
	if idx < 0 {
		return fmt.Errorf("mock: %q is not a legal value for enum %q", name, c.Name)
	}
	m.enum[c.ID] = idx
	c.Changed = true
	m.WriteLog = append(m.WriteLog, WriteEntry{Control: c.Name, Index: 0, Value: name})
	return nil
}

func (m *Mixer) WriteBytes(c *mixer.Control, data []byte) error {
	if err := m.failure(c.Name); err != nil {
		return err
	}
	dst := m.bytes[c.ID]
	n := len(data)
	if n > len(dst) {
		n = len(dst)
	}
	copy(dst, data[:n])
	c.Changed = true
	m.WriteLog = append(m.WriteLog, WriteEntry{Control: c.Name, Index: -1, Value: append([]byte(nil), data[:n]...)})
	return nil
}

func (m *Mixer) ReadInt(c *mixer.Control) ([]int64, error) {
	return append([]int64(nil), m.values[c.ID]...), nil
}

func (m *Mixer) ReadEnum(c *mixer.Control) (string, error) {
	idx := m.enum[c.ID]
	if idx < 0 || idx >= len(c.EnumNames) {
		return "", fmt.Errorf("mock: enum %q has no current selection", c.Name)
	}
	return c.EnumNames[idx], nil
}

func (m *Mixer) ReadBytes(c *mixer.Control) ([]byte, error) {
	return append([]byte(nil), m.bytes[c.ID]...), nil
}

// LoadControlsFile parses the controls-file format used by the mock
// mixer harness: one control per line, CSV with fields
// name,kind,num_elements,initial_value,valueset. valueset is "min:max"
// for int, colon-separated strings for enum, empty for bool/byte.
func (m *Mixer) LoadControlsFile(data string) error {
	for lineNo, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 4 {
			return fmt.Errorf("controls file line %d: expected at least 4 fields, got %d", lineNo+1, len(fields))
		}
		name := fields[0]
		kind := fields[1]
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("controls file line %d: bad num_elements %q: %w", lineNo+1, fields[2], err)
		}
		initial := fields[3]
		valueset := ""
		if len(fields) > 4 {
			valueset = fields[4]
		}

		switch kind {
		case "bool":
			init, _ := strconv.ParseInt(initial, 10, 64)
			m.AddBool(name, n, init)
		case "int":
			init, _ := strconv.ParseInt(initial, 10, 64)
			minMax := strings.SplitN(valueset, ":", 2)
			var lo, hi int64
			if len(minMax) == 2 {
				lo, _ = strconv.ParseInt(minMax[0], 10, 64)
				hi, _ = strconv.ParseInt(minMax[1], 10, 64)
			}
			m.AddInt(name, n, lo, hi, init)
		case "enum":
			names := strings.Split(valueset, ":")
			initIdx, _ := strconv.Atoi(initial)
			m.AddEnum(name, names, initIdx)
		case "byte":
			m.AddByte(name, n)
		default:
			return fmt.Errorf("controls file line %d: unknown kind %q", lineNo+1, kind)
		}
	}
	return nil
}

var _ mixer.Mixer = (*Mixer)(nil)
