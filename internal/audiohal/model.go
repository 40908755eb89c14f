package audiohal

import "github.com/haldev/audiohal/internal/mixer"

// valueKind tags a resolved ctl action's value representation.
type valueKind int

const (
	valInt valueKind = iota
	valBytes
	valEnum
	valFile
)

// ctlAction is a resolved reference to a Control plus an optional
// element index and a value representation. It never outlives the
// Control it references, since both are owned by the same Model.
type ctlAction struct {
	control  *mixer.Control
	hasIndex bool
	index    int

	kind      valueKind
	intValue  int64
	byteValue []byte
	enumValue string
	filePath  string
}

// path is a named, ordered list of ctl actions.
type path struct {
	name    string
	actions []*ctlAction
}

// volCtl is a <ctl function="leftvol|rightvol"> entry on a stream.
type volCtl struct {
	controlName string
	hasIndex    bool
	index       int
	hasMin      bool
	min         int64
	hasMax      bool
	max         int64
}

// device is a named logical sink/source: a bit in the device bitmap
// plus up to three named paths ("on", "off", and any number of
// per-stream enable/disable paths looked up by name).
type device struct {
	name  string
	bit   uint32
	paths map[string]*path
}

func (d *device) onPath() *path  { return d.paths["on"] }
func (d *device) offPath() *path { return d.paths["off"] }

// useCase is a single named case within a usecase group: an ordered
// list of ctl actions with no routing effect.
type useCase struct {
	name    string
	actions []*ctlAction
}

// streamDef is the static declaration of a stream: its type,
// direction, fixed attributes, enable/disable path names, constants,
// and use-cases. Immutable once the model is built.
type streamDef struct {
	name      string // empty for anonymous streams
	typ       string // pcm | compress | hw
	dir       string // in | out | "" (global only)
	card      *int
	deviceNum *int
	rate      *int
	periodSz  *int
	periodCnt *int
	instances int // 0 = unlimited

	constants map[string]string

	enablePathName  string
	disablePathName string

	leftVol  *volCtl
	rightVol *volCtl

	// useCases maps usecase name -> case name -> case.
	useCases map[string]map[string]*useCase
}

func (s *streamDef) isNamed() bool { return s.name != "" }

func (s *streamDef) isInput() bool  { return s.dir == "in" }
func (s *streamDef) isOutput() bool { return s.dir == "out" }

const globalStreamName = "global"

// isGlobalPseudo reports whether this definition is the built-in
// synthetic "global" stream (see Model.globalStream).
func (s *streamDef) isGlobalPseudo() bool { return s.name == globalStreamName }

// Model is the immutable configuration model assembled from XML:
// resolved paths, devices, and stream definitions, plus the lookup
// tables the engine's public operations consult. Once built by Load,
// nothing in a Model is mutated — the routing engine's refcounts and
// open-stream bookkeeping live alongside it, never inside it.
type Model struct {
	devices map[string]*device
	global  *device // pseudo-Device with reserved name "global"

	anonStreams map[string][]*streamDef // key "type:dir" -> pool
	named       map[string]*streamDef

	globalStream *streamDef // synthetic, always openable by name "global"

	mixerCard int
	preInit   *path
	init      *path
}

func newModel() *Model {
	m := &Model{
		devices:     make(map[string]*device),
		anonStreams: make(map[string][]*streamDef),
		named:       make(map[string]*streamDef),
	}
	m.global = &device{name: "global", paths: make(map[string]*path)}
	m.globalStream = &streamDef{name: globalStreamName, typ: "hw", instances: 0, constants: map[string]string{}}
	return m
}

// lookupPath searches every declared device (and the global pseudo-
// device) for a path of the given name, for introspection and tests.
// Engine logic never uses this: activation/deactivation look a path up
// within one specific Device, via device.paths directly.
func (m *Model) lookupPath(name string) (*path, bool) {
	if p, ok := m.global.paths[name]; ok {
		return p, true
	}
	for _, d := range m.devices {
		if p, ok := d.paths[name]; ok {
			return p, true
		}
	}
	return nil, false
}

// outputDevices returns every declared output Device (global excluded).
func (m *Model) outputDevices() []*device {
	var out []*device
	for _, d := range m.devices {
		if !isInputBit(d.bit) {
			out = append(out, d)
		}
	}
	return out
}

// inputDevices returns every declared input Device.
func (m *Model) inputDevices() []*device {
	var out []*device
	for _, d := range m.devices {
		if isInputBit(d.bit) {
			out = append(out, d)
		}
	}
	return out
}

func anonKey(typ, dir string) string { return typ + ":" + dir }

// findAnonymous returns the stream definitions matching (type,
// direction), honoring the "anonymous streams of the same (type,
// direction) are allowed; they differ only by attributes and act as a
// pool" rule.
func (m *Model) findAnonymous(typ, dir string) []*streamDef {
	return m.anonStreams[anonKey(typ, dir)]
}

// findNamed resolves a stream definition by name. "global" always
// resolves to the synthetic pseudo-stream even if absent from XML.
func (m *Model) findNamed(name string) (*streamDef, bool) {
	if name == globalStreamName {
		return m.globalStream, true
	}
	s, ok := m.named[name]
	return s, ok
}

// streamConstant reads a named constant from a stream definition.
func (s *streamDef) constant(name string) (string, bool) {
	v, ok := s.constants[name]
	return v, ok
}
