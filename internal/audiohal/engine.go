// Package audiohal implements the audio routing configuration engine:
// an in-memory model assembled from an XML document, reference-counted
// device activation, path execution against a mixer abstraction, and
// hardware volume scaling. See Load for the entry point.
package audiohal

import (
	"log/slog"

	"github.com/haldev/audiohal/internal/mixer"
)

// Engine is a loaded configuration model plus the mutable routing
// state (device refcounts, per-definition instance counts) built on
// top of it. All public operations assume the caller serializes
// access to a given Engine; there is no internal locking.
type Engine struct {
	model *Model
	mixer mixer.Mixer
	log   *slog.Logger

	deviceRefcount map[*device]int
	globalCount    int
	instanceCount  map[*streamDef]int

	events *eventSink
}

// InitAudioConfig loads the configuration document at path (resolved
// against systemDefaultDir when relative), builds the model against m,
// and runs the document's pre_init then init control sequences.
func InitAudioConfig(path, systemDefaultDir string, m mixer.Mixer, log *slog.Logger) (*Engine, error) {
	if log == nil {
		log = slog.Default()
	}
	mdl, err := Load(path, systemDefaultDir, m)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		model:          mdl,
		mixer:          m,
		log:            log,
		deviceRefcount: make(map[*device]int),
		instanceCount:  make(map[*streamDef]int),
		events:         newEventSink(),
	}

	if err := execPath(e.log, e.mixer, mdl.preInit); err != nil {
		e.log.Warn("pre_init sequence reported a failure", "error", err)
	}
	if err := execPath(e.log, e.mixer, mdl.init); err != nil {
		e.log.Warn("init sequence reported a failure", "error", err)
	}

	e.observeLoad(mdl)
	return e, nil
}

// FreeAudioConfig releases the model. It runs no shutdown sequence;
// open streams obtained from this Engine become invalid. The Mixer
// itself is owned by the caller and is not closed here.
func (e *Engine) FreeAudioConfig() {
	e.model = nil
	e.deviceRefcount = nil
	e.instanceCount = nil
}

// GetMixer returns the underlying mixer handle.
func (e *Engine) GetMixer() mixer.Mixer { return e.mixer }

// GetSupportedOutputDevices returns the OR of the device bits of every
// declared output Device.
func (e *Engine) GetSupportedOutputDevices() uint32 {
	var bits uint32
	for _, d := range e.model.outputDevices() {
		bits |= d.bit
	}
	return bits
}

// GetSupportedInputDevices returns the OR of the device bits of every
// declared input Device.
func (e *Engine) GetSupportedInputDevices() uint32 {
	var bits uint32
	for _, d := range e.model.inputDevices() {
		bits |= d.bit
	}
	return bits
}

// IsNamedStreamDefined reports whether a named stream definition
// exists, including the built-in "global" pseudo-stream.
func (e *Engine) IsNamedStreamDefined(name string) bool {
	_, ok := e.model.findNamed(name)
	return ok
}

// GetStreamConstantString returns a named constant from a stream's
// definition as a raw string.
func (e *Engine) GetStreamConstantString(s *OpenStream, name string) (string, error) {
	v, ok := s.ConstantString(name)
	if !ok {
		return "", newErr(KindNotFound, "stream has no constant %q", name)
	}
	return v, nil
}

// GetStreamConstantUint32 returns a named constant parsed as uint32.
func (e *Engine) GetStreamConstantUint32(s *OpenStream, name string) (uint32, error) {
	v, ok := s.ConstantUint32(name)
	if !ok {
		return 0, newErr(KindNotFound, "stream has no numeric constant %q", name)
	}
	return v, nil
}

// GetStreamConstantInt32 returns a named constant parsed as int32.
func (e *Engine) GetStreamConstantInt32(s *OpenStream, name string) (int32, error) {
	v, ok := s.ConstantInt32(name)
	if !ok {
		return 0, newErr(KindNotFound, "stream has no numeric constant %q", name)
	}
	return v, nil
}

// SetHwVolume scales and writes the stream's leftvol/rightvol ctls.
func (e *Engine) SetHwVolume(s *OpenStream, leftPc, rightPc int) error {
	err := setHwVolume(e.log, e.mixer, s.def, leftPc, rightPc)
	e.observeVolume(s, leftPc, rightPc, err)
	return err
}

// ApplyUseCase resolves usecase.case on the stream's definition and
// runs its ctl list. It makes no routing change.
func (e *Engine) ApplyUseCase(s *OpenStream, usecase, caseName string) error {
	group, ok := s.def.useCases[usecase]
	if !ok {
		return newErr(KindNotFound, "stream has no usecase %q", usecase)
	}
	uc, ok := group[caseName]
	if !ok {
		return newErr(KindNotFound, "usecase %q has no case %q", usecase, caseName)
	}
	p := &path{name: usecase + "." + caseName, actions: uc.actions}
	err := execPath(e.log, e.mixer, p)
	e.observeUseCase(s, usecase, caseName, err)
	return err
}

// GetCurrentRoutes returns the stream's current device-bit set.
func (e *Engine) GetCurrentRoutes(s *OpenStream) uint32 { return s.CurrentRoutes() }
