package audiohal

// OpenConfig carries the attributes open_anonymous uses to select a
// stream definition. Format selects pcm vs compress; direction is
// derived from the requested device-bit set, not carried here.
type OpenConfig struct {
	Format string // "pcm" or "compress"
}

// OpenAnonymous selects the stream definition matching (type derived
// from config.Format, direction derived from devices), instantiates an
// OpenStream bound to devices & ~bitDefaultMask, and applies initial
// routing. Fails with ResourceLimit if the definition's instance count
// is already at its limit, or NotFound if no definition matches.
func (e *Engine) OpenAnonymous(devices uint32, flags uint32, cfg OpenConfig) (*OpenStream, error) {
	dir := "out"
	if isInputBit(devices) {
		dir = "in"
	}
	defs := e.model.findAnonymous(cfg.Format, dir)
	if len(defs) == 0 {
		return nil, newErr(KindNotFound, "no stream definition for type=%q dir=%q", cfg.Format, dir)
	}
	sd := defs[0]
	for _, d := range defs {
		if e.instanceCount[d] < d.instances || d.instances == 0 {
			sd = d
			break
		}
	}
	if sd.instances > 0 && e.instanceCount[sd] >= sd.instances {
		return nil, newErr(KindResourceLimit, "stream type=%q dir=%q has reached its instance limit of %d", cfg.Format, dir, sd.instances)
	}

	s := &OpenStream{def: sd, bits: 0}
	e.instanceCount[sd]++
	if err := e.ApplyRoute(s, devices&^bitDefaultMask); err != nil {
		return s, err
	}
	e.observeOpen(s)
	return s, nil
}

// OpenNamed opens a stream by name. "global" is always openable, even
// absent from the document, and never itself contributes to per-device
// routing refcounts; only its on/off paths run, driven by the global
// activation refcount incremented below.
func (e *Engine) OpenNamed(name string) (*OpenStream, error) {
	sd, ok := e.model.findNamed(name)
	if !ok {
		return nil, newErr(KindNotFound, "no named stream %q", name)
	}
	if sd.instances > 0 && e.instanceCount[sd] >= sd.instances {
		return nil, newErr(KindResourceLimit, "named stream %q has reached its instance limit of %d", name, sd.instances)
	}

	s := &OpenStream{def: sd, bits: 0}
	e.instanceCount[sd]++

	if sd.isGlobalPseudo() {
		e.globalActivate()
		e.observeOpen(s)
		return s, nil
	}
	e.observeOpen(s)
	return s, nil
}

// ApplyRoute diffs the stream's current bits against newBits and fires
// the appropriate deactivation/activation sequence per device, then
// records newBits as current. Removed devices are processed first (for
// disable paths) and added devices second (for enable paths); global
// and per-device on/off transitions are evaluated from the updated
// per-device counts as each side is processed.
func (e *Engine) ApplyRoute(s *OpenStream, newBits uint32) error {
	added := newBits &^ s.bits
	removed := s.bits &^ newBits
	if added == 0 && removed == 0 {
		s.bits = newBits
		return nil
	}

	var firstErr error
	for _, d := range e.devicesInMask(removed, s.IsInput()) {
		if err := e.deactivate(s, d); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, d := range e.devicesInMask(added, s.IsInput()) {
		if err := e.activate(s, d); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	s.bits = newBits
	e.observeRoute(s, newBits)
	return firstErr
}

// devicesInMask returns every declared Device on the stream's side
// (input devices when input is true, output devices otherwise) whose
// bits, BitIn aside, intersect mask.
func (e *Engine) devicesInMask(mask uint32, input bool) []*device {
	mask &^= BitIn
	if mask == 0 {
		return nil
	}
	var out []*device
	for _, d := range e.model.devices {
		if isInputBit(d.bit) == input && d.bit&^BitIn&mask != 0 {
			out = append(out, d)
		}
	}
	return out
}

// activate performs activation of D on behalf of S: run S's
// per-device enable path if D has one by that name, bump D's refcount
// and fire D's on path on the 0→1 transition, then bump and evaluate
// the global refcount the same way.
func (e *Engine) activate(s *OpenStream, d *device) error {
	var firstErr error
	if s.def.enablePathName != "" {
		if p, ok := d.paths[s.def.enablePathName]; ok {
			if err := execPath(e.log, e.mixer, p); err != nil {
				firstErr = err
			}
		}
	}

	e.deviceRefcount[d]++
	if e.deviceRefcount[d] == 1 {
		if err := execPath(e.log, e.mixer, d.onPath()); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := e.globalActivate(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// deactivate mirrors activate: run S's disable path, decrement D's
// refcount and fire D's off path on the 1→0 transition, then the same
// for the global refcount.
func (e *Engine) deactivate(s *OpenStream, d *device) error {
	var firstErr error
	if s.def.disablePathName != "" {
		if p, ok := d.paths[s.def.disablePathName]; ok {
			if err := execPath(e.log, e.mixer, p); err != nil {
				firstErr = err
			}
		}
	}

	if e.deviceRefcount[d] > 0 {
		e.deviceRefcount[d]--
	}
	if e.deviceRefcount[d] == 0 {
		if err := execPath(e.log, e.mixer, d.offPath()); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := e.globalDeactivate(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// globalActivate bumps the process-wide active-stream count and fires
// Global's on path on the 0→1 transition.
func (e *Engine) globalActivate() error {
	e.globalCount++
	if e.globalCount == 1 {
		return execPath(e.log, e.mixer, e.model.global.onPath())
	}
	return nil
}

// globalDeactivate mirrors globalActivate for the 1→0 transition.
func (e *Engine) globalDeactivate() error {
	if e.globalCount > 0 {
		e.globalCount--
	}
	if e.globalCount == 0 {
		return execPath(e.log, e.mixer, e.model.global.offPath())
	}
	return nil
}

// ReleaseStream tears down routing (as apply_route(open, 0) would) and
// releases the definition's instance slot. For the synthetic "global"
// stream this only releases the global activation refcount, since
// open_named never routed it to any device.
func (e *Engine) ReleaseStream(s *OpenStream) error {
	var err error
	if s.def.isGlobalPseudo() {
		err = e.globalDeactivate()
	} else {
		err = e.ApplyRoute(s, 0)
	}
	if e.instanceCount[s.def] > 0 {
		e.instanceCount[s.def]--
	}
	e.observeRelease(s, err)
	return err
}
