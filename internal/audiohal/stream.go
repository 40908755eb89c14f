package audiohal

// OpenStream is a live instantiation of a streamDef: its current
// routing bit set and a back-pointer to the definition it was created
// from. Multiple OpenStreams may share one definition up to its
// instances limit.
type OpenStream struct {
	def  *streamDef
	bits uint32
}

// IsInput reports whether this stream carries input (capture) audio.
func (s *OpenStream) IsInput() bool { return isInputBit(s.bits) || s.def.isInput() }

// IsPcm reports whether the stream definition's type is "pcm".
func (s *OpenStream) IsPcm() bool { return s.def.typ == "pcm" }

// IsCompressed reports whether the stream definition's type is "compress".
func (s *OpenStream) IsCompressed() bool { return s.def.typ == "compress" }

// IsHardware reports whether the stream definition's type is "hw".
func (s *OpenStream) IsHardware() bool { return s.def.typ == "hw" }

// IsPcmIn reports a pcm input stream.
func (s *OpenStream) IsPcmIn() bool { return s.IsPcm() && s.IsInput() }

// IsPcmOut reports a pcm output stream.
func (s *OpenStream) IsPcmOut() bool { return s.IsPcm() && !s.IsInput() }

// IsCompressedIn reports a compressed input stream.
func (s *OpenStream) IsCompressedIn() bool { return s.IsCompressed() && s.IsInput() }

// IsCompressedOut reports a compressed output stream.
func (s *OpenStream) IsCompressedOut() bool { return s.IsCompressed() && !s.IsInput() }

// CardNumber returns the stream's card attribute, defaulting to the
// mixer's card when the stream definition does not set one.
func (s *OpenStream) CardNumber(mixerCard int) int {
	if s.def.card != nil {
		return *s.def.card
	}
	return mixerCard
}

// DeviceNumber returns the stream's device attribute, or -1 by default.
func (s *OpenStream) DeviceNumber() int {
	if s.def.deviceNum != nil {
		return *s.def.deviceNum
	}
	return -1
}

// Rate returns the stream's rate attribute, or 0 by default.
func (s *OpenStream) Rate() int {
	if s.def.rate != nil {
		return *s.def.rate
	}
	return 0
}

// PeriodSize returns the stream's period_size attribute, or 0 by default.
func (s *OpenStream) PeriodSize() int {
	if s.def.periodSz != nil {
		return *s.def.periodSz
	}
	return 0
}

// PeriodCount returns the stream's period_count attribute, or 0 by default.
func (s *OpenStream) PeriodCount() int {
	if s.def.periodCnt != nil {
		return *s.def.periodCnt
	}
	return 0
}

// CurrentRoutes returns the stream's current device-bit set, preserving
// BitIn for input streams even when the remaining bits are 0.
func (s *OpenStream) CurrentRoutes() uint32 {
	if s.def.isInput() {
		return s.bits | BitIn
	}
	return s.bits
}

// ConstantString reads a named constant as a raw string.
func (s *OpenStream) ConstantString(name string) (string, bool) {
	return s.def.constant(name)
}

// ConstantUint32 reads a named constant and parses it as an unsigned
// 32-bit integer (decimal or 0x-prefixed hex).
func (s *OpenStream) ConstantUint32(name string) (uint32, bool) {
	v, ok := s.def.constant(name)
	if !ok {
		return 0, false
	}
	n, err := parseCtlInt(v)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// ConstantInt32 reads a named constant and parses it as a signed
// 32-bit integer (decimal or 0x-prefixed hex).
func (s *OpenStream) ConstantInt32(name string) (int32, bool) {
	v, ok := s.def.constant(name)
	if !ok {
		return 0, false
	}
	n, err := parseCtlInt(v)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}
