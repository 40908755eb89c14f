package audiohal

// Device bits follow the published audio-device bitmap: output
// devices occupy the low bits of a 32-bit word, input devices are the
// same low bits with BitIn additionally set.
const (
	BitIn uint32 = 0x80000000

	bitEarpiece  uint32 = 0x1
	bitSpeaker   uint32 = 0x2
	bitHeadset   uint32 = 0x4
	bitHeadphone uint32 = 0x8
	bitSCO       uint32 = 0x10
	bitAux       uint32 = 0x400
	bitVoice     uint32 = 0x100000
	bitOutDefault uint32 = 0x40000000

	bitMic      uint32 = BitIn | 0x4
	bitBackMic  uint32 = BitIn | 0x80
	bitSCOIn    uint32 = BitIn | 0x8
	bitInDefault uint32 = BitIn | 0x40000000
)

// deviceBitTable maps the well-known device names the XML schema
// accepts to their bit constant. Loading fails if a <device name="…">
// is neither present here nor the reserved "global" pseudo-device.
var deviceBitTable = map[string]uint32{
	"earpiece":  bitEarpiece,
	"speaker":   bitSpeaker,
	"headset":   bitHeadset,
	"headphone": bitHeadphone,
	"sco":       bitSCO,
	"aux":       bitAux,
	"voice":     bitVoice,
	"mic":       bitMic,
	"back mic":  bitBackMic,
	"sco_in":    bitSCOIn,
}

// OutDefault and InDefault are "no device" placeholders: they trigger
// no paths and are masked out of any caller-supplied device set before
// routing.
const (
	OutDefault uint32 = bitOutDefault
	InDefault  uint32 = bitInDefault
)

// bitDefaultMask covers both default placeholders, masked out of any
// requested device set per open_anonymous's "devices & ~BIT_DEFAULT_MASK".
const bitDefaultMask = OutDefault | InDefault

// isInputBit reports whether bits carries the BitIn flag.
func isInputBit(bits uint32) bool { return bits&BitIn != 0 }

// deviceBitByName resolves a device name to its bit value.
func deviceBitByName(name string) (uint32, bool) {
	b, ok := deviceBitTable[name]
	return b, ok
}
