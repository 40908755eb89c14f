package audiohal

import (
	"strconv"
	"strings"

	"github.com/haldev/audiohal/internal/mixer"
)

// parseCtlAction resolves an xmlCtl against the mixer and builds a
// ctlAction, enforcing the value-parsing rules for val/file attributes
// against the resolved control's kind. baseDir is the directory of the
// XML file this <ctl> appeared in, used to resolve a file= attribute
// the same way XML paths are resolved.
func parseCtlAction(x xmlCtl, m mixer.Mixer, baseDir string) (*ctlAction, error) {
	if x.Name == "" {
		return nil, newErr(KindBadConfig, "<ctl> missing required name attribute")
	}
	c, ok := m.ControlByName(x.Name)
	if !ok {
		return nil, newErr(KindBadConfig, "<ctl name=%q>: no such control in mixer", x.Name)
	}

	a := &ctlAction{control: c}
	if x.Index != nil {
		if *x.Index < 0 {
			return nil, newErr(KindBadConfig, "<ctl name=%q index=%d>: index must be non-negative", x.Name, *x.Index)
		}
		a.hasIndex = true
		a.index = *x.Index
	}

	switch {
	case x.File != "" && x.Val != "":
		return nil, newErr(KindBadConfig, "<ctl name=%q>: val and file are mutually exclusive", x.Name)

	case x.File != "":
		if c.Kind != mixer.KindByte {
			return nil, newErr(KindBadConfig, "<ctl name=%q file=%q>: file= is only valid for byte controls", x.Name, x.File)
		}
		a.kind = valFile
		a.filePath = resolveRelative(baseDir, x.File)

	case c.Kind == mixer.KindByte:
		a.kind = valBytes
		data, err := parseByteList(x.Val)
		if err != nil {
			return nil, newErr(KindBadConfig, "<ctl name=%q val=%q>: %v", x.Name, x.Val, err)
		}
		if len(data) > c.N {
			return nil, newErr(KindBadConfig, "<ctl name=%q>: inline byte value has %d bytes, control has only %d elements", x.Name, len(data), c.N)
		}
		a.byteValue = data

	case c.Kind == mixer.KindEnum:
		if c.EnumIndex(x.Val) < 0 {
			return nil, newErr(KindBadConfig, "<ctl name=%q val=%q>: not a legal value for enum control %q", x.Name, x.Val, x.Name)
		}
		a.kind = valEnum
		a.enumValue = x.Val

	case c.Kind == mixer.KindBool, c.Kind == mixer.KindInt:
		v, err := parseCtlInt(x.Val)
		if err != nil {
			return nil, newErr(KindBadConfig, "<ctl name=%q val=%q>: %v", x.Name, x.Val, err)
		}
		a.kind = valInt
		a.intValue = v

	default:
		return nil, newErr(KindBadConfig, "<ctl name=%q>: control has unsupported kind", x.Name)
	}

	if a.hasIndex && a.index >= c.N {
		return nil, newErr(KindBadConfig, "<ctl name=%q index=%d>: control has only %d elements", x.Name, a.index, c.N)
	}
	return a, nil
}

// parseCtlInt parses a decimal (optionally signed) or 0x-prefixed hex
// integer.
func parseCtlInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") ||
		strings.HasPrefix(s, "-0x") || strings.HasPrefix(s, "-0X") {
		neg := strings.HasPrefix(s, "-")
		hex := s
		if neg {
			hex = s[1:]
		}
		v, err := strconv.ParseUint(hex[2:], 16, 64)
		if err != nil {
			return 0, err
		}
		if neg {
			return -int64(v), nil
		}
		return int64(v), nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseByteList parses "0xNN,0xNN,…" into a byte slice.
func parseByteList(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]byte, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimPrefix(p, "0x"), "0X"), 16, 8)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(v))
	}
	return out, nil
}
