package audiohal

import (
	"log/slog"
	"os"

	"github.com/haldev/audiohal/internal/mixer"
)

// execPath runs every ctl action in p against m, in declaration order.
// A write failure is logged and does not abort the sequence; the first
// failure is remembered and returned to the caller once every action
// has been attempted, so the mixer is left in a predictable state
// regardless of where in the sequence the failure occurred.
func execPath(log *slog.Logger, m mixer.Mixer, p *path) error {
	if p == nil {
		return nil
	}
	var first error
	for _, a := range p.actions {
		if err := execAction(log, m, a); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func execAction(log *slog.Logger, m mixer.Mixer, a *ctlAction) error {
	c := a.control
	idx := -1
	if a.hasIndex {
		idx = a.index
	}

	switch a.kind {
	case valInt:
		v := a.intValue
		if c.Kind == mixer.KindBool {
			if v != 0 {
				v = 1
			} else {
				v = 0
			}
		}
		if err := m.WriteInt(c, idx, v); err != nil {
			log.Warn("ctl write failed", "control", c.Name, "index", idx, "value", v, "error", err)
			return err
		}

	case valEnum:
		if err := m.WriteEnum(c, a.enumValue); err != nil {
			log.Warn("ctl write failed", "control", c.Name, "value", a.enumValue, "error", err)
			return err
		}

	case valBytes:
		if err := m.WriteBytes(c, a.byteValue); err != nil {
			log.Warn("ctl write failed", "control", c.Name, "bytes", len(a.byteValue), "error", err)
			return err
		}

	case valFile:
		data, err := os.ReadFile(a.filePath)
		if err != nil {
			log.Warn("ctl byte file unreadable", "control", c.Name, "file", a.filePath, "error", err)
			return wrapErr(KindIO, err, "reading byte file %q for control %q", a.filePath, c.Name)
		}
		if err := m.WriteBytes(c, data); err != nil {
			log.Warn("ctl write failed", "control", c.Name, "file", a.filePath, "error", err)
			return err
		}

	default:
		return newErr(KindBadConfig, "control %q: unresolved ctl action kind", c.Name)
	}

	c.Changed = true
	return nil
}
