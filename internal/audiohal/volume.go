package audiohal

import (
	"log/slog"

	"github.com/haldev/audiohal/internal/mixer"
)

// scaleVolume maps a percent 0..100 onto (min, max) using signed
// 64-bit arithmetic, truncating toward zero per the division rule.
func scaleVolume(min, max int64, pc int) int64 {
	return min + ((max-min)*int64(pc))/100
}

// volRange returns the effective (min, max) for a volCtl: its own
// min/max override when present, else the Control's native range.
func volRange(vc *volCtl, c *mixer.Control) (int64, int64) {
	min, max := c.Min, c.Max
	if vc.hasMin {
		min = vc.min
	}
	if vc.hasMax {
		max = vc.max
	}
	return min, max
}

// applyVolCtl writes the scaled value for one leftvol/rightvol ctl.
func applyVolCtl(log *slog.Logger, m mixer.Mixer, vc *volCtl, pc int) error {
	c, ok := m.ControlByName(vc.controlName)
	if !ok {
		return newErr(KindBadConfig, "volume control %q no longer present in mixer", vc.controlName)
	}
	min, max := volRange(vc, c)
	v := scaleVolume(min, max, pc)

	idx := -1
	if vc.hasIndex {
		idx = vc.index
	}
	if err := m.WriteInt(c, idx, v); err != nil {
		log.Warn("volume ctl write failed", "control", c.Name, "index", idx, "value", v, "error", err)
		return err
	}
	c.Changed = true
	return nil
}

// setHwVolume scales and writes a stream's volume ctls. Both percents
// must be 0..100 inclusive or the call fails with no mixer writes at
// all. A stream with only a leftvol ctl scales it from the integer
// average of the two percents; a stream with only a rightvol ctl
// scales it from rightPc alone.
func setHwVolume(log *slog.Logger, m mixer.Mixer, sd *streamDef, leftPc, rightPc int) error {
	if leftPc < 0 || leftPc > 100 || rightPc < 0 || rightPc > 100 {
		return newErr(KindInvalidArgument, "volume percent out of range: left=%d right=%d", leftPc, rightPc)
	}

	if sd.leftVol == nil && sd.rightVol == nil {
		return nil
	}

	if sd.leftVol != nil && sd.rightVol == nil {
		avg := (leftPc + rightPc) / 2
		return applyVolCtl(log, m, sd.leftVol, avg)
	}

	var err error
	if sd.leftVol != nil {
		if e := applyVolCtl(log, m, sd.leftVol, leftPc); e != nil && err == nil {
			err = e
		}
	}
	if sd.rightVol != nil {
		if e := applyVolCtl(log, m, sd.rightVol, rightPc); e != nil && err == nil {
			err = e
		}
	}
	return err
}
