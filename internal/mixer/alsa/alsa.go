//go:build linux && (amd64 || arm64)

// Package alsa implements mixer.Mixer against a real kernel control
// device, extending pkg/linuxav/alsa's device-enumeration ioctls with
// the SNDRV_CTL_IOCTL_ELEM_* family.
package alsa

import (
	"fmt"
	"sync"
	"syscall"

	halalsa "github.com/haldev/audiohal/pkg/linuxav/alsa"

	"github.com/haldev/audiohal/internal/mixer"
)

// Mixer talks to /dev/snd/controlCN for a single sound card.
type Mixer struct {
	fd   uintptr
	mu   sync.Mutex
	ctls []*mixer.Control
	byID map[int]*mixer.Control
}

// Open opens the control device for the given card number. Mixer
// elements are not enumerated up front; each is queried from the
// kernel the first time it is looked up by name (see Resolve).
func Open(card int) (*Mixer, error) {
	path := fmt.Sprintf("/dev/snd/controlC%d", card)
	fd, err := syscall.Open(path, syscall.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("alsa: open %s: %w", path, err)
	}
	m := &Mixer{fd: uintptr(fd), byID: make(map[int]*mixer.Control)}
	return m, nil
}

// Close closes the underlying control device.
func (m *Mixer) Close() error {
	return syscall.Close(int(m.fd))
}

// Resolve looks up a named mixer element, querying the kernel for its
// kind, element count and range, caching the result. Names not yet
// known to the engine's config model are resolved lazily this way,
// matching the "by cached id if available, else by name" contract of
// the path executor.
func (m *Mixer) Resolve(name string) (*mixer.Control, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, err := halalsa.CtlElemInfo(m.fd, name)
	if err != nil {
		return nil, fmt.Errorf("alsa: resolve %q: %w", name, err)
	}
	c := &mixer.Control{
		ID:   int(info.NumID),
		Name: name,
		N:    int(info.Count),
		Min:  info.Min,
		Max:  info.Max,
	}
	switch info.Type {
	case halalsa.ElemTypeBoolean:
		c.Kind = mixer.KindBool
	case halalsa.ElemTypeInteger, halalsa.ElemTypeInteger64:
		c.Kind = mixer.KindInt
	case halalsa.ElemTypeEnumerated:
		c.Kind = mixer.KindEnum
	case halalsa.ElemTypeBytes:
		c.Kind = mixer.KindByte
	default:
		return nil, fmt.Errorf("alsa: %q: unsupported element type %d", name, info.Type)
	}
	m.ctls = append(m.ctls, c)
	m.byID[c.ID] = c
	return c, nil
}

func (m *Mixer) Controls() []*mixer.Control { return m.ctls }

// ControlByName resolves name, querying the kernel and caching the
// result the first time a given name is looked up; later lookups hit
// the cache. The loader relies on this to resolve every <ctl> without
// a separate enumeration pass.
func (m *Mixer) ControlByName(name string) (*mixer.Control, bool) {
	m.mu.Lock()
	for _, c := range m.ctls {
		if c.Name == name {
			m.mu.Unlock()
			return c, true
		}
	}
	m.mu.Unlock()

	c, err := m.Resolve(name)
	if err != nil {
		return nil, false
	}
	return c, true
}

func (m *Mixer) ControlByID(id int) (*mixer.Control, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	return c, ok
}

func (m *Mixer) WriteInt(c *mixer.Control, idx int, value int64) error {
	if c.Kind == mixer.KindBool && value != 0 {
		value = 1
	}
	var values []int32
	if idx < 0 {
		values = make([]int32, c.N)
		for i := range values {
			values[i] = int32(value)
		}
	} else {
		cur, err := halalsa.CtlElemReadInt(m.fd, c.Name, c.N)
		if err != nil {
			return err
		}
		values = make([]int32, len(cur))
		copy(values, cur)
		if idx >= len(values) {
			return fmt.Errorf("alsa: index %d out of range for %q", idx, c.Name)
		}
		values[idx] = int32(value)
	}
	if err := halalsa.CtlElemWriteInt(m.fd, c.Name, values); err != nil {
		return err
	}
	c.Changed = true
	return nil
}

func (m *Mixer) WriteEnum(c *mixer.Control, name string) error {
	idx := c.EnumIndex(name)
	if idx < 0 {
		return fmt.Errorf("alsa: %q is not a legal value for %q", name, c.Name)
	}
	if err := halalsa.CtlElemWriteInt(m.fd, c.Name, []int32{int32(idx)}); err != nil {
		return err
	}
	c.Changed = true
	return nil
}

func (m *Mixer) WriteBytes(c *mixer.Control, data []byte) error {
	n := len(data)
	if n > c.N {
		n = c.N
	}
	if err := halalsa.CtlElemWriteBytes(m.fd, c.Name, data[:n]); err != nil {
		return err
	}
	c.Changed = true
	return nil
}

func (m *Mixer) ReadInt(c *mixer.Control) ([]int64, error) {
	vals, err := halalsa.CtlElemReadInt(m.fd, c.Name, c.N)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = int64(v)
	}
	return out, nil
}

func (m *Mixer) ReadEnum(c *mixer.Control) (string, error) {
	vals, err := halalsa.CtlElemReadInt(m.fd, c.Name, 1)
	if err != nil {
		return "", err
	}
	idx := int(vals[0])
	if idx < 0 || idx >= len(c.EnumNames) {
		return "", fmt.Errorf("alsa: %q: enum index %d out of range", c.Name, idx)
	}
	return c.EnumNames[idx], nil
}

func (m *Mixer) ReadBytes(c *mixer.Control) ([]byte, error) {
	return halalsa.CtlElemReadBytes(m.fd, c.Name, c.N)
}

var _ mixer.Mixer = (*Mixer)(nil)
