package audiohal

// DeviceStatus summarizes one declared Device for introspection: a
// debug API or CLI command, never engine logic itself.
type DeviceStatus struct {
	Name     string
	Bit      uint32
	Input    bool
	Refcount int
}

// Devices returns the status of every declared Device, in no
// particular order.
func (e *Engine) Devices() []DeviceStatus {
	out := make([]DeviceStatus, 0, len(e.model.devices))
	for _, d := range e.model.devices {
		out = append(out, DeviceStatus{
			Name:     d.name,
			Bit:      d.bit,
			Input:    isInputBit(d.bit),
			Refcount: e.deviceRefcount[d],
		})
	}
	return out
}

// GlobalRefcount returns the current process-wide active-stream count.
func (e *Engine) GlobalRefcount() int { return e.globalCount }

// NamedStreamStatus summarizes one declared named stream definition.
type NamedStreamStatus struct {
	Name      string
	Type      string
	Direction string
	Instances int // 0 = unlimited
	Open      int // currently open instances
}

// NamedStreams returns the status of every declared named stream,
// including the synthetic "global" pseudo-stream.
func (e *Engine) NamedStreams() []NamedStreamStatus {
	out := make([]NamedStreamStatus, 0, len(e.model.named)+1)
	for _, sd := range e.model.named {
		out = append(out, NamedStreamStatus{
			Name:      sd.name,
			Type:      sd.typ,
			Direction: sd.dir,
			Instances: sd.instances,
			Open:      e.instanceCount[sd],
		})
	}
	out = append(out, NamedStreamStatus{
		Name: globalStreamName,
		Type: e.model.globalStream.typ,
		Open: e.instanceCount[e.model.globalStream],
	})
	return out
}
