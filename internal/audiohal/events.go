package audiohal

import "github.com/kelindar/event"

// Event type identifiers for kelindar/event dispatch.
const (
	typeConfigLoaded uint32 = iota + 1
	typeStreamOpened
	typeStreamRouted
	typeStreamReleased
	typeVolumeChanged
	typeUseCaseApplied
)

// ConfigLoadedEvent fires once a document finishes loading, before any
// caller has opened a stream against it.
type ConfigLoadedEvent struct {
	Devices int
	Streams int
}

func (e ConfigLoadedEvent) Type() uint32 { return typeConfigLoaded }

// StreamOpenedEvent fires when open_anonymous/open_named succeeds.
type StreamOpenedEvent struct {
	StreamType string
	Direction  string
	Named      bool
	Name       string
}

func (e StreamOpenedEvent) Type() uint32 { return typeStreamOpened }

// StreamRoutedEvent fires after apply_route changes a stream's
// device-bit set. A call that leaves the set unchanged publishes nothing.
type StreamRoutedEvent struct {
	StreamType string
	Bits       uint32
}

func (e StreamRoutedEvent) Type() uint32 { return typeStreamRouted }

// StreamReleasedEvent fires when release_stream completes.
type StreamReleasedEvent struct {
	StreamType string
	Err        bool
}

func (e StreamReleasedEvent) Type() uint32 { return typeStreamReleased }

// VolumeChangedEvent fires after set_hw_volume attempts its writes.
type VolumeChangedEvent struct {
	StreamType string
	LeftPc     int
	RightPc    int
	Err        bool
}

func (e VolumeChangedEvent) Type() uint32 { return typeVolumeChanged }

// UseCaseAppliedEvent fires after apply_use_case runs a case's ctls.
type UseCaseAppliedEvent struct {
	StreamType string
	Usecase    string
	Case       string
	Err        bool
}

func (e UseCaseAppliedEvent) Type() uint32 { return typeUseCaseApplied }

// eventSink wraps a kelindar/event dispatcher. The routing engine
// never subscribes to its own events — publication is one-directional,
// for external observers (metrics, audit logging, a debug API) that
// want visibility into engine activity without coupling to it.
type eventSink struct {
	dispatcher *event.Dispatcher
}

func newEventSink() *eventSink {
	return &eventSink{dispatcher: event.NewDispatcher()}
}

// publish dispatches ev to subscribers. A type switch is required
// because kelindar/event's Publish is generic over the concrete event
// type, not the Event interface.
func (s *eventSink) publish(ev Event) {
	switch v := ev.(type) {
	case ConfigLoadedEvent:
		event.Publish(s.dispatcher, v)
	case StreamOpenedEvent:
		event.Publish(s.dispatcher, v)
	case StreamRoutedEvent:
		event.Publish(s.dispatcher, v)
	case StreamReleasedEvent:
		event.Publish(s.dispatcher, v)
	case VolumeChangedEvent:
		event.Publish(s.dispatcher, v)
	case UseCaseAppliedEvent:
		event.Publish(s.dispatcher, v)
	}
}

// Event is the interface kelindar/event requires of published values.
type Event interface {
	Type() uint32
}

// Subscribe registers a typed handler and returns an unsubscribe func.
// Usage: engine.Subscribe(func(e audiohal.StreamRoutedEvent) { ... }).
func (e *Engine) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ConfigLoadedEvent):
		return event.Subscribe(e.events.dispatcher, h)
	case func(StreamOpenedEvent):
		return event.Subscribe(e.events.dispatcher, h)
	case func(StreamRoutedEvent):
		return event.Subscribe(e.events.dispatcher, h)
	case func(StreamReleasedEvent):
		return event.Subscribe(e.events.dispatcher, h)
	case func(VolumeChangedEvent):
		return event.Subscribe(e.events.dispatcher, h)
	case func(UseCaseAppliedEvent):
		return event.Subscribe(e.events.dispatcher, h)
	default:
		return func() {}
	}
}
