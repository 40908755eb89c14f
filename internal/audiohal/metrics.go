package audiohal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	streamsOpenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audiohal",
		Name:      "streams_opened_total",
		Help:      "Streams successfully opened, by type and direction.",
	}, []string{"type", "dir"})

	streamsReleasedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audiohal",
		Name:      "streams_released_total",
		Help:      "Streams released, by type.",
	}, []string{"type"})

	deviceRefcountGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "audiohal",
		Name:      "device_refcount",
		Help:      "Current activation refcount per device.",
	}, []string{"device"})

	globalRefcountGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "audiohal",
		Name:      "global_refcount",
		Help:      "Current global activation refcount.",
	})

	volumeWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audiohal",
		Name:      "volume_writes_total",
		Help:      "set_hw_volume calls, by result.",
	}, []string{"result"})

	useCaseAppliedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audiohal",
		Name:      "usecase_applied_total",
		Help:      "apply_use_case calls, by result.",
	}, []string{"result"})

	configLoadGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "audiohal",
		Name:      "config_loaded",
		Help:      "Counts from the most recently loaded configuration document.",
	}, []string{"kind"})
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// observeLoad records metrics and publishes ConfigLoadedEvent after a
// document finishes loading.
func (e *Engine) observeLoad(mdl *Model) {
	configLoadGauge.WithLabelValues("devices").Set(float64(len(mdl.devices)))
	configLoadGauge.WithLabelValues("named_streams").Set(float64(len(mdl.named)))
	e.events.publish(ConfigLoadedEvent{Devices: len(mdl.devices), Streams: len(mdl.named)})
}

func (e *Engine) observeOpen(s *OpenStream) {
	streamsOpenTotal.WithLabelValues(s.def.typ, s.def.dir).Inc()
	e.events.publish(StreamOpenedEvent{
		StreamType: s.def.typ,
		Direction:  s.def.dir,
		Named:      s.def.isNamed(),
		Name:       s.def.name,
	})
}

func (e *Engine) observeRoute(s *OpenStream, bits uint32) {
	for _, d := range e.model.devices {
		deviceRefcountGauge.WithLabelValues(d.name).Set(float64(e.deviceRefcount[d]))
	}
	globalRefcountGauge.Set(float64(e.globalCount))
	e.events.publish(StreamRoutedEvent{StreamType: s.def.typ, Bits: bits})
}

func (e *Engine) observeRelease(s *OpenStream, err error) {
	streamsReleasedTotal.WithLabelValues(s.def.typ).Inc()
	e.events.publish(StreamReleasedEvent{StreamType: s.def.typ, Err: err != nil})
}

func (e *Engine) observeVolume(s *OpenStream, leftPc, rightPc int, err error) {
	volumeWritesTotal.WithLabelValues(resultLabel(err)).Inc()
	e.events.publish(VolumeChangedEvent{StreamType: s.def.typ, LeftPc: leftPc, RightPc: rightPc, Err: err != nil})
}

func (e *Engine) observeUseCase(s *OpenStream, usecase, caseName string, err error) {
	useCaseAppliedTotal.WithLabelValues(resultLabel(err)).Inc()
	e.events.publish(UseCaseAppliedEvent{StreamType: s.def.typ, Usecase: usecase, Case: caseName, Err: err != nil})
}
