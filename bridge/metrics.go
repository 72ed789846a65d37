package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	directionNativeToGeneric = "native_to_generic"
	directionGenericToNative = "generic_to_native"
)

var (
	forwardedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treelog",
		Subsystem: "bridge",
		Name:      "forwarded_total",
		Help:      "Records forwarded across the bridge, by direction.",
	}, []string{"direction"})

	suppressedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "treelog",
		Subsystem: "bridge",
		Name:      "suppressed_total",
		Help:      "Records the adapter left to another delivery path while bridged.",
	})

	fallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "treelog",
		Subsystem: "bridge",
		Name:      "fallback_total",
		Help:      "Records force-emitted through the adapter's fallback sink.",
	})
)
