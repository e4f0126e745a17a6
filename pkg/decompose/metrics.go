package decompose

import "github.com/prometheus/client_golang/prometheus"

var componentsEmittedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "graphsolve_components_emitted_total",
	Help: "number of components produced by decompositions",
}, []string{"mode"})

var mecRechecksCounter = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "graphsolve_mec_rechecks_total",
	Help: "number of times refined end component candidates were searched again",
})

func init() {
	prometheus.MustRegister(skeletonLayersHistogram)
	prometheus.MustRegister(componentsEmittedCounter)
	prometheus.MustRegister(mecRechecksCounter)
}
