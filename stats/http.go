package stats

import (
	"net/http"
	_ "net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omniscale/osmview/log"
)

// StartHTTP serves /metrics and the pprof handlers on bind.
func StartHTTP(bind string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Println(http.ListenAndServe(bind, nil))
	}()
}
