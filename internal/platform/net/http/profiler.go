package http

import (
	"net/http"
	"net/http/pprof"
)

// MountProfiler mounts net/http/pprof under prefix when enabled
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	r.Route(prefix, func(rr Router) {
		rr.Handle("/pprof/*", http.HandlerFunc(pprof.Index))
		rr.Handle("/pprof/cmdline", http.HandlerFunc(pprof.Cmdline))
		rr.Handle("/pprof/profile", http.HandlerFunc(pprof.Profile))
		rr.Handle("/pprof/symbol", http.HandlerFunc(pprof.Symbol))
		rr.Handle("/pprof/trace", http.HandlerFunc(pprof.Trace))
	})
}
