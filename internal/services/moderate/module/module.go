// Package module wires moderate into the API using modkit
package module

import (
	"net/http"

	modkit "textguard/internal/modkit"
	"textguard/internal/modkit/httpkit"

	"textguard/internal/core/rulepack"
	fdom "textguard/internal/services/findings/domain"
	"textguard/internal/services/moderate/domain"
	mhttp "textguard/internal/services/moderate/http"
	"textguard/internal/services/moderate/service"
)

// Ports declares the injected collaborator ports for this module
// Scorer and Findings may be nil; the censor pass always runs
type Ports struct {
	Scorer   domain.ScorerPort
	Findings fdom.WriterPort
}

// Module implements the moderate API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    any
	register func(httpkit.Router)

	svc *service.Service
}

// New constructs the moderate module
func New(deps modkit.Deps, pack *rulepack.Pack, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("moderate"),
		modkit.WithPrefix("/moderate"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	svc := service.New(pack, injected.Scorer, injected.Findings)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = domain.ModeratePort(svc)

	external := b.Register
	m.register = func(r httpkit.Router) {
		mhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }
