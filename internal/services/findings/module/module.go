// Package module implements the findings service module
package module

import (
	"textguard/internal/modkit"
	"textguard/internal/modkit/httpkit"
	"textguard/internal/services/findings/domain"
	fhttp "textguard/internal/services/findings/http"
	"textguard/internal/services/findings/repo"
	"textguard/internal/services/findings/service"
)

// Ports exposed by the findings module
type Ports struct {
	Writer domain.WriterPort
	Query  domain.QueryPort
}

// Module implements the findings service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new findings module. With no PG configured the
// module still builds and every write is a no-op.
func New(deps modkit.Deps) *Module {
	var mirror *repo.CH
	if deps.CH != nil {
		mirror = repo.NewCH(deps.CH)
	}
	svc := service.New(deps.PG, repo.NewPG(), mirror)

	m := &Module{deps: deps}
	m.ports = Ports{
		Writer: svc,
		Query:  svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "findings" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route("/findings", func(rr httpkit.Router) {
		fhttp.Register(rr, m.ports.Query)
	})
}
