// Package api provides the HTTP API for the application
package api

import (
	"textguard/internal/platform/config"
	perr "textguard/internal/platform/errors"
	"textguard/internal/platform/logger"
	phttp "textguard/internal/platform/net/http"
	"textguard/internal/platform/store"

	"textguard/internal/modkit"
	"textguard/internal/modkit/httpkit"

	"textguard/internal/adapters/semantic"
	"textguard/internal/core/rulepack"

	metamod "textguard/internal/services/api/meta/module"
	findingsmod "textguard/internal/services/findings/module"
	moderatemod "textguard/internal/services/moderate/module"
	piimod "textguard/internal/services/pii/module"
)

// Options are the API options
type Options struct {
	Config   config.Conf
	Store    *store.Store
	Logger   *logger.Logger
	Pack     *rulepack.Pack
	Semantic *semantic.Client

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	// findings first so its writer port can feed the scan modules
	findings := findingsmod.New(deps)
	writer := findings.Ports().(findingsmod.Ports).Writer

	piiPorts := piimod.Ports{Findings: writer}
	moderatePorts := moderatemod.Ports{Findings: writer}
	if opt.Semantic != nil {
		piiPorts.Tagger = opt.Semantic
		moderatePorts.Scorer = opt.Semantic
	}

	// optional api key gate for the scan endpoints; meta stays open
	var guarded []modkit.Option
	if keys := opt.Config.MayCSV("KEYS", nil); len(keys) > 0 {
		allowed := make(map[string]struct{}, len(keys))
		for _, k := range keys {
			allowed[k] = struct{}{}
		}
		port := httpkit.NewPortFunc(func(key string) (string, error) {
			if _, ok := allowed[key]; !ok {
				return "", perr.Unauthorizedf("unknown api key")
			}
			return key, nil
		})
		guarded = append(guarded, modkit.WithMiddlewares(httpkit.Auth(port)))
	}

	piiOpts := append([]modkit.Option{modkit.WithPorts(piiPorts)}, guarded...)
	moderateOpts := append([]modkit.Option{modkit.WithPorts(moderatePorts)}, guarded...)

	mods := []modkit.Module{
		metamod.New(deps, opt.Pack),
		findings,
		piimod.New(deps, opt.Pack, piiOpts...),
		moderatemod.New(deps, opt.Pack, moderateOpts...),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountSwagger(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
