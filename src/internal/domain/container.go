package domain

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/maksimkurb/keen-embed/src/internal/assets"
	"github.com/maksimkurb/keen-embed/src/internal/config"
	"github.com/maksimkurb/keen-embed/src/internal/errors"
	"github.com/maksimkurb/keen-embed/src/internal/log"
	"github.com/maksimkurb/keen-embed/src/internal/metrics"
)

// Mount binds a mount configuration to the asset table it serves.
type Mount struct {
	Config *config.MountConfig
	Table  *assets.Table
}

// Prefix returns the normalized mount prefix ("" for the root mount).
func (m *Mount) Prefix() string {
	return m.Config.NormalizedPrefix()
}

// DisplayPrefix returns the prefix as shown to users ("/" for the root mount).
func (m *Mount) DisplayPrefix() string {
	if p := m.Prefix(); p != "" {
		return p
	}
	return "/"
}

// AppDependencies is a dependency injection container that holds all application dependencies.
//
// This container provides a centralized place to manage dependencies and enables:
//   - Easy testing with in-memory asset tables
//   - Configuration-driven dependency creation
//   - Explicit dependency management instead of global state
//
// Usage:
//
//	deps, err := domain.NewAppDependencies(cfg, frontendFS)
//	for _, m := range deps.Mounts() {
//	    fmt.Println(m.DisplayPrefix(), m.Table.Len())
//	}
type AppDependencies struct {
	mounts   []*Mount
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// NewAppDependencies loads an asset table for every configured mount.
//
// Mounts without a directory serve the embedded filesystem. Mounts that share
// a source and sniffing mode share one table. Directory mounts are read once;
// later changes on disk are not picked up until restart.
func NewAppDependencies(cfg *config.Config, embedded fs.FS) (*AppDependencies, error) {
	tables := make(map[string]*assets.Table)
	mounts := make([]*Mount, 0, len(cfg.Mounts))

	for _, mc := range cfg.Mounts {
		key := fmt.Sprintf("%s:%s:%t", mc.Source(), cfg.GetAbsMountDir(mc), mc.SniffUnknown)

		table, ok := tables[key]
		if !ok {
			var err error
			if table, err = loadTable(cfg, mc, embedded); err != nil {
				return nil, err
			}
			tables[key] = table
		}

		log.Debugf("Mount %s: %d assets (%s)", mc.Prefix, table.Len(), mc.Source())
		mounts = append(mounts, &Mount{Config: mc, Table: table})
	}

	deps := newDependencies(mounts)
	if cfg.Admin != nil && cfg.Admin.Metrics {
		deps.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return deps, nil
}

func loadTable(cfg *config.Config, mc *config.MountConfig, embedded fs.FS) (*assets.Table, error) {
	var source fs.FS
	switch mc.Source() {
	case config.SourceDirectory:
		dir := cfg.GetAbsMountDir(mc)
		log.Infof("Loading assets for %s from %s", mc.Prefix, dir)
		source = os.DirFS(dir)
	default:
		if embedded == nil {
			return nil, errors.NewMountError(fmt.Sprintf("mount %s has no directory and no embedded assets are available", mc.Prefix), nil)
		}
		source = embedded
	}

	table, err := assets.NewTable(source, assets.WithSniffing(mc.SniffUnknown))
	if err != nil {
		return nil, errors.NewMountError(fmt.Sprintf("failed to load assets for mount %s", mc.Prefix), err)
	}
	return table, nil
}

// NewTestDependencies creates a dependency container from prepared mounts.
//
// This is a convenience method for testing. Build tables with
// assets.NewTableFromMap to avoid touching the filesystem.
func NewTestDependencies(mounts ...*Mount) *AppDependencies {
	return newDependencies(mounts)
}

func newDependencies(mounts []*Mount) *AppDependencies {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	prefixes := make([]string, 0, len(mounts))
	for _, mount := range mounts {
		prefixes = append(prefixes, mount.Prefix())
	}
	m.SetMounts(prefixes)

	return &AppDependencies{
		mounts:   mounts,
		registry: registry,
		metrics:  m,
	}
}

// Mounts returns the mounts in configuration order.
func (d *AppDependencies) Mounts() []*Mount {
	return d.mounts
}

// MountByPrefix finds a mount by prefix. Trailing slashes are ignored.
func (d *AppDependencies) MountByPrefix(prefix string) (*Mount, bool) {
	normalized := (&config.MountConfig{Prefix: prefix}).NormalizedPrefix()
	for _, m := range d.mounts {
		if m.Prefix() == normalized {
			return m, true
		}
	}
	return nil, false
}

// Registry returns the Prometheus registry holding the application collectors.
func (d *AppDependencies) Registry() *prometheus.Registry {
	return d.registry
}

// Metrics returns the application metrics.
func (d *AppDependencies) Metrics() *metrics.Metrics {
	return d.metrics
}
