package jre

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jarlaunch/jarl/internal/cache"
	"github.com/jarlaunch/jarl/internal/distributor"
	"github.com/jarlaunch/jarl/internal/platform"
	"github.com/jarlaunch/jarl/internal/workspace"
)

// Acquirer guarantees a usable runtime for a requested version,
// preferring the cache and falling back to a fresh download. The cache
// is advisory: a stale or corrupt entry degrades to a download, never
// to a failure.
type Acquirer struct {
	cache   *cache.Store
	dist    *distributor.Client
	session *workspace.Session
	logger  *log.Logger
}

// NewAcquirer creates an acquirer. Workspaces it creates are activated
// on the session so cleanup follows the session's lifecycle.
func NewAcquirer(store *cache.Store, dist *distributor.Client, session *workspace.Session) *Acquirer {
	return &Acquirer{
		cache:   store,
		dist:    dist,
		session: session,
		logger:  log.Default(),
	}
}

// Acquire returns a materialized runtime for version on plat. jarPath
// only seeds the workspace name. When skipCache is set, the cache is
// neither read nor written.
func (a *Acquirer) Acquire(ctx context.Context, version int, plat platform.Platform, jarPath string, skipCache bool) (*Runtime, error) {
	key := cache.Key{Version: version, OS: plat.OS, Arch: plat.Arch}

	if !skipCache {
		if archive, ok := a.cache.Lookup(key); ok {
			a.logger.Debug("cache hit", "key", key.Filename())

			rt, err := a.materializeInFreshWorkspace(archive, jarPath)
			if err == nil {
				return rt, nil
			}

			a.logger.Warn("cached runtime unusable, falling back to download", "key", key.Filename(), "err", err)
		}
	}

	ws, err := workspace.New(jarPath)
	if err != nil {
		return nil, err
	}

	if err := a.session.Activate(ws); err != nil {
		a.logger.Warn("failed to discard previous workspace", "err", err)
	}

	dest := ws.DownloadPath()
	a.logger.Info("downloading runtime", "version", version, "platform", plat)

	if err := a.dist.Download(ctx, version, plat.OS, plat.Arch, dest); err != nil {
		return nil, err
	}

	if !skipCache {
		if err := a.cache.Put(key, dest); err != nil {
			a.logger.Warn("failed to cache downloaded runtime", "err", err)
		}
	}

	rt, err := Materialize(dest, ws)
	if err != nil {
		return nil, fmt.Errorf("downloaded runtime for version %d is unusable: %w", version, err)
	}

	return rt, nil
}

// materializeInFreshWorkspace tries to materialize an archive in a new
// workspace, activating it on the session first so a failed attempt is
// still cleaned up.
func (a *Acquirer) materializeInFreshWorkspace(archive, jarPath string) (*Runtime, error) {
	ws, err := workspace.New(jarPath)
	if err != nil {
		return nil, err
	}

	if err := a.session.Activate(ws); err != nil {
		a.logger.Warn("failed to discard previous workspace", "err", err)
	}

	return Materialize(archive, ws)
}
