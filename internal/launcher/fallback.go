package launcher

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// FallbackVersions is the fixed priority order of alternate runtime
// versions tried after the requested one fails.
var FallbackVersions = []int{21, 17, 11, 8}

// Provider yields an executable java binary path for a runtime
// version. Implemented by the jre acquirer; narrowed to an interface
// here so the coordinator stays independent of how runtimes are
// obtained.
type Provider interface {
	Acquire(ctx context.Context, version int, jarPath string, skipCache bool) (javaPath string, err error)
}

// Request describes one launch.
type Request struct {
	JarPath          string
	JarArgs          []string
	Version          int
	SkipCache        bool
	NoFallback       bool
	ForceWorkarounds bool
}

// Result reports a successful launch and which version ran it.
type Result struct {
	Version  int
	Fallback bool
}

// Coordinator drives the acquire-and-execute pipeline for the primary
// version and, when enabled, for each fallback candidate in order.
type Coordinator struct {
	provider Provider
	engine   *Engine
	logger   *log.Logger
}

// NewCoordinator creates a coordinator.
func NewCoordinator(provider Provider, engine *Engine) *Coordinator {
	return &Coordinator{
		provider: provider,
		engine:   engine,
		logger:   log.Default(),
	}
}

// Launch runs the request. The jar is validated before any runtime
// work; errors below this layer never abort the process directly.
func (c *Coordinator) Launch(ctx context.Context, req Request) (*Result, error) {
	if err := CheckJar(req.JarPath); err != nil {
		return nil, err
	}

	err := c.attempt(ctx, req.Version, req)
	if err == nil {
		return &Result{Version: req.Version}, nil
	}

	c.logger.Error("launch failed", "version", req.Version, "err", err)

	if req.NoFallback {
		return nil, err
	}

	attempted := []int{req.Version}
	lastErr := err
	for _, candidate := range FallbackVersions {
		if candidate == req.Version {
			continue
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		c.logger.Info("trying fallback version", "version", candidate)

		if err := c.attempt(ctx, candidate, req); err != nil {
			c.logger.Error("fallback attempt failed", "version", candidate, "err", err)
			attempted = append(attempted, candidate)
			lastErr = err
			continue
		}

		c.logger.Info("jar ran with fallback runtime", "version", candidate)

		return &Result{Version: candidate, Fallback: true}, nil
	}

	return nil, fmt.Errorf("every runtime version failed (attempted %v): %w", attempted, lastErr)
}

// attempt acquires a runtime for version and runs the jar against it.
func (c *Coordinator) attempt(ctx context.Context, version int, req Request) error {
	javaPath, err := c.provider.Acquire(ctx, version, req.JarPath, req.SkipCache)
	if err != nil {
		return err
	}

	return c.engine.Run(ctx, version, javaPath, req.JarPath, req.JarArgs, req.ForceWorkarounds)
}
