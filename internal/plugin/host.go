package plugin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dshills/edittable/internal/logging"
	"github.com/dshills/edittable/internal/plugin/api"
	plua "github.com/dshills/edittable/internal/plugin/lua"
)

// Host runs scripts in a Lua state wired to a table provider.
type Host struct {
	state    *plua.State
	registry *api.Registry
	logger   *slog.Logger

	executionTimeout time.Duration
	output           io.Writer
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger sets the logger used by the host and the log API module.
func WithLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithExecutionTimeout sets the timeout of each script run.
func WithExecutionTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		h.executionTimeout = d
	}
}

// WithOutput redirects script print output.
func WithOutput(w io.Writer) HostOption {
	return func(h *Host) {
		h.output = w
	}
}

// NewHost creates a host whose scripts drive tables.
func NewHost(tables api.TableProvider, opts ...HostOption) (*Host, error) {
	h := &Host{
		logger:           logging.Discard(),
		executionTimeout: plua.DefaultExecutionTimeout,
		output:           io.Discard,
	}
	for _, opt := range opts {
		opt(h)
	}

	state, err := plua.NewState(
		plua.WithExecutionTimeout(h.executionTimeout),
		plua.WithOutput(h.output),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lua state: %w", err)
	}

	h.registry = api.NewRegistry()
	for _, mod := range []api.Module{
		api.NewTableModule(tables),
		api.NewLogModule(h.logger),
	} {
		if err := h.registry.Register(mod); err != nil {
			state.Close()
			return nil, err
		}
	}
	if err := h.registry.InjectAll(state.LuaState()); err != nil {
		state.Close()
		return nil, err
	}
	h.state = state
	return h, nil
}

// RunFile runs the script at path.
func (h *Host) RunFile(ctx context.Context, path string) error {
	start := time.Now()
	if err := h.state.DoFile(ctx, path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	h.logger.Debug("ran script", slog.String("path", path), slog.Duration("elapsed", time.Since(start)))
	return nil
}

// RunString runs code.
func (h *Host) RunString(ctx context.Context, code string) error {
	return h.state.DoString(ctx, code)
}

// Modules returns the names of the API modules available to scripts.
func (h *Host) Modules() []string {
	return h.registry.List()
}

// Close releases the Lua state.
func (h *Host) Close() error {
	return h.state.Close()
}
