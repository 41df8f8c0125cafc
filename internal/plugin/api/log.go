package api

import (
	"context"
	"log/slog"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// LogModule implements the edittable.log API module.
type LogModule struct {
	logger *slog.Logger
}

// NewLogModule creates a log module writing to logger.
func NewLogModule(logger *slog.Logger) *LogModule {
	return &LogModule{logger: logger}
}

// Name returns the module name.
func (m *LogModule) Name() string {
	return "log"
}

// Register registers the module into the Lua state.
func (m *LogModule) Register(L *lua.LState) error {
	mod := L.NewTable()
	for name, level := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		L.SetField(mod, name, L.NewFunction(m.logAt(level)))
	}
	L.SetGlobal(globalPrefix+m.Name(), mod)
	return nil
}

// logAt returns a function logging its arguments, joined by spaces, at
// level.
func (m *LogModule) logAt(level slog.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		ctx := L.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		m.logger.Log(ctx, level, strings.Join(parts, " "), slog.String("source", "lua"))
		return 0
	}
}
