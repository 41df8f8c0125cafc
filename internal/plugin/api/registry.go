package api

import (
	"fmt"
	"slices"
	"sync"

	lua "github.com/yuin/gopher-lua"

	plua "github.com/dshills/edittable/internal/plugin/lua"
)

// APIVersion is reported to scripts as edittable.api_version.
const APIVersion = 1

// globalPrefix prefixes the globals modules register before they are
// gathered into the edittable module.
const globalPrefix = "_et_"

// Module is a Lua API module.
type Module interface {
	// Name returns the field name of the module in the edittable table.
	Name() string

	// Register registers the module table under the global _et_<name>.
	Register(L *lua.LState) error
}

// Registry holds API modules.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}
	r.modules[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mod, ok := r.modules[name]
	return mod, ok
}

// List returns the registered module names in order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// InjectAll registers every module into L and preloads the edittable
// module gathering them.
func (r *Registry) InjectAll(L *lua.LState) error {
	names := r.List()
	for _, name := range names {
		mod, _ := r.Get(name)
		if err := mod.Register(L); err != nil {
			return fmt.Errorf("failed to register module %q: %w", name, err)
		}
	}
	installLoader(L, names)
	return nil
}

// installLoader moves the _et_* globals into one table and preloads it so
// scripts can require("edittable").
func installLoader(L *lua.LState, names []string) {
	root := L.NewTable()
	for _, name := range names {
		global := globalPrefix + name
		if val := L.GetGlobal(global); val != lua.LNil {
			L.SetField(root, name, val)
			L.SetGlobal(global, lua.LNil)
		}
	}
	L.SetField(root, "api_version", lua.LNumber(APIVersion))

	L.PreloadModule(plua.ModuleNamespace, func(L *lua.LState) int {
		L.Push(root)
		return 1
	})
}
