// Package config loads edittable settings.
//
// Settings come from three layers, later ones overriding earlier ones:
//
//	┌──────────────────────────────┐
//	│ 3. EDITTABLE_* variables     │  ← highest priority
//	├──────────────────────────────┤
//	│ 2. Config file (TOML/YAML)   │
//	├──────────────────────────────┤
//	│ 1. Built-in defaults         │
//	└──────────────────────────────┘
//
// Layers are deep-merged into a single map addressed by dot-separated
// paths such as "table.typeCell". Typed section accessors (Table, Normalize,
// History, Logging, Plugins) fall back to the defaults on missing or
// mistyped settings and record the mistyped ones in ConfigErrors.
//
// # Usage
//
//	cfg := config.New(config.WithFile("edittable.toml"))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	opts, err := cfg.TableOptions()
//
// # Settings
//
//	table.typeTable           string  "table"
//	table.typeRow             string  "table_row"
//	table.typeCell            string  "table_cell"
//	table.typeContent         string  "paragraph"
//	table.exitBlockType       string  "paragraph"
//	table.allowBlocksInCells  bool    false
//	normalize.maxSteps        int     10000
//	history.maxEntries        int     1000
//	logging.level             string  "info"
//	logging.format            string  "text"
//	plugins.scripts           list    []
package config
