package config

import (
	"errors"
	"fmt"

	"github.com/dshills/edittable/internal/engine/history"
	"github.com/dshills/edittable/internal/normalize"
	"github.com/dshills/edittable/internal/table"
)

// TableConfig holds the table node types and cell content mode.
type TableConfig struct {
	TypeTable          string
	TypeRow            string
	TypeCell           string
	TypeContent        string
	ExitBlockType      string
	AllowBlocksInCells bool
}

// NormalizeConfig bounds normalization runs.
type NormalizeConfig struct {
	MaxSteps int
}

// HistoryConfig bounds the undo history.
type HistoryConfig struct {
	MaxEntries int
}

// LoggingConfig selects the log level and handler format.
type LoggingConfig struct {
	Level  string
	Format string
}

// PluginsConfig lists Lua scripts to run against the engine.
type PluginsConfig struct {
	Scripts []string
}

// Table returns the table settings.
func (c *Config) Table() TableConfig {
	return TableConfig{
		TypeTable:          c.getStringOr("table.typeTable", table.DefaultTypeTable),
		TypeRow:            c.getStringOr("table.typeRow", table.DefaultTypeRow),
		TypeCell:           c.getStringOr("table.typeCell", table.DefaultTypeCell),
		TypeContent:        c.getStringOr("table.typeContent", table.DefaultTypeContent),
		ExitBlockType:      c.getStringOr("table.exitBlockType", table.DefaultExitBlockType),
		AllowBlocksInCells: c.getBoolOr("table.allowBlocksInCells", false),
	}
}

// TableOptions converts the table settings to validated table.Options.
// Unlike Table, it fails on mistyped settings.
func (c *Config) TableOptions() (table.Options, error) {
	tc := c.Table()
	if errs := c.ConfigErrors(); len(errs) > 0 {
		for _, key := range []string{
			"table.typeTable", "table.typeRow", "table.typeCell",
			"table.typeContent", "table.exitBlockType", "table.allowBlocksInCells",
		} {
			if err, ok := errs[key]; ok {
				return table.Options{}, err
			}
		}
	}
	opts := table.Options{
		TypeTable:          tc.TypeTable,
		TypeRow:            tc.TypeRow,
		TypeCell:           tc.TypeCell,
		TypeContent:        tc.TypeContent,
		ExitBlockType:      tc.ExitBlockType,
		AllowBlocksInCells: tc.AllowBlocksInCells,
	}
	if err := opts.Validate(); err != nil {
		return table.Options{}, err
	}
	return opts, nil
}

// Normalize returns the normalization settings.
func (c *Config) Normalize() NormalizeConfig {
	return NormalizeConfig{
		MaxSteps: c.getPositiveIntOr("normalize.maxSteps", normalize.DefaultMaxSteps),
	}
}

// History returns the undo history settings.
func (c *Config) History() HistoryConfig {
	return HistoryConfig{
		MaxEntries: c.getPositiveIntOr("history.maxEntries", history.DefaultMaxEntries),
	}
}

// Logging returns the logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level:  c.getStringOr("logging.level", "info"),
		Format: c.getStringOr("logging.format", "text"),
	}
}

// Plugins returns the plugin settings.
func (c *Config) Plugins() PluginsConfig {
	return PluginsConfig{
		Scripts: c.getStringSliceOr("plugins.scripts", nil),
	}
}

// The getXOr helpers return the default for missing settings. Type errors
// also return the default and are recorded for ConfigErrors.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getPositiveIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err == nil && v < 1 {
		err = fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidValue, path, v)
	}
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getStringSliceOr(path string, defaultValue []string) []string {
	v, err := c.GetStringSlice(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return append([]string(nil), defaultValue...)
	}
	return v
}
