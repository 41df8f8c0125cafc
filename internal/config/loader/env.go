package loader

import (
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix prefixes every environment variable read by NewEnvLoader.
const DefaultEnvPrefix = "EDITTABLE_"

// EnvLoader loads configuration from environment variables. Mapped
// variables go to their configured path; any other prefixed variable is
// read as SECTION_SETTING_NAME and stored at section.settingName.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates an environment loader with the default mappings.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// NewEnvLoaderWithMapping creates a loader with custom mappings only.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{prefix: prefix, mapping: mapping, environ: os.Environ}
}

// Shorthands for the settings people override most.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":       "logging.level",
		prefix + "LOG_FORMAT":      "logging.format",
		prefix + "MAX_STEPS":       "normalize.maxSteps",
		prefix + "UNDO_LIMIT":      "history.maxEntries",
		prefix + "BLOCKS_IN_CELLS": "table.allowBlocksInCells",
		prefix + "EXIT_BLOCK":      "table.exitBlockType",
	}
}

// AddMapping maps envVar to configPath.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// Load reads the environment. Empty values are kept as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		if stringSettings[path] {
			setByPath(config, path, value)
			continue
		}
		setByPath(config, path, parseValue(value))
	}
	return config, nil
}

// stringSettings are stored verbatim. Node type tags such as "1" or "a,b"
// must not turn into numbers or lists.
var stringSettings = map[string]bool{
	"table.typeTable":     true,
	"table.typeRow":       true,
	"table.typeCell":      true,
	"table.typeContent":   true,
	"table.exitBlockType": true,
	"logging.level":       true,
	"logging.format":      true,
}

// envToPath converts EDITTABLE_TABLE_TYPE_ROW to table.typeRow.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[1]))
	for _, p := range parts[2:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	return strings.ToLower(parts[0]) + "." + b.String()
}

// parseValue converts s to a bool, int64, float64 or comma separated list
// when it looks like one, and returns it unchanged otherwise.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if strings.Contains(s, ",") {
		var list []any
		for _, item := range strings.Split(s, ",") {
			list = append(list, strings.TrimSpace(item))
		}
		return list
	}
	return s
}

// setByPath sets value in a nested map using a dot separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
