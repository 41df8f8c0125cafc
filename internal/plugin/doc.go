// Package plugin runs Lua scripts against a table editor.
//
// A Host owns one sandboxed Lua state with the edittable API preloaded.
// Scripts run one at a time; each table command a script calls is its own
// engine transaction, so it is normalized and recorded in the undo history
// like any other edit.
package plugin
