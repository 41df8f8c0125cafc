// Package lua runs scripts in a sandboxed gopher-lua state.
//
// Only the base, table, string and math libraries are opened. The file and
// code loading functions of the base library are removed, and require only
// resolves the safe standard modules plus modules preloaded by the host
// under the "edittable" namespace.
//
// A State is not safe for concurrent use by Lua code; its methods serialize
// access from Go. Every execution runs under a context and an execution
// timeout, after which the script is interrupted.
package lua
