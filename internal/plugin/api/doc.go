// Package api exposes edittable to Lua scripts.
//
// Each Module registers a table of functions under a private global; the
// registry then gathers them into the "edittable" module:
//
//	local et = require("edittable")
//	et.table.insert_table(3, 2)
//	et.table.move_selection(2, 1)
//	local pos = et.table.position()
//	et.log.info("cell", pos.column, pos.row)
//
// Row and column indices are 1-based on the Lua side.
package api
