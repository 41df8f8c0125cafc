// Package changes implements the table editing commands: moving the caret
// between cells, inserting and removing rows, columns and tables, leaving a
// table and setting column alignment.
//
// Every command takes the table options and a *change.Change and records its
// edits as operations on that change. Commands that need a position fail with
// table.ErrNotInTable when the selection start is not inside a cell.
//
// Commands leave the document unnormalized; callers run the normalize driver
// over the change's dirty keys once the command completes.
package changes
