// Package engine provides the table editing engine for edittable.
//
// The engine package serves as the main facade, combining the document
// model, the table commands, normalization and undo/redo into a unified,
// thread-safe API.
//
// # Architecture
//
// The engine is built on several packages:
//
//   - document: immutable node tree with structural sharing
//   - change: operations and the Change that accumulates them
//   - table/changes: the table commands
//   - table/validate: the five table rules and their repairs
//   - normalize: the fixed-point driver running the rules
//   - history: undo/redo over state snapshots
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing writes. States are immutable,
// so a State or Document returned by the engine stays valid after later
// edits.
//
// # Basic Usage
//
//	e, err := engine.New()
//	if err != nil {
//	    return err
//	}
//
//	e.InsertTable(3, 2) // caret lands in the first cell
//	e.NextCell()        // move right
//	e.InsertRow(-1)     // add a row below the current one
//
//	pos, _ := e.Position()
//	fmt.Println(pos.RowIndex(), pos.ColumnIndex())
//
// # Normalization
//
// Every committed change is followed by a normalization pass over the
// nodes it touched and their ancestors. A document given to New or
// SetDocument is normalized in full, so the engine never exposes a table
// that breaks the table rules.
//
// # Transactions
//
// Do runs arbitrary operations as one undoable unit:
//
//	err := e.Do("fill cell", func(ch *change.Change) error {
//	    return ch.Apply(change.SetData{Key: key, Data: data})
//	})
//
// If the function fails, nothing is committed.
//
// # Read-Only Mode
//
// An engine created with WithReadOnly rejects every write with ErrReadOnly.
package engine
