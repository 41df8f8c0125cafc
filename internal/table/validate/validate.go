// Package validate detects and repairs structural violations of tables.
//
// Five rules are tried in a fixed order:
//
//  1. blockWithinCells: cell content matches the AllowBlocksInCells mode
//  2. cellsWithinTable: cells only appear inside rows
//  3. rowsWithinTable: rows only appear inside tables
//  4. tablesContainOnlyRows: tables hold rows only, at least one
//  5. rowsContainRequiredColumns: every row holds the same number of cells
//
// ValidateNode returns the repair of the first rule that matches the node
// and finds a violation. It performs a single step; re-validation until a
// fixed point is the caller's job (see package normalize).
package validate

import (
	"github.com/dshills/edittable/internal/change"
	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/table"
)

// ValidateNode returns the repair for n, or nil if no rule is violated.
func ValidateNode(opts table.Options, n *document.Node) *change.Batch {
	return validateWith(Rules(opts), n)
}

// Validator returns a function validating nodes against the table rules.
// The rules are built once and shared by every call.
func Validator(opts table.Options) func(*document.Node) *change.Batch {
	rules := Rules(opts)
	return func(n *document.Node) *change.Batch {
		return validateWith(rules, n)
	}
}

func validateWith(rules []Rule, n *document.Node) *change.Batch {
	for _, r := range rules {
		if b := Check(r, n); b != nil {
			return b
		}
	}
	return nil
}
