package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/edittable/internal/table"
)

// TableProvider runs table commands. *engine.Engine implements it.
type TableProvider interface {
	InsertTable(columns, rows int) error
	InsertRow(at int) error
	InsertColumn(at int) error
	RemoveRow(at int) error
	RemoveColumn(at int) error
	RemoveTable() error
	ExitTable() error

	MoveSelection(x, y int) error
	MoveSelectionBy(dx, dy int) (bool, error)
	NextCell() error
	PreviousCell() error

	SetColumnAlign(align string) error
	ColumnAligns() ([]string, error)

	Position() (*table.Position, error)
	IsSelectionInTable() bool

	Undo() error
	Redo() error
}

// TableModule implements the edittable.table API module.
type TableModule struct {
	tables TableProvider
}

// NewTableModule creates a table module driving p.
func NewTableModule(p TableProvider) *TableModule {
	return &TableModule{tables: p}
}

// Name returns the module name.
func (m *TableModule) Name() string {
	return "table"
}

// Register registers the module into the Lua state.
func (m *TableModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "insert_table", L.NewFunction(m.insertTable))
	L.SetField(mod, "insert_row", L.NewFunction(m.insertRow))
	L.SetField(mod, "insert_column", L.NewFunction(m.insertColumn))
	L.SetField(mod, "remove_row", L.NewFunction(m.removeRow))
	L.SetField(mod, "remove_column", L.NewFunction(m.removeColumn))
	L.SetField(mod, "remove_table", L.NewFunction(m.removeTable))
	L.SetField(mod, "exit_table", L.NewFunction(m.exitTable))
	L.SetField(mod, "move_selection", L.NewFunction(m.moveSelection))
	L.SetField(mod, "move_by", L.NewFunction(m.moveBy))
	L.SetField(mod, "next_cell", L.NewFunction(m.nextCell))
	L.SetField(mod, "previous_cell", L.NewFunction(m.previousCell))
	L.SetField(mod, "set_align", L.NewFunction(m.setAlign))
	L.SetField(mod, "aligns", L.NewFunction(m.aligns))
	L.SetField(mod, "position", L.NewFunction(m.position))
	L.SetField(mod, "in_table", L.NewFunction(m.inTable))
	L.SetField(mod, "undo", L.NewFunction(m.undo))
	L.SetField(mod, "redo", L.NewFunction(m.redo))

	L.SetGlobal(globalPrefix+m.Name(), mod)
	return nil
}

// insert_table([columns], [rows]) -> nil
func (m *TableModule) insertTable(L *lua.LState) int {
	columns := L.OptInt(1, 0)
	rows := L.OptInt(2, 0)
	if columns < 0 || rows < 0 {
		L.ArgError(1, "sizes must be non-negative")
		return 0
	}
	check(L, "insert_table", m.tables.InsertTable(columns, rows))
	return 0
}

// insert_row([at]) -> nil
// Without at the row goes after the current one.
func (m *TableModule) insertRow(L *lua.LState) int {
	check(L, "insert_row", m.tables.InsertRow(optIndex(L, 1)))
	return 0
}

// insert_column([at]) -> nil
func (m *TableModule) insertColumn(L *lua.LState) int {
	check(L, "insert_column", m.tables.InsertColumn(optIndex(L, 1)))
	return 0
}

// remove_row([at]) -> nil
// Without at the current row is removed.
func (m *TableModule) removeRow(L *lua.LState) int {
	check(L, "remove_row", m.tables.RemoveRow(optIndex(L, 1)))
	return 0
}

// remove_column([at]) -> nil
func (m *TableModule) removeColumn(L *lua.LState) int {
	check(L, "remove_column", m.tables.RemoveColumn(optIndex(L, 1)))
	return 0
}

func (m *TableModule) removeTable(L *lua.LState) int {
	check(L, "remove_table", m.tables.RemoveTable())
	return 0
}

func (m *TableModule) exitTable(L *lua.LState) int {
	check(L, "exit_table", m.tables.ExitTable())
	return 0
}

// move_selection(column, row) -> nil
func (m *TableModule) moveSelection(L *lua.LState) int {
	x := checkIndex(L, 1)
	y := checkIndex(L, 2)
	check(L, "move_selection", m.tables.MoveSelection(x, y))
	return 0
}

// move_by(dx, dy) -> moved
func (m *TableModule) moveBy(L *lua.LState) int {
	dx := L.CheckInt(1)
	dy := L.CheckInt(2)
	moved, err := m.tables.MoveSelectionBy(dx, dy)
	check(L, "move_by", err)
	L.Push(lua.LBool(moved))
	return 1
}

func (m *TableModule) nextCell(L *lua.LState) int {
	check(L, "next_cell", m.tables.NextCell())
	return 0
}

func (m *TableModule) previousCell(L *lua.LState) int {
	check(L, "previous_cell", m.tables.PreviousCell())
	return 0
}

// set_align(align) -> nil
// align is "left", "center" or "right".
func (m *TableModule) setAlign(L *lua.LState) int {
	align := L.CheckString(1)
	check(L, "set_align", m.tables.SetColumnAlign(align))
	return 0
}

// aligns() -> {align...}
func (m *TableModule) aligns(L *lua.LState) int {
	aligns, err := m.tables.ColumnAligns()
	check(L, "aligns", err)
	tbl := L.CreateTable(len(aligns), 0)
	for i, a := range aligns {
		tbl.RawSetInt(i+1, lua.LString(a))
	}
	L.Push(tbl)
	return 1
}

// position() -> {column, row, width, height, text} or nil
// Returns nil when the selection is not in a table.
func (m *TableModule) position(L *lua.LState) int {
	pos, err := m.tables.Position()
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	tbl := L.NewTable()
	L.SetField(tbl, "column", lua.LNumber(pos.ColumnIndex()+1))
	L.SetField(tbl, "row", lua.LNumber(pos.RowIndex()+1))
	L.SetField(tbl, "width", lua.LNumber(pos.Width()))
	L.SetField(tbl, "height", lua.LNumber(pos.Height()))
	L.SetField(tbl, "text", lua.LString(pos.Cell.Text()))
	L.Push(tbl)
	return 1
}

// in_table() -> bool
func (m *TableModule) inTable(L *lua.LState) int {
	L.Push(lua.LBool(m.tables.IsSelectionInTable()))
	return 1
}

func (m *TableModule) undo(L *lua.LState) int {
	check(L, "undo", m.tables.Undo())
	return 0
}

func (m *TableModule) redo(L *lua.LState) int {
	check(L, "redo", m.tables.Redo())
	return 0
}

// check raises err as a Lua error prefixed with the function name.
func check(L *lua.LState, fn string, err error) {
	if err != nil {
		L.RaiseError("%s: %v", fn, err)
	}
}

// checkIndex reads a required 1-based index and returns it 0-based.
func checkIndex(L *lua.LState, n int) int {
	i := L.CheckInt(n)
	if i < 1 {
		L.ArgError(n, "index must be at least 1")
	}
	return i - 1
}

// optIndex reads an optional 1-based index. A missing index yields -1.
func optIndex(L *lua.LState, n int) int {
	if L.Get(n) == lua.LNil {
		return -1
	}
	return checkIndex(L, n)
}
