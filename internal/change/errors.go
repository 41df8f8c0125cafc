package change

import "errors"

// ErrNoSelection indicates a selection operation on a state without one.
var ErrNoSelection = errors.New("no selection")
