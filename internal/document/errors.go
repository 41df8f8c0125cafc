package document

import "errors"

// Errors returned by document operations.
var (
	// ErrNodeNotFound indicates that no node with the given key exists.
	ErrNodeNotFound = errors.New("node not found")

	// ErrIndexOutOfRange indicates a child index outside the valid range.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrDuplicateKey indicates that a key already exists in the document.
	ErrDuplicateKey = errors.New("duplicate node key")

	// ErrNotContainer indicates an attempt to add children to a text node.
	ErrNotContainer = errors.New("node cannot hold children")

	// ErrRootNode indicates an operation that is not allowed on the root.
	ErrRootNode = errors.New("operation not allowed on the document root")

	// ErrCycle indicates a move of a node into its own subtree.
	ErrCycle = errors.New("node cannot be moved into its own subtree")

	// ErrInvalidRoot indicates a document root that is not of kind document.
	ErrInvalidRoot = errors.New("root node must be of kind document")

	// ErrInvalidWrapper indicates a wrapper node that is not an empty block.
	ErrInvalidWrapper = errors.New("wrapper must be a block without children")
)
