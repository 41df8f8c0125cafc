// Package selection provides anchor/focus ranges over a document tree.
//
// A Point addresses an offset inside a node (normally a text leaf) by key.
// A Range pairs an anchor, where the selection started, with a focus, where
// it currently ends. When both points are equal the range is collapsed and
// represents a caret. Range is an immutable value type.
package selection

import "github.com/dshills/edittable/internal/document"

// Point is a position inside a node: the node key and a byte offset into
// its text.
type Point struct {
	Key    document.Key
	Offset int
}

// IsSet returns true if the point refers to a node.
func (p Point) IsSet() bool {
	return p.Key != ""
}

// Range is a selection between an anchor and a focus point.
type Range struct {
	Anchor Point
	Focus  Point
}

// Collapsed returns a caret range at p.
func Collapsed(p Point) Range {
	return Range{Anchor: p, Focus: p}
}

// At returns a caret range at offset inside the node with the given key.
func At(key document.Key, offset int) Range {
	return Collapsed(Point{Key: key, Offset: offset})
}

// IsSet returns true if the range points into a document.
func (r Range) IsSet() bool {
	return r.Anchor.IsSet() && r.Focus.IsSet()
}

// IsCollapsed returns true if anchor and focus are the same point.
func (r Range) IsCollapsed() bool {
	return r.Anchor == r.Focus
}

// IsBackward returns true if the focus comes before the anchor in doc.
func (r Range) IsBackward(doc *document.Document) bool {
	if r.Anchor.Key == r.Focus.Key {
		return r.Focus.Offset < r.Anchor.Offset
	}
	return doc.Compare(r.Focus.Key, r.Anchor.Key) < 0
}

// Start returns the point that comes first in doc.
func (r Range) Start(doc *document.Document) Point {
	if r.IsBackward(doc) {
		return r.Focus
	}
	return r.Anchor
}

// End returns the point that comes last in doc.
func (r Range) End(doc *document.Document) Point {
	if r.IsBackward(doc) {
		return r.Anchor
	}
	return r.Focus
}

// CollapseToAnchor returns a caret at the anchor.
func (r Range) CollapseToAnchor() Range {
	return Collapsed(r.Anchor)
}

// CollapseToFocus returns a caret at the focus.
func (r Range) CollapseToFocus() Range {
	return Collapsed(r.Focus)
}

// MoveOffsetsTo returns the range with both offsets replaced, keys unchanged.
func (r Range) MoveOffsetsTo(anchor, focus int) Range {
	return Range{
		Anchor: Point{Key: r.Anchor.Key, Offset: anchor},
		Focus:  Point{Key: r.Focus.Key, Offset: focus},
	}
}

// Extend returns the range with the focus moved to p; the anchor stays.
func (r Range) Extend(p Point) Range {
	return Range{Anchor: r.Anchor, Focus: p}
}
