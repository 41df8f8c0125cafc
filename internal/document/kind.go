package document

import "fmt"

// Kind enumerates the structural kinds of nodes.
type Kind uint8

const (
	KindDocument Kind = iota // tree root
	KindBlock                // block-level container (table, row, paragraph)
	KindInline               // inline container (link, mention)
	KindText                 // text leaf
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindBlock:
		return "block"
	case KindInline:
		return "inline"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind name back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "document":
		return KindDocument, nil
	case "block":
		return KindBlock, nil
	case "inline":
		return KindInline, nil
	case "text":
		return KindText, nil
	default:
		return 0, fmt.Errorf("unknown node kind %q", s)
	}
}
