package token

import "fmt"

// Position is a location in SQL source. Line and Column are 1-based;
// Column counts bytes. Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// IsValid reports whether the position was set.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String formats the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
