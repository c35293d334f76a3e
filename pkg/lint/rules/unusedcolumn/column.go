package unusedcolumn

import (
	"cmp"
	"fmt"

	"github.com/leapstack-labs/bqlint/pkg/syntax"
)

// ColumnInfo is one output column of a CTE or of the final query.
type ColumnInfo struct {
	TableName          string // owning CTE or table, "" when untraceable
	ColumnName         string // output name: the alias, or the base column name
	OriginalColumnName string // pre-alias source name, "" when none
	Row                int    // 1-based
	Col                int    // 1-based
}

// NewColumnInfo creates a column positioned at a 0-based tree point.
func NewColumnInfo(table, column, original string, at syntax.Point) ColumnInfo {
	return ColumnInfo{
		TableName:          table,
		ColumnName:         column,
		OriginalColumnName: original,
		Row:                at.Row + 1,
		Col:                at.Column + 1,
	}
}

// SourceName is the name the column has in the table it came from.
func (c ColumnInfo) SourceName() string {
	if c.OriginalColumnName != "" {
		return c.OriginalColumnName
	}
	return c.ColumnName
}

// Compare orders columns by position.
func (c ColumnInfo) Compare(other ColumnInfo) int {
	return cmp.Or(
		cmp.Compare(c.Row, other.Row),
		cmp.Compare(c.Col, other.Col),
	)
}

// Equal compares every field except OriginalColumnName.
func (c ColumnInfo) Equal(other ColumnInfo) bool {
	return c.TableName == other.TableName &&
		c.ColumnName == other.ColumnName &&
		c.Row == other.Row &&
		c.Col == other.Col
}

// String renders the column as table:column:row:col.
func (c ColumnInfo) String() string {
	return fmt.Sprintf("%s:%s:%d:%d", c.TableName, c.ColumnName, c.Row, c.Col)
}
