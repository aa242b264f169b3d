package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder helps construct the postgres statements used to read and write seed tables.
// Placeholders are written as "?" and numbered $1, $2, ... by Build.
type SQLBuilder struct {
	table     string
	columns   []string
	values    []interface{}
	where     []string
	args      []interface{}
	orderBy   []string
	limit     int
	isInsert  bool
	isSelect  bool
	doNothing bool
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.isSelect = true
	b.columns = cols
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Values specifies the values for insertion, one per inserted column.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.values = vals
	b.args = append(b.args, vals...)
	return b
}

// OnConflictDoNothing makes an insert skip rows whose key already exists.
func (b *SQLBuilder) OnConflictDoNothing() *SQLBuilder {
	b.doNothing = true
	return b
}

// Where adds a condition to the query. Conditions are joined with AND.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.args = append(b.args, args...)
	return b
}

// OrderBy adds an ORDER BY clause.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Limit adds a LIMIT clause. Zero means no limit.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// BuildSafe constructs the final SQL string and arguments, checking that every argument
// has exactly one placeholder.
func (b *SQLBuilder) BuildSafe() (string, []interface{}, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("no table given")
	}
	if !b.isSelect && !b.isInsert {
		return "", nil, fmt.Errorf("no statement kind given")
	}
	if b.isInsert && len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("%d values for %d columns", len(b.values), len(b.columns))
	}

	sql, args := b.Build()

	marks := strings.Count(strings.Join(b.where, " "), "?")
	if b.isInsert {
		marks += len(b.values)
	}
	if marks != len(args) {
		return "", nil, fmt.Errorf("placeholder count (%d) does not match argument count (%d)", marks, len(args))
	}

	return sql, args, nil
}

// Build constructs the final SQL string and arguments.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder

	if b.isInsert {
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES (")
		placeholders := make([]string, len(b.values))
		for i := range b.values {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}
		sb.WriteString(strings.Join(placeholders, ", "))
		sb.WriteString(")")
		if b.doNothing {
			sb.WriteString(" ON CONFLICT DO NOTHING")
		}
		return sb.String(), b.args
	}

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		argIndex := 1
		parts := strings.Split(strings.Join(b.where, " AND "), "?")
		for i, part := range parts {
			sb.WriteString(part)
			if i < len(parts)-1 {
				fmt.Fprintf(&sb, "$%d", argIndex)
				argIndex++
			}
		}
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", b.limit)
	}

	return sb.String(), b.args
}
