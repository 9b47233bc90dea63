package storage

import (
	"fmt"
	"strings"
)

// Table binds a table name to its closed column set. Parameterizing the
// composers over the column type means a column from one table cannot
// appear in another table's query.
type Table[C ~string] struct {
	name string
}

// Name returns the SQL table name.
func (t Table[C]) Name() string { return t.name }

// SelectQuery composes a SELECT statement.
type SelectQuery[C ~string] struct {
	b    *builder
	cols []C
}

// Select starts a SELECT against t. With no Columns call the projection is
// every column.
func Select[C ~string](t Table[C]) *SelectQuery[C] {
	q := &SelectQuery[C]{b: newBuilder(t.name)}
	q.b.render = q.render
	return q
}

// Columns restricts the projection.
func (q *SelectQuery[C]) Columns(cols ...C) *SelectQuery[C] {
	q.cols = append(q.cols, cols...)
	return q
}

// Where opens the condition tree.
func (q *SelectQuery[C]) Where(col C) Cmp[C] {
	q.b.startWhere()
	return Cmp[C]{b: q.b, col: col}
}

// Build emits the statement and its ordered bind parameters.
func (q *SelectQuery[C]) Build() (string, []any) {
	return q.render(), q.b.params
}

func (q *SelectQuery[C]) render() string {
	projection := "*"
	if len(q.cols) > 0 {
		projection = joinColumns(q.cols)
	}
	return fmt.Sprintf("SELECT %s FROM %s%s", projection, q.b.table, q.b.whereSQL())
}

// InsertQuery composes a multi-row INSERT statement.
type InsertQuery[C ~string] struct {
	b      *builder
	cols   []C
	groups []string
}

// Insert starts an INSERT into t.
func Insert[C ~string](t Table[C]) *InsertQuery[C] {
	q := &InsertQuery[C]{b: newBuilder(t.name)}
	q.b.render = q.render
	return q
}

// Columns declares the column order for every subsequent value row.
func (q *InsertQuery[C]) Columns(cols ...C) *InsertQuery[C] {
	q.cols = append(q.cols, cols...)
	return q
}

// Values appends one value row in the declared column order. Parameters are
// flattened row-major across rows.
func (q *InsertQuery[C]) Values(vals ...any) *InsertQuery[C] {
	if len(q.cols) == 0 {
		panic(&MisuseError{Reason: "VALUES before any columns"})
	}
	if len(vals) != len(q.cols) {
		panic(&MisuseError{Reason: fmt.Sprintf("row has %d values for %d columns", len(vals), len(q.cols))})
	}
	ph := make([]string, len(vals))
	for i, v := range vals {
		ph[i] = q.b.placeholder(v)
	}
	q.groups = append(q.groups, "("+strings.Join(ph, ", ")+")")
	return q
}

// Build emits the statement and its ordered bind parameters.
func (q *InsertQuery[C]) Build() (string, []any) {
	return q.render(), q.b.params
}

func (q *InsertQuery[C]) render() string {
	if len(q.groups) == 0 {
		panic(&MisuseError{Reason: "INSERT with no value rows"})
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		q.b.table, joinColumns(q.cols), strings.Join(q.groups, ", "))
}

// UpdateQuery composes an UPDATE statement. Building without a WHERE clause
// is legal and updates every row; that is the caller's responsibility.
type UpdateQuery[C ~string] struct {
	b    *builder
	sets []string
}

// Update starts an UPDATE against t.
func Update[C ~string](t Table[C]) *UpdateQuery[C] {
	q := &UpdateQuery[C]{b: newBuilder(t.name)}
	q.b.render = q.render
	return q
}

// Set appends one assignment. Assignments render in call order.
func (q *UpdateQuery[C]) Set(col C, v any) *UpdateQuery[C] {
	q.sets = append(q.sets, fmt.Sprintf("%s = %s", string(col), q.b.placeholder(v)))
	return q
}

// Where opens the condition tree.
func (q *UpdateQuery[C]) Where(col C) Cmp[C] {
	q.b.startWhere()
	return Cmp[C]{b: q.b, col: col}
}

// Build emits the statement and its ordered bind parameters.
func (q *UpdateQuery[C]) Build() (string, []any) {
	return q.render(), q.b.params
}

func (q *UpdateQuery[C]) render() string {
	if len(q.sets) == 0 {
		panic(&MisuseError{Reason: "UPDATE with no assignments"})
	}
	return fmt.Sprintf("UPDATE %s SET %s%s", q.b.table, strings.Join(q.sets, ", "), q.b.whereSQL())
}

// DeleteQuery composes a DELETE statement. As with UPDATE, building without
// a WHERE clause deletes every row.
type DeleteQuery[C ~string] struct {
	b *builder
}

// Delete starts a DELETE against t.
func Delete[C ~string](t Table[C]) *DeleteQuery[C] {
	q := &DeleteQuery[C]{b: newBuilder(t.name)}
	q.b.render = q.render
	return q
}

// Where opens the condition tree.
func (q *DeleteQuery[C]) Where(col C) Cmp[C] {
	q.b.startWhere()
	return Cmp[C]{b: q.b, col: col}
}

// Build emits the statement and its ordered bind parameters.
func (q *DeleteQuery[C]) Build() (string, []any) {
	return q.render(), q.b.params
}

func (q *DeleteQuery[C]) render() string {
	return fmt.Sprintf("DELETE FROM %s%s", q.b.table, q.b.whereSQL())
}

func joinColumns[C ~string](cols []C) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
