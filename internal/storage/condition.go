package storage

import (
	"fmt"
	"strings"
)

// clause is one entry of the condition tree: the leading entry carries no
// conjunction, every later one carries AND or OR.
type clause struct {
	conj string
	expr string
}

// builder is the mutable accumulator shared by every step of one statement
// being composed. Chained calls return fresh capability values, all closing
// over the same builder.
type builder struct {
	table       string
	params      []any
	clauses     []clause
	whereCalled bool
	render      func() string
}

func newBuilder(table string) *builder {
	return &builder{table: table}
}

// placeholder pushes a bind parameter and returns its positional
// placeholder. Indices are allocated strictly in call order, which is what
// keeps placeholders and parameters aligned however conditions are chained.
func (b *builder) placeholder(v any) string {
	b.params = append(b.params, v)
	return fmt.Sprintf("?%d", len(b.params))
}

func (b *builder) startWhere() {
	if b.whereCalled {
		panic(&MisuseError{Reason: "duplicate WHERE clause"})
	}
	b.whereCalled = true
}

func (b *builder) conjoin(conj string) {
	if len(b.clauses) == 0 {
		panic(&MisuseError{Reason: conj + " with no preceding WHERE"})
	}
}

func (b *builder) whereSQL() string {
	if len(b.clauses) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(" WHERE ")
	for i, c := range b.clauses {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(c.conj)
			sb.WriteString(" ")
		}
		sb.WriteString(c.expr)
	}
	return sb.String()
}

// Cmp offers the comparator set for one column reference inside a WHERE
// tree.
type Cmp[C ~string] struct {
	b    *builder
	col  C
	conj string
}

func (c Cmp[C]) compare(op string, v any) Chain[C] {
	expr := fmt.Sprintf("%s %s %s", string(c.col), op, c.b.placeholder(v))
	c.b.clauses = append(c.b.clauses, clause{conj: c.conj, expr: expr})
	return Chain[C]{b: c.b}
}

func (c Cmp[C]) Eq(v any) Chain[C]  { return c.compare("=", v) }
func (c Cmp[C]) Neq(v any) Chain[C] { return c.compare("!=", v) }
func (c Cmp[C]) Lt(v any) Chain[C]  { return c.compare("<", v) }
func (c Cmp[C]) Lte(v any) Chain[C] { return c.compare("<=", v) }
func (c Cmp[C]) Gt(v any) Chain[C]  { return c.compare(">", v) }
func (c Cmp[C]) Gte(v any) Chain[C] { return c.compare(">=", v) }

// In emits one placeholder per element.
func (c Cmp[C]) In(vs ...any) Chain[C] {
	ph := make([]string, len(vs))
	for i, v := range vs {
		ph[i] = c.b.placeholder(v)
	}
	expr := fmt.Sprintf("%s IN (%s)", string(c.col), strings.Join(ph, ", "))
	c.b.clauses = append(c.b.clauses, clause{conj: c.conj, expr: expr})
	return Chain[C]{b: c.b}
}

// Chain continues a condition tree with a conjunction or terminates the
// statement.
type Chain[C ~string] struct {
	b *builder
}

// And chains another condition onto the tree.
func (w Chain[C]) And(col C) Cmp[C] {
	if w.b == nil {
		panic(&MisuseError{Reason: "AND with no preceding WHERE"})
	}
	w.b.conjoin("AND")
	return Cmp[C]{b: w.b, col: col, conj: "AND"}
}

// Or chains another condition onto the tree.
func (w Chain[C]) Or(col C) Cmp[C] {
	if w.b == nil {
		panic(&MisuseError{Reason: "OR with no preceding WHERE"})
	}
	w.b.conjoin("OR")
	return Cmp[C]{b: w.b, col: col, conj: "OR"}
}

// Build emits the finished statement and its ordered bind parameters.
func (w Chain[C]) Build() (string, []any) {
	return w.b.render(), w.b.params
}
