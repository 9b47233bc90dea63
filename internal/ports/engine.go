package ports

import "database/sql/driver"

// Result is one statement's column-oriented result set, in engine column
// order.
type Result struct {
	Columns []string
	Values  [][]any
}

// Engine is the in-process relational engine binding. Implementations are
// not safe for concurrent use; the Repository owns the handle exclusively.
type Engine interface {
	// Query prepares and runs a single statement with positionally bound
	// parameters. Statements that produce no rows return an empty Result.
	Query(query string, args []driver.Value) (*Result, error)

	// Exec runs a script of one or more statements without results. Used
	// for schema DDL.
	Exec(script string) error

	// Serialize exports the engine's full state as a byte image.
	Serialize() ([]byte, error)

	Close() error
}

// EngineFactory constructs engines, either empty or from a previously
// serialized byte image.
type EngineFactory interface {
	New() (Engine, error)
	Open(image []byte) (Engine, error)
}
