package sqlite

import (
	"database/sql/driver"
	"fmt"
	"io"

	sqlite3 "github.com/mattn/go-sqlite3"

	"ripasso/internal/ports"
)

// Engine implements ports.Engine on an in-memory SQLite connection. The
// database lives entirely in memory between saves; Serialize and
// Deserialize on the raw connection are the byte-image pair the repository
// persists and reloads.
type Engine struct {
	conn *sqlite3.SQLiteConn
}

// Ensure Engine implements the engine binding
var _ ports.Engine = (*Engine)(nil)

func newEngine() (*Engine, error) {
	d := &sqlite3.SQLiteDriver{}
	conn, err := d.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return &Engine{conn: conn.(*sqlite3.SQLiteConn)}, nil
}

// Query prepares a single statement, binds args positionally, and drains
// its result set into column-oriented form. Statements that produce no rows
// yield an empty result, not a nil one.
func (e *Engine) Query(query string, args []driver.Value) (*ports.Result, error) {
	stmt, err := e.conn.Prepare(query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.Query(args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := rows.Columns()
	res := &ports.Result{Columns: cols, Values: [][]any{}}
	for {
		dest := make([]driver.Value, len(cols))
		err := rows.Next(dest)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		vals := make([]any, len(dest))
		for i, v := range dest {
			vals[i] = v
		}
		res.Values = append(res.Values, vals)
	}
	return res, nil
}

// Exec runs a script of one or more statements without results. The driver
// iterates over statements internally, so schema DDL applies in one call.
func (e *Engine) Exec(script string) error {
	_, err := e.conn.Exec(script, nil)
	return err
}

// Serialize exports the full database as SQLite's native file image.
func (e *Engine) Serialize() ([]byte, error) {
	return e.conn.Serialize("main")
}

// Close releases the connection.
func (e *Engine) Close() error {
	return e.conn.Close()
}
