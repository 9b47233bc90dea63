package sqlite

import (
	"database/sql/driver"
	"testing"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS t (
	a INTEGER,
	b TEXT
);
`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := newEngine()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	t.Cleanup(func() { eng.Close() })
	if err := eng.Exec(testSchema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return eng
}

func TestEngineQueryBindsPositionally(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.Query("INSERT INTO t (a, b) VALUES (?1, ?2)", []driver.Value{int64(1), "x"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := eng.Query("INSERT INTO t (a, b) VALUES (?1, ?2)", []driver.Value{int64(2), "y"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	res, err := eng.Query("SELECT a, b FROM t ORDER BY a", nil)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}

	if len(res.Columns) != 2 || res.Columns[0] != "a" || res.Columns[1] != "b" {
		t.Errorf("unexpected columns: %v", res.Columns)
	}
	if len(res.Values) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(res.Values))
	}
	if got := res.Values[0][0].(int64); got != 1 {
		t.Errorf("expected a=1, got %v", got)
	}
	// The driver surfaces TEXT cells as []byte.
	if got := string(res.Values[0][1].([]byte)); got != "x" {
		t.Errorf("expected b=x, got %q", got)
	}
}

func TestEngineStatementWithoutRows(t *testing.T) {
	eng := newTestEngine(t)

	res, err := eng.Query("DELETE FROM t", nil)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if res == nil {
		t.Fatal("expected an empty result, got nil")
	}
	if len(res.Values) != 0 {
		t.Errorf("expected no rows, got %d", len(res.Values))
	}
}

func TestEngineQueryBadSQL(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.Query("SELECT * FROM missing", nil); err == nil {
		t.Error("expected an error for a missing table")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	eng := newTestEngine(t)
	if _, err := eng.Query("INSERT INTO t (a, b) VALUES (?1, ?2)", []driver.Value{int64(7), "seven"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	image, err := eng.Serialize()
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	if len(image) == 0 {
		t.Fatal("expected a non-empty byte image")
	}

	restored, err := Runtime().Open(image)
	if err != nil {
		t.Fatalf("failed to restore from image: %v", err)
	}
	defer restored.Close()

	res, err := restored.Query("SELECT a FROM t", nil)
	if err != nil {
		t.Fatalf("select on restored engine failed: %v", err)
	}
	if len(res.Values) != 1 || res.Values[0][0].(int64) != 7 {
		t.Errorf("restored engine returned %v", res.Values)
	}

	// The restored instance is independent of the original.
	if _, err := restored.Query("DELETE FROM t", nil); err != nil {
		t.Fatalf("delete on restored engine failed: %v", err)
	}
	res, err = eng.Query("SELECT a FROM t", nil)
	if err != nil {
		t.Fatalf("select on original engine failed: %v", err)
	}
	if len(res.Values) != 1 {
		t.Errorf("original engine lost its row: %v", res.Values)
	}
}

func TestRuntimeIsShared(t *testing.T) {
	if Runtime() != Runtime() {
		t.Error("expected the same factory instance on every call")
	}
}
