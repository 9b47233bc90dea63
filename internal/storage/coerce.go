package storage

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Coerce converts host primitive values into the engine's accepted bind
// types: booleans become 1/0, nil stays nil, Stringer tokens bind as their
// string form, and numeric kinds widen to the driver's 64-bit types.
// Strings, byte slices, and timestamps pass through unchanged. Composite
// values are not handled; they pass through for the driver to reject.
func Coerce(args []any) []driver.Value {
	out := make([]driver.Value, len(args))
	for i, a := range args {
		out[i] = coerceValue(a)
	}
	return out
}

func coerceValue(v any) driver.Value {
	switch x := v.(type) {
	case nil:
		return nil
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	case string:
		return x
	case []byte:
		return x
	case time.Time:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return x
	}
}
