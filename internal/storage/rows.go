package storage

import "ripasso/internal/ports"

// Row maps column names to cell values for one result row.
type Row = ports.Row

// FormatRows reshapes one column-oriented result into row maps. Rows keep
// their order and every column is carried over; a result with no rows
// formats to an empty slice, never nil. Duplicate column names cannot occur
// with a fixed schema, but if one did the last value would win.
func FormatRows(res *ports.Result) []Row {
	rows := make([]Row, 0, len(res.Values))
	for _, vals := range res.Values {
		row := make(Row, len(res.Columns))
		for i, col := range res.Columns {
			if i < len(vals) {
				row[col] = vals[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
