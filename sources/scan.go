package sources

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"dbreport/core"
)

// decodeFunc turns one raw database/sql value into the typed variant
// declared by the field. The native type name comes from
// ColumnType.DatabaseTypeName and lets drivers reject physical types
// they cannot narrow safely. The raw value is never nil.
type decodeFunc func(field *core.Field, raw any, dbType string) (*core.TypedValue, error)

// fetchTyped executes the query and decodes every declared field of
// every row, in field order. Declared fields are resolved against the
// reported column set before any row is read; SQL NULL decodes to an
// absent value for every field kind.
func fetchTyped(ctx context.Context, db *sql.DB, query *core.Query, decode decodeFunc) ([]core.Row, error) {
	dbRows, err := db.QueryContext(ctx, query.SQL)
	if err != nil {
		return nil, core.FetchErr("Statement failed", err)
	}
	defer dbRows.Close()

	columns, err := dbRows.Columns()
	if err != nil {
		return nil, core.FetchErr("Columns not available", err)
	}

	colTypes, err := dbRows.ColumnTypes()
	if err != nil {
		return nil, core.FetchErr("Column types not available", err)
	}

	indexes := make([]int, len(query.Fields))
	for i, field := range query.Fields {
		idx := slices.Index(columns, field.Field)
		if idx < 0 {
			return nil, core.FetchErr(fmt.Sprintf("Column %s not found", field.Field), nil)
		}
		indexes[i] = idx
	}

	var rows []core.Row

	for dbRows.Next() {
		raw := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range raw {
			pointers[i] = &raw[i]
		}

		if err := dbRows.Scan(pointers...); err != nil {
			return nil, core.FetchErr("Scan failed", err)
		}

		row := make(core.Row, 0, len(query.Fields))

		for i, field := range query.Fields {
			val := raw[indexes[i]]

			var inner *core.TypedValue
			if val != nil {
				inner, err = decode(field, val, colTypes[indexes[i]].DatabaseTypeName())
				if err != nil {
					return nil, core.DecodeErr(field.Field, len(rows), err)
				}
			}

			row = append(row, core.Value{Inner: inner, Field: field})
		}

		rows = append(rows, row)
	}

	if err := dbRows.Err(); err != nil {
		return nil, core.FetchErr("Rows iteration failed", err)
	}

	return rows, nil
}

// rawText reads string-ish raw values, which drivers report either as
// string or []byte.
func rawText(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}
