package sources

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"dbreport/core"
)

func init() {
	register(core.SourceSQLite, func() core.Driver { return &sqliteDriver{} })
}

var _ core.Driver = (*sqliteDriver)(nil)

// sqliteDriver runs queries against an embedded sqlite database file.
// sqlite has no native temporal storage classes, so Time/Date/DateTime
// fields are parsed from ISO-8601 text.
type sqliteDriver struct {
	db *sql.DB
}

func (d *sqliteDriver) Connect(ctx context.Context, conn string) error {
	db, err := sql.Open("sqlite", conn)
	if err != nil {
		return core.ConnectionErr("Sqlite connection failed", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return core.ConnectionErr("Sqlite connection failed", err)
	}

	d.db = db

	return nil
}

func (d *sqliteDriver) Fetch(ctx context.Context, query *core.Query) ([]core.Row, error) {
	if d.db == nil {
		return nil, core.ConnectionErr("Connection not established", nil)
	}

	return fetchTyped(ctx, d.db, query, decodeSQLite)
}

func (d *sqliteDriver) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// decodeSQLite maps sqlite's dynamic storage classes onto the declared
// field kind.
func decodeSQLite(field *core.Field, raw any, _ string) (*core.TypedValue, error) {
	switch field.Kind {
	case core.FieldString:
		s, ok := rawText(raw)
		if !ok {
			return nil, fmt.Errorf("invalid string value of type %T", raw)
		}
		return core.NewString(s), nil

	case core.FieldInteger:
		switch v := raw.(type) {
		case int64:
			return core.NewInteger(v), nil
		case string, []byte:
			s, _ := rawText(raw)
			i, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid integer value %q", s)
			}
			return core.NewInteger(i), nil
		default:
			return nil, fmt.Errorf("invalid integer value of type %T", v)
		}

	case core.FieldFloat:
		switch v := raw.(type) {
		case float64:
			return core.NewFloat(v), nil
		case int64:
			return core.NewFloat(float64(v)), nil
		case string, []byte:
			s, _ := rawText(raw)
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid float value %q", s)
			}
			return core.NewFloat(f), nil
		default:
			return nil, fmt.Errorf("invalid float value of type %T", v)
		}

	case core.FieldTime:
		s, ok := rawText(raw)
		if !ok {
			return nil, fmt.Errorf("invalid time value of type %T", raw)
		}
		ts, err := time.Parse("15:04:05", s)
		if err != nil {
			return nil, fmt.Errorf("invalid time value %q", s)
		}
		return core.NewTime(ts), nil

	case core.FieldDate:
		s, ok := rawText(raw)
		if !ok {
			return nil, fmt.Errorf("invalid date value of type %T", raw)
		}
		ts, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("invalid date value %q", s)
		}
		return core.NewDate(ts), nil

	case core.FieldDateTime:
		s, ok := rawText(raw)
		if !ok {
			return nil, fmt.Errorf("invalid datetime value of type %T", raw)
		}
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("invalid datetime value %q", s)
		}
		return core.NewDateTime(ts), nil
	}

	return nil, fmt.Errorf("unhandled field kind %s", field.Kind)
}
