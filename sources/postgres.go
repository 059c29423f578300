package sources

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"dbreport/core"
)

func init() {
	register(core.SourcePostgres, func() core.Driver { return &postgresDriver{} })
}

var _ core.Driver = (*postgresDriver)(nil)

// postgresDriver runs queries against a postgres server. Decoding is
// strict about the native column type: a logical Integer only narrows
// from INT2/INT4/INT8, a Float from FLOAT4/FLOAT8/NUMERIC, a DateTime
// from TIMESTAMP/TIMESTAMPTZ. Naive timestamps are pinned to UTC.
type postgresDriver struct {
	db *sql.DB
}

func (d *postgresDriver) Connect(ctx context.Context, conn string) error {
	db, err := sql.Open("postgres", conn)
	if err != nil {
		return core.ConnectionErr("Postgres connection failed", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return core.ConnectionErr("Postgres connection failed", err)
	}

	d.db = db

	return nil
}

func (d *postgresDriver) Fetch(ctx context.Context, query *core.Query) ([]core.Row, error) {
	if d.db == nil {
		return nil, core.ConnectionErr("Connection not established", nil)
	}

	return fetchTyped(ctx, d.db, query, decodePostgres)
}

func (d *postgresDriver) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

func decodePostgres(field *core.Field, raw any, dbType string) (*core.TypedValue, error) {
	switch field.Kind {
	case core.FieldString:
		s, ok := rawText(raw)
		if !ok {
			return nil, fmt.Errorf("invalid string value of type %T", raw)
		}
		return core.NewString(s), nil

	case core.FieldInteger:
		switch dbType {
		case "INT2", "INT4", "INT8":
			v, ok := raw.(int64)
			if !ok {
				return nil, fmt.Errorf("invalid integer value of type %T", raw)
			}
			return core.NewInteger(v), nil
		}
		return nil, fmt.Errorf("invalid integer type %s", dbType)

	case core.FieldFloat:
		switch dbType {
		case "FLOAT4", "FLOAT8":
			v, ok := raw.(float64)
			if !ok {
				return nil, fmt.Errorf("invalid float value of type %T", raw)
			}
			return core.NewFloat(v), nil
		case "NUMERIC":
			// arbitrary-precision decimals arrive as text and are
			// narrowed to double precision
			s, ok := rawText(raw)
			if !ok {
				return nil, fmt.Errorf("invalid numeric value of type %T", raw)
			}
			dec, err := decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("invalid numeric value %q", s)
			}
			return core.NewFloat(dec.InexactFloat64()), nil
		}
		return nil, fmt.Errorf("invalid float type %s", dbType)

	case core.FieldTime:
		switch v := raw.(type) {
		case time.Time:
			return core.NewTime(v), nil
		case string, []byte:
			s, _ := rawText(raw)
			ts, err := time.Parse("15:04:05", s)
			if err != nil {
				return nil, fmt.Errorf("invalid time value %q", s)
			}
			return core.NewTime(ts), nil
		default:
			return nil, fmt.Errorf("invalid time value of type %T", v)
		}

	case core.FieldDate:
		v, ok := raw.(time.Time)
		if !ok {
			return nil, fmt.Errorf("invalid date value of type %T", raw)
		}
		return core.NewDate(v), nil

	case core.FieldDateTime:
		switch dbType {
		case "TIMESTAMPTZ":
			v, ok := raw.(time.Time)
			if !ok {
				return nil, fmt.Errorf("invalid datetime value of type %T", raw)
			}
			return core.NewDateTime(v), nil
		case "TIMESTAMP":
			v, ok := raw.(time.Time)
			if !ok {
				return nil, fmt.Errorf("invalid datetime value of type %T", raw)
			}
			return core.NewDateTime(v.UTC()), nil
		}
		return nil, fmt.Errorf("invalid datetime type %s", dbType)
	}

	return nil, fmt.Errorf("unhandled field kind %s", field.Kind)
}
