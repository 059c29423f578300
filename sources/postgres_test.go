package sources

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbreport/core"
)

func newPostgresMock(t *testing.T) (*postgresDriver, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &postgresDriver{db: db}, mock
}

func expectRows(mock sqlmock.Sqlmock, sqlText string, rows *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta(sqlText)).WillReturnRows(rows)
}

func pgQuery(fields ...*core.Field) *core.Query {
	return &core.Query{
		Key:    "test",
		SQL:    "select * from test",
		Title:  "Test",
		Fields: fields,
	}
}

func TestPostgresBasicTypes(t *testing.T) {
	driver, mock := newPostgresMock(t)

	tz := time.FixedZone("", -8*3600)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("a").OfType("VARCHAR", "").Nullable(true),
		sqlmock.NewColumn("b").OfType("INT4", int64(0)).Nullable(true),
		sqlmock.NewColumn("c").OfType("FLOAT8", float64(0)).Nullable(true),
		sqlmock.NewColumn("d").OfType("TIME", "").Nullable(true),
		sqlmock.NewColumn("e").OfType("DATE", time.Time{}).Nullable(true),
		sqlmock.NewColumn("f").OfType("TIMESTAMPTZ", time.Time{}).Nullable(true),
	)
	rows.AddRow(nil, nil, nil, nil, nil, nil)
	rows.AddRow(
		"Olá mundo",
		int64(2024),
		float64(123.45),
		"23:55:19",
		time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		time.Date(1996, 12, 19, 16, 39, 57, 0, tz),
	)
	expectRows(mock, "select * from test", rows)

	query := pgQuery(
		&core.Field{Field: "a", Title: "a", Kind: core.FieldString},
		&core.Field{Field: "b", Title: "b", Kind: core.FieldInteger},
		&core.Field{Field: "c", Title: "c", Kind: core.FieldFloat},
		&core.Field{Field: "d", Title: "d", Kind: core.FieldTime},
		&core.Field{Field: "e", Title: "e", Kind: core.FieldDate},
		&core.Field{Field: "f", Title: "f", Kind: core.FieldDateTime},
	)

	result, err := driver.Fetch(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, result, 2)

	// a full row of SQL NULLs stays absent for every field kind
	for i, value := range result[0] {
		assert.Nil(t, value.Inner, "column %d", i)
		assert.Equal(t, "", value.String())
	}

	row := result[1]
	assert.Equal(t, "Olá mundo", row[0].String())
	assert.Equal(t, "2024", row[1].String())
	assert.Equal(t, "123.45", row[2].String())
	assert.Equal(t, "23:55:19", row[3].String())
	assert.Equal(t, "2024-05-15", row[4].String())
	assert.Equal(t, "1996-12-19 16:39:57 -08:00", row[5].String())

	// values stay aligned with the declared fields
	for i, value := range row {
		assert.Same(t, query.Fields[i], value.Field)
	}
}

func TestPostgresIntegerWidths(t *testing.T) {
	driver, mock := newPostgresMock(t)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("a").OfType("INT2", int64(0)).Nullable(true),
		sqlmock.NewColumn("b").OfType("INT4", int64(0)).Nullable(true),
		sqlmock.NewColumn("c").OfType("INT8", int64(0)).Nullable(true),
	)
	rows.AddRow(nil, nil, nil)
	rows.AddRow(int64(123), int64(456), int64(789))
	expectRows(mock, "select * from test", rows)

	query := pgQuery(
		&core.Field{Field: "a", Title: "a", Kind: core.FieldInteger},
		&core.Field{Field: "b", Title: "b", Kind: core.FieldInteger},
		&core.Field{Field: "c", Title: "c", Kind: core.FieldInteger},
	)

	result, err := driver.Fetch(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, result, 2)

	for _, value := range result[0] {
		assert.Nil(t, value.Inner)
	}

	assert.Equal(t, "123", result[1][0].String())
	assert.Equal(t, "456", result[1][1].String())
	assert.Equal(t, "789", result[1][2].String())
}

func TestPostgresFloatWidths(t *testing.T) {
	driver, mock := newPostgresMock(t)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("a").OfType("FLOAT4", float64(0)).Nullable(true),
		sqlmock.NewColumn("b").OfType("FLOAT8", float64(0)).Nullable(true),
		sqlmock.NewColumn("c").OfType("NUMERIC", []byte(nil)).Nullable(true),
	)
	rows.AddRow(nil, nil, nil)
	rows.AddRow(float64(123.45), float64(6789.01), []byte("98765.4321"))
	expectRows(mock, "select * from test", rows)

	query := pgQuery(
		&core.Field{Field: "a", Title: "a", Kind: core.FieldFloat},
		&core.Field{Field: "b", Title: "b", Kind: core.FieldFloat},
		&core.Field{Field: "c", Title: "c", Kind: core.FieldFloat},
	)

	result, err := driver.Fetch(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, result, 2)

	for _, value := range result[0] {
		assert.Nil(t, value.Inner)
	}

	assert.Equal(t, "123.45", result[1][0].String())
	assert.Equal(t, "6789.01", result[1][1].String())
	assert.Equal(t, "98765.4321", result[1][2].String())
}

func TestPostgresNaiveTimestampPinnedToUTC(t *testing.T) {
	driver, mock := newPostgresMock(t)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("a").OfType("TIMESTAMP", time.Time{}).Nullable(true),
	)
	rows.AddRow(time.Date(1996, 12, 19, 16, 39, 57, 0, time.UTC))
	expectRows(mock, "select * from test", rows)

	query := pgQuery(&core.Field{Field: "a", Title: "a", Kind: core.FieldDateTime})

	result, err := driver.Fetch(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, "1996-12-19 16:39:57 +00:00", result[0][0].String())
}

func TestPostgresColumnNotFound(t *testing.T) {
	driver, mock := newPostgresMock(t)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("a").OfType("VARCHAR", "").Nullable(true),
	)
	rows.AddRow(nil)
	expectRows(mock, "select * from test", rows)

	query := pgQuery(
		&core.Field{Field: "a", Title: "a", Kind: core.FieldString},
		&core.Field{Field: "g", Title: "g", Kind: core.FieldInteger},
	)

	_, err := driver.Fetch(context.Background(), query)
	assert.EqualError(t, err, "Column g not found")
}

func TestPostgresInvalidIntegerType(t *testing.T) {
	driver, mock := newPostgresMock(t)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("a").OfType("FLOAT8", float64(0)).Nullable(true),
	)
	rows.AddRow(float64(1.5))
	expectRows(mock, "select * from test", rows)

	query := pgQuery(&core.Field{Field: "a", Title: "a", Kind: core.FieldInteger})

	_, err := driver.Fetch(context.Background(), query)
	assert.EqualError(t, err, "Column a row 0 error: invalid integer type FLOAT8")
}

func TestPostgresDecodeErrorReportsRowIndex(t *testing.T) {
	driver, mock := newPostgresMock(t)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("c").OfType("NUMERIC", []byte(nil)).Nullable(true),
	)
	rows.AddRow([]byte("1.5"))
	rows.AddRow([]byte("not-a-number"))
	expectRows(mock, "select * from test", rows)

	query := pgQuery(&core.Field{Field: "c", Title: "c", Kind: core.FieldFloat})

	_, err := driver.Fetch(context.Background(), query)
	assert.EqualError(t, err, `Column c row 1 error: invalid numeric value "not-a-number"`)
}

func TestPostgresStatementFailure(t *testing.T) {
	driver, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("select * from test")).
		WillReturnError(sql.ErrConnDone)

	query := pgQuery(&core.Field{Field: "a", Title: "a", Kind: core.FieldString})

	_, err := driver.Fetch(context.Background(), query)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Statement failed")

	var coreErr *core.Error
	require.ErrorAs(t, err, &coreErr)
	assert.Equal(t, core.ErrFetch, coreErr.Kind)
}
