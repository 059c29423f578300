package core

// Query is one configured statement together with its declared result
// shape. Key is a stable identifier assigned at configuration load and
// is the only thing used to match a query back to its configured
// render component.
type Query struct {
	Key    string
	SQL    string
	Title  string
	Fields []*Field
}

// FieldByName resolves a declared field by its source column name,
// case-sensitive.
func (q *Query) FieldByName(name string) (*Field, bool) {
	for _, field := range q.Fields {
		if field.Field == name {
			return field, true
		}
	}
	return nil, false
}

// QueryData is the outcome of running a single query: either the
// fetched rows or the error that aborted that query's fetch. One
// query failing never removes its slot from the run's output.
type QueryData struct {
	Query *Query
	Rows  []Row
	Err   error
}
