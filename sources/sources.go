// Package sources implements the data-acquisition layer: one driver
// per backend kind, each decoding native column values into the typed
// value model, plus the sequential executor that runs a configured
// list of queries against one driver instance.
package sources

import (
	"context"

	"go.uber.org/zap"

	"dbreport/core"
)

// creator builds a fresh, unconnected driver instance.
type creator func() core.Driver

// registeredCreators holds the implemented backends - specific drivers
// register themselves in their init functions.
var registeredCreators = make(map[core.SourceType]creator)

func register(kind core.SourceType, fn creator) {
	registeredCreators[kind] = fn
}

// Get resolves the configured source kind to a driver instance. An
// unsupported kind fails before any connection attempt.
func Get(kind core.SourceType) (core.Driver, error) {
	fn, ok := registeredCreators[kind]
	if !ok {
		return nil, core.ConnectionErr("Not supported kind", nil)
	}

	return fn(), nil
}

// Fetch connects once to the configured source and runs every query in
// the given order. A single query's failure is recorded in its own
// slot and never prevents the remaining queries from running; only an
// unsupported kind or a failed connect aborts the whole run.
func Fetch(ctx context.Context, logger *zap.Logger, src core.Source, queries []*core.Query) ([]core.QueryData, error) {
	driver, err := Get(src.Kind)
	if err != nil {
		return nil, err
	}
	defer driver.Close()

	logger.Info("connecting to source", zap.String("kind", src.Kind.String()))

	if err := driver.Connect(ctx, src.Conn); err != nil {
		return nil, err
	}

	logger.Debug("source connected")

	out := make([]core.QueryData, 0, len(queries))

	for _, query := range queries {
		logger.Info("fetching query", zap.String("title", query.Title))

		rows, err := driver.Fetch(ctx, query)
		if err != nil {
			logger.Warn("query failed",
				zap.String("title", query.Title),
				zap.Error(err))
		}

		out = append(out, core.QueryData{Query: query, Rows: rows, Err: err})
	}

	return out, nil
}
