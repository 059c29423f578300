package core

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SourceType enumerates the supported backend kinds.
type SourceType int

const (
	SourceSQLite SourceType = iota
	SourcePostgres
)

func (t SourceType) String() string {
	switch t {
	case SourceSQLite:
		return "sqlite"
	case SourcePostgres:
		return "postgres"
	default:
		return ""
	}
}

func (t *SourceType) UnmarshalYAML(node *yaml.Node) error {
	var kind string
	if err := node.Decode(&kind); err != nil {
		return err
	}

	switch strings.ToLower(kind) {
	case "sqlite":
		*t = SourceSQLite
	case "postgres", "postgresql":
		*t = SourcePostgres
	default:
		return fmt.Errorf("unknown source kind %q", kind)
	}

	return nil
}

// Source identifies one configured backend instance.
type Source struct {
	Kind SourceType `yaml:"kind"`
	Conn string     `yaml:"conn"`
}

// Driver is the capability a backend offers: establish one session,
// then fetch typed rows for configured queries. Each driver owns a
// single live connection after a successful Connect; Fetch before
// Connect fails with a connection error. Fetch decodes every declared
// field of every row, producing the same Row shape for the same
// logical data regardless of backend.
type Driver interface {
	Connect(ctx context.Context, conn string) error
	Fetch(ctx context.Context, query *Query) ([]Row, error)
	Close() error
}
