// Package config loads and validates the yaml report definition.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dbreport/components"
	"dbreport/core"
)

// Config is the whole report definition: one source, the queries to
// run against it and where the report goes.
type Config struct {
	Title   string      `yaml:"title"`
	Source  core.Source `yaml:"source"`
	Queries []*Query    `yaml:"queries"`
	Send    Send        `yaml:"send"`
}

// Query is one configured query. Key identifies it across the run;
// when omitted it is assigned from the query's position at load time.
type Query struct {
	Key    string            `yaml:"key"`
	Title  string            `yaml:"title"`
	SQL    string            `yaml:"sql"`
	Fields []*core.Field     `yaml:"fields"`
	Chart  *components.Chart `yaml:"chart"`
}

// CoreQuery projects the configured query into the shape the data
// layer works with.
func (q *Query) CoreQuery() *core.Query {
	return &core.Query{
		Key:    q.Key,
		SQL:    q.SQL,
		Title:  q.Title,
		Fields: q.Fields,
	}
}

// Component resolves the renderer for this query: the configured chart
// or, absent one, a table.
func (q *Query) Component() core.Component {
	if q.Chart != nil {
		return q.Chart
	}
	return components.NewTable()
}

// Send selects the report format and at least one delivery channel.
type Send struct {
	Format core.OutputFormat `yaml:"format"`
	Stdout bool              `yaml:"stdout"`
	Mail   *Mail             `yaml:"mail"`
}

// Mail holds the smtp delivery settings.
type Mail struct {
	From    string   `yaml:"from"`
	To      []string `yaml:"to"`
	Host    string   `yaml:"host"`
	Port    int      `yaml:"port"`
	User    string   `yaml:"user"`
	Pass    string   `yaml:"pass"`
	Subject string   `yaml:"subject"`
}

// Load reads, parses and validates the config file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, core.ConfigErr("Config file not loaded", err)
	}

	return Parse(raw)
}

// Parse decodes and validates a raw yaml config.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, core.ConfigErr("Config file not parsed", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Queries) == 0 {
		return core.ConfigErr("no queries defined", nil)
	}

	seen := make(map[string]struct{}, len(c.Queries))
	for i, query := range c.Queries {
		if query.Key == "" {
			query.Key = fmt.Sprintf("query-%d", i+1)
		}
		if _, ok := seen[query.Key]; ok {
			return core.ConfigErr(fmt.Sprintf("duplicate query key %q", query.Key), nil)
		}
		seen[query.Key] = struct{}{}

		if query.SQL == "" {
			return core.ConfigErr(fmt.Sprintf("query %q has no sql", query.Key), nil)
		}
		if len(query.Fields) == 0 {
			return core.ConfigErr(fmt.Sprintf("query %q has no fields", query.Key), nil)
		}
	}

	if !c.Send.Stdout && c.Send.Mail == nil {
		return core.ConfigErr("no delivery channel configured", nil)
	}

	return nil
}
