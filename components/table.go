// Package components implements the pluggable render components that
// turn fetched rows into format-specific report fragments.
package components

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"dbreport/core"
)

var _ core.Component = (*Table)(nil)

// Table renders rows as a fixed-column grid using the field titles as
// headers. It supports every output format and never produces images.
type Table struct{}

func NewTable() *Table {
	return &Table{}
}

func (c *Table) Render(query *core.Query, rows []core.Row, format core.OutputFormat) (*core.RenderedContent, error) {
	t := table.NewWriter()

	header := make(table.Row, 0, len(query.Fields))
	for _, field := range query.Fields {
		header = append(header, field.Title)
	}
	t.AppendHeader(header)

	for _, row := range rows {
		record := make(table.Row, 0, len(row))
		for _, value := range row {
			record = append(record, value.String())
		}
		t.AppendRow(record)
	}

	style := table.StyleDefault
	style.Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	style.Options.SeparateRows = true
	style.HTML.CSSClass = "dbreport-table"
	t.SetStyle(style)

	var content string
	switch format {
	case core.FormatMarkdown:
		content = t.RenderMarkdown()
	case core.FormatHTML:
		content = t.RenderHTML()
	default:
		content = t.Render()
	}

	return &core.RenderedContent{Content: content}, nil
}
