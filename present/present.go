// Package present assembles per-query rendered sections into one
// report body per output format.
package present

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dbreport/core"
)

const footer = "Report generated by dbreport"

// Entry pairs one executed query with the component configured to
// render it.
type Entry struct {
	Query     *core.Query
	Component core.Component
	Rows      []core.Row
	Err       error
}

// PresentAs assembles the whole report in the requested format. Every
// per-query failure - fetch, empty result or render - is written
// inline in that query's section, so the report always covers every
// configured query.
func PresentAs(logger *zap.Logger, entries []Entry, title string, format core.OutputFormat) (*core.DataPresented, error) {
	logger.Info("generating the presentation",
		zap.Int("queries", len(entries)),
		zap.String("format", format.String()))

	var b strings.Builder
	var images []core.ImagePresented

	b.WriteString(format.Title1(fmt.Sprintf("The %s results are here!", title)))

	for _, entry := range entries {
		b.WriteString(format.BreakLine())

		rendered := presentQuery(logger, entry, format)
		b.WriteString(rendered.Content)
		b.WriteString(format.BreakLine())
		b.WriteString(format.BreakLine())

		images = append(images, rendered.Images...)
	}

	b.WriteString(format.Simple(footer))

	return &core.DataPresented{
		IsHTML:  format == core.FormatHTML,
		Content: format.Body(b.String()),
		Images:  images,
	}, nil
}

func presentQuery(logger *zap.Logger, entry Entry, format core.OutputFormat) *core.RenderedContent {
	logger.Debug("generating query section", zap.String("title", entry.Query.Title))

	r := &core.RenderedContent{}

	var b strings.Builder
	b.WriteString(format.Title2("Query: " + entry.Query.Title))

	switch {
	case entry.Err != nil:
		b.WriteString(format.Simple(fmt.Sprintf("Query failed: %v", entry.Err)))

	case len(entry.Rows) == 0:
		b.WriteString(format.Simple("Empty result"))

	default:
		rendered, err := entry.Component.Render(entry.Query, entry.Rows, format)
		if err != nil {
			b.WriteString(format.Simple(fmt.Sprintf("Error on rendering: %v", err)))
		} else {
			b.WriteString(format.Simple(rendered.Content))
			r.Images = append(r.Images, rendered.Images...)
		}
	}

	r.Content = b.String()

	return r
}
