package components

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"dbreport/core"
)

var _ core.Component = (*Chart)(nil)

// SeriesBy derives chart series by grouping rows: every distinct value
// of Key becomes one series, fed from the Values field.
type SeriesBy struct {
	Key    string `yaml:"key"`
	Values string `yaml:"values"`
}

// Chart renders the rows of one query as an inline image. Only the
// HTML format can carry charts. The data is shaped in one of two
// modes: an explicit list of value fields (Series), or grouping by a
// key field (SeriesBy). Keys are the shared category axis and are
// mandatory for bar and line charts.
type Chart struct {
	Kind     ChartType `yaml:"kind"`
	KeysBy   string    `yaml:"keys_by"`
	SeriesBy *SeriesBy `yaml:"series_by"`
	Series   []string  `yaml:"series"`

	renderer ChartRenderer
}

// WithRenderer overrides the drawing collaborator, mainly for tests.
func (c *Chart) WithRenderer(r ChartRenderer) *Chart {
	c.renderer = r
	return c
}

func (c *Chart) chartRenderer() ChartRenderer {
	if c.renderer == nil {
		c.renderer = NewChartRenderer()
	}
	return c.renderer
}

func (c *Chart) Render(query *core.Query, rows []core.Row, format core.OutputFormat) (*core.RenderedContent, error) {
	// checked before any data pass
	if format != core.FormatHTML {
		return nil, core.RenderErr("Output format without chart support")
	}

	keys, err := c.prepareKeys(rows)
	if err != nil {
		return nil, err
	}

	series, err := c.prepareSeries(query, keys, rows)
	if err != nil {
		return nil, err
	}

	data, mime, err := c.chartRenderer().Render(c.Kind, series, keys)
	if err != nil {
		return nil, core.RenderErr(err.Error())
	}

	cid := uuid.NewString()

	content := fmt.Sprintf(`<img class="dbreport-img" title="%s" src="cid:%s">`, query.Title, cid)

	return &core.RenderedContent{
		Content: content,
		Images: []core.ImagePresented{
			{CID: cid, MIME: mime, Data: data},
		},
	}, nil
}

// prepareKeys derives the category axis: the distinct decoded values
// of the KeysBy field across rows, in first-occurrence order. Pie
// charts have no axis and may skip it.
func (c *Chart) prepareKeys(rows []core.Row) ([]string, error) {
	if c.KeysBy == "" && c.Kind != ChartPie {
		return nil, core.RenderErr("Keys must be defined")
	}

	var keys []string

	if c.KeysBy != "" {
		for _, row := range rows {
			key, err := keyByField(c.KeysBy, row)
			if err != nil {
				return nil, err
			}

			if !slices.Contains(keys, key) {
				keys = append(keys, key)
			}
		}
	}

	return keys, nil
}

// prepareSeries shapes the value vectors for the configured mode.
func (c *Chart) prepareSeries(query *core.Query, keys []string, rows []core.Row) ([]Series, error) {
	if c.Series == nil && c.SeriesBy == nil {
		return nil, core.RenderErr("Series must be defined")
	}

	var series []Series

	for _, name := range c.Series {
		field, ok := query.FieldByName(name)
		if !ok {
			return nil, core.RenderErr(fmt.Sprintf("Field %s not found", name))
		}

		values := make([]float64, 0, len(rows))
		for _, row := range rows {
			value, err := valueByField(field.Field, row)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}

		series = append(series, Series{Name: field.Title, Data: values})
	}

	if c.SeriesBy != nil {
		if c.KeysBy == "" {
			return nil, core.RenderErr("Keys must be defined")
		}

		var names []string
		for _, row := range rows {
			name, err := keyByField(c.SeriesBy.Key, row)
			if err != nil {
				return nil, err
			}
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}

		for _, name := range names {
			// every key position defaults to zero, rows of this
			// series overwrite their own position
			values := make([]float64, len(keys))

			for _, row := range rows {
				rowName, err := keyByField(c.SeriesBy.Key, row)
				if err != nil {
					return nil, err
				}
				if rowName != name {
					continue
				}

				value, err := valueByField(c.SeriesBy.Values, row)
				if err != nil {
					return nil, err
				}

				key, err := keyByField(c.KeysBy, row)
				if err != nil {
					return nil, err
				}

				if idx := slices.Index(keys, key); idx >= 0 {
					values[idx] = value
				}
			}

			series = append(series, Series{Name: name, Data: values})
		}
	}

	return series, nil
}

// keyByField reads the category label of a row; absent values label as
// the empty string.
func keyByField(name string, row core.Row) (string, error) {
	for _, value := range row {
		if value.Field.Field == name {
			return value.String(), nil
		}
	}
	return "", core.RenderErr(fmt.Sprintf("Field %s not found", name))
}

// valueByField reads a row's numeric payload; absent values count as
// zero.
func valueByField(name string, row core.Row) (float64, error) {
	for _, value := range row {
		if value.Field.Field != name {
			continue
		}

		if value.Inner == nil {
			return 0, nil
		}

		v, err := value.Inner.Float64()
		if err != nil {
			return 0, core.RenderErr(fmt.Sprintf("Field %s: %v", name, err))
		}
		return v, nil
	}

	return 0, core.RenderErr(fmt.Sprintf("Field %s not found", name))
}
