package components

import (
	"fmt"
	"strings"

	charts "github.com/vicanso/go-charts/v2"
	"gopkg.in/yaml.v3"
)

// ChartType selects the chart drawn for a query.
type ChartType int

const (
	ChartBar ChartType = iota
	ChartLine
	ChartPie
)

func (t ChartType) String() string {
	switch t {
	case ChartBar:
		return "bar"
	case ChartLine:
		return "line"
	case ChartPie:
		return "pie"
	default:
		return ""
	}
}

func (t *ChartType) UnmarshalYAML(node *yaml.Node) error {
	var kind string
	if err := node.Decode(&kind); err != nil {
		return err
	}

	switch strings.ToLower(kind) {
	case "bar":
		*t = ChartBar
	case "line":
		*t = ChartLine
	case "pie":
		*t = ChartPie
	default:
		return fmt.Errorf("unknown chart kind %q", kind)
	}

	return nil
}

// Series is one named value vector aligned one-to-one with the chart
// keys.
type Series struct {
	Name string
	Data []float64
}

// ChartRenderer turns shaped series and keys into image bytes. Drawing
// is delegated behind this interface so render tests can stub it out.
type ChartRenderer interface {
	Render(kind ChartType, series []Series, keys []string) (data []byte, mime string, err error)
}

var _ ChartRenderer = (*chartsRenderer)(nil)

// chartsRenderer draws PNG charts with go-charts.
type chartsRenderer struct{}

func NewChartRenderer() ChartRenderer {
	return &chartsRenderer{}
}

func (r *chartsRenderer) Render(kind ChartType, series []Series, keys []string) ([]byte, string, error) {
	names := make([]string, 0, len(series))
	values := make([][]float64, 0, len(series))
	for _, s := range series {
		names = append(names, s.Name)
		values = append(values, s.Data)
	}

	opts := []charts.OptionFunc{
		charts.PNGTypeOption(),
		charts.LegendLabelsOptionFunc(names),
		charts.PaddingOptionFunc(charts.Box{Top: 10, Bottom: 10, Left: 10, Right: 10}),
	}

	var (
		p   *charts.Painter
		err error
	)

	switch kind {
	case ChartBar:
		p, err = charts.BarRender(values, append(opts, charts.XAxisDataOptionFunc(keys))...)
	case ChartLine:
		p, err = charts.LineRender(values, append(opts, charts.XAxisDataOptionFunc(keys))...)
	case ChartPie:
		// pie has no key axis and takes one value per slice
		p, err = charts.PieRender(sumSeries(values), opts...)
	default:
		return nil, "", fmt.Errorf("unknown chart kind %d", kind)
	}
	if err != nil {
		return nil, "", fmt.Errorf("generate chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, "", fmt.Errorf("encode chart: %w", err)
	}

	return buf, "image/png", nil
}

func sumSeries(values [][]float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, data := range values {
		var sum float64
		for _, v := range data {
			sum += v
		}
		out = append(out, sum)
	}
	return out
}
