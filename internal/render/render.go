// Package render draws dashboard charts as PNG images.
package render

import (
	"io"
	"strconv"
	"strings"

	"adoption-eda/internal/model"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrNoData is returned for charts built from an empty view.
	ErrNoData = errors.New("chart has no data")
	// ErrUnsupportedChart is returned for chart kinds without a PNG renderer.
	ErrUnsupportedChart = errors.New("chart kind cannot be rendered as PNG")
)

// Default image size.
const (
	DefaultWidth  = 1024
	DefaultHeight = 512
)

// Renderable reports whether RenderPNG supports the chart kind.
func Renderable(kind string) bool {
	switch kind {
	case model.ChartBar, model.ChartPie, model.ChartLine, model.ChartHistogram:
		return true
	}
	return false
}

// RenderPNG writes c to w as a PNG of the given size.
func RenderPNG(w io.Writer, c model.ChartData, width, height int) error {
	if !Renderable(c.Kind) {
		return errors.Wrapf(ErrUnsupportedChart, "%s (%s)", c.Name, c.Kind)
	}
	if c.Empty || len(c.Series) == 0 {
		return errors.Wrap(ErrNoData, c.Name)
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var err error
	switch c.Kind {
	case model.ChartBar, model.ChartHistogram:
		err = renderBar(w, c, width, height)
	case model.ChartPie:
		err = renderPie(w, c, width, height)
	case model.ChartLine:
		err = renderLine(w, c, width, height)
	}
	return errors.Wrapf(err, "failed to render %s", c.Name)
}

func color(hex string, i int) drawing.Color {
	if hex == "" {
		hex = palette[i%len(palette)]
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

var palette = []string{"4F46E5", "10B981", "F59E0B", "EF4444", "8B5CF6", "06B6D4", "EC4899", "84CC16", "F97316", "6366F1"}

func renderBar(w io.Writer, c model.ChartData, width, height int) error {
	var bars []chart.Value
	top := 0.0
	for i, s := range c.Series {
		for _, p := range s.Data {
			col := color(s.Color, i)
			bars = append(bars, chart.Value{
				Label: p.Label,
				Value: p.Value,
				Style: chart.Style{FillColor: col, StrokeColor: col},
			})
			top = max(top, p.Value)
		}
	}
	if top <= 0 {
		top = 1
	}

	// bars and gaps share the plot width so the chart never overflows the canvas
	slot := max((width-80)/len(bars), 2)
	barWidth := min(max(slot*2/3, 1), 60)
	spacing := max(slot-barWidth, 1)
	if c.Kind == model.ChartHistogram {
		barWidth, spacing = max(slot-1, 1), 1
	}
	bc := chart.BarChart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      chart.YAxis{Name: c.YLabel, Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

func renderPie(w io.Writer, c model.ChartData, width, height int) error {
	var values []chart.Value
	for i, p := range c.Series[0].Data {
		values = append(values, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: color("", i)},
		})
	}
	pie := chart.PieChart{
		Title:  c.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

func renderLine(w io.Writer, c model.ChartData, width, height int) error {
	var series []chart.Series
	minX, maxX := 0.0, 0.0
	minY, maxY := 0.0, 0.0
	first := true
	for i, s := range c.Series {
		xs := make([]float64, 0, len(s.Data))
		ys := make([]float64, 0, len(s.Data))
		for _, p := range s.Data {
			x, err := strconv.ParseFloat(p.Label, 64)
			if err != nil {
				return errors.Wrapf(err, "series %s: x label %q is not numeric", s.Name, p.Label)
			}
			xs = append(xs, x)
			ys = append(ys, p.Value)
			if first {
				minX, maxX, minY, maxY = x, x, p.Value, p.Value
				first = false
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, p.Value), max(maxY, p.Value)
		}
		col := color(s.Color, i)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: col, StrokeWidth: 2, DotColor: col, DotWidth: 4},
		})
	}

	// go-chart rejects zero-width ranges, e.g. a single year.
	if maxX == minX {
		minX, maxX = minX-1, maxX+1
	}
	if maxY == minY {
		minY, maxY = minY-1, maxY+1
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Range: &chart.ContinuousRange{Min: minX, Max: maxX},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(f))
				}
				return ""
			},
		},
		YAxis:  chart.YAxis{Name: c.YLabel, Range: &chart.ContinuousRange{Min: minY, Max: maxY}},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}
