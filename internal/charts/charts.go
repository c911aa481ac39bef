// ABOUTME: Renders dashboard charts as SVG or PNG with go-chart.
// ABOUTME: Supports time lines, areas, grouped bars, histograms and session box comparisons.
package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/harperreed/move/internal/models"
	"github.com/harperreed/move/internal/summary"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Canvas size of every chart, in pixels.
const (
	Width  = 800
	Height = 400
)

var (
	// ErrUnknownKind is returned for a chart kind with no renderer.
	ErrUnknownKind = errors.New("unknown chart kind")
	// ErrNoData is returned when there is nothing to plot.
	ErrNoData = errors.New("no data to chart")
)

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorOrange,
	chart.ColorRed,
	chart.ColorAlternateGray,
}

func color(i int) drawing.Color {
	return palette[i%len(palette)]
}

// Output is an image format.
type Output string

const (
	SVG Output = "svg"
	PNG Output = "png"
)

// ParseOutput resolves an image format name; empty means SVG.
func ParseOutput(s string) (Output, error) {
	switch Output(strings.ToLower(s)) {
	case "", SVG:
		return SVG, nil
	case PNG:
		return PNG, nil
	}
	return "", fmt.Errorf("unknown image format %q (use svg or png)", s)
}

// ContentType returns the MIME type of the image format.
func (o Output) ContentType() string {
	if o == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (o Output) provider() chart.RendererProvider {
	if o == PNG {
		return chart.PNG
	}
	return chart.SVG
}

type renderFunc func(chart.RendererProvider, io.Writer) error

func render(w io.Writer, out Output, fn renderFunc) error {
	if err := fn(out.provider(), w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}}
}

// Render draws one dashboard chart of t. Rows are plotted oldest first.
func Render(w io.Writer, out Output, spec models.ChartSpec, t *models.Table) error {
	if t == nil || t.Len() == 0 || len(spec.Columns) == 0 {
		return ErrNoData
	}
	for _, name := range spec.Columns {
		if _, ok := t.Column(name); !ok {
			return fmt.Errorf("chart %q: %w: %q", spec.ID, summary.ErrUnknownColumn, name)
		}
	}
	asc := t.Ascending()

	switch spec.Kind {
	case models.ChartLine:
		return timeChart(w, out, spec.Title, asc, spec.Columns, false)
	case models.ChartArea:
		return timeChart(w, out, spec.Title, asc, spec.Columns, true)
	case models.ChartBar, models.ChartGrouped:
		return barChart(w, out, spec.Title, asc, spec.Columns)
	case models.ChartHistogram:
		return histogram(w, out, spec, asc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
}

func timeChart(w io.Writer, out Output, title string, t *models.Table, names []string, fill bool) error {
	dates := t.Dates
	// go-chart needs two distinct X values.
	if len(dates) == 1 {
		dates = []time.Time{dates[0], dates[0].Add(time.Hour)}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	series := make([]chart.Series, 0, len(names))
	for i, name := range names {
		c, _ := t.Column(name)
		ys := c.Values
		if len(ys) == 1 {
			ys = []float64{ys[0], ys[0]}
		}
		for _, v := range ys {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}

		style := chart.Style{StrokeColor: color(i), StrokeWidth: 2, DotColor: color(i), DotWidth: 3}
		if fill {
			style.FillColor = color(i).WithAlpha(64)
		}
		series = append(series, chart.TimeSeries{Name: name, XValues: dates, YValues: ys, Style: style})
	}

	ch := chart.Chart{
		Title:      title,
		Width:      Width,
		Height:     Height,
		Background: background(),
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeValueFormatterWithFormat("01-02")},
		YAxis:      chart.YAxis{Range: paddedRange(lo, hi)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return render(w, out, ch.Render)
}

// barChart draws one bar per column per row, grouped by date.
func barChart(w io.Writer, out Output, title string, t *models.Table, names []string) error {
	bars := make([]chart.Value, 0, t.Len()*len(names))
	lo, hi := 0.0, 0.0
	for i := 0; i < t.Len(); i++ {
		for ci, name := range names {
			c, _ := t.Column(name)
			label := ""
			if ci == 0 {
				label = t.Dates[i].Format("01-02")
			}
			v := c.Values[i]
			lo, hi = math.Min(lo, v), math.Max(hi, v)
			bars = append(bars, chart.Value{
				Value: v,
				Label: label,
				Style: chart.Style{FillColor: color(ci), StrokeColor: color(ci)},
			})
		}
	}

	slots := len(bars) + t.Len()
	bc := chart.BarChart{
		Title:      title,
		Width:      Width,
		Height:     Height,
		Background: background(),
		BarWidth:   max((Width-96)/slots, 2),
		BarSpacing: 1,
		Bars:       bars,
		YAxis:      chart.YAxis{Range: zeroBasedRange(lo, hi)},
	}
	return render(w, out, bc.Render)
}

func histogram(w io.Writer, out Output, spec models.ChartSpec, t *models.Table) error {
	c, _ := t.Column(spec.Columns[0])
	bins := spec.Bins
	if bins <= 0 {
		bins = 10
	}
	hist, err := summary.Histogram(c.Values, bins)
	if err != nil {
		return err
	}

	bars := make([]chart.Value, len(hist))
	hi := 0.0
	for i, b := range hist {
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: summary.Format(b.Low, 1),
			Style: chart.Style{FillColor: color(0), StrokeColor: color(0)},
		}
		hi = math.Max(hi, float64(b.Count))
	}

	bc := chart.BarChart{
		Title:      spec.Title,
		Width:      Width,
		Height:     Height,
		Background: background(),
		BarWidth:   max((Width-96)/(len(bars)*2), 4),
		Bars:       bars,
		YAxis:      chart.YAxis{Range: zeroBasedRange(0, hi)},
	}
	return render(w, out, bc.Render)
}

// Group is one box of a comparison chart.
type Group struct {
	Name    string
	Summary summary.FiveNumber
}

// Comparison draws one box per group: a whisker from min to max, a box from
// Q1 to Q3 and a median bar.
func Comparison(w io.Writer, out Output, title string, groups []Group) error {
	if len(groups) == 0 {
		return ErrNoData
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	series := make([]chart.Series, 0, len(groups)*3)
	ticks := make([]chart.Tick, 0, len(groups))
	for i, g := range groups {
		x := float64(i + 1)
		s := g.Summary
		lo, hi = math.Min(lo, s.Min), math.Max(hi, s.Max)

		series = append(series,
			chart.ContinuousSeries{
				Name:    g.Name + " min-max",
				XValues: []float64{x, x},
				YValues: []float64{s.Min, s.Max},
				Style:   chart.Style{StrokeColor: color(i), StrokeWidth: 1},
			},
			chart.ContinuousSeries{
				Name:    g.Name,
				XValues: []float64{x, x},
				YValues: []float64{s.Q1, s.Q3},
				Style:   chart.Style{StrokeColor: color(i).WithAlpha(160), StrokeWidth: 48},
			},
			chart.ContinuousSeries{
				Name:    g.Name + " median",
				XValues: []float64{x - 0.1, x + 0.1},
				YValues: []float64{s.Median, s.Median},
				Style:   chart.Style{StrokeColor: chart.ColorBlack, StrokeWidth: 2},
			},
		)
		ticks = append(ticks, chart.Tick{Value: x, Label: g.Name})
	}

	ch := chart.Chart{
		Title:      title,
		Width:      Width,
		Height:     Height,
		Background: background(),
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(groups)) + 0.5},
			Ticks: ticks,
		},
		YAxis:  chart.YAxis{Range: paddedRange(lo, hi)},
		Series: series,
	}
	return render(w, out, ch.Render)
}

// paddedRange widens [lo, hi] by a tenth so flat series still get an axis.
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func zeroBasedRange(lo, hi float64) *chart.ContinuousRange {
	if hi <= 0 {
		hi = 1
	}
	return &chart.ContinuousRange{Min: math.Min(lo, 0), Max: hi * 1.1}
}
