package plot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// DefaultExportName is the suggested PNG file name.
const DefaultExportName = "solar_data_graph.png"

// Canvas limits: anything smaller than the minimum renders at the fallback size.
const (
	MinCanvasWidth  = 800
	MinCanvasHeight = 600
	FallbackWidth   = 1200
	FallbackHeight  = 800
)

// ErrNothingToPlot is returned when no series has a point.
var ErrNothingToPlot = errors.New("no points to plot")

// palette is assigned to series in order and wraps around.
var palette = []string{
	"FF0000", "0000FF", "008000", "FFA500", "800080",
	"00FFFF", "FF00FF", "A52A2A", "808080", "000000",
}

// Chart is everything needed to draw one plot.
type Chart struct {
	Title    string
	XLabel   string
	YLabel   string
	TimeAxis bool
	Result   Result
	Axes     Axes
	Scaled   bool // false leaves both axes auto-ranging
}

// NewChart builds series, scales axes and resolves labels in one step.
func NewChart(records []solar.Record, sel Selection, cfg GraphConfig) Chart {
	res := BuildSeries(records, sel)
	axes, scaled := Scale(res.Bounds, sel)
	return Chart{
		Title:    Title(cfg),
		XLabel:   XLabel(cfg, sel.X),
		YLabel:   YLabel(cfg, sel.Y),
		TimeAxis: sel.TimeAxis(),
		Result:   res,
		Axes:     axes,
		Scaled:   scaled,
	}
}

// CanvasSize applies the minimum canvas rule.
func CanvasSize(width, height int) (int, int) {
	if width < MinCanvasWidth || height < MinCanvasHeight {
		return FallbackWidth, FallbackHeight
	}
	return width, height
}

// pointStyle renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		StrokeColor: col,
		DotWidth:    4,
		DotColor:    col,
	}
}

func seriesColor(i int) drawing.Color {
	return drawing.ColorFromHex(palette[i%len(palette)])
}

func ticks(a Axis, timeAxis bool) []chart.Tick {
	values := TickValues(a)
	out := make([]chart.Tick, 0, len(values))
	for _, v := range values {
		out = append(out, chart.Tick{Value: v, Label: FormatTick(v, timeAxis)})
	}
	return out
}

// Render draws c as a PNG of the given size (after CanvasSize).
func Render(w io.Writer, c Chart, width, height int) error {
	series := make([]chart.Series, 0, len(c.Result.Series))
	for i, s := range c.Result.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j], ys[j] = p.X, p.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(seriesColor(i)),
		})
	}
	if len(series) == 0 {
		return ErrNothingToPlot
	}

	xAxis, yAxis, err := chartAxes(c)
	if err != nil {
		return err
	}

	width, height = CanvasSize(width, height)
	graph := chart.Chart{
		Title:      strings.ReplaceAll(c.Title, "\n", " | "),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 24, Right: 24, Bottom: 24}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// chartAxes applies the scaled ranges. An X axis whose clamped lower bound
// is not below its upper bound (all X values negative) is left auto-ranging.
func chartAxes(c Chart) (chart.XAxis, chart.YAxis, error) {
	xAxis := chart.XAxis{Name: c.XLabel}
	yAxis := chart.YAxis{Name: c.YLabel}
	if !c.Scaled {
		return xAxis, yAxis, nil
	}
	if c.Axes.Y.Lower >= c.Axes.Y.Upper {
		return xAxis, yAxis, fmt.Errorf("y-axis start %.2f is not below axis max %.2f", c.Axes.Y.Lower, c.Axes.Y.Upper)
	}
	if c.Axes.X.Lower < c.Axes.X.Upper {
		xAxis.Range = &chart.ContinuousRange{Min: c.Axes.X.Lower, Max: c.Axes.X.Upper}
		xAxis.Ticks = ticks(c.Axes.X, c.TimeAxis)
	}
	yAxis.Range = &chart.ContinuousRange{Min: c.Axes.Y.Lower, Max: c.Axes.Y.Upper}
	yAxis.Ticks = ticks(c.Axes.Y, false)
	return xAxis, yAxis, nil
}

// RenderFile writes the PNG to path via a temp file and rename.
func RenderFile(path string, c Chart, width, height int) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}

	err = Render(f, c, width, height)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("export graph: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename failed: %w", err)
	}
	return nil
}
