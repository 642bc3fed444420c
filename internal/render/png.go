// Package render draws chart specifications as PNG images.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/jengzang/ev-dashboard-go/internal/charts"
)

// Default image size in pixels
const (
	DefaultWidth  = 800
	DefaultHeight = 450
	maxLegend     = 10
)

// ErrUnsupportedKind is returned for a chart kind without a renderer
var ErrUnsupportedKind = errors.New("unsupported chart kind")

var fillColor = color.RGBA{R: 76, G: 120, B: 168, A: 255}

// PNG renders s as a width x height PNG into w. Empty and skipped specs
// render a placeholder carrying the spec notice.
func PNG(w io.Writer, s charts.Spec, width, height int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	if !s.Renderable() {
		return savePlot(w, placeholder(s), width, height)
	}

	if s.Kind == charts.KindPie {
		return renderPie(w, s, width, height)
	}

	p, err := buildPlot(s)
	if err != nil {
		return fmt.Errorf("failed to build %s chart: %w", s.ID, err)
	}
	return savePlot(w, p, width, height)
}

func buildPlot(s charts.Spec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel

	var err error
	switch s.Kind {
	case charts.KindBar:
		err = addBars(p, s)
	case charts.KindArea:
		err = addArea(p, s)
	case charts.KindHistogram:
		addHistogram(p, s)
	case charts.KindBox:
		err = addBox(p, s)
	case charts.KindScatter:
		err = addScatter(p, s)
	case charts.KindDensity:
		err = addDensity(p, s)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedKind, s.Kind)
	}
	if err != nil {
		return nil, err
	}

	p.Add(plotter.NewGrid())
	return p, nil
}

func addBars(p *plot.Plot, s charts.Spec) error {
	values := make(plotter.Values, len(s.Categories))
	labels := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		values[i] = float64(c.Count)
		labels[i] = c.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return err
	}
	bars.Color = fillColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = draw.XRight
	return nil
}

func addArea(p *plot.Plot, s charts.Spec) error {
	xys := make(plotter.XYs, len(s.Categories))
	for i, c := range s.Categories {
		x, err := strconv.ParseFloat(c.Label, 64)
		if err != nil {
			x = float64(i)
		}
		xys[i].X = x
		xys[i].Y = float64(c.Count)
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.FillColor = color.RGBA{R: 76, G: 120, B: 168, A: 90}
	line.Color = fillColor
	p.Add(line)

	if s.Markers {
		dots, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		dots.GlyphStyle.Color = fillColor
		dots.GlyphStyle.Shape = draw.CircleGlyph{}
		dots.GlyphStyle.Radius = vg.Points(3)
		p.Add(dots)
	}
	p.Y.Min = 0
	return nil
}

func addHistogram(p *plot.Plot, s charts.Spec) {
	bins := make([]plotter.HistogramBin, len(s.Bins))
	for i, b := range s.Bins {
		bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(b.Count)}
	}
	h := &plotter.Histogram{
		Bins:      bins,
		FillColor: fillColor,
		LineStyle: plotter.DefaultLineStyle,
	}
	if len(s.Bins) > 0 {
		h.Width = s.Bins[0].Max - s.Bins[0].Min
	}
	p.Add(h)
}

func addBox(p *plot.Plot, s charts.Spec) error {
	box, err := plotter.NewBoxPlot(vg.Points(60), 0, plotter.Values(s.Values))
	if err != nil {
		return err
	}
	box.FillColor = color.RGBA{R: 76, G: 120, B: 168, A: 120}
	p.Add(box)

	// Every point is drawn beside the box
	points := make(plotter.XYs, len(s.Values))
	for i, v := range s.Values {
		points[i].X = -0.6
		points[i].Y = v
	}
	dots, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	dots.GlyphStyle.Color = color.RGBA{R: 76, G: 120, B: 168, A: 160}
	dots.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(dots)

	p.X.Min, p.X.Max = -1, 1
	p.NominalX(s.YLabel)
	return nil
}

func addScatter(p *plot.Plot, s charts.Spec) error {
	for i, g := range s.Groups {
		xys := make(plotter.XYs, len(g.Points))
		for j, pt := range g.Points {
			xys[j].X, xys[j].Y = pt.X, pt.Y
		}

		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		if i < maxLegend {
			p.Legend.Add(g.Name, sc)
		}

		if len(g.Trend) > 1 {
			trend := make(plotter.XYs, len(g.Trend))
			for j, t := range g.Trend {
				trend[j].X, trend[j].Y = t.X, t.Y
			}
			line, err := plotter.NewLine(trend)
			if err != nil {
				return err
			}
			line.Color = plotutil.Color(i)
			line.Width = vg.Points(1.5)
			p.Add(line)
		}
	}
	p.Legend.Top = true
	return nil
}

func addDensity(p *plot.Plot, s charts.Spec) error {
	cells := s.Heatmap.Points
	xys := make(plotter.XYs, len(cells))
	for i, c := range cells {
		xys[i].X, xys[i].Y = c.Lng, c.Lat
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  heatColor(cells[i].Intensity),
			Radius: vg.Points(3 + 9*cells[i].Intensity),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(sc)
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	return nil
}

// heatColor maps an intensity in [0,1] from pale yellow to deep red
func heatColor(intensity float64) color.Color {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}
	return color.RGBA{
		R: 255,
		G: uint8(230 - 200*intensity),
		B: uint8(120 - 110*intensity),
		A: uint8(120 + 120*intensity),
	}
}

func placeholder(s charts.Spec) *plot.Plot {
	p := plot.New()
	p.Title.Text = s.Title
	p.HideAxes()

	notice := s.Notice
	if notice == "" {
		notice = charts.NoticeNoData
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
		Labels: []string{notice},
	})
	if err == nil {
		labels.TextStyle[0].XAlign = draw.XCenter
		p.Add(labels)
	}
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return p
}

func savePlot(w io.Writer, p *plot.Plot, width, height int) error {
	// png canvases are 96 dpi while plot lengths are in 1/72 inch points
	wt, err := p.WriterTo(vg.Points(float64(width)*0.75), vg.Points(float64(height)*0.75), "png")
	if err != nil {
		return fmt.Errorf("failed to create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}

func renderPie(w io.Writer, s charts.Spec, width, height int) error {
	values := make([]chart.Value, 0, len(s.Categories))
	for _, c := range s.Categories {
		values = append(values, chart.Value{Value: float64(c.Count), Label: c.Label})
	}

	var err error
	if s.Hole > 0 {
		err = chart.DonutChart{Title: s.Title, Width: width, Height: height, Values: values}.Render(chart.PNG, w)
	} else {
		err = chart.PieChart{Title: s.Title, Width: width, Height: height, Values: values}.Render(chart.PNG, w)
	}
	if err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}
