package train

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ConfusionPlotFile is the chart written next to the artifacts.
const ConfusionPlotFile = "confusion_matrix.png"

// countGrid adapts a confusion matrix to plotter.GridXYZ. Column c is the
// predicted class, row r the actual class.
type countGrid [][]int

func (g countGrid) Dims() (c, r int)   { return len(g), len(g) }
func (g countGrid) Z(c, r int) float64 { return float64(g[r][c]) }
func (g countGrid) X(c int) float64    { return float64(c) }
func (g countGrid) Y(r int) float64    { return float64(r) }

// PlotConfusion renders counts (rows actual, columns predicted) as an
// annotated heat map and saves it to path; the format follows the extension.
func PlotConfusion(path string, labels []string, counts [][]int) error {
	if len(labels) == 0 || len(counts) != len(labels) {
		return fmt.Errorf("confusion plot: %d labels for %d rows", len(labels), len(counts))
	}
	p := plot.New()
	p.Title.Text = "Confusion Matrix"
	p.X.Label.Text = "Predicted"
	p.Y.Label.Text = "Actual"

	peak := 1
	for _, row := range counts {
		for _, v := range row {
			peak = max(peak, v)
		}
	}
	h := plotter.NewHeatMap(countGrid(counts), palette.Heat(12, 1))
	h.Min, h.Max = 0, float64(peak)
	p.Add(h)

	var xys plotter.XYs
	var text []string
	for r, row := range counts {
		for c, v := range row {
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			text = append(text, strconv.Itoa(v))
		}
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return fmt.Errorf("confusion plot: %w", err)
	}
	p.Add(l)

	p.NominalX(labels...)
	p.NominalY(labels...)

	side := vg.Length(2+len(labels)) * vg.Inch
	if err := p.Save(side, side, path); err != nil {
		return fmt.Errorf("confusion plot: %w", err)
	}
	return nil
}
