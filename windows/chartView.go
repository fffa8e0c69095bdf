// Copyright 2026 The Geodash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package windows

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"math"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/wcharczuk/go-chart/v2"

	"geodash/geodata"
)

const (
	chartWidth  = 860
	chartHeight = 480

	maxBarCategories = 20
	maxPieSlices     = 10
	histogramBins    = 20
)

var chartTypes = []string{
	"Summary Statistics",
	"Bar Chart",
	"Histogram",
	"Scatter Plot",
	"Line Chart",
	"Pie Chart",
}

// ChartView is the Data Analysis tab: a chart type picker, column
// pickers valid for that type and the rendered chart. Chart types whose
// column requirements the dataset cannot meet show a message instead of
// erroring.
type ChartView struct {
	main *MainWindow

	root       *fyne.Container
	typeSelect *widget.Select
	xSelect    *widget.Select
	ySelect    *widget.Select
	chartImage *canvas.Image
	message    *widget.Label
	stats      *widget.Label
}

func NewChartView(t *MainWindow) *ChartView {
	cv := &ChartView{main: t}

	cv.typeSelect = widget.NewSelect(chartTypes, func(string) {
		cv.updateColumnChoices()
		cv.render()
	})
	cv.typeSelect.SetSelected("Summary Statistics")

	cv.xSelect = widget.NewSelect(nil, func(string) { cv.render() })
	cv.xSelect.PlaceHolder = "X column..."
	cv.ySelect = widget.NewSelect(nil, func(string) { cv.render() })
	cv.ySelect.PlaceHolder = "Y column..."

	cv.chartImage = canvas.NewImageFromImage(nil)
	cv.chartImage.FillMode = canvas.ImageFillContain
	cv.chartImage.SetMinSize(fyne.NewSize(chartWidth/2, chartHeight/2))

	cv.message = widget.NewLabel("Load a dataset to analyze it")
	cv.message.Alignment = fyne.TextAlignCenter
	cv.message.Wrapping = fyne.TextWrapWord

	cv.stats = widget.NewLabel("")
	cv.stats.TextStyle = fyne.TextStyle{Monospace: true}

	controls := container.NewHBox(cv.typeSelect, cv.xSelect, cv.ySelect)
	cv.root = container.NewBorder(controls, nil, nil, nil,
		container.NewStack(cv.message, cv.chartImage, container.NewVScroll(cv.stats)))
	return cv
}

// Update refreshes the column pickers and redraws for the current view.
func (cv *ChartView) Update() {
	cv.updateColumnChoices()
	cv.render()
}

// updateColumnChoices restricts the X/Y pickers to the kinds the chart
// type needs: bar charts group by a categorical column, scatter plots
// need two numeric ones, and so on.
func (cv *ChartView) updateColumnChoices() {
	v := cv.main.View()
	if v == nil {
		cv.xSelect.Options = nil
		cv.ySelect.Options = nil
		return
	}
	classes := geodata.Classify(v.Source())

	switch cv.typeSelect.Selected {
	case "Bar Chart":
		cv.setChoices(cv.xSelect, classes.Categorical)
		cv.setChoices(cv.ySelect, classes.Numeric)
	case "Histogram":
		cv.setChoices(cv.xSelect, classes.Numeric)
		cv.setChoices(cv.ySelect, nil)
	case "Scatter Plot":
		cv.setChoices(cv.xSelect, classes.Numeric)
		cv.setChoices(cv.ySelect, classes.Numeric)
	case "Line Chart":
		cv.setChoices(cv.xSelect, append(append([]string{}, classes.Datetime...), classes.Numeric...))
		cv.setChoices(cv.ySelect, classes.Numeric)
	case "Pie Chart":
		cv.setChoices(cv.xSelect, classes.Categorical)
		cv.setChoices(cv.ySelect, nil)
	default:
		cv.setChoices(cv.xSelect, nil)
		cv.setChoices(cv.ySelect, nil)
	}
}

func (cv *ChartView) setChoices(sel *widget.Select, options []string) {
	sel.Options = options
	if len(options) == 0 {
		sel.ClearSelected()
		sel.Disable()
		return
	}
	sel.Enable()
	if !contains(options, sel.Selected) {
		sel.SetSelected(options[0])
	}
}

func (cv *ChartView) render() {
	v := cv.main.View()
	if v == nil || v.Len() == 0 {
		cv.showMessage("No data to analyze")
		return
	}

	switch cv.typeSelect.Selected {
	case "Summary Statistics":
		cv.renderStats(v)
	case "Bar Chart":
		cv.renderBar(v)
	case "Histogram":
		cv.renderHistogram(v)
	case "Scatter Plot":
		cv.renderScatter(v)
	case "Line Chart":
		cv.renderLine(v)
	case "Pie Chart":
		cv.renderPie(v)
	}
}

func (cv *ChartView) showMessage(text string) {
	cv.chartImage.Hide()
	cv.stats.Hide()
	cv.message.SetText(text)
	cv.message.Show()
	cv.root.Refresh()
}

// showUnavailable reports a chart type the current columns cannot
// support. Never an error dialog; the tab just explains itself.
func (cv *ChartView) showUnavailable(reason string) {
	cv.showMessage(fmt.Errorf("%w: %s", geodata.ErrChartUnavailable, reason).Error())
}

func (cv *ChartView) showChart(ch interface {
	Render(chart.RendererProvider, io.Writer) error
}) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		cv.showMessage("Chart rendering failed: " + err.Error())
		return
	}
	img, err := png.Decode(&buf)
	if err != nil {
		cv.showMessage("Chart rendering failed: " + err.Error())
		return
	}
	cv.message.Hide()
	cv.stats.Hide()
	cv.chartImage.Image = img
	cv.chartImage.Show()
	cv.chartImage.Refresh()
}

func (cv *ChartView) renderStats(v *geodata.View) {
	classes := geodata.Classify(v.Source())
	if !classes.HasNumeric() {
		cv.showUnavailable("summary statistics need at least one numeric column")
		return
	}

	text := fmt.Sprintf("%-20s %8s %12s %12s %12s %12s\n",
		"column", "count", "mean", "std", "min", "max")
	for _, name := range classes.Numeric {
		vals := v.Numbers(name)
		if len(vals) == 0 {
			text += fmt.Sprintf("%-20s %8d\n", name, 0)
			continue
		}
		mean, std := meanStddev(vals)
		lo, hi := minMax(vals)
		text += fmt.Sprintf("%-20s %8d %12.4g %12.4g %12.4g %12.4g\n",
			name, len(vals), mean, std, lo, hi)
	}

	cv.message.Hide()
	cv.chartImage.Hide()
	cv.stats.SetText(text)
	cv.stats.Show()
	cv.root.Refresh()
}

func (cv *ChartView) renderBar(v *geodata.View) {
	xCol, yCol := cv.xSelect.Selected, cv.ySelect.Selected
	if xCol == "" || yCol == "" {
		cv.showUnavailable("bar charts need a categorical and a numeric column")
		return
	}

	// Mean of the numeric column per category.
	sums := map[string]float64{}
	counts := map[string]int{}
	var order []string
	for i := 0; i < v.Len(); i++ {
		cat, ok := v.Text(xCol, i)
		if !ok {
			continue
		}
		val, ok := v.Number(yCol, i)
		if !ok {
			continue
		}
		if _, seen := sums[cat]; !seen {
			order = append(order, cat)
		}
		sums[cat] += val
		counts[cat]++
	}
	if len(order) == 0 {
		cv.showMessage("No rows with both values present")
		return
	}
	if len(order) > maxBarCategories {
		order = order[:maxBarCategories]
	}

	values := make([]chart.Value, 0, len(order))
	for _, cat := range order {
		values = append(values, chart.Value{
			Label: cat,
			Value: sums[cat] / float64(counts[cat]),
		})
	}

	cv.showChart(&chart.BarChart{
		Title:    fmt.Sprintf("Mean %s by %s", yCol, xCol),
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 30,
		Bars:     values,
	})
}

func (cv *ChartView) renderHistogram(v *geodata.View) {
	col := cv.xSelect.Selected
	if col == "" {
		cv.showUnavailable("histograms need a numeric column")
		return
	}
	vals := v.Numbers(col)
	if len(vals) == 0 {
		cv.showMessage("No values present in " + col)
		return
	}

	lo, hi := minMax(vals)
	if lo == hi {
		hi = lo + 1
	}
	bins := make([]int, histogramBins)
	width := (hi - lo) / float64(histogramBins)
	for _, val := range vals {
		idx := int((val - lo) / width)
		if idx >= histogramBins {
			idx = histogramBins - 1
		}
		bins[idx]++
	}

	values := make([]chart.Value, histogramBins)
	for i, count := range bins {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%.3g", lo+width*(float64(i)+0.5)),
			Value: float64(count),
		}
	}

	cv.showChart(&chart.BarChart{
		Title:    "Distribution of " + col,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 24,
		Bars:     values,
	})
}

func (cv *ChartView) renderScatter(v *geodata.View) {
	xCol, yCol := cv.xSelect.Selected, cv.ySelect.Selected
	if xCol == "" || yCol == "" {
		cv.showUnavailable("scatter plots need two numeric columns")
		return
	}

	var xs, ys []float64
	for i := 0; i < v.Len(); i++ {
		x, okX := v.Number(xCol, i)
		y, okY := v.Number(yCol, i)
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		cv.showMessage("Not enough rows with both values present")
		return
	}

	cv.showChart(&chart.Chart{
		Title:  fmt.Sprintf("%s vs %s", yCol, xCol),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: xCol},
		YAxis:  chart.YAxis{Name: yCol},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    chart.ColorBlue,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	})
}

func (cv *ChartView) renderLine(v *geodata.View) {
	xCol, yCol := cv.xSelect.Selected, cv.ySelect.Selected
	if xCol == "" || yCol == "" {
		cv.showUnavailable("line charts need an X column and a numeric Y column")
		return
	}

	xColumn, err := v.Source().Column(xCol)
	if err != nil {
		cv.showMessage("Column not found: " + xCol)
		return
	}

	type pair struct{ x, y float64 }
	var pairs []pair
	for i := 0; i < v.Len(); i++ {
		y, ok := v.Number(yCol, i)
		if !ok {
			continue
		}
		var x float64
		if xColumn.Kind == geodata.KindDatetime {
			ts, present := v.Time(xCol, i)
			if !present {
				continue
			}
			x = float64(ts.Unix())
		} else {
			val, present := v.Number(xCol, i)
			if !present {
				continue
			}
			x = val
		}
		pairs = append(pairs, pair{x, y})
	}
	if len(pairs) < 2 {
		cv.showMessage("Not enough rows with both values present")
		return
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].x < pairs[j].x })

	xs := make([]float64, len(pairs))
	ys := make([]float64, len(pairs))
	for i, p := range pairs {
		xs[i] = p.x
		ys[i] = p.y
	}

	cv.showChart(&chart.Chart{
		Title:  fmt.Sprintf("%s over %s", yCol, xCol),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: xCol},
		YAxis:  chart.YAxis{Name: yCol},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
				XValues: xs,
				YValues: ys,
			},
		},
	})
}

func (cv *ChartView) renderPie(v *geodata.View) {
	col := cv.xSelect.Selected
	if col == "" {
		cv.showUnavailable("pie charts need a categorical column")
		return
	}

	counts := map[string]int{}
	var order []string
	for i := 0; i < v.Len(); i++ {
		cat, ok := v.Text(col, i)
		if !ok {
			continue
		}
		if _, seen := counts[cat]; !seen {
			order = append(order, cat)
		}
		counts[cat]++
	}
	if len(order) == 0 {
		cv.showMessage("No values present in " + col)
		return
	}

	// Largest slices first, the rest merged into Other.
	sort.Slice(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	values := make([]chart.Value, 0, maxPieSlices+1)
	other := 0
	for i, cat := range order {
		if i < maxPieSlices {
			values = append(values, chart.Value{Label: cat, Value: float64(counts[cat])})
		} else {
			other += counts[cat]
		}
	}
	if other > 0 {
		values = append(values, chart.Value{Label: "Other", Value: float64(other)})
	}

	cv.showChart(&chart.PieChart{
		Title:  "Share of " + col,
		Width:  chartHeight, // pies render square
		Height: chartHeight,
		Values: values,
	})
}

// Content returns the tab's root canvas object.
func (cv *ChartView) Content() fyne.CanvasObject { return cv.root }

func meanStddev(vals []float64) (float64, float64) {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var sq float64
	for _, v := range vals {
		sq += (v - mean) * (v - mean)
	}
	if len(vals) < 2 {
		return mean, 0
	}
	return mean, math.Sqrt(sq / float64(len(vals)-1))
}

func minMax(vals []float64) (float64, float64) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
