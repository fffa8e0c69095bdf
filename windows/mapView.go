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
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"geodash/geodata"
)

const (
	mapWidth  = 900
	mapHeight = 520
)

// MapView renders the filtered view's geometry, colored by a selectable
// numeric column, with a metrics strip below the map.
type MapView struct {
	main *MainWindow

	root        *fyne.Container
	colorSelect *widget.Select
	colorColumn string
	mapImage    *canvas.Image
	metrics     *widget.Label
	placeholder *widget.Label
}

func NewMapView(t *MainWindow) *MapView {
	mv := &MapView{main: t}

	mv.colorSelect = widget.NewSelect(nil, func(selected string) {
		mv.colorColumn = selected
		mv.render()
	})
	mv.colorSelect.PlaceHolder = "Color by column..."

	mv.mapImage = canvas.NewImageFromImage(nil)
	mv.mapImage.FillMode = canvas.ImageFillContain
	mv.mapImage.SetMinSize(fyne.NewSize(mapWidth/2, mapHeight/2))

	mv.metrics = widget.NewLabel("")
	mv.placeholder = widget.NewLabel("Load a dataset with geometry to see the map")
	mv.placeholder.Alignment = fyne.TextAlignCenter

	controls := container.NewBorder(nil, nil, widget.NewLabel("Color by:"), nil, mv.colorSelect)
	mv.root = container.NewBorder(controls, mv.metrics, nil, nil,
		container.NewStack(mv.placeholder, mv.mapImage))
	return mv
}

// Update rebuilds the column choices and re-renders the map.
func (mv *MapView) Update() {
	v := mv.main.View()
	if v == nil || !v.Source().HasGeometry() {
		mv.mapImage.Image = nil
		mv.mapImage.Hide()
		mv.placeholder.Show()
		mv.metrics.SetText("")
		mv.root.Refresh()
		return
	}

	classes := geodata.Classify(v.Source())
	mv.colorSelect.Options = classes.Numeric
	if !contains(classes.Numeric, mv.colorColumn) {
		mv.colorColumn = ""
		if len(classes.Numeric) > 0 {
			mv.colorColumn = classes.Numeric[0]
		}
		mv.colorSelect.SetSelected(mv.colorColumn)
	}
	mv.render()
}

func (mv *MapView) render() {
	v := mv.main.View()
	if v == nil || !v.Source().HasGeometry() {
		return
	}

	mv.placeholder.Hide()
	mv.mapImage.Show()
	mv.mapImage.Image = renderMap(v, mv.colorColumn, mapWidth, mapHeight)
	mv.mapImage.Refresh()
	mv.metrics.SetText(mv.metricsText(v))
}

func (mv *MapView) metricsText(v *geodata.View) string {
	drawn := 0
	for i := 0; i < v.Len(); i++ {
		if v.GeometryAt(i) != nil {
			drawn++
		}
	}
	text := fmt.Sprintf("%d features (%s)", drawn, v.Source().GeometryKind())

	if mv.colorColumn != "" {
		vals := v.Numbers(mv.colorColumn)
		if len(vals) > 0 {
			sum, hi := 0.0, math.Inf(-1)
			for _, val := range vals {
				sum += val
				hi = math.Max(hi, val)
			}
			text += fmt.Sprintf(" | %s: mean %g, max %g",
				mv.colorColumn, sum/float64(len(vals)), hi)
		}
	}
	if bound, ok := viewBounds(v); ok {
		text += fmt.Sprintf(" | extent: %.2f,%.2f to %.2f,%.2f",
			bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1])
	}
	return text
}

// Content returns the tab's root canvas object.
func (mv *MapView) Content() fyne.CanvasObject { return mv.root }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
