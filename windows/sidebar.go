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
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"geodash/geodata"
)

// checkGroupThreshold is the cutoff for categorical filter controls: up
// to this many distinct values get a checkbox group, more get a
// comma-separated text entry.
const checkGroupThreshold = 10

// rangeControl filters a numeric column with a pair of bound sliders.
type rangeControl struct {
	column   string
	lo, hi   *widget.Slider
	loLabel  *widget.Label
	hiLabel  *widget.Label
	min, max float64
}

func newRangeControl(column string, min, max float64) *rangeControl {
	rc := &rangeControl{column: column, min: min, max: max}
	step := (max - min) / 100
	if step <= 0 {
		step = 1
	}

	rc.lo = widget.NewSlider(min, max)
	rc.lo.Step = step
	rc.lo.Value = min
	rc.hi = widget.NewSlider(min, max)
	rc.hi.Step = step
	rc.hi.Value = max

	rc.loLabel = widget.NewLabel(formatBound(min))
	rc.hiLabel = widget.NewLabel(formatBound(max))

	rc.lo.OnChanged = func(v float64) {
		if v > rc.hi.Value {
			rc.hi.SetValue(v)
		}
		rc.loLabel.SetText(formatBound(v))
	}
	rc.hi.OnChanged = func(v float64) {
		if v < rc.lo.Value {
			rc.lo.SetValue(v)
		}
		rc.hiLabel.SetText(formatBound(v))
	}
	return rc
}

func (rc *rangeControl) content() fyne.CanvasObject {
	return container.NewVBox(
		widget.NewLabelWithStyle(rc.column, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Min"), rc.loLabel, rc.lo),
		container.NewBorder(nil, nil, widget.NewLabel("Max"), rc.hiLabel, rc.hi),
	)
}

// predicate returns the control's filter and whether it narrows at all.
// Sliders sitting at the column bounds are no filter; a full-range
// predicate would still drop rows with a missing value.
func (rc *rangeControl) predicate() (geodata.Predicate, bool) {
	if rc.lo.Value <= rc.min && rc.hi.Value >= rc.max {
		return geodata.Predicate{}, false
	}
	return geodata.Range(rc.lo.Value, rc.hi.Value), true
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// categoryControl filters a categorical column, either with a checkbox
// group over the distinct values or a free-text token entry.
type categoryControl struct {
	column   string
	distinct []string
	checks   *widget.CheckGroup
	entry    *widget.Entry
}

func newCategoryControl(column string, distinct []string) *categoryControl {
	cc := &categoryControl{column: column, distinct: distinct}
	if len(distinct) <= checkGroupThreshold {
		cc.checks = widget.NewCheckGroup(distinct, nil)
		cc.checks.SetSelected(distinct) // everything visible until narrowed
	} else {
		cc.entry = widget.NewEntry()
		cc.entry.SetPlaceHolder("values, comma separated")
	}
	return cc
}

func (cc *categoryControl) content() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(cc.column, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	if cc.checks != nil {
		return container.NewVBox(title, cc.checks)
	}
	return container.NewVBox(title, cc.entry)
}

// predicate returns the control's filter and whether it narrows at all.
// A check group with everything still selected is no filter; a full-set
// membership predicate would still drop rows with a missing value.
func (cc *categoryControl) predicate() (geodata.Predicate, bool) {
	if cc.checks != nil {
		if selectionCoversAll(cc.checks.Selected, cc.distinct) {
			return geodata.Predicate{}, false
		}
		return geodata.OneOf(cc.checks.Selected...), true
	}
	if cc.entry.Text == "" {
		return geodata.Predicate{}, false
	}
	return geodata.Tokens(cc.entry.Text), true
}

func selectionCoversAll(selected, distinct []string) bool {
	if len(selected) != len(distinct) {
		return false
	}
	have := make(map[string]bool, len(selected))
	for _, s := range selected {
		have[s] = true
	}
	for _, d := range distinct {
		if !have[d] {
			return false
		}
	}
	return true
}

// Sidebar holds dataset selection and the filter controls. The filter
// set is rebuilt whenever a new dataset is installed.
type Sidebar struct {
	main *MainWindow

	root       *fyne.Container
	filterBox  *fyne.Container
	summary    *widget.Label
	ranges     []*rangeControl
	categories []*categoryControl
}

func NewSidebar(t *MainWindow) *Sidebar {
	s := &Sidebar{main: t}

	samples := geodata.SampleDatasets()
	names := make([]string, len(samples))
	for i, smp := range samples {
		names[i] = smp.Name
	}
	sampleSelect := widget.NewSelect(names, func(selected string) {
		for _, smp := range samples {
			if smp.Name == selected {
				url := smp.URL
				t.LoadDataset(smp.Name, func() (*geodata.Dataset, error) {
					return t.loader.LoadURL(url)
				})
				return
			}
		}
	})
	sampleSelect.PlaceHolder = "Sample dataset..."

	openButton := widget.NewButton("Open File...", func() {
		t.OpenDataset()
	})

	computeButton := widget.NewButton("Computed Column...", func() {
		showComputeDialog(t)
	})

	s.summary = widget.NewLabel("No filters applied")
	s.summary.Wrapping = fyne.TextWrapWord

	s.filterBox = container.NewVBox(widget.NewLabel("Load a dataset to filter it"))

	applyButton := widget.NewButton("Apply Filters", func() {
		spec := s.BuildSpec()
		s.main.ApplyFilters(spec)
		s.updateSummary(spec)
	})
	applyButton.Importance = widget.HighImportance
	resetButton := widget.NewButton("Reset", func() {
		s.rebuildFilters()
		s.main.ApplyFilters(geodata.FilterSpec{})
		s.updateSummary(nil)
	})

	box := container.NewVBox(
		widget.NewLabelWithStyle("Dataset", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sampleSelect,
		openButton,
		computeButton,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Filters", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		s.filterBox,
		container.NewGridWithColumns(2, applyButton, resetButton),
		widget.NewSeparator(),
		s.summary,
	)

	scroll := container.NewVScroll(box)
	s.root = container.NewGridWrap(fyne.NewSize(260, 700), scroll)
	return s
}

// SetDataset rebuilds the filter controls for a new dataset.
func (s *Sidebar) SetDataset(ds *geodata.Dataset) {
	s.rebuildFilters()
	s.updateSummary(nil)
}

func (s *Sidebar) rebuildFilters() {
	s.ranges = nil
	s.categories = nil
	s.filterBox.Objects = nil

	ds := s.main.Dataset()
	if ds == nil || ds.Rows() == 0 {
		s.filterBox.Objects = []fyne.CanvasObject{widget.NewLabel("Load a dataset to filter it")}
		s.filterBox.Refresh()
		return
	}

	classes := geodata.Classify(ds)
	limit := s.main.cfg.MaxFilterColumns

	for i, name := range classes.Numeric {
		if i >= limit {
			break
		}
		lo, hi := columnBounds(ds, name)
		if math.IsInf(lo, 1) {
			continue // column holds no present values
		}
		rc := newRangeControl(name, lo, hi)
		s.ranges = append(s.ranges, rc)
		s.filterBox.Add(rc.content())
	}

	for i, name := range classes.Categorical {
		if i >= limit {
			break
		}
		cc := newCategoryControl(name, geodata.DistinctValues(ds, name))
		s.categories = append(s.categories, cc)
		s.filterBox.Add(cc.content())
	}

	if len(s.filterBox.Objects) == 0 {
		s.filterBox.Objects = []fyne.CanvasObject{widget.NewLabel("No filterable columns")}
	}
	s.filterBox.Refresh()
}

// BuildSpec collects the current control state into a filter spec.
func (s *Sidebar) BuildSpec() geodata.FilterSpec {
	spec := geodata.FilterSpec{}
	for _, rc := range s.ranges {
		if pred, ok := rc.predicate(); ok {
			spec[rc.column] = pred
		}
	}
	for _, cc := range s.categories {
		if pred, ok := cc.predicate(); ok {
			spec[cc.column] = pred
		}
	}
	return spec
}

func (s *Sidebar) updateSummary(spec geodata.FilterSpec) {
	if len(spec) == 0 {
		s.summary.SetText("No filters applied")
		return
	}
	text := "Applied filters:"
	for col, pred := range spec {
		text += fmt.Sprintf("\n%s: %s", col, pred.String())
	}
	s.summary.SetText(text)
}

func columnBounds(ds *geodata.Dataset, name string) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	col, err := ds.Column(name)
	if err != nil {
		return lo, hi
	}
	for i := 0; i < col.Len(); i++ {
		if v, ok := col.Number(i); ok {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// Content returns the sidebar's root canvas object.
func (s *Sidebar) Content() fyne.CanvasObject { return s.root }

func (s *Sidebar) Visible() bool { return s.root.Visible() }
func (s *Sidebar) Show()         { s.root.Show() }
func (s *Sidebar) Hide()         { s.root.Hide() }
