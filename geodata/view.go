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

package geodata

import (
	"time"

	"github.com/paulmach/orb"
)

// View is a read-only, filtered projection of a dataset. It holds row
// indices into the parent rather than copied data, and is recomputed
// whenever the filter set or the dataset changes.
type View struct {
	ds  *Dataset
	idx []int
}

// FullView returns a view over every row of the dataset.
func FullView(ds *Dataset) *View {
	idx := make([]int, ds.Rows())
	for i := range idx {
		idx[i] = i
	}
	return &View{ds: ds, idx: idx}
}

func newSubView(ds *Dataset, indices []int) *View {
	return &View{ds: ds, idx: indices}
}

// Len returns the number of visible rows.
func (v *View) Len() int { return len(v.idx) }

// Source returns the parent dataset.
func (v *View) Source() *Dataset { return v.ds }

// RowIndices returns a copy of the visible row indices into the parent.
func (v *View) RowIndices() []int {
	out := make([]int, len(v.idx))
	copy(out, v.idx)
	return out
}

func (v *View) parentRow(i int) (int, bool) {
	if i < 0 || i >= len(v.idx) {
		return 0, false
	}
	return v.idx[i], true
}

// Number returns the numeric value of the named column at visible row i.
func (v *View) Number(col string, i int) (float64, bool) {
	row, ok := v.parentRow(i)
	if !ok {
		return 0, false
	}
	c, err := v.ds.Column(col)
	if err != nil {
		return 0, false
	}
	return c.Number(row)
}

// Text returns the categorical value of the named column at visible row i.
func (v *View) Text(col string, i int) (string, bool) {
	row, ok := v.parentRow(i)
	if !ok {
		return "", false
	}
	c, err := v.ds.Column(col)
	if err != nil {
		return "", false
	}
	return c.Text(row)
}

// Time returns the datetime value of the named column at visible row i.
func (v *View) Time(col string, i int) (time.Time, bool) {
	row, ok := v.parentRow(i)
	if !ok {
		return time.Time{}, false
	}
	c, err := v.ds.Column(col)
	if err != nil {
		return time.Time{}, false
	}
	return c.Time(row)
}

// Cell returns the display string of the named column at visible row i.
func (v *View) Cell(col string, i int) string {
	row, ok := v.parentRow(i)
	if !ok {
		return ""
	}
	c, err := v.ds.Column(col)
	if err != nil {
		return ""
	}
	return c.Cell(row)
}

// GeometryAt returns the geometry at visible row i, nil when absent.
func (v *View) GeometryAt(i int) orb.Geometry {
	row, ok := v.parentRow(i)
	if !ok {
		return nil
	}
	return v.ds.GeometryAt(row)
}

// Numbers collects the present numeric values of a column across the view.
func (v *View) Numbers(col string) []float64 {
	out := make([]float64, 0, len(v.idx))
	for i := range v.idx {
		if val, ok := v.Number(col, i); ok {
			out = append(out, val)
		}
	}
	return out
}

// Materialize copies the visible rows into a standalone dataset, used by
// the export paths.
func (v *View) Materialize() (*Dataset, error) {
	cols := make([]Column, 0, len(v.ds.cols))
	for _, src := range v.ds.cols {
		switch src.Kind {
		case KindNumeric:
			vals := make([]float64, len(v.idx))
			for i, row := range v.idx {
				vals[i] = src.nums[row]
			}
			cols = append(cols, NewNumericColumn(src.Name, vals))
		case KindCategorical:
			vals := make([]string, len(v.idx))
			valid := make([]bool, len(v.idx))
			for i, row := range v.idx {
				vals[i] = src.strs[row]
				valid[i] = src.valid == nil || src.valid[row]
			}
			cols = append(cols, NewCategoricalColumnWithMask(src.Name, vals, valid))
		case KindDatetime:
			vals := make([]time.Time, len(v.idx))
			valid := make([]bool, len(v.idx))
			for i, row := range v.idx {
				vals[i] = src.times[row]
				valid[i] = src.valid == nil || src.valid[row]
			}
			cols = append(cols, NewDatetimeColumn(src.Name, vals, valid))
		}
	}
	out, err := NewDataset(v.ds.Name, cols)
	if err != nil {
		return nil, err
	}
	if v.ds.HasGeometry() {
		geoms := make([]orb.Geometry, len(v.idx))
		for i, row := range v.idx {
			geoms[i] = v.ds.GeometryAt(row)
		}
		if err := out.SetGeometry(v.ds.GeometryName(), geoms); err != nil {
			return nil, err
		}
	}
	return out, nil
}
