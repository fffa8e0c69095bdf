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
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/paulmach/orb"
)

// Column is a named, typed column. Exactly one of the value slices is
// populated, matching Kind. Missing numeric values are NaN; missing
// categorical and datetime values are tracked with the valid mask.
type Column struct {
	Name string
	Kind ColumnKind

	nums  []float64
	strs  []string
	times []time.Time
	valid []bool
}

// NewNumericColumn creates a numeric column. NaN marks missing values.
func NewNumericColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: KindNumeric, nums: values}
}

// NewCategoricalColumn creates a categorical column with every value present.
func NewCategoricalColumn(name string, values []string) Column {
	return Column{Name: name, Kind: KindCategorical, strs: values}
}

// NewCategoricalColumnWithMask creates a categorical column with a
// presence mask. valid[i] == false marks row i as missing.
func NewCategoricalColumnWithMask(name string, values []string, valid []bool) Column {
	return Column{Name: name, Kind: KindCategorical, strs: values, valid: valid}
}

// NewDatetimeColumn creates a datetime column with a presence mask.
// A nil mask means every value is present.
func NewDatetimeColumn(name string, values []time.Time, valid []bool) Column {
	return Column{Name: name, Kind: KindDatetime, times: values, valid: valid}
}

// Len returns the row count of the column.
func (c *Column) Len() int {
	switch c.Kind {
	case KindNumeric:
		return len(c.nums)
	case KindCategorical:
		return len(c.strs)
	case KindDatetime:
		return len(c.times)
	default:
		return 0
	}
}

// Number returns the numeric value at row i. ok is false when the column
// is not numeric or the value is missing.
func (c *Column) Number(i int) (float64, bool) {
	if c.Kind != KindNumeric || i < 0 || i >= len(c.nums) {
		return 0, false
	}
	v := c.nums[i]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Text returns the categorical value at row i.
func (c *Column) Text(i int) (string, bool) {
	if c.Kind != KindCategorical || i < 0 || i >= len(c.strs) {
		return "", false
	}
	if c.valid != nil && !c.valid[i] {
		return "", false
	}
	return c.strs[i], true
}

// Time returns the datetime value at row i.
func (c *Column) Time(i int) (time.Time, bool) {
	if c.Kind != KindDatetime || i < 0 || i >= len(c.times) {
		return time.Time{}, false
	}
	if c.valid != nil && !c.valid[i] {
		return time.Time{}, false
	}
	return c.times[i], true
}

// Cell returns the display string for row i, empty for missing values.
func (c *Column) Cell(i int) string {
	switch c.Kind {
	case KindNumeric:
		v, ok := c.Number(i)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case KindCategorical:
		v, _ := c.Text(i)
		return v
	case KindDatetime:
		v, ok := c.Time(i)
		if !ok {
			return ""
		}
		return v.Format(time.RFC3339)
	default:
		return ""
	}
}

// Dataset is an ordered collection of equal-length columns with an
// optional geometry column. Datasets are immutable once built except
// for AddColumn, which appends a derived column of matching length.
type Dataset struct {
	Name string

	cols     []Column
	geoms    []orb.Geometry
	geomName string
	geomKind GeometryKind
	rows     int
}

// NewDataset builds a dataset from columns, enforcing equal row counts.
func NewDataset(name string, cols []Column) (*Dataset, error) {
	ds := &Dataset{Name: name}
	for i := range cols {
		if i == 0 {
			ds.rows = cols[i].Len()
		} else if cols[i].Len() != ds.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				ErrRowCountMismatch, cols[i].Name, cols[i].Len(), ds.rows)
		}
	}
	ds.cols = cols
	return ds, nil
}

// SetGeometry attaches the geometry column. Geometries may contain nil
// entries but must not mix points with shapes.
func (d *Dataset) SetGeometry(name string, geoms []orb.Geometry) error {
	if d.geomKind != GeometryNone {
		return ErrGeometryPresent
	}
	if len(d.cols) > 0 && len(geoms) != d.rows {
		return fmt.Errorf("%w: geometry has %d rows, want %d",
			ErrRowCountMismatch, len(geoms), d.rows)
	}
	kind := GeometryNone
	for _, g := range geoms {
		if g == nil {
			continue
		}
		gk := geometryKindOf(g)
		if kind == GeometryNone {
			kind = gk
		} else if gk != kind {
			return ErrGeometryMixed
		}
	}
	d.geomName = name
	d.geoms = geoms
	d.geomKind = kind
	if len(d.cols) == 0 {
		d.rows = len(geoms)
	}
	return nil
}

func geometryKindOf(g orb.Geometry) GeometryKind {
	switch g.(type) {
	case orb.Point, orb.MultiPoint:
		return GeometryPoint
	default:
		return GeometryShape
	}
}

// AddColumn appends a column, typically a derived one.
func (d *Dataset) AddColumn(c Column) error {
	if c.Len() != d.rows {
		return fmt.Errorf("%w: column %q has %d rows, want %d",
			ErrRowCountMismatch, c.Name, c.Len(), d.rows)
	}
	d.cols = append(d.cols, c)
	return nil
}

// Rows returns the row count.
func (d *Dataset) Rows() int { return d.rows }

// Columns returns the non-geometry columns in order.
func (d *Dataset) Columns() []Column { return d.cols }

// ColumnNames returns the non-geometry column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.cols))
	for i := range d.cols {
		names[i] = d.cols[i].Name
	}
	return names
}

// Column returns the named column, or ErrColumnNotFound.
func (d *Dataset) Column(name string) (*Column, error) {
	for i := range d.cols {
		if d.cols[i].Name == name {
			return &d.cols[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// HasGeometry reports whether the dataset carries geometry.
func (d *Dataset) HasGeometry() bool { return d.geomKind != GeometryNone }

// GeometryKind returns the kind of geometry the dataset carries.
func (d *Dataset) GeometryKind() GeometryKind { return d.geomKind }

// GeometryName returns the geometry column name, empty when absent.
func (d *Dataset) GeometryName() string { return d.geomName }

// GeometryAt returns the geometry for row i, nil when absent.
func (d *Dataset) GeometryAt(i int) orb.Geometry {
	if i < 0 || i >= len(d.geoms) {
		return nil
	}
	return d.geoms[i]
}
