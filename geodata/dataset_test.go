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
	"math"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatasetRowCountMismatch(t *testing.T) {
	_, err := NewDataset("bad", []Column{
		NewNumericColumn("a", []float64{1, 2, 3}),
		NewCategoricalColumn("b", []string{"x"}),
	})
	assert.ErrorIs(t, err, ErrRowCountMismatch)
}

func TestColumnLookup(t *testing.T) {
	ds := testDataset(t)

	col, err := ds.Column("population")
	require.NoError(t, err)
	assert.Equal(t, KindNumeric, col.Kind)

	_, err = ds.Column("nope")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestColumnMissingValues(t *testing.T) {
	col := NewNumericColumn("v", []float64{1.5, math.NaN()})

	v, ok := col.Number(0)
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	_, ok = col.Number(1)
	assert.False(t, ok)
	assert.Equal(t, "", col.Cell(1))
	assert.Equal(t, "1.5", col.Cell(0))
}

func TestDatetimeCell(t *testing.T) {
	when := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	col := NewDatetimeColumn("seen", []time.Time{when, {}}, []bool{true, false})

	assert.Equal(t, "2024-03-15T12:00:00Z", col.Cell(0))
	assert.Equal(t, "", col.Cell(1))
}

func TestSetGeometry(t *testing.T) {
	ds, err := NewDataset("g", []Column{
		NewCategoricalColumn("name", []string{"a", "b"}),
	})
	require.NoError(t, err)

	require.NoError(t, ds.SetGeometry("geometry", []orb.Geometry{
		orb.Point{1, 2}, nil,
	}))
	assert.True(t, ds.HasGeometry())
	assert.Equal(t, GeometryPoint, ds.GeometryKind())
	assert.Equal(t, "geometry", ds.GeometryName())
	assert.Nil(t, ds.GeometryAt(1))

	err = ds.SetGeometry("again", []orb.Geometry{orb.Point{0, 0}, orb.Point{1, 1}})
	assert.ErrorIs(t, err, ErrGeometryPresent)
}

func TestSetGeometryRejectsMixedKinds(t *testing.T) {
	ds, err := NewDataset("g", []Column{
		NewCategoricalColumn("name", []string{"a", "b"}),
	})
	require.NoError(t, err)

	err = ds.SetGeometry("geometry", []orb.Geometry{
		orb.Point{1, 2},
		orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
	})
	assert.ErrorIs(t, err, ErrGeometryMixed)
}

func TestAddColumn(t *testing.T) {
	ds := testDataset(t)

	require.NoError(t, ds.AddColumn(NewNumericColumn("extra", []float64{1, 2, 3, 4, 5})))
	assert.Equal(t, []string{"name", "population", "region", "extra"}, ds.ColumnNames())

	err := ds.AddColumn(NewNumericColumn("short", []float64{1}))
	assert.ErrorIs(t, err, ErrRowCountMismatch)
}

func TestViewMaterialize(t *testing.T) {
	ds := testDataset(t)
	require.NoError(t, ds.SetGeometry("geometry", []orb.Geometry{
		orb.Point{10.7, 59.9}, orb.Point{5.3, 60.4}, orb.Point{10.4, 63.4},
		orb.Point{5.7, 58.9}, orb.Point{10.7, 59.9},
	}))

	v := Apply(ds, FilterSpec{"region": OneOf("west")})
	out, err := v.Materialize()
	require.NoError(t, err)

	assert.Equal(t, 2, out.Rows())
	assert.Equal(t, ds.ColumnNames(), out.ColumnNames())
	assert.Equal(t, "Bergen", out.Columns()[0].Cell(0))
	assert.True(t, out.HasGeometry())
	assert.Equal(t, orb.Point{5.3, 60.4}, out.GeometryAt(0))

	// Missing values survive the copy.
	pop, err := out.Column("population")
	require.NoError(t, err)
	_, ok := pop.Number(1)
	assert.False(t, ok)
}
