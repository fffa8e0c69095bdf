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
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	when := []time.Time{time.Now(), time.Now()}
	ds, err := NewDataset("mixed", []Column{
		NewNumericColumn("value", []float64{1, 2}),
		NewCategoricalColumn("label", []string{"a", "b"}),
		NewDatetimeColumn("seen", when, nil),
		NewNumericColumn("score", []float64{3, 4}),
	})
	require.NoError(t, err)

	c := Classify(ds)
	assert.Equal(t, []string{"value", "score"}, c.Numeric)
	assert.Equal(t, []string{"label"}, c.Categorical)
	assert.Equal(t, []string{"seen"}, c.Datetime)
	assert.True(t, c.HasNumeric())
	assert.True(t, c.HasCategorical())
}

func TestClassifyExcludesGeometry(t *testing.T) {
	ds, err := NewDataset("geo", []Column{
		NewCategoricalColumn("name", []string{"a", "b"}),
	})
	require.NoError(t, err)
	require.NoError(t, ds.SetGeometry("geometry", []orb.Geometry{
		orb.Point{10, 59}, orb.Point{5, 60},
	}))

	c := Classify(ds)
	assert.Equal(t, []string{"name"}, c.Categorical)
	assert.Empty(t, c.Numeric)
	assert.Empty(t, c.Datetime)
}

func TestClassifyNilAndEmpty(t *testing.T) {
	c := Classify(nil)
	assert.False(t, c.HasNumeric())
	assert.False(t, c.HasCategorical())

	ds, err := NewDataset("empty", nil)
	require.NoError(t, err)
	c = Classify(ds)
	assert.Empty(t, c.Numeric)
	assert.Empty(t, c.Categorical)
}

func TestDistinctValues(t *testing.T) {
	ds, err := NewDataset("d", []Column{
		NewCategoricalColumn("region", []string{"west", "east", "west", "mid", "east"}),
		NewNumericColumn("value", []float64{1, 2, 3, 4, 5}),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"west", "east", "mid"}, DistinctValues(ds, "region"))
	assert.Nil(t, DistinctValues(ds, "value"))
	assert.Nil(t, DistinctValues(ds, "missing"))
}

func TestDistinctValuesSkipsMissing(t *testing.T) {
	ds, err := NewDataset("d", []Column{
		NewCategoricalColumnWithMask("tag",
			[]string{"a", "", "b", "a"},
			[]bool{true, false, true, true}),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, DistinctValues(ds, "tag"))
}
