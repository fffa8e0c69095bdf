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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := NewDataset("cities", []Column{
		NewCategoricalColumn("name", []string{"Oslo", "Bergen", "Trondheim", "Stavanger", "Oslo"}),
		NewNumericColumn("population", []float64{700000, 290000, 210000, math.NaN(), 700000}),
		NewCategoricalColumn("region", []string{"east", "west", "mid", "west", "east"}),
	})
	require.NoError(t, err)
	return ds
}

func TestApplyNoFilters(t *testing.T) {
	ds := testDataset(t)

	v := Apply(ds, nil)
	require.NotNil(t, v)
	assert.Equal(t, 5, v.Len())

	v = Apply(ds, FilterSpec{})
	assert.Equal(t, 5, v.Len())
}

func TestApplyNilDataset(t *testing.T) {
	assert.Nil(t, Apply(nil, FilterSpec{"x": Range(0, 1)}))
}

func TestApplyRange(t *testing.T) {
	ds := testDataset(t)

	v := Apply(ds, FilterSpec{"population": Range(210000, 290000)})
	require.Equal(t, 2, v.Len())
	assert.Equal(t, "Bergen", v.Cell("name", 0))
	assert.Equal(t, "Trondheim", v.Cell("name", 1))
}

func TestApplyRangeBoundsInclusive(t *testing.T) {
	ds := testDataset(t)

	// Exact bounds must keep the boundary rows.
	v := Apply(ds, FilterSpec{"population": Range(700000, 700000)})
	assert.Equal(t, 2, v.Len())
}

func TestApplyRangeExcludesMissing(t *testing.T) {
	ds := testDataset(t)

	// Stavanger has a missing population and must never pass a range
	// filter, even one spanning the full column.
	v := Apply(ds, FilterSpec{"population": Range(math.Inf(-1), math.Inf(1))})
	require.Equal(t, 4, v.Len())
	for i := 0; i < v.Len(); i++ {
		assert.NotEqual(t, "Stavanger", v.Cell("name", i))
	}
}

func TestApplyMembership(t *testing.T) {
	ds := testDataset(t)

	v := Apply(ds, FilterSpec{"region": OneOf("west")})
	require.Equal(t, 2, v.Len())
	assert.Equal(t, "Bergen", v.Cell("name", 0))
	assert.Equal(t, "Stavanger", v.Cell("name", 1))
}

func TestApplyMembershipEmptySet(t *testing.T) {
	ds := testDataset(t)

	v := Apply(ds, FilterSpec{"region": OneOf()})
	assert.Equal(t, 0, v.Len())
}

func TestApplyTokens(t *testing.T) {
	ds := testDataset(t)

	v := Apply(ds, FilterSpec{"name": Tokens(" Oslo , Bergen ,, ")})
	assert.Equal(t, 3, v.Len())
}

func TestApplyTokensEmptyInput(t *testing.T) {
	ds := testDataset(t)

	// Whitespace-only input yields no tokens, which matches nothing.
	v := Apply(ds, FilterSpec{"name": Tokens("  ,  ")})
	assert.Equal(t, 0, v.Len())
}

func TestApplyConjunction(t *testing.T) {
	ds := testDataset(t)

	v := Apply(ds, FilterSpec{
		"region":     OneOf("east", "west"),
		"population": Range(0, 300000),
	})
	require.Equal(t, 1, v.Len())
	assert.Equal(t, "Bergen", v.Cell("name", 0))
}

func TestApplySkipsUnknownColumns(t *testing.T) {
	ds := testDataset(t)

	// A filter built against another schema must not error or narrow.
	v := Apply(ds, FilterSpec{
		"altitude": Range(0, 100),
		"country":  OneOf("NO"),
	})
	assert.Equal(t, 5, v.Len())
}

func TestApplyKnownAndUnknownMixed(t *testing.T) {
	ds := testDataset(t)

	v := Apply(ds, FilterSpec{
		"altitude": Range(0, 100),
		"region":   OneOf("mid"),
	})
	require.Equal(t, 1, v.Len())
	assert.Equal(t, "Trondheim", v.Cell("name", 0))
}

func TestApplyEmptyDataset(t *testing.T) {
	ds, err := NewDataset("empty", nil)
	require.NoError(t, err)

	v := Apply(ds, FilterSpec{"region": OneOf("west")})
	require.NotNil(t, v)
	assert.Equal(t, 0, v.Len())
}

func TestApplyPreservesOrder(t *testing.T) {
	ds := testDataset(t)

	v := Apply(ds, FilterSpec{"region": OneOf("east", "mid")})
	assert.Equal(t, []int{0, 2, 4}, v.RowIndices())
}

func TestPredicateString(t *testing.T) {
	assert.Equal(t, "10 to 20.5", Range(10, 20.5).String())
	assert.Equal(t, "a, b", OneOf("a", "b").String())
	assert.Equal(t, "x, y", Tokens("x, y").String())
}
