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
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"geodash/geodata"
)

func TestMain(m *testing.M) {
	test.NewApp()
	m.Run()
}

func TestRangeControlAtBoundsIsNoFilter(t *testing.T) {
	rc := newRangeControl("population", 100, 900)

	// Untouched sliders must not produce a predicate; a full-range
	// filter would still exclude rows with a missing value.
	_, ok := rc.predicate()
	assert.False(t, ok)
}

func TestRangeControlNarrowed(t *testing.T) {
	rc := newRangeControl("population", 100, 900)
	rc.lo.Value = 250
	rc.hi.Value = 600

	pred, ok := rc.predicate()
	assert.True(t, ok)
	assert.Equal(t, geodata.PredicateRange, pred.Kind)
	assert.Equal(t, 250.0, pred.Lo)
	assert.Equal(t, 600.0, pred.Hi)

	// Narrowing only one end still counts.
	rc.lo.Value = 100
	_, ok = rc.predicate()
	assert.True(t, ok)
}

func TestCategoryControlFullSelectionIsNoFilter(t *testing.T) {
	cc := newCategoryControl("region", []string{"east", "west", "mid"})

	// Check groups start with everything selected.
	_, ok := cc.predicate()
	assert.False(t, ok)
}

func TestCategoryControlSubsetSelection(t *testing.T) {
	cc := newCategoryControl("region", []string{"east", "west", "mid"})
	cc.checks.Selected = []string{"west"}

	pred, ok := cc.predicate()
	assert.True(t, ok)
	assert.Equal(t, geodata.PredicateMembership, pred.Kind)
	assert.Equal(t, []string{"west"}, pred.Values)
}

func TestCategoryControlEmptySelectionMatchesNothing(t *testing.T) {
	cc := newCategoryControl("region", []string{"east", "west"})
	cc.checks.Selected = nil

	// Deselecting everything is an explicit "match nothing", not the
	// absence of a filter.
	pred, ok := cc.predicate()
	assert.True(t, ok)
	assert.Equal(t, geodata.PredicateMembership, pred.Kind)
	assert.Empty(t, pred.Values)
}

func TestCategoryControlTokenEntry(t *testing.T) {
	many := make([]string, checkGroupThreshold+1)
	for i := range many {
		many[i] = string(rune('a' + i))
	}
	cc := newCategoryControl("name", many)

	_, ok := cc.predicate()
	assert.False(t, ok, "empty token entry is no filter")

	cc.entry.Text = "Oslo, Bergen"
	pred, ok := cc.predicate()
	assert.True(t, ok)
	assert.Equal(t, geodata.PredicateTokens, pred.Kind)
	assert.Equal(t, []string{"Oslo", "Bergen"}, pred.Values)
}

func TestSelectionCoversAll(t *testing.T) {
	assert.True(t, selectionCoversAll([]string{"b", "a"}, []string{"a", "b"}))
	assert.False(t, selectionCoversAll([]string{"a"}, []string{"a", "b"}))
	assert.False(t, selectionCoversAll(nil, []string{"a"}))
	assert.True(t, selectionCoversAll(nil, nil))
}
