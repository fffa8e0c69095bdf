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

// Classes groups column names by kind, driving which chart types are
// offered and which column choices are valid. The geometry column never
// appears in any group.
type Classes struct {
	Numeric     []string
	Categorical []string
	Datetime    []string
}

// Classify derives the column grouping from the dataset schema. It is a
// pure function of the schema and may be cached per filtered view.
func Classify(ds *Dataset) Classes {
	var c Classes
	if ds == nil {
		return c
	}
	for _, col := range ds.Columns() {
		switch col.Kind {
		case KindNumeric:
			c.Numeric = append(c.Numeric, col.Name)
		case KindCategorical:
			c.Categorical = append(c.Categorical, col.Name)
		case KindDatetime:
			c.Datetime = append(c.Datetime, col.Name)
		}
	}
	return c
}

// HasNumeric reports whether numeric-driven charts and map coloring are
// available. Callers show an "unavailable" message rather than erroring.
func (c Classes) HasNumeric() bool { return len(c.Numeric) > 0 }

// HasCategorical reports whether pie and grouping options are available.
func (c Classes) HasCategorical() bool { return len(c.Categorical) > 0 }

// DistinctValues returns the distinct present values of a categorical
// column in first-seen order. The sidebar uses the count to choose
// between a checkbox group and a free-text token filter.
func DistinctValues(ds *Dataset, column string) []string {
	col, err := ds.Column(column)
	if err != nil || col.Kind != KindCategorical {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < col.Len(); i++ {
		v, ok := col.Text(i)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
