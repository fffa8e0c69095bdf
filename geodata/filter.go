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
	"strings"
)

// PredicateKind selects the variant of a Predicate.
type PredicateKind int

const (
	// PredicateRange keeps rows with lo <= value <= hi (numeric columns).
	PredicateRange PredicateKind = iota
	// PredicateMembership keeps rows whose value is in a fixed set
	// (categorical columns with few distinct values).
	PredicateMembership
	// PredicateTokens keeps rows whose display value equals one of the
	// user-entered tokens (categorical columns with many distinct values).
	PredicateTokens
)

// Predicate is a tagged filter variant. Lo/Hi are used by PredicateRange,
// Values by PredicateMembership and PredicateTokens.
type Predicate struct {
	Kind   PredicateKind
	Lo, Hi float64
	Values []string
}

// Range creates an inclusive numeric range predicate.
func Range(lo, hi float64) Predicate {
	return Predicate{Kind: PredicateRange, Lo: lo, Hi: hi}
}

// OneOf creates a set-membership predicate. An empty set matches no rows;
// callers wanting "no filter" must omit the column from the spec instead.
func OneOf(values ...string) Predicate {
	return Predicate{Kind: PredicateMembership, Values: values}
}

// Tokens creates a free-text predicate from a comma-separated list.
// Tokens are trimmed of surrounding whitespace; empty tokens are dropped.
func Tokens(raw string) Predicate {
	var values []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			values = append(values, tok)
		}
	}
	return Predicate{Kind: PredicateTokens, Values: values}
}

// String returns a short human-readable description of the predicate.
func (p Predicate) String() string {
	switch p.Kind {
	case PredicateRange:
		return fmt.Sprintf("%g to %g", p.Lo, p.Hi)
	case PredicateMembership, PredicateTokens:
		return strings.Join(p.Values, ", ")
	default:
		return fmt.Sprintf("unknown(%d)", p.Kind)
	}
}

// FilterSpec maps column names to predicates. A column appears at most
// once; absence means the column is unfiltered.
type FilterSpec map[string]Predicate

// Apply narrows a dataset to the rows matching every predicate in the
// spec. Predicates are independent and AND-combined, so application order
// cannot affect the result. Columns named in the spec but absent from the
// dataset are silently skipped, which lets a filter set built against one
// dataset be applied to the next without erroring.
//
// A nil dataset yields a nil view and an empty dataset an empty view;
// callers treat both as "no data" and skip rendering.
func Apply(ds *Dataset, spec FilterSpec) *View {
	if ds == nil {
		return nil
	}
	if ds.Rows() == 0 || len(spec) == 0 {
		return FullView(ds)
	}

	type boundPredicate struct {
		pred Predicate
		col  *Column
		set  map[string]bool
	}
	bound := make([]boundPredicate, 0, len(spec))
	for name, pred := range spec {
		col, err := ds.Column(name)
		if err != nil {
			continue // schema drift tolerance
		}
		bp := boundPredicate{pred: pred, col: col}
		if pred.Kind == PredicateMembership || pred.Kind == PredicateTokens {
			bp.set = make(map[string]bool, len(pred.Values))
			for _, v := range pred.Values {
				bp.set[v] = true
			}
		}
		bound = append(bound, bp)
	}
	if len(bound) == 0 {
		return FullView(ds)
	}

	// Single pass; a row passes only if every bound predicate accepts it.
	indices := make([]int, 0, ds.Rows())
	for i := 0; i < ds.Rows(); i++ {
		pass := true
		for _, bp := range bound {
			if !matches(bp.col, i, bp.pred, bp.set) {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}
	return newSubView(ds, indices)
}

func matches(col *Column, row int, pred Predicate, set map[string]bool) bool {
	switch pred.Kind {
	case PredicateRange:
		v, ok := col.Number(row)
		if !ok {
			return false // NaN and missing values are excluded
		}
		return v >= pred.Lo && v <= pred.Hi
	case PredicateMembership, PredicateTokens:
		if len(set) == 0 {
			return false
		}
		return set[col.Cell(row)]
	default:
		return false
	}
}
