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
	"reflect"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// RowFunc computes a derived value from a row. The row map holds the
// native value of every non-geometry column: float64, string or
// time.Time, with missing values absent from the map.
type RowFunc func(row map[string]interface{}) interface{}

// CompileRowFunc interprets a Go expression that evaluates to a RowFunc.
// The sidebar's "Computed Column" dialog feeds user snippets such as
//
//	func(row map[string]interface{}) interface{} {
//	    return row["pop"].(float64) / 1000
//	}
//
// through this. The interpreter is given the standard library symbols.
func CompileRowFunc(src string) (RowFunc, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib symbols: %w", err)
	}
	v, err := i.Eval(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	// The interpreter hands back the result behind pointer and interface
	// indirections; unwrap before asserting the function type.
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: expression must be a func(map[string]interface{}) interface{}", ErrInvalidScript)
	}
	fn, ok := v.Interface().(func(map[string]interface{}) interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expression must be a func(map[string]interface{}) interface{}", ErrInvalidScript)
	}
	return RowFunc(fn), nil
}

// DeriveColumn evaluates a compiled row function over every row and
// appends the result as a new column. The column kind is chosen from the
// produced values: all-numeric rows give a numeric column, all-time rows
// a datetime column, anything else a categorical column.
func DeriveColumn(ds *Dataset, name string, fn RowFunc) error {
	if ds == nil || ds.Rows() == 0 {
		return ErrEmptyDataset
	}

	results := make([]interface{}, ds.Rows())
	for i := 0; i < ds.Rows(); i++ {
		row := make(map[string]interface{}, len(ds.Columns()))
		for _, col := range ds.Columns() {
			switch col.Kind {
			case KindNumeric:
				if v, ok := col.Number(i); ok {
					row[col.Name] = v
				}
			case KindCategorical:
				if v, ok := col.Text(i); ok {
					row[col.Name] = v
				}
			case KindDatetime:
				if v, ok := col.Time(i); ok {
					row[col.Name] = v
				}
			}
		}
		val, err := callRowFunc(fn, row)
		if err != nil {
			return err
		}
		results[i] = val
	}

	return ds.AddColumn(columnFromValues(name, results))
}

// callRowFunc shields the dataset from panics in user snippets, most
// commonly a failed type assertion on a row value.
func callRowFunc(fn RowFunc, row map[string]interface{}) (val interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidScript, r)
		}
	}()
	return fn(row), nil
}

func columnFromValues(name string, values []interface{}) Column {
	numeric := true
	temporal := true
	for _, v := range values {
		switch v.(type) {
		case nil:
		case float64, int, int64:
			temporal = false
		case time.Time:
			numeric = false
		default:
			numeric = false
			temporal = false
		}
	}

	switch {
	case numeric:
		vals := make([]float64, len(values))
		for i, v := range values {
			switch n := v.(type) {
			case float64:
				vals[i] = n
			case int:
				vals[i] = float64(n)
			case int64:
				vals[i] = float64(n)
			default:
				vals[i] = math.NaN()
			}
		}
		return NewNumericColumn(name, vals)
	case temporal:
		vals := make([]time.Time, len(values))
		valid := make([]bool, len(values))
		for i, v := range values {
			if t, ok := v.(time.Time); ok {
				vals[i] = t
				valid[i] = true
			}
		}
		return NewDatetimeColumn(name, vals, valid)
	default:
		vals := make([]string, len(values))
		valid := make([]bool, len(values))
		for i, v := range values {
			if v != nil {
				vals[i] = fmt.Sprintf("%v", v)
				valid[i] = true
			}
		}
		return NewCategoricalColumnWithMask(name, vals, valid)
	}
}
