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
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

func (l *Loader) loadParquetFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	return FromArrowTable(filepath.Base(path), table)
}

// FromArrowTable converts an Arrow table to a Dataset. Integer and float
// fields become numeric columns, date and timestamp fields datetime
// columns, everything else a categorical column of display strings.
func FromArrowTable(name string, table arrow.Table) (*Dataset, error) {
	rows := int(table.NumRows())
	tr := array.NewTableReader(table, table.NumRows())
	defer tr.Release()
	if !tr.Next() {
		return nil, fmt.Errorf("%w: parquet file has no rows", ErrEmptyDataset)
	}
	rec := tr.Record()

	schema := table.Schema()
	cols := make([]Column, 0, schema.NumFields())
	for c := 0; c < schema.NumFields(); c++ {
		field := schema.Field(c)
		arr := rec.Column(c)

		switch {
		case isNumericArrow(field.Type.ID()):
			vals := make([]float64, rows)
			for i := 0; i < rows; i++ {
				if v, ok := arrowNumber(arr, i); ok {
					vals[i] = v
				} else {
					vals[i] = math.NaN()
				}
			}
			cols = append(cols, NewNumericColumn(field.Name, vals))

		case isTemporalArrow(field.Type.ID()):
			vals := make([]time.Time, rows)
			valid := make([]bool, rows)
			for i := 0; i < rows; i++ {
				if t, ok := arrowTime(arr, i); ok {
					vals[i] = t
					valid[i] = true
				}
			}
			cols = append(cols, NewDatetimeColumn(field.Name, vals, valid))

		default:
			vals := make([]string, rows)
			valid := make([]bool, rows)
			for i := 0; i < rows; i++ {
				if !arr.IsNull(i) {
					vals[i] = arr.ValueStr(i)
					valid[i] = true
				}
			}
			cols = append(cols, NewCategoricalColumnWithMask(field.Name, vals, valid))
		}
	}
	return NewDataset(name, cols)
}

func isNumericArrow(id arrow.Type) bool {
	switch id {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT32, arrow.FLOAT64:
		return true
	}
	return false
}

func isTemporalArrow(id arrow.Type) bool {
	switch id {
	case arrow.DATE32, arrow.DATE64, arrow.TIMESTAMP:
		return true
	}
	return false
}

func arrowNumber(col arrow.Array, pos int) (float64, bool) {
	if col.IsNull(pos) {
		return 0, false
	}
	switch col.DataType().ID() {
	case arrow.INT8:
		return float64(col.(*array.Int8).Value(pos)), true
	case arrow.INT16:
		return float64(col.(*array.Int16).Value(pos)), true
	case arrow.INT32:
		return float64(col.(*array.Int32).Value(pos)), true
	case arrow.INT64:
		return float64(col.(*array.Int64).Value(pos)), true
	case arrow.UINT8:
		return float64(col.(*array.Uint8).Value(pos)), true
	case arrow.UINT16:
		return float64(col.(*array.Uint16).Value(pos)), true
	case arrow.UINT32:
		return float64(col.(*array.Uint32).Value(pos)), true
	case arrow.UINT64:
		return float64(col.(*array.Uint64).Value(pos)), true
	case arrow.FLOAT32:
		return float64(col.(*array.Float32).Value(pos)), true
	case arrow.FLOAT64:
		return col.(*array.Float64).Value(pos), true
	default:
		return 0, false
	}
}

func arrowTime(col arrow.Array, pos int) (time.Time, bool) {
	if col.IsNull(pos) {
		return time.Time{}, false
	}
	switch col.DataType().ID() {
	case arrow.DATE32:
		return col.(*array.Date32).Value(pos).ToTime(), true
	case arrow.DATE64:
		return col.(*array.Date64).Value(pos).ToTime(), true
	case arrow.TIMESTAMP:
		unit := col.DataType().(*arrow.TimestampType).Unit
		return col.(*array.Timestamp).Value(pos).ToTime(unit), true
	default:
		return time.Time{}, false
	}
}
