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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// ExportFormat represents the supported export formats.
type ExportFormat int

const (
	ExportCSV ExportFormat = iota
	ExportJSON
	ExportParquet
)

// Ext returns the file extension for the format.
func (f ExportFormat) Ext() string {
	switch f {
	case ExportParquet:
		return ".parquet"
	case ExportJSON:
		return ".json"
	default:
		return ".csv"
	}
}

// Export writes the visible rows of a view to a file in the given format.
func Export(v *View, format ExportFormat, path string) error {
	if v == nil || v.Len() == 0 {
		return fmt.Errorf("%w: nothing to export", ErrEmptyDataset)
	}
	switch format {
	case ExportCSV:
		return exportCSV(v, path)
	case ExportJSON:
		return exportJSON(v, path)
	case ExportParquet:
		return exportParquet(v, path)
	default:
		return fmt.Errorf("%w: export format %d", ErrUnsupportedFormat, format)
	}
}

func exportCSV(v *View, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()
	return WriteCSV(v, f)
}

// WriteCSV streams the view as CSV with a header row.
func WriteCSV(v *View, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	names := v.Source().ColumnNames()
	if err := writer.Write(names); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	row := make([]string, len(names))
	for i := 0; i < v.Len(); i++ {
		for c, name := range names {
			row[c] = v.Cell(name, i)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func exportJSON(v *View, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer f.Close()

	names := v.Source().ColumnNames()
	records := make([]map[string]interface{}, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		record := make(map[string]interface{}, len(names))
		for _, name := range names {
			record[name] = cellValue(v, name, i)
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// cellValue keeps numeric values numeric in JSON output.
func cellValue(v *View, name string, i int) interface{} {
	col, err := v.Source().Column(name)
	if err != nil {
		return nil
	}
	switch col.Kind {
	case KindNumeric:
		if val, ok := v.Number(name, i); ok {
			return val
		}
		return nil
	case KindDatetime:
		if t, ok := v.Time(name, i); ok {
			return t
		}
		return nil
	default:
		if s, ok := v.Text(name, i); ok {
			return s
		}
		return nil
	}
}

func exportParquet(v *View, path string) error {
	table, err := toArrowTable(v)
	if err != nil {
		return fmt.Errorf("failed to prepare filtered data: %w", err)
	}
	defer table.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer f.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), f, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	defer writer.Close()

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	return nil
}

// toArrowTable builds an Arrow table from the visible rows of a view.
// Numeric columns map to float64, datetime to millisecond timestamps and
// categorical to strings.
func toArrowTable(v *View) (arrow.Table, error) {
	src := v.Source()
	pool := memory.NewGoAllocator()

	fields := make([]arrow.Field, 0, len(src.Columns()))
	columns := make([]arrow.Column, 0, len(src.Columns()))
	for _, col := range src.Columns() {
		var (
			field arrow.Field
			arr   arrow.Array
		)
		switch col.Kind {
		case KindNumeric:
			field = arrow.Field{Name: col.Name, Type: arrow.PrimitiveTypes.Float64, Nullable: true}
			b := array.NewFloat64Builder(pool)
			for i := 0; i < v.Len(); i++ {
				if val, ok := v.Number(col.Name, i); ok {
					b.Append(val)
				} else {
					b.AppendNull()
				}
			}
			arr = b.NewArray()
			b.Release()
		case KindDatetime:
			tsType := &arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "UTC"}
			field = arrow.Field{Name: col.Name, Type: tsType, Nullable: true}
			b := array.NewTimestampBuilder(pool, tsType)
			for i := 0; i < v.Len(); i++ {
				if t, ok := v.Time(col.Name, i); ok {
					b.Append(arrow.Timestamp(t.UnixMilli()))
				} else {
					b.AppendNull()
				}
			}
			arr = b.NewArray()
			b.Release()
		default:
			field = arrow.Field{Name: col.Name, Type: arrow.BinaryTypes.String, Nullable: true}
			b := array.NewStringBuilder(pool)
			for i := 0; i < v.Len(); i++ {
				if s, ok := v.Text(col.Name, i); ok {
					b.Append(s)
				} else {
					b.AppendNull()
				}
			}
			arr = b.NewArray()
			b.Release()
		}

		chunked := arrow.NewChunked(field.Type, []arrow.Array{arr})
		columns = append(columns, *arrow.NewColumn(field, chunked))
		fields = append(fields, field)
		arr.Release()
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewTable(schema, columns, int64(v.Len())), nil
}
