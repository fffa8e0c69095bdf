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

// Package geodata provides the in-memory dataset model for the dashboard:
// typed columns with an optional geometry column, per-format loaders,
// the filter engine and the column classifier feeding chart selection.
package geodata

import "fmt"

// ColumnKind represents the inferred kind of a column.
type ColumnKind int

const (
	// KindNumeric represents numeric data (any precision).
	KindNumeric ColumnKind = iota
	// KindCategorical represents text/categorical data.
	KindCategorical
	// KindDatetime represents date or timestamp data.
	KindDatetime
	// KindGeometry represents the geometry column.
	KindGeometry
)

// String returns the string representation of a ColumnKind.
func (k ColumnKind) String() string {
	switch k {
	case KindNumeric:
		return "Numeric"
	case KindCategorical:
		return "Categorical"
	case KindDatetime:
		return "Datetime"
	case KindGeometry:
		return "Geometry"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// GeometryKind indicates what kind of geometry a dataset carries.
// A dataset holds points or shapes, never a mix of both.
type GeometryKind int

const (
	// GeometryNone indicates the dataset has no geometry column.
	GeometryNone GeometryKind = iota
	// GeometryPoint indicates point (or multi-point) geometry.
	GeometryPoint
	// GeometryShape indicates polygon or line geometry.
	GeometryShape
)

// String returns the string representation of a GeometryKind.
func (k GeometryKind) String() string {
	switch k {
	case GeometryNone:
		return "None"
	case GeometryPoint:
		return "Point"
	case GeometryShape:
		return "Shape"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Format represents a supported dataset input format.
type Format int

const (
	FormatUnknown Format = iota
	FormatGeoJSON
	FormatCSV
	FormatShapefile
	FormatZippedShapefile
	FormatParquet
)

// String returns the string representation of a Format.
func (f Format) String() string {
	switch f {
	case FormatGeoJSON:
		return "GeoJSON"
	case FormatCSV:
		return "CSV"
	case FormatShapefile:
		return "Shapefile"
	case FormatZippedShapefile:
		return "Zipped Shapefile"
	case FormatParquet:
		return "Parquet"
	default:
		return "Unknown"
	}
}
