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

import "errors"

// Common errors returned by the geodata package.
var (
	// ErrColumnNotFound is returned when a column name is not present.
	ErrColumnNotFound = errors.New("column not found")

	// ErrRowCountMismatch is returned when columns have unequal lengths.
	ErrRowCountMismatch = errors.New("columns have unequal row counts")

	// ErrGeometryMixed is returned when point and shape geometry are mixed.
	ErrGeometryMixed = errors.New("mixed point and shape geometry")

	// ErrGeometryPresent is returned when a second geometry column is set.
	ErrGeometryPresent = errors.New("dataset already has a geometry column")

	// ErrNoFeatures is returned when a geospatial source has no features.
	ErrNoFeatures = errors.New("no features in source")

	// ErrUnsupportedFormat is returned for unrecognized input files.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyDataset is returned when data is empty where it shouldn't be.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrMissingColumns is returned when a source lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrChartUnavailable is returned when a chart type has no usable columns.
	ErrChartUnavailable = errors.New("chart unavailable for this dataset")

	// ErrInvalidScript is returned when a derived-column script is unusable.
	ErrInvalidScript = errors.New("invalid column script")
)
