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
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func (l *Loader) loadGeoJSONFile(path string) (*Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read GeoJSON file: %w", err)
	}
	ds, err := FromGeoJSON(filepath.Base(path), content)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// FromGeoJSON builds a dataset from a GeoJSON feature collection. Feature
// properties become typed columns and feature geometry the geometry
// column. When no numeric column exists a row-index "value" column is
// synthesized so that color coding has something to work with.
func FromGeoJSON(name string, content []byte) (*Dataset, error) {
	fc, err := geojson.UnmarshalFeatureCollection(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("%w: feature collection is empty", ErrNoFeatures)
	}

	rows := make([]map[string]interface{}, len(fc.Features))
	geoms := make([]orb.Geometry, len(fc.Features))
	for i, f := range fc.Features {
		rows[i] = map[string]interface{}(f.Properties)
		geoms[i] = f.Geometry
	}

	cols := columnsFromProperties(rows)
	if !hasNumericColumn(cols) {
		vals := make([]float64, len(rows))
		for i := range vals {
			vals[i] = float64(i)
		}
		cols = append(cols, NewNumericColumn("value", vals))
	}

	ds, err := NewDataset(name, cols)
	if err != nil {
		return nil, err
	}
	if err := ds.SetGeometry("geometry", geoms); err != nil {
		return nil, err
	}
	return ds, nil
}

func hasNumericColumn(cols []Column) bool {
	for i := range cols {
		if cols[i].Kind == KindNumeric {
			return true
		}
	}
	return false
}
