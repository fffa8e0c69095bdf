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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"counties.geojson": FormatGeoJSON,
		"counties.JSON":    FormatGeoJSON,
		"cities.csv":       FormatCSV,
		"borders.shp":      FormatShapefile,
		"borders.zip":      FormatZippedShapefile,
		"events.parquet":   FormatParquet,
		"unknown.txt":      FormatUnknown,
	}
	for path, want := range cases {
		assert.Equal(t, want, DetectFormat(path), path)
	}
}

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature",
     "geometry": {"type": "Point", "coordinates": [10.75, 59.91]},
     "properties": {"name": "Oslo", "population": 700000}},
    {"type": "Feature",
     "geometry": {"type": "Point", "coordinates": [5.32, 60.39]},
     "properties": {"name": "Bergen", "population": 290000}}
  ]
}`

func TestFromGeoJSON(t *testing.T) {
	ds, err := FromGeoJSON("cities", []byte(sampleGeoJSON))
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Rows())
	assert.True(t, ds.HasGeometry())
	assert.Equal(t, GeometryPoint, ds.GeometryKind())
	assert.Equal(t, orb.Point{10.75, 59.91}, ds.GeometryAt(0))

	pop, err := ds.Column("population")
	require.NoError(t, err)
	assert.Equal(t, KindNumeric, pop.Kind)
	name, err := ds.Column("name")
	require.NoError(t, err)
	assert.Equal(t, KindCategorical, name.Kind)
}

func TestFromGeoJSONSynthesizesValueColumn(t *testing.T) {
	content := `{
	  "type": "FeatureCollection",
	  "features": [
	    {"type": "Feature",
	     "geometry": {"type": "Point", "coordinates": [0, 0]},
	     "properties": {"name": "a"}},
	    {"type": "Feature",
	     "geometry": {"type": "Point", "coordinates": [1, 1]},
	     "properties": {"name": "b"}}
	  ]
	}`
	ds, err := FromGeoJSON("plain", []byte(content))
	require.NoError(t, err)

	// Without any numeric property a value column is added so map
	// coloring and charts have something to work with.
	val, err := ds.Column("value")
	require.NoError(t, err)
	assert.Equal(t, KindNumeric, val.Kind)
	v, ok := val.Number(1)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestFromGeoJSONEmpty(t *testing.T) {
	_, err := FromGeoJSON("empty", []byte(`{"type":"FeatureCollection","features":[]}`))
	assert.ErrorIs(t, err, ErrNoFeatures)
}

func TestFromCSV(t *testing.T) {
	content := "city,population,founded\nOslo,700000,1048-01-01\nBergen,290000,1070-01-01\n"

	ds, err := FromCSV("cities", strings.NewReader(content), ',')
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Rows())
	assert.False(t, ds.HasGeometry())

	c := Classify(ds)
	assert.Equal(t, []string{"population"}, c.Numeric)
	assert.Equal(t, []string{"city"}, c.Categorical)
	assert.Equal(t, []string{"founded"}, c.Datetime)
}

func TestFromCSVPromotesLatLon(t *testing.T) {
	content := "city,Latitude,Longitude\nOslo,59.91,10.75\nBergen,60.39,5.32\n"

	ds, err := FromCSV("cities", strings.NewReader(content), ',')
	require.NoError(t, err)

	require.True(t, ds.HasGeometry())
	assert.Equal(t, GeometryPoint, ds.GeometryKind())
	assert.Equal(t, orb.Point{10.75, 59.91}, ds.GeometryAt(0))
	assert.Equal(t, orb.Point{5.32, 60.39}, ds.GeometryAt(1))
}

func TestFromCSVMixedColumnFallsBackToText(t *testing.T) {
	content := "code,value\nA1,10\nB2,n/a\n"

	ds, err := FromCSV("codes", strings.NewReader(content), ',')
	require.NoError(t, err)

	val, err := ds.Column("value")
	require.NoError(t, err)
	assert.Equal(t, KindCategorical, val.Kind)
}

func TestDetectCSVSeparator(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]rune{
		"a,b,c\n1,2,3\n":    ',',
		"a;b;c\n1;2;3\n":    ';',
		"a\tb\tc\n1\t2\t3\n": '\t',
		"a|b|c\n1|2|3\n":    '|',
	}
	for content, want := range cases {
		path := filepath.Join(dir, "t.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		sep, err := detectCSVSeparator(path)
		require.NoError(t, err)
		assert.Equal(t, want, sep)
	}
}

func TestLoadFileUnsupported(t *testing.T) {
	l := NewLoader(nil)
	_, err := l.LoadFile("notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSampleDatasets(t *testing.T) {
	samples := SampleDatasets()
	require.NotEmpty(t, samples)
	for _, s := range samples {
		assert.NotEmpty(t, s.Name)
		assert.True(t, strings.HasPrefix(s.URL, "https://"), s.Name)
	}
}
