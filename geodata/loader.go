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
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DetectFormat determines the dataset format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson":
		return FormatGeoJSON
	case ".json":
		return FormatGeoJSON
	case ".csv":
		return FormatCSV
	case ".shp":
		return FormatShapefile
	case ".zip":
		return FormatZippedShapefile
	case ".parquet":
		return FormatParquet
	default:
		return FormatUnknown
	}
}

// Loader loads datasets from files and URLs. The zero value is usable;
// NewLoader attaches a logger and an HTTP client with a sane timeout.
type Loader struct {
	log    *zap.Logger
	client *http.Client
}

// NewLoader creates a loader. A nil logger is replaced with a no-op one.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		log:    log,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// LoadFile loads a dataset from a local file, dispatching on format.
func (l *Loader) LoadFile(path string) (*Dataset, error) {
	format := DetectFormat(path)
	l.logger().Info("loading dataset",
		zap.String("path", path),
		zap.String("format", format.String()))

	switch format {
	case FormatGeoJSON:
		return l.loadGeoJSONFile(path)
	case FormatCSV:
		return l.loadCSVFile(path)
	case FormatShapefile:
		return l.loadShapefile(path)
	case FormatZippedShapefile:
		return l.loadZippedShapefile(path)
	case FormatParquet:
		return l.loadParquetFile(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadURL fetches a remote dataset into a temporary file and loads it.
// The file extension of the URL path selects the format.
func (l *Loader) LoadURL(url string) (*Dataset, error) {
	resp, err := l.httpClient().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %s", url, resp.Status)
	}

	tmpDir, err := os.MkdirTemp("", "geodash-download-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	name := filepath.Base(strings.SplitN(url, "?", 2)[0])
	if DetectFormat(name) == FormatUnknown {
		name += ".geojson" // remote sources default to GeoJSON
	}
	tmpFile := filepath.Join(tmpDir, name)
	out, err := os.Create(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	ds, err := l.LoadFile(tmpFile)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func (l *Loader) logger() *zap.Logger {
	if l.log == nil {
		return zap.NewNop()
	}
	return l.log
}

func (l *Loader) httpClient() *http.Client {
	if l.client == nil {
		return &http.Client{Timeout: 60 * time.Second}
	}
	return l.client
}

// SampleDataset describes a remote dataset offered on the landing screen.
type SampleDataset struct {
	Name        string
	Description string
	URL         string
	Format      Format
}

// SampleDatasets returns the built-in sample dataset catalog.
func SampleDatasets() []SampleDataset {
	return []SampleDataset{
		{
			Name:        "US Counties",
			Description: "US county boundaries with FIPS codes",
			URL:         "https://raw.githubusercontent.com/plotly/datasets/master/geojson-counties-fips.json",
			Format:      FormatGeoJSON,
		},
		{
			Name:        "World Countries",
			Description: "World countries with socioeconomic indicators",
			URL:         "https://raw.githubusercontent.com/python-visualization/folium/master/examples/data/world-countries.json",
			Format:      FormatGeoJSON,
		},
		{
			Name:        "NYC Boroughs",
			Description: "New York City boroughs with demographic data",
			URL:         "https://raw.githubusercontent.com/nychealth/coronavirus-data/master/Geography-resources/MODZCTA_2010_WGS1984.geo.json",
			Format:      FormatGeoJSON,
		},
		{
			Name:        "Global Earthquakes",
			Description: "Recent earthquake data from around the world",
			URL:         "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson",
			Format:      FormatGeoJSON,
		},
	}
}
