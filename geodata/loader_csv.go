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
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
)

func (l *Loader) loadCSVFile(path string) (*Dataset, error) {
	sep, err := detectCSVSeparator(path)
	if err != nil {
		sep = ','
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	ds, err := FromCSV(filepath.Base(path), f, sep)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// FromCSV builds a dataset from CSV content with a header row. Column
// types are inferred per column. When both latitude and longitude columns
// are present they are promoted to a point geometry column (coordinates
// assumed to be EPSG:4326).
func FromCSV(name string, r io.Reader, separator rune) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = separator
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%w: no header row", ErrEmptyDataset)
	}

	header := records[0]
	body := records[1:]

	cols := make([]Column, 0, len(header))
	for c, colName := range header {
		raw := make([]string, len(body))
		for r, record := range body {
			if c < len(record) {
				raw[r] = record[c]
			}
		}
		cols = append(cols, inferColumn(strings.TrimSpace(colName), raw))
	}

	latIdx, lonIdx := -1, -1
	for i := range cols {
		switch strings.ToLower(cols[i].Name) {
		case "latitude":
			latIdx = i
		case "longitude":
			lonIdx = i
		}
	}

	if latIdx >= 0 && lonIdx >= 0 &&
		cols[latIdx].Kind == KindNumeric && cols[lonIdx].Kind == KindNumeric {
		geoms := make([]orb.Geometry, len(body))
		for i := range body {
			lat, okLat := cols[latIdx].Number(i)
			lon, okLon := cols[lonIdx].Number(i)
			if okLat && okLon {
				geoms[i] = orb.Point{lon, lat}
			}
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

	return NewDataset(name, cols)
}

// detectCSVSeparator sniffs the separator from the first line by counting
// candidate characters and picking the most frequent one.
func detectCSVSeparator(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return ',', fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ',', nil
	}
	firstLine := scanner.Text()
	if firstLine == "" {
		return ',', nil
	}

	separators := map[rune]int{
		',':  strings.Count(firstLine, ","),
		';':  strings.Count(firstLine, ";"),
		'\t': strings.Count(firstLine, "\t"),
		'|':  strings.Count(firstLine, "|"),
	}

	maxCount := 0
	detected := ','
	for sep, count := range separators {
		if count > maxCount {
			maxCount = count
			detected = sep
		}
	}
	return detected, nil
}
