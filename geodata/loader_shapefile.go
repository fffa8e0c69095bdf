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
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// loadShapefile reads a .shp together with its sidecar files. Attribute
// columns come from the DBF records and are type-inferred the same way
// CSV columns are.
func (l *Loader) loadShapefile(path string) (*Dataset, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer reader.Close()

	fields := reader.Fields()
	raw := make([][]string, len(fields))
	var geoms []orb.Geometry

	row := 0
	for reader.Next() {
		_, shape := reader.Shape()
		geoms = append(geoms, shapeToGeometry(shape))
		for f := range fields {
			raw[f] = append(raw[f], strings.TrimSpace(reader.ReadAttribute(row, f)))
		}
		row++
	}
	if row == 0 {
		return nil, fmt.Errorf("%w: shapefile has no records", ErrNoFeatures)
	}

	cols := make([]Column, 0, len(fields))
	for f, field := range fields {
		cols = append(cols, inferColumn(field.String(), raw[f]))
	}

	ds, err := NewDataset(filepath.Base(path), cols)
	if err != nil {
		return nil, err
	}
	if err := ds.SetGeometry("geometry", geoms); err != nil {
		return nil, err
	}
	return ds, nil
}

// loadZippedShapefile extracts a zip archive to a temp dir and loads the
// first .shp found inside it.
func (l *Loader) loadZippedShapefile(path string) (*Dataset, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}
	defer archive.Close()

	tmpDir, err := os.MkdirTemp("", "geodash-shp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	var shpPath string
	for _, file := range archive.File {
		if file.FileInfo().IsDir() {
			continue
		}
		dest := filepath.Join(tmpDir, filepath.Base(file.Name))
		if err := extractZipEntry(file, dest); err != nil {
			return nil, err
		}
		if strings.EqualFold(filepath.Ext(file.Name), ".shp") && shpPath == "" {
			shpPath = dest
		}
	}
	if shpPath == "" {
		return nil, fmt.Errorf("%w: no shapefile in zip archive", ErrMissingColumns)
	}
	return l.loadShapefile(shpPath)
}

func extractZipEntry(file *zip.File, dest string) error {
	in, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to read zip entry %s: %w", file.Name, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}
	return nil
}

// shapeToGeometry converts a shapefile shape to an orb geometry. Parts
// arrays split multi-part polygons and polylines into rings and segments.
func shapeToGeometry(shape shp.Shape) orb.Geometry {
	switch s := shape.(type) {
	case *shp.Point:
		return orb.Point{s.X, s.Y}
	case *shp.PointZ:
		return orb.Point{s.X, s.Y}
	case *shp.PointM:
		return orb.Point{s.X, s.Y}
	case *shp.Polygon:
		rings := splitParts(s.Parts, s.Points)
		poly := make(orb.Polygon, 0, len(rings))
		for _, ring := range rings {
			r := make(orb.Ring, len(ring))
			copy(r, ring)
			poly = append(poly, r)
		}
		return poly
	case *shp.PolyLine:
		segments := splitParts(s.Parts, s.Points)
		if len(segments) == 1 {
			return orb.LineString(segments[0])
		}
		ml := make(orb.MultiLineString, 0, len(segments))
		for _, seg := range segments {
			ml = append(ml, orb.LineString(seg))
		}
		return ml
	default:
		return nil
	}
}

func splitParts(parts []int32, points []shp.Point) [][]orb.Point {
	if len(parts) == 0 {
		parts = []int32{0}
	}
	out := make([][]orb.Point, 0, len(parts))
	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		seg := make([]orb.Point, 0, end-int(start))
		for _, p := range points[start:end] {
			seg = append(seg, orb.Point{p.X, p.Y})
		}
		out = append(out, seg)
	}
	return out
}
