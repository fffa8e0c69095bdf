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

package windows

import (
	"image"
	"image/color"
	"math"

	"github.com/paulmach/orb"

	"geodash/geodata"
)

var (
	mapBackground = color.NRGBA{R: 0xe8, G: 0xf0, B: 0xf7, A: 0xff}
	mapOutline    = color.NRGBA{R: 0x3a, G: 0x5a, B: 0x78, A: 0xff}
	mapMissing    = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
	mapGraticule  = color.NRGBA{R: 0xd0, G: 0xdc, B: 0xe6, A: 0xff}
)

// mapProjection maps lon/lat to pixel coordinates with an
// equirectangular projection fitted to the data bounds.
type mapProjection struct {
	bound         orb.Bound
	width, height int
	scale         float64
	offX, offY    float64
}

func newMapProjection(bound orb.Bound, width, height int) mapProjection {
	// Pad the bounds so features do not touch the edge. A degenerate
	// bound (single point) gets a fixed one-degree window.
	dx := bound.Max[0] - bound.Min[0]
	dy := bound.Max[1] - bound.Min[1]
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	pad := 0.05
	bound.Min[0] -= dx * pad
	bound.Max[0] += dx * pad
	bound.Min[1] -= dy * pad
	bound.Max[1] += dy * pad

	sx := float64(width) / (bound.Max[0] - bound.Min[0])
	sy := float64(height) / (bound.Max[1] - bound.Min[1])
	scale := math.Min(sx, sy)

	// Center the fitted extent inside the canvas.
	offX := (float64(width) - (bound.Max[0]-bound.Min[0])*scale) / 2
	offY := (float64(height) - (bound.Max[1]-bound.Min[1])*scale) / 2

	return mapProjection{bound: bound, width: width, height: height, scale: scale, offX: offX, offY: offY}
}

func (p mapProjection) toPixel(pt orb.Point) (int, int) {
	x := (pt[0]-p.bound.Min[0])*p.scale + p.offX
	y := (p.bound.Max[1]-pt[1])*p.scale + p.offY // north up
	return int(math.Round(x)), int(math.Round(y))
}

// viewBounds unions the bounds of every visible geometry.
func viewBounds(v *geodata.View) (orb.Bound, bool) {
	var bound orb.Bound
	found := false
	for i := 0; i < v.Len(); i++ {
		g := v.GeometryAt(i)
		if g == nil {
			continue
		}
		if !found {
			bound = g.Bound()
			found = true
		} else {
			bound = bound.Union(g.Bound())
		}
	}
	return bound, found
}

// colorRamp interpolates from pale yellow through orange to dark red,
// the conventional low-to-high choropleth ramp.
func colorRamp(t float64) color.NRGBA {
	if math.IsNaN(t) {
		return mapMissing
	}
	t = math.Max(0, math.Min(1, t))
	stops := []struct {
		at      float64
		r, g, b float64
	}{
		{0.0, 0xff, 0xf7, 0xbc},
		{0.5, 0xfe, 0x99, 0x29},
		{1.0, 0x99, 0x2c, 0x04},
	}
	for i := 0; i < len(stops)-1; i++ {
		a, b := stops[i], stops[i+1]
		if t > b.at {
			continue
		}
		f := (t - a.at) / (b.at - a.at)
		return color.NRGBA{
			R: uint8(a.r + (b.r-a.r)*f),
			G: uint8(a.g + (b.g-a.g)*f),
			B: uint8(a.b + (b.b-a.b)*f),
			A: 0xff,
		}
	}
	return color.NRGBA{R: 0x99, G: 0x2c, B: 0x04, A: 0xff}
}

// renderMap draws the view's geometries onto a raster. Point layers are
// filled discs colored by the selected numeric column; shape layers are
// outlines with a colored interior marker at the shape centroid.
func renderMap(v *geodata.View, colorColumn string, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	fillRect(img, mapBackground)

	bound, ok := viewBounds(v)
	if !ok {
		return img
	}
	proj := newMapProjection(bound, width, height)
	drawGraticule(img, proj)

	// Normalize the color column over the visible rows.
	lo, hi := math.Inf(1), math.Inf(-1)
	if colorColumn != "" {
		for _, val := range v.Numbers(colorColumn) {
			lo = math.Min(lo, val)
			hi = math.Max(hi, val)
		}
	}

	for i := 0; i < v.Len(); i++ {
		g := v.GeometryAt(i)
		if g == nil {
			continue
		}
		fill := mapMissing
		if colorColumn != "" && hi >= lo {
			if val, present := v.Number(colorColumn, i); present {
				t := 0.5
				if hi > lo {
					t = (val - lo) / (hi - lo)
				}
				fill = colorRamp(t)
			}
		}
		drawGeometry(img, proj, g, fill)
	}
	return img
}

func drawGeometry(img *image.NRGBA, proj mapProjection, g orb.Geometry, fill color.NRGBA) {
	switch geom := g.(type) {
	case orb.Point:
		x, y := proj.toPixel(geom)
		drawDisc(img, x, y, 4, fill)
	case orb.MultiPoint:
		for _, pt := range geom {
			x, y := proj.toPixel(pt)
			drawDisc(img, x, y, 4, fill)
		}
	case orb.LineString:
		drawPolyline(img, proj, geom, mapOutline)
	case orb.MultiLineString:
		for _, ls := range geom {
			drawPolyline(img, proj, ls, mapOutline)
		}
	case orb.Polygon:
		drawPolygonOutline(img, proj, geom, fill)
	case orb.MultiPolygon:
		for _, poly := range geom {
			drawPolygonOutline(img, proj, poly, fill)
		}
	}
}

func drawPolygonOutline(img *image.NRGBA, proj mapProjection, poly orb.Polygon, fill color.NRGBA) {
	for _, ring := range poly {
		drawPolyline(img, proj, orb.LineString(ring), mapOutline)
	}
	// Centroid marker carries the value color for shape layers.
	if len(poly) > 0 && len(poly[0]) > 0 {
		cx, cy := ringCentroid(poly[0])
		x, y := proj.toPixel(orb.Point{cx, cy})
		drawDisc(img, x, y, 3, fill)
	}
}

func ringCentroid(ring orb.Ring) (float64, float64) {
	var sx, sy float64
	for _, pt := range ring {
		sx += pt[0]
		sy += pt[1]
	}
	n := float64(len(ring))
	return sx / n, sy / n
}

func drawPolyline(img *image.NRGBA, proj mapProjection, ls orb.LineString, c color.NRGBA) {
	for i := 1; i < len(ls); i++ {
		x0, y0 := proj.toPixel(ls[i-1])
		x1, y1 := proj.toPixel(ls[i])
		drawLine(img, x0, y0, x1, y1, c)
	}
}

// drawLine is Bresenham's algorithm.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		setPixel(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawDisc(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				setPixel(img, cx+x, cy+y, c)
			}
		}
	}
}

func drawGraticule(img *image.NRGBA, proj mapProjection) {
	step := graticuleStep(proj.bound)
	for lon := math.Floor(proj.bound.Min[0]/step) * step; lon <= proj.bound.Max[0]; lon += step {
		x, _ := proj.toPixel(orb.Point{lon, proj.bound.Min[1]})
		for y := 0; y < proj.height; y++ {
			setPixel(img, x, y, mapGraticule)
		}
	}
	for lat := math.Floor(proj.bound.Min[1]/step) * step; lat <= proj.bound.Max[1]; lat += step {
		_, y := proj.toPixel(orb.Point{proj.bound.Min[0], lat})
		for x := 0; x < proj.width; x++ {
			setPixel(img, x, y, mapGraticule)
		}
	}
}

func graticuleStep(bound orb.Bound) float64 {
	span := math.Max(bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1])
	switch {
	case span > 90:
		return 30
	case span > 30:
		return 10
	case span > 10:
		return 5
	case span > 2:
		return 1
	default:
		return 0.25
	}
}

func fillRect(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= img.Bounds().Dx() || y >= img.Bounds().Dy() {
		return
	}
	img.SetNRGBA(x, y, c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
