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
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Date layouts tried during inference, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// inferColumn builds a typed column from raw string cells. The column is
// numeric when every present cell parses as a number, datetime when every
// present cell parses with a known layout, categorical otherwise. Empty
// cells count as missing for every kind.
func inferColumn(name string, raw []string) Column {
	present := 0
	numeric := 0
	datetime := 0
	for _, cell := range raw {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		present++
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			numeric++
			continue
		}
		if _, ok := parseTime(cell); ok {
			datetime++
		}
	}

	switch {
	case present > 0 && numeric == present:
		vals := make([]float64, len(raw))
		for i, cell := range raw {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				vals[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				v = math.NaN()
			}
			vals[i] = v
		}
		return NewNumericColumn(name, vals)

	case present > 0 && datetime == present:
		vals := make([]time.Time, len(raw))
		valid := make([]bool, len(raw))
		for i, cell := range raw {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if t, ok := parseTime(cell); ok {
				vals[i] = t
				valid[i] = true
			}
		}
		return NewDatetimeColumn(name, vals, valid)

	default:
		vals := make([]string, len(raw))
		valid := make([]bool, len(raw))
		for i, cell := range raw {
			cell = strings.TrimSpace(cell)
			vals[i] = cell
			valid[i] = cell != ""
		}
		return NewCategoricalColumnWithMask(name, vals, valid)
	}
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// columnsFromProperties builds typed columns from per-row property maps,
// as produced by GeoJSON feature collections. Map iteration order is
// random, so the union of keys is sorted for a stable column order.
func columnsFromProperties(rows []map[string]interface{}) []Column {
	seen := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := make([]Column, 0, len(keys))
	for _, key := range keys {
		raw := make([]string, len(rows))
		for i, row := range rows {
			switch v := row[key].(type) {
			case nil:
				raw[i] = ""
			case float64:
				raw[i] = strconv.FormatFloat(v, 'g', -1, 64)
			case int:
				raw[i] = strconv.Itoa(v)
			case int64:
				raw[i] = strconv.FormatInt(v, 10)
			case bool:
				raw[i] = strconv.FormatBool(v)
			case string:
				raw[i] = v
			default:
				raw[i] = ""
			}
		}
		cols = append(cols, inferColumn(key, raw))
	}
	return cols
}
