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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRowFunc(t *testing.T) {
	fn, err := CompileRowFunc(`func(row map[string]interface{}) interface{} {
		return row["population"].(float64) / 1000
	}`)
	require.NoError(t, err)

	out := fn(map[string]interface{}{"population": float64(700000)})
	assert.Equal(t, 700.0, out)
}

func TestCompileRowFuncInvalid(t *testing.T) {
	_, err := CompileRowFunc(`this is not go`)
	assert.ErrorIs(t, err, ErrInvalidScript)

	_, err = CompileRowFunc(`42`)
	assert.ErrorIs(t, err, ErrInvalidScript)
}

func TestDeriveColumn(t *testing.T) {
	ds := testDataset(t)

	fn, err := CompileRowFunc(`func(row map[string]interface{}) interface{} {
		v, ok := row["population"]
		if !ok {
			return nil
		}
		return v.(float64) / 1000
	}`)
	require.NoError(t, err)
	require.NoError(t, DeriveColumn(ds, "pop_k", fn))

	col, err := ds.Column("pop_k")
	require.NoError(t, err)
	assert.Equal(t, KindNumeric, col.Kind)

	v, ok := col.Number(0)
	assert.True(t, ok)
	assert.Equal(t, 700.0, v)

	// Row with missing population stays missing in the derived column.
	_, ok = col.Number(3)
	assert.False(t, ok)
}

func TestDeriveColumnCategorical(t *testing.T) {
	ds := testDataset(t)

	err := DeriveColumn(ds, "size", func(row map[string]interface{}) interface{} {
		pop, ok := row["population"].(float64)
		if !ok {
			return nil
		}
		if pop > 500000 {
			return "large"
		}
		return "small"
	})
	require.NoError(t, err)

	col, err := ds.Column("size")
	require.NoError(t, err)
	assert.Equal(t, KindCategorical, col.Kind)
	assert.Equal(t, "large", col.Cell(0))
	assert.Equal(t, "small", col.Cell(1))
	assert.Equal(t, "", col.Cell(3))
}

func TestDeriveColumnRecoversSnippetPanic(t *testing.T) {
	ds := testDataset(t)

	// Blind type assert on a missing key panics inside the snippet; the
	// derive call must surface an error instead of crashing.
	fn, err := CompileRowFunc(`func(row map[string]interface{}) interface{} {
		return row["no_such_column"].(float64) * 2
	}`)
	require.NoError(t, err)

	err = DeriveColumn(ds, "broken", fn)
	assert.ErrorIs(t, err, ErrInvalidScript)

	// The failed derivation must not leave a partial column behind.
	_, err = ds.Column("broken")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestDeriveColumnEmptyDataset(t *testing.T) {
	err := DeriveColumn(nil, "x", func(map[string]interface{}) interface{} { return 0 })
	assert.ErrorIs(t, err, ErrEmptyDataset)
}
