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
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"geodash/geodata"
)

// TableView shows the filtered rows in a grid with a quick substring
// filter on top of the sidebar filters and export actions for the
// visible data.
type TableView struct {
	main *MainWindow

	root      *fyne.Container
	table     *widget.Table
	quick     *widget.Entry
	countInfo *widget.Label

	// rows maps grid rows to view rows after the quick filter.
	rows []int
}

func NewTableView(t *MainWindow) *TableView {
	tv := &TableView{main: t}

	tv.quick = widget.NewEntry()
	tv.quick.SetPlaceHolder("Quick filter...")
	tv.quick.OnChanged = func(string) {
		tv.Update()
	}

	tv.table = widget.NewTable(
		func() (int, int) {
			v := t.View()
			if v == nil {
				return 0, 0
			}
			return len(tv.rows) + 1, len(v.Source().Columns()) // +1 header row
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("template")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			v := t.View()
			if v == nil {
				label.SetText("")
				return
			}
			names := v.Source().ColumnNames()
			if id.Col >= len(names) {
				label.SetText("")
				return
			}
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(names[id.Col])
				return
			}
			if id.Row-1 >= len(tv.rows) {
				label.SetText("")
				return
			}
			label.TextStyle = fyne.TextStyle{}
			label.SetText(v.Cell(names[id.Col], tv.rows[id.Row-1]))
		},
	)

	exportCSV := widget.NewButton("Export CSV", func() {
		tv.export(geodata.ExportCSV)
	})
	exportJSON := widget.NewButton("Export JSON", func() {
		tv.export(geodata.ExportJSON)
	})
	exportParquet := widget.NewButton("Export Parquet", func() {
		tv.export(geodata.ExportParquet)
	})

	tv.countInfo = widget.NewLabel("")
	top := container.NewBorder(nil, nil,
		container.NewHBox(exportCSV, exportJSON, exportParquet), tv.countInfo, tv.quick)

	tv.root = container.NewBorder(top, nil, nil, nil, tv.table)
	return tv
}

// Update redraws the grid after a dataset, filter or quick-filter
// change.
func (tv *TableView) Update() {
	v := tv.main.View()
	if v == nil {
		tv.rows = nil
		tv.countInfo.SetText("")
		tv.table.Refresh()
		return
	}

	tv.rows = quickFilterRows(v, tv.quick.Text)
	tv.countInfo.SetText(fmt.Sprintf("%d of %d rows", len(tv.rows), v.Source().Rows()))
	tv.sizeColumns(v)
	tv.table.Refresh()
}

// quickFilterRows keeps the view rows whose cells contain the query,
// case-insensitively. An empty query keeps everything.
func quickFilterRows(v *geodata.View, query string) []int {
	rows := make([]int, 0, v.Len())
	query = strings.ToLower(strings.TrimSpace(query))
	names := v.Source().ColumnNames()
	for i := 0; i < v.Len(); i++ {
		if query == "" {
			rows = append(rows, i)
			continue
		}
		for _, name := range names {
			if strings.Contains(strings.ToLower(v.Cell(name, i)), query) {
				rows = append(rows, i)
				break
			}
		}
	}
	return rows
}

func (tv *TableView) sizeColumns(v *geodata.View) {
	for i, col := range v.Source().Columns() {
		width := float32(len(col.Name)) * 9
		if width < 100 {
			width = 100
		}
		tv.table.SetColumnWidth(i, width)
	}
}

// export writes the visible rows to a user-chosen file.
func (tv *TableView) export(format geodata.ExportFormat) {
	v := tv.main.View()
	if v == nil || v.Len() == 0 {
		dialog.ShowInformation("Nothing to Export", "Load a dataset and make sure the filters leave some rows visible", tv.main.w)
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, tv.main.w)
			return
		}
		if writer == nil {
			// User cancelled
			return
		}
		defer writer.Close()
		filePath := writer.URI().Path()

		c := make(chan bool)
		go func(c chan bool) {
			pbi := widget.NewProgressBarInfinite()
			progressDialog := dialog.NewCustomWithoutButtons("Exporting...", pbi, tv.main.w)
			progressDialog.Resize(fyne.NewSize(300, 100))
			progressDialog.Show()
			pbi.Start()
			for {
				select {
				case <-c:
					progressDialog.Hide()
					pbi.Stop()
					return
				default:
					time.Sleep(time.Millisecond * 500)
				}
			}
		}(c)

		exportErr := geodata.Export(v, format, filePath)
		c <- true

		if exportErr != nil {
			dialog.ShowError(fmt.Errorf("export failed: %w", exportErr), tv.main.w)
		} else {
			tv.main.SetStatus("Exported " + filePath)
			dialog.ShowInformation("Export Successful",
				fmt.Sprintf("Data exported successfully to:\n%s", filePath), tv.main.w)
		}
	}, tv.main.w)

	saveDialog.SetFileName(cleanFilename(v.Source().Name) + format.Ext())
	saveDialog.Show()
}

// cleanFilename removes spaces and special characters from a filename.
func cleanFilename(name string) string {
	result := ""
	for _, r := range name {
		if r == ' ' {
			result += "_"
		} else if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result += string(r)
		}
	}
	if result == "" {
		result = "export"
	}
	return result
}

// Content returns the tab's root canvas object.
func (tv *TableView) Content() fyne.CanvasObject { return tv.root }
