package windows

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"geodash/geodata"
)

const computeTemplate = `func(row map[string]interface{}) interface{} {
	// row holds every column value: float64, string or time.Time.
	// Return a number, string or time for the new column; nil for missing.
	return nil
}`

// showComputeDialog lets the user add a derived column from a Go
// snippet evaluated per row.
func showComputeDialog(t *MainWindow) {
	if t.Dataset() == nil {
		dialog.ShowInformation("No Dataset", "Load a dataset before adding a computed column", t.w)
		return
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Column name")

	codeEntry := widget.NewMultiLineEntry()
	codeEntry.TextStyle = fyne.TextStyle{Monospace: true}
	codeEntry.SetText(computeTemplate)

	content := container.NewBorder(nameEntry, nil, nil, nil, codeEntry)

	d := dialog.NewCustomConfirm("Computed Column", "Add", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		if nameEntry.Text == "" {
			dialog.ShowError(fmt.Errorf("column name must not be empty"), t.w)
			return
		}

		fn, err := geodata.CompileRowFunc(codeEntry.Text)
		if err != nil {
			t.SetStatus("Error compiling column expression")
			dialog.ShowError(err, t.w)
			return
		}
		if err := geodata.DeriveColumn(t.Dataset(), nameEntry.Text, fn); err != nil {
			t.SetStatus("Error computing column")
			dialog.ShowError(err, t.w)
			return
		}

		// New column: rebuild the filter controls and re-apply.
		t.sidebar.SetDataset(t.Dataset())
		t.ApplyFilters(geodata.FilterSpec{})
		t.SetStatus(fmt.Sprintf("Added column %q", nameEntry.Text))
	}, t.w)
	d.Resize(fyne.NewSize(600, 450))
	d.Show()
}
