package windows

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"geodash/geodata"
)

type DatasetDialog struct {
	dialog      dialog.Dialog
	window      fyne.Window
	callback    func(string, error)
	fileList    *widget.List
	files       []string
	homeDir     string
	currentPath string
	pathLabel   *widget.Label
}

func NewDatasetDialog(w fyne.Window, callback func(string, error)) *DatasetDialog {
	dd := &DatasetDialog{
		window:   w,
		callback: callback,
		files:    make([]string, 0),
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	dd.homeDir = homeDir
	dd.currentPath = homeDir

	return dd
}

func (dd *DatasetDialog) Show() {
	dd.pathLabel = widget.NewLabel(dd.currentPath)
	dd.pathLabel.Wrapping = fyne.TextTruncate
	dd.pathLabel.TextStyle = fyne.TextStyle{Bold: true}

	dd.fileList = widget.NewList(
		func() int {
			return len(dd.files)
		},
		func() fyne.CanvasObject {
			icon := widget.NewIcon(theme.DocumentIcon())
			label := widget.NewLabel("template")
			return container.NewHBox(icon, label)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			cont := obj.(*fyne.Container)
			icon := cont.Objects[0].(*widget.Icon)
			label := cont.Objects[1].(*widget.Label)

			fileName := dd.files[id]
			label.SetText(fileName)

			fullPath := filepath.Join(dd.currentPath, fileName)
			fileInfo, err := os.Stat(fullPath)
			if err == nil && fileInfo.IsDir() {
				icon.SetResource(theme.FolderIcon())
			} else {
				icon.SetResource(theme.DocumentIcon())
			}
		},
	)

	dd.fileList.OnSelected = func(id widget.ListItemID) {
		fileName := dd.files[id]
		fullPath := filepath.Join(dd.currentPath, fileName)

		fileInfo, err := os.Stat(fullPath)
		if err != nil {
			return
		}

		if fileInfo.IsDir() {
			dd.currentPath = fullPath
			dd.loadDirectory()
			dd.fileList.UnselectAll()
		} else {
			dd.callback(fullPath, nil)
			dd.dialog.Hide()
		}
	}

	homeButton := widget.NewButtonWithIcon("Home", theme.HomeIcon(), func() {
		dd.currentPath = dd.homeDir
		dd.loadDirectory()
	})

	upButton := widget.NewButtonWithIcon("Up", theme.NavigateBackIcon(), func() {
		parent := filepath.Dir(dd.currentPath)
		if parent != dd.currentPath {
			dd.currentPath = parent
			dd.loadDirectory()
		}
	})

	refreshButton := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		dd.loadDirectory()
	})

	filterInfo := widget.NewLabel("Showing: GeoJSON, CSV, shapefile, zip and parquet files, and directories")
	filterInfo.TextStyle = fyne.TextStyle{Italic: true}

	navToolbar := container.NewBorder(
		nil, nil,
		container.NewHBox(homeButton, upButton, refreshButton),
		nil,
		dd.pathLabel,
	)

	instructions := widget.NewRichTextFromMarkdown("**Select a dataset file**\n\nClick a folder to navigate, or click a file to load it.")
	instructions.Wrapping = fyne.TextWrapWord

	content := container.NewBorder(
		container.NewVBox(
			instructions,
			widget.NewSeparator(),
			navToolbar,
			widget.NewSeparator(),
			filterInfo,
		),
		nil, nil, nil,
		dd.fileList,
	)

	dd.dialog = dialog.NewCustom("Open Dataset", "Close", content, dd.window)
	dd.dialog.Resize(fyne.NewSize(800, 600))

	dd.loadDirectory()
	dd.dialog.Show()
}

func (dd *DatasetDialog) loadDirectory() {
	entries, err := os.ReadDir(dd.currentPath)
	if err != nil {
		dialog.ShowError(err, dd.window)
		return
	}

	dd.files = make([]string, 0)

	// Directories first, then loadable dataset files.
	for _, entry := range entries {
		if entry.IsDir() && !isHidden(entry.Name()) {
			dd.files = append(dd.files, entry.Name())
		}
	}
	for _, entry := range entries {
		if !entry.IsDir() && geodata.DetectFormat(entry.Name()) != geodata.FormatUnknown {
			dd.files = append(dd.files, entry.Name())
		}
	}

	dd.pathLabel.SetText(dd.currentPath)
	dd.fileList.Refresh()
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
