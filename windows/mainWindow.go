package windows

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"geodash/auth"
	"geodash/config"
	"geodash/geodata"
)

// MainWindow is the application shell. It swaps between the login view
// and the dashboard depending on the session state and owns the loaded
// dataset, the active filters and the filtered view shared by the tabs.
type MainWindow struct {
	a      fyne.App
	w      fyne.Window
	cfg    config.Config
	log    *zap.Logger
	gate   *auth.Gate
	loader *geodata.Loader

	dataset *geodata.Dataset
	filters geodata.FilterSpec
	view    *geodata.View

	content   *fyne.Container
	docTabs   *container.DocTabs
	sidebar   *Sidebar
	mapView   *MapView
	chartView *ChartView
	tableView *TableView
	statusBar *widget.Label
}

func CreateMainWindow(cfg config.Config, log *zap.Logger, gate *auth.Gate, loader *geodata.Loader) *MainWindow {
	var v MainWindow
	v.cfg = cfg
	v.log = log
	v.gate = gate
	v.loader = loader
	v.NewMainWindow()
	return &v
}

// SetStatus updates the status bar message
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

func (t *MainWindow) NewMainWindow() {
	t.a = app.NewWithID("geodash")
	t.a.Settings().SetTheme(&CustomTheme{})
	t.w = t.a.NewWindow("Geospatial Data Dashboard")
	t.w.Resize(fyne.NewSize(1100, 750))

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}

	t.filters = geodata.FilterSpec{}
	t.content = container.NewStack()
	t.w.SetContent(t.content)

	t.Refresh()
	t.w.ShowAndRun()
}

// Refresh re-evaluates the session and swaps the window content. Every
// navigation and auth action funnels through here, so an expired
// session falls back to the login view on its next interaction.
func (t *MainWindow) Refresh() {
	session, ok := t.gate.Guard()
	if !ok {
		t.log.Debug("showing login view", zap.String("state", session.State.String()))
		t.content.Objects = []fyne.CanvasObject{newLoginView(t)}
		t.content.Refresh()
		return
	}
	t.content.Objects = []fyne.CanvasObject{t.dashboard(session.Username)}
	t.content.Refresh()
}

func (t *MainWindow) dashboard(username string) fyne.CanvasObject {
	if t.sidebar == nil {
		t.sidebar = NewSidebar(t)
		t.mapView = NewMapView(t)
		t.chartView = NewChartView(t)
		t.tableView = NewTableView(t)

		t.docTabs = container.NewDocTabs(
			container.NewTabItem("Map View", t.mapView.Content()),
			container.NewTabItem("Data Analysis", t.chartView.Content()),
			container.NewTabItem("Data Table", t.tableView.Content()),
		)
		// The three core tabs are permanent.
		t.docTabs.CloseIntercept = func(ti *container.TabItem) {}
	}

	top := widget.NewToolbar(
		widget.NewToolbarAction(theme.MenuIcon(), func() {
			if t.sidebar.Visible() {
				t.sidebar.Hide()
			} else {
				t.sidebar.Show()
			}
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.HomeIcon(), func() {
			t.ResetDashboard()
		}),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			t.OpenDataset()
		}),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.LogoutIcon(), func() {
			t.Logout()
		}),
	)

	user := widget.NewLabel("Signed in as " + username)
	user.TextStyle = fyne.TextStyle{Italic: true}
	bottom := container.NewBorder(nil, nil, t.statusBar, user)

	return container.NewBorder(top, bottom, t.sidebar.Content(), nil,
		widget.NewCard("", "", t.docTabs))
}

// OpenDataset shows the dataset file picker and loads the selection.
func (t *MainWindow) OpenDataset() {
	dd := NewDatasetDialog(t.w, func(path string, err error) {
		if err != nil {
			t.SetStatus("Error selecting dataset")
			dialog.ShowError(err, t.w)
			return
		}
		if path == "" {
			return
		}
		t.LoadDataset(path, func() (*geodata.Dataset, error) {
			return t.loader.LoadFile(path)
		})
	})
	dd.Show()
}

// LoadDataset runs a load function behind a progress dialog and installs
// the result as the active dataset.
func (t *MainWindow) LoadDataset(name string, load func() (*geodata.Dataset, error)) {
	if _, ok := t.gate.Guard(); !ok {
		t.Refresh()
		return
	}

	t.SetStatus("Loading " + name + "...")
	c := make(chan bool)
	go func(c chan bool) {
		pbi := widget.NewProgressBarInfinite()
		di := dialog.NewCustomWithoutButtons(fmt.Sprintf("Loading %s...", name), pbi, t.w)
		di.Resize(fyne.NewSize(300, 100))
		di.Show()
		pbi.Start()
		for {
			select {
			case <-c:
				di.Hide()
				pbi.Stop()
				return
			default:
				time.Sleep(time.Millisecond * 500)
			}
		}
	}(c)

	ds, err := load()
	c <- true
	if err != nil {
		t.log.Error("dataset load failed", zap.String("name", name), zap.Error(err))
		t.SetStatus("Error loading dataset")
		dialog.ShowError(err, t.w)
		return
	}
	t.SetDataset(ds)
}

// SetDataset installs a dataset, clears the filters and refreshes every
// tab.
func (t *MainWindow) SetDataset(ds *geodata.Dataset) {
	t.dataset = ds
	t.filters = geodata.FilterSpec{}
	t.view = geodata.Apply(ds, nil)
	t.log.Info("dataset loaded",
		zap.String("name", ds.Name),
		zap.Int("rows", ds.Rows()),
		zap.Int("columns", len(ds.Columns())),
		zap.Bool("geometry", ds.HasGeometry()))

	t.sidebar.SetDataset(ds)
	t.refreshViews()
	t.SetStatus(fmt.Sprintf("Loaded %s (%d rows, %d columns)", ds.Name, ds.Rows(), len(ds.Columns())))
}

// ApplyFilters recomputes the view from the sidebar's filter spec.
func (t *MainWindow) ApplyFilters(spec geodata.FilterSpec) {
	if t.dataset == nil {
		return
	}
	t.filters = spec
	t.view = geodata.Apply(t.dataset, spec)
	t.refreshViews()
	if len(spec) == 0 {
		t.SetStatus(fmt.Sprintf("Showing all %d rows", t.view.Len()))
	} else {
		t.SetStatus(fmt.Sprintf("Showing %d of %d rows (%d filters)",
			t.view.Len(), t.dataset.Rows(), len(spec)))
	}
}

// ResetDashboard drops the dataset and filters, returning to the empty
// dashboard without touching the session.
func (t *MainWindow) ResetDashboard() {
	t.dataset = nil
	t.view = nil
	t.filters = geodata.FilterSpec{}
	if t.sidebar != nil {
		t.sidebar.SetDataset(nil)
	}
	t.refreshViews()
	t.SetStatus("Ready")
}

// View returns the current filtered view, nil before a dataset loads.
func (t *MainWindow) View() *geodata.View {
	return t.view
}

// Dataset returns the active dataset, nil before one loads.
func (t *MainWindow) Dataset() *geodata.Dataset {
	return t.dataset
}

func (t *MainWindow) refreshViews() {
	if t.mapView != nil {
		t.mapView.Update()
	}
	if t.chartView != nil {
		t.chartView.Update()
	}
	if t.tableView != nil {
		t.tableView.Update()
	}
}

// Logout ends the session and returns to the login view. The loaded
// dataset is dropped with the dashboard widgets.
func (t *MainWindow) Logout() {
	user, _ := t.gate.CurrentUser()
	t.gate.Logout()
	t.log.Info("user logged out", zap.String("username", user))

	t.dataset = nil
	t.view = nil
	t.filters = geodata.FilterSpec{}
	t.sidebar = nil
	t.mapView = nil
	t.chartView = nil
	t.tableView = nil
	t.docTabs = nil

	t.SetStatus("Ready")
	t.Refresh()
}

// Window exposes the underlying fyne window for dialogs.
func (t *MainWindow) Window() fyne.Window {
	return t.w
}
