// Package ui is the desktop window. Every widget event becomes one
// tracker command; the window only renders the returned state and message.
package ui

import (
	"context"
	"errors"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/table"
	"expensetracker/internal/tracker"
)

const (
	Title        = "Expense Tracker"
	WindowWidth  = 550
	WindowHeight = 500
)

// Window holds the widgets and the last state returned by the tracker.
type Window struct {
	window fyne.Window
	app    *tracker.App
	logger *applog.Logger
	now    func() time.Time

	exportName string

	nameEntry      *widget.Entry
	amountEntry    *widget.Entry
	dateEntry      *widget.Entry
	categorySelect *widget.Select
	addButton      *widget.Button
	removeButton   *widget.Button
	exportButton   *widget.Button
	summaryButton  *widget.Button
	chartButton    *widget.Button
	table          *widget.Table
	totalLabel     *widget.Label
	filterSelect   *widget.Select

	rows     []table.Row
	visible  []int
	selected selection
}

// New builds the window content. exportName is the file name proposed by
// the save dialog.
func New(window fyne.Window, app *tracker.App, exportName string, logger *applog.Logger) *Window {
	if logger == nil {
		logger = applog.Discard()
	}
	w := &Window{
		window:     window,
		app:        app,
		logger:     logger.WithComponent(applog.ComponentUI),
		now:        time.Now,
		exportName: exportName,
		selected:   selection{},
	}
	w.setupWidgets()
	window.SetContent(w.layout())
	return w
}

func (w *Window) setupWidgets() {
	w.nameEntry = widget.NewEntry()
	w.nameEntry.SetPlaceHolder("Expense Name")

	w.amountEntry = widget.NewEntry()
	w.amountEntry.SetPlaceHolder("Amount (e.g., 50.00)")

	w.dateEntry = widget.NewEntry()
	w.dateEntry.SetPlaceHolder(core.DateLayout)
	w.dateEntry.SetText(core.DateOf(w.now()).String())

	categories := make([]string, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		categories = append(categories, string(c))
	}
	w.categorySelect = widget.NewSelect(categories, nil)
	w.categorySelect.SetSelected(string(core.Other))

	w.addButton = widget.NewButton("Add Expense", w.onAdd)
	w.addButton.Importance = widget.HighImportance
	w.removeButton = widget.NewButton("Remove Selected", w.onRemove)
	w.exportButton = widget.NewButton("Export to Excel", w.onExport)
	w.summaryButton = widget.NewButton("Summary", w.onSummarize)
	w.chartButton = widget.NewButton("Chart", w.onChart)

	w.table = widget.NewTable(
		func() (int, int) { return len(w.visible), len(table.Headers) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		w.updateCell,
	)
	w.table.ShowHeaderRow = true
	w.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Col >= 0 && id.Col < len(table.Headers) {
			o.(*widget.Label).SetText(table.Headers[id.Col])
		}
	}
	w.table.SetColumnWidth(0, 100)
	w.table.SetColumnWidth(1, 200)
	w.table.SetColumnWidth(2, 100)
	w.table.SetColumnWidth(3, 120)
	w.table.OnSelected = w.onRowSelected

	w.totalLabel = widget.NewLabel("Total Expenses: " + core.FormatAmount(core.Summarize(nil).Total))

	w.filterSelect = widget.NewSelect(core.FilterOptions(), w.onFilter)
	w.filterSelect.SetSelected(core.FilterAll)
}

func (w *Window) layout() fyne.CanvasObject {
	form := container.NewVBox(
		widget.NewLabel("Enter Expense Details:"),
		w.nameEntry,
		w.amountEntry,
		w.dateEntry,
		w.categorySelect,
		container.NewGridWithColumns(3, w.addButton, w.removeButton, w.exportButton),
		container.NewGridWithColumns(2, w.summaryButton, w.chartButton),
	)
	footer := container.NewVBox(
		w.totalLabel,
		widget.NewLabel("Filter by Category:"),
		w.filterSelect,
	)
	return container.NewBorder(form, footer, nil, nil, w.table)
}

func (w *Window) updateCell(id widget.TableCellID, o fyne.CanvasObject) {
	label := o.(*widget.Label)
	if id.Row < 0 || id.Row >= len(w.visible) {
		label.SetText("")
		return
	}
	row := w.visible[id.Row]
	label.TextStyle = fyne.TextStyle{Bold: w.selected[row]}
	label.SetText(w.rows[row].Cells()[id.Col])
}

// Load reads the store into the table.
func (w *Window) Load() {
	w.dispatch(tracker.CmdLoad, tracker.Form{})
}

func (w *Window) onAdd() {
	_, msg := w.dispatch(tracker.CmdAdd, tracker.Form{
		Date:     w.dateEntry.Text,
		Name:     w.nameEntry.Text,
		Amount:   w.amountEntry.Text,
		Category: w.categorySelect.Selected,
	})
	if msg.Severity != tracker.SeverityError {
		w.nameEntry.SetText("")
		w.amountEntry.SetText("")
	}
}

func (w *Window) onRemove() {
	w.dispatch(tracker.CmdRemove, tracker.Form{Selected: w.selected.indices()})
}

func (w *Window) onFilter(value string) {
	w.dispatch(tracker.CmdFilter, tracker.Form{Filter: value})
}

func (w *Window) onSummarize() {
	w.dispatch(tracker.CmdSummarize, tracker.Form{})
}

func (w *Window) onChart() {
	st, _ := w.dispatch(tracker.CmdChart, tracker.Form{})
	if st.Chart != nil {
		w.showChart(st.Chart.Path)
	}
}

func (w *Window) onExport() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			w.showError(err)
			return
		}
		path := ""
		if writer != nil {
			path = writer.URI().Path()
			// The exporter writes the file itself.
			if err := writer.Close(); err != nil {
				w.showError(err)
				return
			}
		}
		w.exportTo(path)
	}, w.window)
	d.SetFileName(w.exportName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx"}))
	d.Show()
}

// exportTo runs the export command; an empty path means the dialog was
// dismissed.
func (w *Window) exportTo(path string) {
	w.dispatch(tracker.CmdExport, tracker.Form{ExportPath: path})
}

func (w *Window) onRowSelected(id widget.TableCellID) {
	if id.Row >= 0 && id.Row < len(w.visible) {
		w.selected.toggle(w.visible[id.Row])
	}
	w.table.UnselectAll()
	w.table.Refresh()
}

func (w *Window) dispatch(cmd tracker.Command, form tracker.Form) (tracker.State, tracker.Message) {
	st, msg := w.app.HandleCommand(context.Background(), cmd, form)
	w.render(cmd, st)
	w.showMessage(msg)
	return st, msg
}

func (w *Window) render(cmd tracker.Command, st tracker.State) {
	if cmd != tracker.CmdFilter && len(st.Rows) != len(w.rows) {
		w.selected.clear()
	}
	w.rows = st.Rows
	w.visible = visibleRows(st.Rows)
	w.totalLabel.SetText(st.TotalLabel)
	w.table.Refresh()
}

func (w *Window) showMessage(msg tracker.Message) {
	switch msg.Severity {
	case tracker.SeverityError:
		w.showError(errors.New(msg.Text))
	case tracker.SeverityInfo:
		dialog.ShowInformation(msg.Title, msg.Text, w.window)
	}
}

func (w *Window) showError(err error) {
	w.logger.Debug("Showing error dialog", applog.FieldError, err)
	dialog.ShowError(err, w.window)
}

func (w *Window) showChart(path string) {
	img := canvas.NewImageFromFile(path)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(800, 400))

	chartWindow := fyne.CurrentApp().NewWindow("Monthly Net Balance")
	chartWindow.SetContent(img)
	chartWindow.Show()
}
