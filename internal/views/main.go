package views

import (
	"fmt"

	"texteditor/internal/clipboard"
	"texteditor/internal/models"
	"texteditor/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	savePromptTitle   = "Save?"
	savePromptMessage = "Do you wish to save."
	untitledFileName  = "Untitled.txt"
)

// MenuActions are the handlers behind the menu bar, connected by the controller
type MenuActions struct {
	New          func()
	Open         func()
	Save         func()
	SaveAs       func()
	Exit         func()
	Cut          func()
	Copy         func()
	Paste        func()
	About        func()
	ShowAllFiles func(bool)
}

// MainView is the editor window: menu bar, text box and status bar.
// All methods must be called on the Fyne UI goroutine.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	textArea      *components.TextArea
	statusBar     *components.StatusBar
	showAllItem   *fyne.MenuItem

	actions MenuActions
}

// NewMainView creates a new main view
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()
	view.buildMenu()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.textArea = components.NewTextArea()
	mv.statusBar = components.NewStatusBar()
	mv.textArea.SetCursorHandler(mv.statusBar.SetPosition)
	mv.textArea.SetKeyHandler(mv.triggerKey)
}

func (mv *MainView) buildLayout() {
	mv.mainContainer = container.NewBorder(
		nil,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.textArea.GetContainer(),
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) buildMenu() {
	exitItem := menuItem("Exit", shortcut(fyne.KeyF4, fyne.KeyModifierAlt), func() { call(mv.actions.Exit) })
	exitItem.IsQuit = true

	mv.showAllItem = fyne.NewMenuItem("Show All Files", func() {
		mv.showAllItem.Checked = !mv.showAllItem.Checked
		mv.window.MainMenu().Refresh()
		if mv.actions.ShowAllFiles != nil {
			mv.actions.ShowAllFiles(mv.showAllItem.Checked)
		}
	})

	fileMenu := fyne.NewMenu("File",
		menuItem("New", shortcut(fyne.KeyN, fyne.KeyModifierShortcutDefault), func() { call(mv.actions.New) }),
		menuItem("Open...", shortcut(fyne.KeyO, fyne.KeyModifierShortcutDefault), func() { call(mv.actions.Open) }),
		menuItem("Save", shortcut(fyne.KeyS, fyne.KeyModifierShortcutDefault), func() { call(mv.actions.Save) }),
		menuItem("Save As...", shortcut(fyne.KeyS, fyne.KeyModifierShortcutDefault|fyne.KeyModifierShift), func() { call(mv.actions.SaveAs) }),
		fyne.NewMenuItemSeparator(),
		mv.showAllItem,
		fyne.NewMenuItemSeparator(),
		exitItem,
	)

	// the clipboard shortcuts carry the names the driver gives Ctrl+X/C/V,
	// so the menu handles them ahead of the focused text box
	editMenu := fyne.NewMenu("Edit",
		menuItem("Cut", &fyne.ShortcutCut{}, func() { call(mv.actions.Cut) }),
		menuItem("Copy", &fyne.ShortcutCopy{}, func() { call(mv.actions.Copy) }),
		menuItem("Paste", &fyne.ShortcutPaste{}, func() { call(mv.actions.Paste) }),
	)

	helpMenu := fyne.NewMenu("Help",
		menuItem("About", shortcut(fyne.KeyF1, 0), func() { call(mv.actions.About) }),
	)

	mv.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
	mv.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		mv.triggerKey(key.Name)
	})
}

func menuItem(label string, sc fyne.Shortcut, action func()) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, action)
	item.Shortcut = sc
	return item
}

func shortcut(key fyne.KeyName, modifier fyne.KeyModifier) *desktop.CustomShortcut {
	return &desktop.CustomShortcut{KeyName: key, Modifier: modifier}
}

// triggerKey runs the menu item bound to an unmodified key. The driver
// only matches menu shortcuts that carry a modifier.
func (mv *MainView) triggerKey(name fyne.KeyName) bool {
	menu := mv.window.MainMenu()
	if menu == nil {
		return false
	}
	for _, m := range menu.Items {
		for _, item := range m.Items {
			sc, ok := item.Shortcut.(*desktop.CustomShortcut)
			if !ok || sc.Modifier != 0 || sc.KeyName != name || item.Action == nil {
				continue
			}
			item.Action()
			return true
		}
	}
	return false
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

// SetMenuActions connects the menu bar to its handlers
func (mv *MainView) SetMenuActions(actions MenuActions) {
	mv.actions = actions
}

// SetTextChangeHandler sets the handler for edits in the text box
func (mv *MainView) SetTextChangeHandler(handler func(string)) {
	mv.textArea.SetChangeHandler(handler)
}

// SetWindowTitle updates the window title
func (mv *MainView) SetWindowTitle(title string) {
	mv.window.SetTitle(title)
}

// SetEditorText replaces the contents of the text box
func (mv *MainView) SetEditorText(text string) {
	mv.textArea.SetText(text)
}

// EditorText returns the contents of the text box
func (mv *MainView) EditorText() string {
	return mv.textArea.Text()
}

// SelectedText returns the highlighted text of the text box
func (mv *MainView) SelectedText() string {
	return mv.textArea.SelectedText()
}

// CopySelection puts the highlighted text on cb
func (mv *MainView) CopySelection(cb clipboard.Clipboard) error {
	bridge := clipboard.NewBridge(cb)
	mv.textArea.Copy(bridge)
	return bridge.Err()
}

// CutSelection puts the highlighted text on cb and deletes it. Nothing is
// deleted when cb refuses the text.
func (mv *MainView) CutSelection(cb clipboard.Clipboard) error {
	if err := cb.WriteText(mv.textArea.SelectedText()); err != nil {
		return err
	}
	mv.textArea.Cut(clipboard.NewBridge(clipboard.NewMemory()))
	return nil
}

// PasteClipboard replaces the highlighted text, or inserts at the cursor,
// with the text on cb
func (mv *MainView) PasteClipboard(cb clipboard.Clipboard) {
	mv.textArea.Paste(clipboard.NewBridge(cb))
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// AskSave shows the Yes/No/Cancel save prompt. Dismissing it counts as Cancel.
func (mv *MainView) AskSave(callback func(models.SaveChoice)) {
	var prompt *dialog.CustomDialog
	answered := false

	answer := func(choice models.SaveChoice) func() {
		return func() {
			if answered {
				return
			}
			answered = true
			prompt.Hide()
			callback(choice)
		}
	}

	yes := widget.NewButton("Yes", answer(models.SaveYes))
	yes.Importance = widget.HighImportance
	no := widget.NewButton("No", answer(models.SaveNo))
	cancel := widget.NewButton("Cancel", answer(models.SaveCancel))

	prompt = dialog.NewCustomWithoutButtons(savePromptTitle, widget.NewLabel(savePromptMessage), mv.window)
	prompt.SetButtons([]fyne.CanvasObject{cancel, no, yes})
	prompt.SetOnClosed(answer(models.SaveCancel))
	prompt.Show()
}

// ShowOpenDialog asks for a file to open
func (mv *MainView) ShowOpenDialog(filter models.FileFilter, callback func(string, error)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			callback("", err)
			return
		}
		if reader == nil {
			callback("", nil)
			return
		}
		path := reader.URI().Path()
		reader.Close()
		callback(path, nil)
	}, mv.window)

	applyFilter(fd, filter)
	fd.Show()
}

// ShowSaveDialog asks for a file to save to
func (mv *MainView) ShowSaveDialog(filter models.FileFilter, callback func(string, error)) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			callback("", err)
			return
		}
		if writer == nil {
			callback("", nil)
			return
		}
		path := writer.URI().Path()
		writer.Close()
		callback(path, nil)
	}, mv.window)

	applyFilter(fd, filter)
	fd.SetFileName(untitledFileName)
	fd.Show()
}

func applyFilter(fd *dialog.FileDialog, filter models.FileFilter) {
	if filter.AcceptsAll() {
		return
	}
	fd.SetFilter(storage.NewExtensionFileFilter(filter.Extensions))
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), mv.window)
}

// ShowAbout displays application information
func (mv *MainView) ShowAbout(appName, version, description string) {
	content := container.NewVBox(
		widget.NewLabel(appName),
		widget.NewLabel(fmt.Sprintf("Version: %s", version)),
		widget.NewLabel(""),
		widget.NewLabel(description),
	)

	dialog.ShowCustom("About", "Close", content, mv.window)
}

// FocusEditor puts keyboard focus in the text box
func (mv *MainView) FocusEditor() {
	mv.textArea.Focus(mv.window)
}

// Show displays the view
func (mv *MainView) Show() {
	mv.window.Show()
}

// Close closes the window
func (mv *MainView) Close() {
	mv.window.Close()
}

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

// GetStatus returns the status bar message
func (mv *MainView) GetStatus() string {
	return mv.statusBar.GetStatus()
}
