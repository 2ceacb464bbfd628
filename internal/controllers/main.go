package controllers

import (
	"fmt"
	"path/filepath"

	"texteditor/internal/clipboard"
	"texteditor/internal/logger"
	"texteditor/internal/models"
	"texteditor/internal/services"
)

const (
	AppName        = models.AppTitle
	AppVersion     = "1.0.0"
	AppDescription = "A small editor for plain text files."
)

// MainController owns the document and runs every menu action
type MainController struct {
	doc       *models.Document
	files     *services.FileService
	clipboard clipboard.Clipboard
	watcher   Watcher
	logger    logger.Logger

	mainView View
	filter   models.FileFilter
}

func NewMainController(files *services.FileService, cb clipboard.Clipboard, log logger.Logger) *MainController {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &MainController{
		doc:       models.NewDocument(),
		files:     files,
		clipboard: cb,
		logger:    log,
		filter:    models.TextFilesFilter,
	}
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	mc.refreshTitle()
}

// SetWatcher enables external change notices for the open file
func (mc *MainController) SetWatcher(w Watcher) {
	mc.watcher = w
}

// Document returns the document being edited
func (mc *MainController) Document() *models.Document {
	return mc.doc
}

// TextChanged records an edit made in the text box
func (mc *MainController) TextChanged(text string) {
	mc.doc.Text = text
}

// SetShowAllFiles switches the file dialogs between text files and all files
func (mc *MainController) SetShowAllFiles(all bool) {
	if all {
		mc.filter = models.AllFilesFilter
	} else {
		mc.filter = models.TextFilesFilter
	}
}

// FileFilter returns the filter applied to the file dialogs
func (mc *MainController) FileFilter() models.FileFilter {
	return mc.filter
}

// ConfirmClose decides whether a destructive action may go ahead and
// reports the decision to next exactly once. The document is saved first
// when the user asks for it.
func (mc *MainController) ConfirmClose(next func(proceed bool)) {
	if !mc.doc.HasPath() {
		if mc.doc.Text == "" {
			next(true)
			return
		}
		mc.askSave(next, func() {
			mc.SaveAs(next)
		})
		return
	}

	changed, err := mc.files.Differs(mc.doc.Path, mc.doc.Text)
	if err != nil {
		mc.logger.Warning("MainController", "saved copy unreadable, treating document as modified", map[string]interface{}{
			"path":  mc.doc.Path,
			"error": err.Error(),
		})
	}
	if !changed {
		next(true)
		return
	}

	mc.askSave(next, func() {
		next(mc.saveFile())
	})
}

func (mc *MainController) askSave(next func(bool), save func()) {
	mc.mainView.AskSave(func(choice models.SaveChoice) {
		mc.logger.Debug("MainController", "save prompt answered", map[string]interface{}{
			"choice": choice.String(),
		})

		switch choice {
		case models.SaveYes:
			save()
		case models.SaveNo:
			next(true)
		default:
			next(false)
		}
	})
}

// New clears the document after confirmation
func (mc *MainController) New() {
	mc.ConfirmClose(func(proceed bool) {
		if !proceed {
			return
		}
		mc.doc.Reset()
		mc.mainView.SetEditorText("")
		mc.followPath()
		mc.refreshTitle()
		mc.mainView.UpdateStatus("New document")
	})
}

// Open replaces the document with a file chosen by the user
func (mc *MainController) Open() {
	mc.ConfirmClose(func(proceed bool) {
		if !proceed {
			return
		}
		mc.mainView.ShowOpenDialog(mc.filter, func(path string, err error) {
			if err != nil {
				mc.handleError("Open failed", err)
				return
			}
			if path == "" {
				return
			}
			mc.openFile(path)
		})
	})
}

func (mc *MainController) openFile(path string) {
	text, err := mc.files.Read(path)
	if err != nil {
		mc.handleError("Open failed", err)
		return
	}

	mc.doc.Path = path
	mc.refreshTitle()
	mc.doc.Text = text
	mc.mainView.SetEditorText(text)
	mc.followPath()
	mc.mainView.UpdateStatus(fmt.Sprintf("Opened %s", path))

	mc.logger.Info("MainController", "document opened", map[string]interface{}{
		"path":  path,
		"bytes": len(text),
	})
}

// Save writes the document to its file, or asks for one first
func (mc *MainController) Save() {
	if mc.doc.HasPath() {
		mc.saveFile()
		return
	}
	mc.SaveAs(nil)
}

// SaveAs asks for a file, adopts it as the document path and saves.
// done, when set, learns whether the document ended up on disk.
func (mc *MainController) SaveAs(done func(saved bool)) {
	finish := func(saved bool) {
		if done != nil {
			done(saved)
		}
	}

	mc.mainView.ShowSaveDialog(mc.filter, func(path string, err error) {
		if err != nil {
			mc.handleError("Save failed", err)
			finish(false)
			return
		}
		if path == "" {
			finish(false)
			return
		}

		previous := mc.doc.Path
		mc.doc.Path = path
		mc.refreshTitle()
		if !mc.saveFile() {
			mc.doc.Path = previous
			mc.refreshTitle()
			finish(false)
			return
		}
		mc.followPath()
		finish(true)
	})
}

func (mc *MainController) saveFile() bool {
	if err := mc.files.Write(mc.doc.Path, mc.doc.Text); err != nil {
		mc.handleError("Save failed", err)
		return false
	}

	mc.mainView.UpdateStatus(fmt.Sprintf("Saved %s", mc.doc.Path))
	mc.logger.Info("MainController", "document saved", map[string]interface{}{
		"path":  mc.doc.Path,
		"bytes": len(mc.doc.Text),
	})
	return true
}

// Exit closes the window after confirmation
func (mc *MainController) Exit() {
	mc.ConfirmClose(func(proceed bool) {
		if !proceed {
			mc.logger.Debug("MainController", "exit cancelled", nil)
			return
		}
		mc.logger.Info("MainController", "closing main window", nil)
		mc.mainView.Close()
	})
}

// Copy puts the selected text on the clipboard
func (mc *MainController) Copy() {
	if mc.mainView.SelectedText() == "" {
		return
	}
	if err := mc.mainView.CopySelection(mc.clipboard); err != nil {
		mc.handleError("Clipboard unavailable", err)
	}
}

// Cut copies the selected text and removes it from the document. The
// text box reports the edit back through TextChanged.
func (mc *MainController) Cut() {
	if mc.mainView.SelectedText() == "" {
		return
	}
	if err := mc.mainView.CutSelection(mc.clipboard); err != nil {
		mc.handleError("Clipboard unavailable", err)
	}
}

// Paste replaces the selection, if any, with the clipboard text
func (mc *MainController) Paste() {
	if _, ok := mc.clipboard.ReadText(); !ok {
		return
	}
	mc.mainView.PasteClipboard(mc.clipboard)
}

// About shows the application information dialog
func (mc *MainController) About() {
	mc.mainView.ShowAbout(AppName, AppVersion, AppDescription)
}

// ExternalChange is called when the file at path was modified outside
// the editor. It must run on the UI goroutine.
func (mc *MainController) ExternalChange(path string) {
	if !mc.doc.HasPath() || !samePath(path, mc.doc.Path) {
		return
	}
	changed, err := mc.files.Differs(mc.doc.Path, mc.doc.Text)
	if err != nil {
		mc.logger.Warning("MainController", "open file no longer readable", map[string]interface{}{
			"path":  mc.doc.Path,
			"error": err.Error(),
		})
	}
	if changed {
		mc.mainView.UpdateStatus("File changed on disk")
	}
}

func (mc *MainController) refreshTitle() {
	if mc.mainView != nil {
		mc.mainView.SetWindowTitle(mc.doc.Title())
	}
}

func (mc *MainController) followPath() {
	if mc.watcher == nil {
		return
	}
	if !mc.doc.HasPath() {
		mc.watcher.Clear()
		return
	}
	if err := mc.watcher.Watch(mc.doc.Path); err != nil {
		mc.logger.Warning("MainController", "cannot watch file", map[string]interface{}{
			"path":  mc.doc.Path,
			"error": err.Error(),
		})
	}
}

func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{
		"action": title,
	})
	mc.mainView.ShowError(title, err)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
