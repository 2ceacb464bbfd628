package controllers

import (
	"texteditor/internal/clipboard"
	"texteditor/internal/models"
)

// View is the part of the main window the controller drives. Dialog
// methods return immediately and report the user's answer through the
// callback; an empty path means the dialog was dismissed.
type View interface {
	SetWindowTitle(title string)
	SetEditorText(text string)
	SelectedText() string
	CutSelection(cb clipboard.Clipboard) error
	CopySelection(cb clipboard.Clipboard) error
	PasteClipboard(cb clipboard.Clipboard)
	UpdateStatus(status string)

	AskSave(callback func(models.SaveChoice))
	ShowOpenDialog(filter models.FileFilter, callback func(path string, err error))
	ShowSaveDialog(filter models.FileFilter, callback func(path string, err error))
	ShowError(title string, err error)
	ShowAbout(name, version, description string)
	Close()
}

// Watcher follows the file behind the open document
type Watcher interface {
	Watch(path string) error
	Clear()
}
