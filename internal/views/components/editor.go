package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// editorEntry is a multi-line entry that offers unmodified keys to a
// handler before editing with them, so menu accelerators such as F1
// still fire while the text box has focus.
type editorEntry struct {
	widget.Entry

	onKey func(fyne.KeyName) bool
}

func newEditorEntry() *editorEntry {
	e := &editorEntry{}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapOff
	e.ExtendBaseWidget(e)
	return e
}

func (e *editorEntry) TypedKey(key *fyne.KeyEvent) {
	if e.onKey != nil && e.onKey(key.Name) {
		return
	}
	e.Entry.TypedKey(key)
}

// TextArea is the multiline text box holding the document
type TextArea struct {
	entry *editorEntry

	changeHandler func(string)
	cursorHandler func(row, col int)
}

// NewTextArea creates an empty text area
func NewTextArea() *TextArea {
	ta := &TextArea{}
	ta.createComponents()
	return ta
}

func (ta *TextArea) createComponents() {
	ta.entry = newEditorEntry()

	ta.entry.OnChanged = func(text string) {
		if ta.changeHandler != nil {
			ta.changeHandler(text)
		}
	}
	ta.entry.OnCursorChanged = func() {
		if ta.cursorHandler != nil {
			ta.cursorHandler(ta.entry.CursorRow, ta.entry.CursorColumn)
		}
	}
}

// SetChangeHandler sets the handler for edits to the text
func (ta *TextArea) SetChangeHandler(handler func(string)) {
	ta.changeHandler = handler
}

// SetCursorHandler sets the handler for cursor movement
func (ta *TextArea) SetCursorHandler(handler func(row, col int)) {
	ta.cursorHandler = handler
}

// SetKeyHandler sets the handler offered every typed key first.
// Returning true consumes the key.
func (ta *TextArea) SetKeyHandler(handler func(fyne.KeyName) bool) {
	ta.entry.onKey = handler
}

// SetText replaces the whole text
func (ta *TextArea) SetText(text string) {
	ta.entry.SetText(text)
}

// Text returns the whole text
func (ta *TextArea) Text() string {
	return ta.entry.Text
}

// SelectedText returns the highlighted text, empty when nothing is selected
func (ta *TextArea) SelectedText() string {
	return ta.entry.SelectedText()
}

// Cut moves the selection to cb
func (ta *TextArea) Cut(cb fyne.Clipboard) {
	ta.entry.TypedShortcut(&fyne.ShortcutCut{Clipboard: cb})
}

// Copy puts the selection on cb
func (ta *TextArea) Copy(cb fyne.Clipboard) {
	ta.entry.TypedShortcut(&fyne.ShortcutCopy{Clipboard: cb})
}

// Paste replaces the selection, or inserts at the cursor, with the text on cb
func (ta *TextArea) Paste(cb fyne.Clipboard) {
	ta.entry.TypedShortcut(&fyne.ShortcutPaste{Clipboard: cb})
}

// Focus gives the text area keyboard focus inside window
func (ta *TextArea) Focus(window fyne.Window) {
	window.Canvas().Focus(ta.entry)
}

// GetContainer returns the text area widget
func (ta *TextArea) GetContainer() fyne.CanvasObject {
	return ta.entry
}
