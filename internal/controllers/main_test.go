package controllers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"texteditor/internal/clipboard"
	"texteditor/internal/debug/filetracker"
	"texteditor/internal/models"
	"texteditor/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeView answers every dialog synchronously from scripted values.
// Its text box selection is the rune range [selStart, selStart+selLength).
type fakeView struct {
	title     string
	text      string
	selStart  int
	selLength int
	cursor    int
	status    string
	onChange  func(string)

	answers []models.SaveChoice
	prompts int

	openPath    string
	openDialogs int
	savePath    string
	saveDialogs int
	lastFilter  models.FileFilter

	errors []error
	about  string
	closed bool
}

func (v *fakeView) SetWindowTitle(title string) {
	v.title = title
}

func (v *fakeView) SetEditorText(text string) {
	v.text = text
	v.selectRange(0, 0)
}

func (v *fakeView) UpdateStatus(status string) {
	v.status = status
}

func (v *fakeView) ShowError(_ string, err error) {
	v.errors = append(v.errors, err)
}

func (v *fakeView) ShowAbout(name, version, _ string) {
	v.about = name + " " + version
}

func (v *fakeView) Close() {
	v.closed = true
}

func (v *fakeView) selectRange(start, length int) {
	v.selStart, v.selLength = start, length
	v.cursor = start + length
}

func (v *fakeView) SelectedText() string {
	runes := []rune(v.text)
	return string(runes[v.selStart : v.selStart+v.selLength])
}

func (v *fakeView) CopySelection(cb clipboard.Clipboard) error {
	return cb.WriteText(v.SelectedText())
}

func (v *fakeView) CutSelection(cb clipboard.Clipboard) error {
	if err := cb.WriteText(v.SelectedText()); err != nil {
		return err
	}
	v.replaceSelection("")
	return nil
}

func (v *fakeView) PasteClipboard(cb clipboard.Clipboard) {
	text, ok := cb.ReadText()
	if !ok {
		return
	}
	v.replaceSelection(text)
}

func (v *fakeView) replaceSelection(text string) {
	runes := []rune(v.text)
	out := string(runes[:v.selStart]) + text + string(runes[v.selStart+v.selLength:])
	v.selectRange(v.selStart+len([]rune(text)), 0)
	v.text = out
	if v.onChange != nil {
		v.onChange(out)
	}
}

func (v *fakeView) AskSave(callback func(models.SaveChoice)) {
	v.prompts++
	choice := models.SaveCancel
	if len(v.answers) > 0 {
		choice = v.answers[0]
		v.answers = v.answers[1:]
	}
	callback(choice)
}

func (v *fakeView) ShowOpenDialog(filter models.FileFilter, callback func(string, error)) {
	v.openDialogs++
	v.lastFilter = filter
	callback(v.openPath, nil)
}

func (v *fakeView) ShowSaveDialog(filter models.FileFilter, callback func(string, error)) {
	v.saveDialogs++
	v.lastFilter = filter
	callback(v.savePath, nil)
}

type fakeWatcher struct {
	watched string
	cleared int
}

func (w *fakeWatcher) Watch(path string) error {
	w.watched = path
	return nil
}

func (w *fakeWatcher) Clear() {
	w.watched = ""
	w.cleared++
}

// refusingClipboard rejects every write
type refusingClipboard struct{}

func (refusingClipboard) ReadText() (string, bool) {
	return "", false
}

func (refusingClipboard) WriteText(string) error {
	return errors.New("clipboard locked")
}

type fixture struct {
	ctrl    *MainController
	view    *fakeView
	clip    *clipboard.Memory
	tracker *filetracker.Tracker
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tracker := filetracker.NewTracker(nil)
	clip := clipboard.NewMemory()
	ctrl := NewMainController(services.NewFileService(tracker, nil), clip, nil)
	view := &fakeView{onChange: ctrl.TextChanged}
	ctrl.SetMainView(view)

	return &fixture{ctrl: ctrl, view: view, clip: clip, tracker: tracker, dir: t.TempDir()}
}

// typeText simulates the user editing the text box
func (f *fixture) typeText(text string) {
	f.view.text = text
	f.ctrl.TextChanged(text)
}

func (f *fixture) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (f *fixture) open(t *testing.T, path string) {
	t.Helper()
	f.view.openPath = path
	f.ctrl.Open()
	require.Equal(t, path, f.ctrl.Document().Path)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(raw)
}

func TestInitialTitle(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "Text Editor", f.view.title)
}

func TestNewOnEmptyUntitledDocumentDoesNotPrompt(t *testing.T) {
	f := newFixture(t)

	f.ctrl.New()

	assert.Zero(t, f.view.prompts)
	assert.Equal(t, "", f.ctrl.Document().Text)
	assert.Equal(t, "", f.ctrl.Document().Path)
	assert.Equal(t, "Text Editor", f.view.title)
}

func TestExitCancelKeepsApplicationOpen(t *testing.T) {
	f := newFixture(t)
	f.typeText("hello")
	f.view.answers = []models.SaveChoice{models.SaveCancel}

	f.ctrl.Exit()

	assert.Equal(t, 1, f.view.prompts)
	assert.False(t, f.view.closed)
	assert.Equal(t, "hello", f.ctrl.Document().Text)
	assert.Equal(t, "hello", f.view.text)
}

func TestExitWithoutChangesCloses(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Exit()

	assert.Zero(t, f.view.prompts)
	assert.True(t, f.view.closed)
}

func TestExitDiscardCloses(t *testing.T) {
	f := newFixture(t)
	f.typeText("hello")
	f.view.answers = []models.SaveChoice{models.SaveNo}

	f.ctrl.Exit()

	assert.Equal(t, 1, f.view.prompts)
	assert.Zero(t, f.view.saveDialogs)
	assert.True(t, f.view.closed)
}

func TestOpenSavesModifiedDocumentFirst(t *testing.T) {
	f := newFixture(t)
	a := f.writeFile(t, "a.txt", "hello")
	b := f.writeFile(t, "b.txt", "second file")

	f.open(t, a)
	assert.Equal(t, "hello", f.ctrl.Document().Text)
	assert.Zero(t, f.view.prompts)

	f.typeText("hello world")
	f.view.answers = []models.SaveChoice{models.SaveYes}
	f.view.openPath = b
	f.ctrl.Open()

	assert.Equal(t, 1, f.view.prompts)
	assert.Equal(t, "hello world", readFile(t, a))
	assert.Equal(t, b, f.ctrl.Document().Path)
	assert.Equal(t, "second file", f.ctrl.Document().Text)
	assert.Equal(t, "second file", f.view.text)
	assert.Equal(t, "Text Editor - "+b, f.view.title)
	assert.Empty(t, f.tracker.GetOpenFiles())
	assert.Empty(t, f.view.errors)
}

func TestUnmodifiedDocumentNeverPrompts(t *testing.T) {
	f := newFixture(t)
	a := f.writeFile(t, "a.txt", "hello")
	f.open(t, a)

	f.view.openPath = a
	f.ctrl.Open()
	f.ctrl.Exit()
	assert.True(t, f.view.closed)

	f.ctrl.New()
	assert.Zero(t, f.view.prompts)
	assert.Equal(t, "", f.ctrl.Document().Path)
	assert.Equal(t, "Text Editor", f.view.title)
}

func TestCancelLeavesEverythingUnchanged(t *testing.T) {
	for name, action := range map[string]func(*MainController){
		"new":  (*MainController).New,
		"open": (*MainController).Open,
		"exit": (*MainController).Exit,
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			a := f.writeFile(t, "a.txt", "hello")
			f.open(t, a)
			f.typeText("hello world")
			f.view.openPath = f.writeFile(t, "b.txt", "other")
			openDialogs := f.view.openDialogs

			f.view.answers = []models.SaveChoice{models.SaveCancel}
			action(f.ctrl)

			assert.Equal(t, 1, f.view.prompts)
			assert.Equal(t, "hello world", f.ctrl.Document().Text)
			assert.Equal(t, a, f.ctrl.Document().Path)
			assert.Equal(t, "hello", readFile(t, a))
			assert.Equal(t, openDialogs, f.view.openDialogs)
			assert.False(t, f.view.closed)
		})
	}
}

func TestDiscardKeepsDiskUntouched(t *testing.T) {
	f := newFixture(t)
	a := f.writeFile(t, "a.txt", "hello")
	f.open(t, a)
	f.typeText("hello world")
	f.view.answers = []models.SaveChoice{models.SaveNo}

	f.ctrl.New()

	assert.Equal(t, 1, f.view.prompts)
	assert.Equal(t, "hello", readFile(t, a))
	assert.Equal(t, "", f.ctrl.Document().Text)
	assert.Equal(t, "", f.ctrl.Document().Path)
}

func TestUntitledYesRunsSaveAs(t *testing.T) {
	f := newFixture(t)
	f.typeText("draft")
	target := filepath.Join(f.dir, "draft.txt")
	f.view.savePath = target
	f.view.answers = []models.SaveChoice{models.SaveYes}

	f.ctrl.New()

	assert.Equal(t, 1, f.view.prompts)
	assert.Equal(t, 1, f.view.saveDialogs)
	assert.Equal(t, "draft", readFile(t, target))
	assert.Equal(t, "", f.ctrl.Document().Text, "new document follows the save")
	assert.Equal(t, "", f.ctrl.Document().Path)
}

func TestUntitledYesWithCancelledSaveAsAborts(t *testing.T) {
	f := newFixture(t)
	f.typeText("draft")
	f.view.answers = []models.SaveChoice{models.SaveYes}

	f.ctrl.Exit()

	assert.Equal(t, 1, f.view.saveDialogs)
	assert.False(t, f.view.closed)
	assert.Equal(t, "draft", f.ctrl.Document().Text)
	assert.Equal(t, "", f.ctrl.Document().Path)
}

func TestMissingFileIsTreatedAsModified(t *testing.T) {
	f := newFixture(t)
	a := f.writeFile(t, "a.txt", "hello")
	f.open(t, a)
	require.NoError(t, os.Remove(a))

	f.view.answers = []models.SaveChoice{models.SaveYes}
	f.ctrl.Exit()

	assert.Equal(t, 1, f.view.prompts)
	assert.True(t, f.view.closed)
	assert.Equal(t, "hello", readFile(t, a))
}

func TestFailedSaveAbortsAction(t *testing.T) {
	f := newFixture(t)
	f.typeText("draft")
	f.view.savePath = filepath.Join(f.dir, "missing", "draft.txt")
	f.view.answers = []models.SaveChoice{models.SaveYes}

	f.ctrl.Exit()

	assert.False(t, f.view.closed)
	assert.Len(t, f.view.errors, 1)
	assert.Equal(t, "draft", f.ctrl.Document().Text)
	assert.Equal(t, "", f.ctrl.Document().Path)
	assert.Equal(t, "Text Editor", f.view.title)
}

func TestSaveWithPathWritesDirectly(t *testing.T) {
	f := newFixture(t)
	a := f.writeFile(t, "a.txt", "hello")
	f.open(t, a)
	f.typeText("line one\r\nline two")

	f.ctrl.Save()

	assert.Zero(t, f.view.saveDialogs)
	assert.Equal(t, "line one\r\nline two", readFile(t, a))
	assert.Equal(t, "Saved "+a, f.view.status)
}

func TestSaveWithoutPathDelegatesToSaveAs(t *testing.T) {
	f := newFixture(t)
	f.typeText("fresh")
	target := filepath.Join(f.dir, "fresh.txt")
	f.view.savePath = target

	f.ctrl.Save()

	assert.Equal(t, 1, f.view.saveDialogs)
	assert.Equal(t, target, f.ctrl.Document().Path)
	assert.Equal(t, "Text Editor - "+target, f.view.title)
	assert.Equal(t, "fresh", readFile(t, target))
}

func TestSaveAsCancelledLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	a := f.writeFile(t, "a.txt", "hello")
	f.open(t, a)
	f.typeText("changed")

	f.ctrl.SaveAs(nil)

	assert.Equal(t, a, f.ctrl.Document().Path)
	assert.Equal(t, "Text Editor - "+a, f.view.title)
	assert.Equal(t, "hello", readFile(t, a))
}

func TestOpenCancelledKeepsDocument(t *testing.T) {
	f := newFixture(t)
	f.typeText("draft")
	f.view.answers = []models.SaveChoice{models.SaveNo}

	f.ctrl.Open()

	assert.Equal(t, 1, f.view.openDialogs)
	assert.Equal(t, "draft", f.ctrl.Document().Text)
}

func TestOpenUnreadableFileShowsError(t *testing.T) {
	f := newFixture(t)
	f.view.openPath = filepath.Join(f.dir, "missing.txt")

	f.ctrl.Open()

	assert.Len(t, f.view.errors, 1)
	assert.Equal(t, "", f.ctrl.Document().Path)
	assert.Equal(t, "Text Editor", f.view.title)
}

func TestCopyAndCutWithoutSelectionDoNothing(t *testing.T) {
	f := newFixture(t)
	f.typeText("hello world")
	f.view.selectRange(3, 0)

	f.ctrl.Copy()
	f.ctrl.Cut()

	assert.Zero(t, f.clip.Writes())
	assert.Equal(t, "hello world", f.ctrl.Document().Text)
}

func TestCopySelection(t *testing.T) {
	f := newFixture(t)
	f.typeText("hello world")
	f.view.selectRange(6, 5)

	f.ctrl.Copy()

	text, ok := f.clip.ReadText()
	assert.True(t, ok)
	assert.Equal(t, "world", text)
	assert.Equal(t, "hello world", f.ctrl.Document().Text)
}

func TestCutSelection(t *testing.T) {
	f := newFixture(t)
	f.typeText("hello world")
	f.view.selectRange(5, 6)

	f.ctrl.Cut()

	text, _ := f.clip.ReadText()
	assert.Equal(t, " world", text)
	assert.Equal(t, "hello", f.ctrl.Document().Text)
	assert.Equal(t, "hello", f.view.text)
	assert.Equal(t, 5, f.view.cursor)
}

func TestCutThenCopyLeavesClipboard(t *testing.T) {
	f := newFixture(t)
	f.typeText("abc def ghi")
	f.view.selectRange(4, 3)

	f.ctrl.Cut()
	f.ctrl.Copy()

	text, _ := f.clip.ReadText()
	assert.Equal(t, "def", text)
	assert.Equal(t, 1, f.clip.Writes())
	assert.Equal(t, "abc  ghi", f.ctrl.Document().Text)
}

func TestCutKeepsTextWhenClipboardRefuses(t *testing.T) {
	tracker := filetracker.NewTracker(nil)
	ctrl := NewMainController(services.NewFileService(tracker, nil), refusingClipboard{}, nil)
	view := &fakeView{onChange: ctrl.TextChanged}
	ctrl.SetMainView(view)
	view.text = "hello world"
	ctrl.TextChanged(view.text)
	view.selectRange(0, 5)

	ctrl.Cut()
	ctrl.Copy()

	assert.Len(t, view.errors, 2)
	assert.Equal(t, "hello world", ctrl.Document().Text)
	assert.Equal(t, "hello world", view.text)
}

func TestPasteReplacesSelection(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.clip.WriteText("there"))
	f.typeText("hello world")
	f.view.selectRange(6, 5)

	f.ctrl.Paste()

	assert.Equal(t, "hello there", f.ctrl.Document().Text)
	assert.Equal(t, "hello there", f.view.text)
	assert.Equal(t, 11, f.view.cursor)
}

func TestPasteAtCursor(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.clip.WriteText(","))
	f.typeText("hello world")
	f.view.selectRange(5, 0)

	f.ctrl.Paste()

	assert.Equal(t, "hello, world", f.ctrl.Document().Text)
	assert.Equal(t, 6, f.view.cursor)
}

func TestPasteWithoutClipboardTextDoesNothing(t *testing.T) {
	f := newFixture(t)
	f.typeText("hello world")
	f.view.selectRange(0, 5)

	f.ctrl.Paste()

	assert.Equal(t, "hello world", f.ctrl.Document().Text)
	assert.Equal(t, "hello", f.view.SelectedText())
}

func TestAbout(t *testing.T) {
	f := newFixture(t)

	f.ctrl.About()

	assert.Equal(t, "Text Editor 1.0.0", f.view.about)
}

func TestFileFilterSelection(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Open()
	assert.Equal(t, models.TextFilesFilter.Label, f.view.lastFilter.Label)

	f.ctrl.SetShowAllFiles(true)
	f.ctrl.SaveAs(nil)
	assert.True(t, f.view.lastFilter.AcceptsAll())

	f.ctrl.SetShowAllFiles(false)
	assert.Equal(t, models.TextFilesFilter.Label, f.ctrl.FileFilter().Label)
}

func TestWatcherFollowsDocumentPath(t *testing.T) {
	f := newFixture(t)
	w := &fakeWatcher{}
	f.ctrl.SetWatcher(w)
	a := f.writeFile(t, "a.txt", "hello")

	f.open(t, a)
	assert.Equal(t, a, w.watched)

	f.ctrl.New()
	assert.Equal(t, "", w.watched)
	assert.Equal(t, 1, w.cleared)
}

func TestExternalChangeUpdatesStatus(t *testing.T) {
	f := newFixture(t)
	a := f.writeFile(t, "a.txt", "hello")
	f.open(t, a)

	f.ctrl.ExternalChange(a)
	assert.Equal(t, "Opened "+a, f.view.status, "disk still matches")

	require.NoError(t, os.WriteFile(a, []byte("edited elsewhere"), 0o644))
	f.ctrl.ExternalChange(filepath.Join(f.dir, "other.txt"))
	assert.Equal(t, "Opened "+a, f.view.status)

	f.ctrl.ExternalChange(a)
	assert.Equal(t, "File changed on disk", f.view.status)
}
