// Package clipboard adapts the host clipboards the editor can use to a
// single text-only interface.
package clipboard

import (
	"sync"

	"fyne.io/fyne/v2"
	sysclip "github.com/atotto/clipboard"

	"texteditor/internal/logger"
)

// Clipboard holds shared text. ReadText reports false when no text is available.
type Clipboard interface {
	ReadText() (string, bool)
	WriteText(text string) error
}

// Fyne uses the clipboard of the running Fyne application
type Fyne struct {
	clipboard fyne.Clipboard
}

func NewFyne(cb fyne.Clipboard) *Fyne {
	return &Fyne{clipboard: cb}
}

func (f *Fyne) ReadText() (string, bool) {
	text := f.clipboard.Content()
	return text, text != ""
}

func (f *Fyne) WriteText(text string) error {
	f.clipboard.SetContent(text)
	return nil
}

// System talks to the operating system clipboard directly
type System struct {
	logger logger.Logger
}

func (s *System) ReadText() (string, bool) {
	text, err := sysclip.ReadAll()
	if err != nil {
		s.logger.Debug("Clipboard", "no text on system clipboard", map[string]interface{}{
			"error": err.Error(),
		})
		return "", false
	}
	return text, text != ""
}

func (s *System) WriteText(text string) error {
	return sysclip.WriteAll(text)
}

// Memory is a process-local clipboard
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ReadText() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, m.text != ""
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.writes++
	return nil
}

// Writes returns how many times the clipboard has been written
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// NewSystem returns the operating system clipboard, or a Memory clipboard
// when no clipboard utility is available on this host.
func NewSystem(log logger.Logger) Clipboard {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if sysclip.Unsupported {
		log.Warning("Clipboard", "system clipboard unsupported, using in-process clipboard", nil)
		return NewMemory()
	}
	return &System{logger: log}
}

// New picks a backend by name: "system" or anything else for Fyne.
func New(backend string, fyneClipboard fyne.Clipboard, log logger.Logger) Clipboard {
	if backend == "system" {
		return NewSystem(log)
	}
	return NewFyne(fyneClipboard)
}

// Bridge exposes a Clipboard as a fyne.Clipboard so widgets can cut, copy
// and paste through it. The last write error is kept for the caller.
type Bridge struct {
	clipboard Clipboard
	err       error
}

func NewBridge(cb Clipboard) *Bridge {
	return &Bridge{clipboard: cb}
}

func (b *Bridge) Content() string {
	text, ok := b.clipboard.ReadText()
	if !ok {
		return ""
	}
	return text
}

func (b *Bridge) SetContent(text string) {
	b.err = b.clipboard.WriteText(text)
}

// Err returns the error from the most recent SetContent
func (b *Bridge) Err() error {
	return b.err
}
