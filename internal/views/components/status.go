package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const readyStatus = "Ready"

// StatusBar displays the last action and the cursor position
type StatusBar struct {
	container    *fyne.Container
	statusLabel  *widget.Label
	positionInfo *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel(readyStatus)
	sb.positionInfo = widget.NewLabel(formatPosition(0, 0))
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		layout.NewSpacer(),
		sb.positionInfo,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetPosition shows a zero-based cursor position as one-based line and column
func (sb *StatusBar) SetPosition(row, col int) {
	sb.positionInfo.SetText(formatPosition(row, col))
}

// GetPosition returns the position text
func (sb *StatusBar) GetPosition() string {
	return sb.positionInfo.Text
}

// Reset resets the status bar to initial state
func (sb *StatusBar) Reset() {
	sb.statusLabel.SetText(readyStatus)
	sb.positionInfo.SetText(formatPosition(0, 0))
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func formatPosition(row, col int) string {
	return fmt.Sprintf("Ln %d, Col %d", row+1, col+1)
}
