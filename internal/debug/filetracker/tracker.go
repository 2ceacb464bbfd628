package filetracker

import (
	"runtime"
	"sync"
	"time"

	"texteditor/internal/logger"
)

type FileInfo struct {
	Path       string
	Handle     uintptr
	Mode       string
	OpenedAt   time.Time
	StackTrace []uintptr
}

// Tracker records document file handles between open and close, so that a
// write can be refused while a read of the same path is still in flight.
type Tracker struct {
	openFiles map[string]FileInfo
	mu        sync.RWMutex
	logger    logger.Logger
	enabled   bool
}

func NewTracker(log logger.Logger) *Tracker {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Tracker{
		openFiles: make(map[string]FileInfo),
		logger:    log,
		enabled:   true,
	}
}

func (ft *Tracker) TrackOpen(path string, handle uintptr, mode string) {
	if ft == nil || !ft.isEnabled() {
		return
	}

	ft.mu.Lock()
	defer ft.mu.Unlock()

	var pcs [16]uintptr
	n := runtime.Callers(2, pcs[:])

	info := FileInfo{
		Path:       path,
		Handle:     handle,
		Mode:       mode,
		OpenedAt:   time.Now(),
		StackTrace: pcs[:n],
	}

	ft.openFiles[path] = info

	ft.logger.Debug("FileTracker", "file opened", map[string]interface{}{
		"path":   path,
		"handle": handle,
		"mode":   mode,
	})
}

func (ft *Tracker) TrackClose(path string, handle uintptr) {
	if ft == nil || !ft.isEnabled() {
		return
	}

	ft.mu.Lock()
	defer ft.mu.Unlock()

	if info, exists := ft.openFiles[path]; exists && info.Handle == handle {
		delete(ft.openFiles, path)

		ft.logger.Debug("FileTracker", "file closed", map[string]interface{}{
			"path":     path,
			"handle":   handle,
			"duration": time.Since(info.OpenedAt).String(),
		})
	}
}

// IsOpen reports whether path currently has a tracked handle
func (ft *Tracker) IsOpen(path string) bool {
	if ft == nil {
		return false
	}
	ft.mu.RLock()
	defer ft.mu.RUnlock()

	_, exists := ft.openFiles[path]
	return exists
}

func (ft *Tracker) GetOpenFiles() map[string]FileInfo {
	ft.mu.RLock()
	defer ft.mu.RUnlock()

	result := make(map[string]FileInfo)
	for k, v := range ft.openFiles {
		result[k] = v
	}
	return result
}

// Shutdown reports every handle still open
func (ft *Tracker) Shutdown() {
	for path, info := range ft.GetOpenFiles() {
		ft.logger.Warning("FileTracker", "file handle still open at shutdown", map[string]interface{}{
			"path":     path,
			"mode":     info.Mode,
			"open_for": time.Since(info.OpenedAt).String(),
		})
	}
}

func (ft *Tracker) SetEnabled(enabled bool) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.enabled = enabled
}

func (ft *Tracker) isEnabled() bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.enabled
}
