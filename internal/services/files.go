package services

import (
	"errors"
	"fmt"
	"io"
	"os"

	"texteditor/internal/debug/filetracker"
	"texteditor/internal/logger"
)

var (
	// ErrNoPath is returned when a direct save is attempted on an untitled document
	ErrNoPath = errors.New("document has no file path")
	// ErrHandleOpen is returned when a path is written while a handle on it is still open
	ErrHandleOpen = errors.New("file handle still open")
)

// FileService reads and writes document files verbatim. Every handle it
// opens is released before the call returns.
type FileService struct {
	tracker *filetracker.Tracker
	logger  logger.Logger
}

func NewFileService(tracker *filetracker.Tracker, log logger.Logger) *FileService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &FileService{
		tracker: tracker,
		logger:  log,
	}
}

// Read returns the full contents of path
func (fs *FileService) Read(path string) (string, error) {
	if path == "" {
		return "", ErrNoPath
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	handle := file.Fd()
	fs.tracker.TrackOpen(path, handle, "read")
	defer func() {
		file.Close()
		fs.tracker.TrackClose(path, handle)
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	fs.logger.Debug("FileService", "file read", map[string]interface{}{
		"path":  path,
		"bytes": len(data),
	})
	return string(data), nil
}

// Write creates or truncates path and stores text unchanged
func (fs *FileService) Write(path, text string) error {
	if path == "" {
		return ErrNoPath
	}
	if fs.tracker.IsOpen(path) {
		return fmt.Errorf("write %s: %w", path, ErrHandleOpen)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	handle := file.Fd()
	fs.tracker.TrackOpen(path, handle, "write")

	_, writeErr := io.WriteString(file, text)
	closeErr := file.Close()
	fs.tracker.TrackClose(path, handle)

	if writeErr != nil {
		return fmt.Errorf("write %s: %w", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", path, closeErr)
	}

	fs.logger.Debug("FileService", "file written", map[string]interface{}{
		"path":  path,
		"bytes": len(text),
	})
	return nil
}

// Differs reports whether the contents of path differ from text. The read
// handle is closed before Differs returns, so a save may follow directly.
func (fs *FileService) Differs(path, text string) (bool, error) {
	onDisk, err := fs.Read(path)
	if err != nil {
		return true, err
	}
	return onDisk != text, nil
}
