package app

import (
	"context"

	"texteditor/internal/clipboard"
	"texteditor/internal/controllers"
	"texteditor/internal/debug/filetracker"
	"texteditor/internal/logger"
	"texteditor/internal/models"
	"texteditor/internal/services"
	"texteditor/internal/shutdown"
	"texteditor/internal/views"
	"texteditor/internal/watcher"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppID         = "com.texteditor.desktop"
	DefaultWidth  = 800
	DefaultHeight = 600
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	view       *views.MainView
	controller *controllers.MainController
	shutdown   *shutdown.Manager
	logger     logger.Logger
	closeLog   func() error
}

// NewApplication wires the editor into a new Fyne application
func NewApplication(config Config) (*Application, error) {
	log, closeLog, err := config.NewLogger()
	if err != nil {
		return nil, err
	}
	application := newApplication(app.NewWithID(AppID), config, log)
	application.closeLog = closeLog
	return application, nil
}

func newApplication(fyneApp fyne.App, config Config, log logger.Logger) *Application {
	window := fyneApp.NewWindow(models.AppTitle)
	window.Resize(fyne.NewSize(DefaultWidth, DefaultHeight))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":     controllers.AppVersion,
		"clipboard":   config.Clipboard,
		"watch_files": config.WatchFiles,
		"track_files": config.TrackFiles,
	})

	tracker := filetracker.NewTracker(log)
	tracker.SetEnabled(config.TrackFiles)
	files := services.NewFileService(tracker, log)
	cb := clipboard.New(config.Clipboard, window.Clipboard(), log)

	controller := controllers.NewMainController(files, cb, log)
	view := views.NewMainView(window)
	controller.SetMainView(view)

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Register("file tracker", tracker)

	if config.WatchFiles {
		w, err := watcher.New(func(path string) {
			fyne.Do(func() {
				controller.ExternalChange(path)
			})
		}, log)
		if err != nil {
			log.Warning("Application", "file watching disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			controller.SetWatcher(w)
			shutdownMgr.Register("watcher", w)
		}
	}

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		view:       view,
		controller: controller,
		shutdown:   shutdownMgr,
		logger:     log,
	}

	application.connectView()
	application.setupWindowEvents()

	log.Info("Application", "initialization complete", nil)
	return application
}

func (a *Application) connectView() {
	c := a.controller

	a.view.SetTextChangeHandler(c.TextChanged)
	a.view.SetMenuActions(views.MenuActions{
		New:          c.New,
		Open:         c.Open,
		Save:         c.Save,
		SaveAs:       func() { c.SaveAs(nil) },
		Exit:         c.Exit,
		Cut:          c.Cut,
		Copy:         c.Copy,
		Paste:        c.Paste,
		About:        c.About,
		ShowAllFiles: c.SetShowAllFiles,
	})
}

// Run shows the window and blocks until the application quits. Cancelling
// ctx or receiving SIGINT/SIGTERM quits without the save prompt.
func (a *Application) Run(ctx context.Context) error {
	stopSignals := a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})
	defer stopSignals()

	go func() {
		select {
		case <-ctx.Done():
			a.logger.Info("Application", "context cancelled, quitting", nil)
			fyne.Do(a.fyneApp.Quit)
		case <-a.shutdown.Done():
		}
	}()

	a.view.Show()
	a.view.FocusEditor()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	if a.closeLog != nil {
		return a.closeLog()
	}
	return nil
}
