package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"relstamp/internal/core/stamp"
	"relstamp/internal/core/tracker"
	"relstamp/internal/document"
	"relstamp/internal/logs"
	"relstamp/internal/platform"
	"relstamp/internal/storage"
	"relstamp/internal/ui/editor"
	"relstamp/internal/ui/notice"
	"relstamp/internal/ui/preferences"
	"relstamp/internal/ui/tray"
	"relstamp/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName        = "RelStamp"
	statusInterval = 30 * time.Second
)

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		request := "show"
		if len(os.Args) > 1 {
			if absolute, absErr := filepath.Abs(os.Args[1]); absErr == nil {
				request = "open " + absolute
			}
		}
		if signalErr := platform.SignalRunning(appName, request); signalErr != nil {
			log.Printf("signal running instance: %v", signalErr)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		log.Printf("config dir: %v", err)
		return
	}
	logger, closeLog, err := logs.New(logs.Options{
		Terminal: os.Stderr,
		FilePath: filepath.Join(configDir, "relstamp.log"),
	})
	if err != nil {
		log.Printf("logger: %v", err)
		return
	}
	defer func() {
		_ = closeLog()
	}()

	store := storage.NewStore(configDir)
	state, err := store.Load()
	if err != nil {
		logger.Warn("load settings, using defaults", "path", store.Path(), "error", err)
	}

	ctx := context.Background()
	fyneApp := app.NewWithID("com.relstamp.app")
	fyneApp.SetIcon(resources.MustLogo(resources.LogoActive))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error("system tray unsupported on this platform")
		return
	}

	noticeWindow := notice.New(fyneApp, notice.Config{Opacity: 230, Desktop: true})

	var (
		keeper      *tracker.Tracker
		watcher     *document.Watcher
		trayManager *tray.Manager
	)

	editorWindow := editor.New(fyneApp, editor.Callbacks{
		OnOpened: func(path string) {
			if err := keeper.OnDocumentOpened(ctx, path); err != nil {
				logger.Warn("read document metadata", "document", path, "error", err)
			}
			if watcher != nil {
				if err := watcher.Watch(path); err != nil {
					logger.Warn("watch document", "document", path, "error", err)
				}
			}
			trayManager.SetHasDocument(true)
		},
		OnInsert: func() {
			_, err := keeper.InsertRelative(ctx)
			reportError(noticeWindow, logger, err)
		},
		OnSaveSelection: func() {
			reportError(noticeWindow, logger, keeper.SaveSelection(ctx))
		},
		OnReset: func() {
			reportError(noticeWindow, logger, keeper.Reset(ctx))
		},
		OnError: func(err error) {
			reportError(noticeWindow, logger, err)
		},
	})

	keeper = tracker.New(state, tracker.Ports{
		Editor:   editorWindow,
		Metadata: document.NewMetadataStore(),
		Settings: store,
		Notifier: noticeWindow,
	}, tracker.Options{Logger: logger})
	defer keeper.Close()

	watcher, err = document.NewWatcher(func(path string) {
		if err := keeper.OnMetadataChanged(ctx, path); err != nil {
			logger.Warn("read document metadata", "document", path, "error", err)
		}
	}, document.WatcherOptions{Logger: logger})
	if err != nil {
		logger.Warn("document watcher disabled", "error", err)
	} else {
		defer watcher.Close()
	}

	prefsWindow := preferences.New(fyneApp, preferences.FromTrackerState(keeper.State()), func(updated preferences.Settings) {
		applyPreferences(ctx, keeper, noticeWindow, logger, updated)
	})

	activeIcon := resources.MustLogo(resources.LogoActive)
	idleIcon := resources.MustLogo(resources.LogoIdle)

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnOpenEditor: func() {
			editorWindow.Show()
		},
		OnReset: func() {
			reportError(noticeWindow, logger, keeper.Reset(ctx))
		},
		OnInsert: func() {
			_, err := keeper.InsertRelative(ctx)
			reportError(noticeWindow, logger, err)
		},
		OnSaveSelection: func() {
			reportError(noticeWindow, logger, keeper.SaveSelection(ctx))
		},
		OnPreferences: func() {
			prefsWindow.UpdateSettings(preferences.FromTrackerState(keeper.State()))
			prefsWindow.Show()
		},
		OnQuit: func() {
			if err := editorWindow.SaveIfDirty(); err != nil {
				reportError(noticeWindow, logger, err)
				return
			}
			fyneApp.Quit()
		},
	})

	refreshStatus := func() {
		reference := keeper.Reference()
		trayManager.SetStatus(describeReference(reference, time.Now()))
		if reference == "" {
			trayManager.SetIcon(idleIcon)
		} else {
			trayManager.SetIcon(activeIcon)
		}
	}
	refreshStatus()

	events := keeper.Subscribe(8)
	go func() {
		for event := range events {
			logger.Debug("tracker event", "type", event.Type, "reference", event.Reference, "document", event.Document)
			fyne.Do(refreshStatus)
		}
	}()

	go func() {
		ticker := time.NewTicker(statusInterval)
		defer ticker.Stop()
		for range ticker.C {
			fyne.Do(refreshStatus)
		}
	}()

	go guard.Serve(func(request string) {
		fyne.Do(func() {
			handleRequest(request, editorWindow, noticeWindow, logger)
		})
	})

	if len(os.Args) > 1 {
		reportError(noticeWindow, logger, editorWindow.Open(os.Args[1]))
	}
	editorWindow.Show()
	fyneApp.Run()
}

func handleRequest(request string, editorWindow *editor.Window, noticeWindow *notice.Window, logger *slog.Logger) {
	if path, ok := strings.CutPrefix(request, "open "); ok {
		reportError(noticeWindow, logger, editorWindow.Open(path))
	}
	editorWindow.Show()
}

func applyPreferences(ctx context.Context, keeper *tracker.Tracker, noticeWindow *notice.Window, logger *slog.Logger, updated preferences.Settings) {
	current := keeper.State()
	if updated.SavePerDocument != current.SavePerDocument {
		reportError(noticeWindow, logger, keeper.SetSavePerDocument(ctx, updated.SavePerDocument))
	}
	if updated.IncludeCurrentTime != current.IncludeCurrentTime {
		reportError(noticeWindow, logger, keeper.SetIncludeCurrentTime(ctx, updated.IncludeCurrentTime))
	}
	if updated.LastTimeStamp != current.Reference {
		reportError(noticeWindow, logger, keeper.SetReference(ctx, updated.LastTimeStamp))
	}
}

func reportError(noticeWindow *notice.Window, logger *slog.Logger, err error) {
	if err == nil {
		return
	}
	logger.Warn("command failed", "error", err)
	switch {
	case errors.Is(err, tracker.ErrNoActiveDocument):
		noticeWindow.Notify("Open a document first.")
	case errors.Is(err, tracker.ErrParse):
		noticeWindow.Notify("Select a time like 03:00 PM.")
	case errors.Is(err, tracker.ErrPersist):
		noticeWindow.Notify("Could not save: " + err.Error())
	default:
		noticeWindow.Notify(err.Error())
	}
}

func describeReference(reference string, now time.Time) string {
	if reference == "" {
		return "not set"
	}
	parsed, err := stamp.Parse(reference, now.Location())
	if err != nil {
		return reference
	}
	return stamp.Humanize(parsed.Sub(now))
}
