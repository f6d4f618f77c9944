// Package notice surfaces short confirmations in a borderless window and as
// desktop notifications.
package notice

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const defaultVisibleFor = 3 * time.Second

// Config defines notice visuals and timing.
type Config struct {
	Title      string
	Opacity    uint8
	VisibleFor time.Duration
	Desktop    bool
}

// Window shows notices. It implements tracker.Notifier.
type Window struct {
	app     fyne.App
	window  fyne.Window
	config  Config
	title   *canvas.Text
	message *canvas.Text

	mu         sync.Mutex
	generation int
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden notice window.
func New(app fyne.App, config Config) *Window {
	if config.VisibleFor <= 0 {
		config.VisibleFor = defaultVisibleFor
	}
	if config.Title == "" {
		config.Title = "RelStamp"
	}

	window := app.NewWindow(config.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 20, G: 24, B: 32, A: config.Opacity})

	title := canvas.NewText(config.Title, color.NRGBA{R: 120, G: 170, B: 240, A: 255})
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 14

	message := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	message.TextSize = 16

	content := container.NewPadded(container.NewVBox(title, message))
	window.SetContent(container.NewStack(background, content))

	return &Window{
		app:     app,
		window:  window,
		config:  config,
		title:   title,
		message: message,
	}
}

// Notify shows message for the configured duration. Safe from any goroutine.
func (notice *Window) Notify(message string) {
	notice.mu.Lock()
	notice.generation++
	generation := notice.generation
	notice.mu.Unlock()

	fyne.Do(func() {
		notice.show(message)
	})
	if notice.config.Desktop {
		notice.app.SendNotification(fyne.NewNotification(notice.config.Title, message))
	}

	time.AfterFunc(notice.config.VisibleFor, func() {
		notice.mu.Lock()
		current := notice.generation == generation
		notice.mu.Unlock()
		if current {
			fyne.Do(notice.window.Hide)
		}
	})
}

// Message returns the text of the most recent notice.
func (notice *Window) Message() string {
	return notice.message.Text
}

func (notice *Window) show(message string) {
	notice.message.Text = message
	notice.message.Refresh()
	notice.window.Resize(notice.window.Content().MinSize().Add(fyne.NewSize(48, 24)))
	notice.window.CenterOnScreen()
	notice.window.Show()
}
