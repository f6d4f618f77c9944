package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnOpenEditor    func()
	OnReset         func()
	OnInsert        func()
	OnSaveSelection func()
	OnPreferences   func()
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	host        Host
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	insertItem  *fyne.MenuItem
	saveItem    *fyne.MenuItem
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(host Host, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Reference: not set", nil)
	manager.statusItem.Disabled = true

	manager.insertItem = fyne.NewMenuItem("Insert relative time", invoke(&manager.callbacks.OnInsert))
	manager.saveItem = fyne.NewMenuItem("Save timestamp", invoke(&manager.callbacks.OnSaveSelection))
	manager.insertItem.Disabled = true
	manager.saveItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Reference: %s", status)
	manager.refreshMenu()
}

// Status returns the status last passed to SetStatus.
func (manager *Manager) Status() string {
	return manager.statusLabel
}

// SetIcon replaces the tray icon.
func (manager *Manager) SetIcon(icon fyne.Resource) {
	if manager.host != nil {
		manager.host.SetSystemTrayIcon(icon)
	}
}

// SetHasDocument toggles the commands that need an active document.
func (manager *Manager) SetHasDocument(hasDocument bool) {
	manager.insertItem.Disabled = !hasDocument
	manager.saveItem.Disabled = !hasDocument
	manager.refreshMenu()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("RelStamp",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open editor", invoke(&manager.callbacks.OnOpenEditor)),
		fyne.NewMenuItem("Reset timestamp", invoke(&manager.callbacks.OnReset)),
		manager.insertItem,
		manager.saveItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.Menu())
	}
}

func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}
