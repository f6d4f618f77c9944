package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	menus []*fyne.Menu
	icon  fyne.Resource
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menus = append(host.menus, menu)
}

func (host *fakeHost) SetSystemTrayIcon(icon fyne.Resource) {
	host.icon = icon
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.Failf(t, "menu item missing", "%q", label)
	return nil
}

func TestManagerMenu(t *testing.T) {
	host := &fakeHost{}
	resets := 0
	manager := New(host, Callbacks{OnReset: func() { resets++ }})
	require.Len(t, host.menus, 1)

	menu := host.menus[0]
	assert.True(t, findItem(t, menu, "Insert relative time").Disabled)
	findItem(t, menu, "Reset timestamp").Action()
	findItem(t, menu, "Quit").Action()
	assert.Equal(t, 1, resets)

	manager.SetHasDocument(true)
	manager.SetStatus("3 hours ago")
	latest := host.menus[len(host.menus)-1]
	assert.False(t, findItem(t, latest, "Insert relative time").Disabled)
	assert.False(t, findItem(t, latest, "Save timestamp").Disabled)
	assert.Equal(t, "Reference: 3 hours ago", latest.Items[0].Label)
	assert.Equal(t, "3 hours ago", manager.Status())

	icon := fyne.NewStaticResource("icon.svg", []byte("<svg/>"))
	manager.SetIcon(icon)
	assert.Equal(t, icon, host.icon)
}
