package notice

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestShowUpdatesMessage(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	notice := New(app, Config{VisibleFor: time.Hour})
	notice.show("New saved time: 20240101150000")

	assert.Equal(t, "New saved time: 20240101150000", notice.Message())
	assert.Equal(t, "RelStamp", notice.title.Text)
}
