package preferences

import (
	"testing"

	"relstamp/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTripTrackerState(t *testing.T) {
	state := model.TrackerState{Reference: "20240101120000", IncludeCurrentTime: false, SavePerDocument: true}
	assert.Equal(t, state, FromTrackerState(state).TrackerState())
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, Settings{}.Validate())
	assert.NoError(t, Settings{LastTimeStamp: "20240101120000"}.Validate())
	assert.Error(t, Settings{LastTimeStamp: "2024-05-31-12-00-00"}.Validate())
}

func TestWindowSave(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved []Settings
	prefs := New(app, Settings{IncludeCurrentTime: true, SavePerDocument: true}, func(settings Settings) {
		saved = append(saved, settings)
	})

	assert.True(t, prefs.perDocument.Checked)
	test.Tap(prefs.perDocument)
	prefs.lastStamp.SetText(" 20240101120000 ")
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, Settings{LastTimeStamp: "20240101120000", IncludeCurrentTime: true, SavePerDocument: false}, saved[0])
}

func TestWindowRejectsInvalidTimestamp(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	called := false
	prefs := New(app, Settings{}, func(Settings) {
		called = true
	})
	prefs.lastStamp.SetText("yesterday")
	prefs.handleSave()

	assert.False(t, called)
	assert.NotEmpty(t, prefs.status.Text)
}
