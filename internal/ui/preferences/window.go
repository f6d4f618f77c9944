package preferences

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	perDocument *widget.Check
	includeTime *widget.Check
	lastStamp   *widget.Entry
	status      *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("RelStamp Settings")

	perDocument := widget.NewCheck("Save timestamps by page", nil)
	includeTime := widget.NewCheck("Include current time", nil)

	lastStamp := widget.NewEntry()
	lastStamp.SetPlaceHolder("YYYYMMDDHHmmss")
	lastStamp.Validator = func(value string) error {
		return Settings{LastTimeStamp: strings.TrimSpace(value)}.Validate()
	}

	status := widget.NewLabel("")
	status.Wrapping = fyne.TextWrapWord

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		perDocument,
		includeTime,
		widget.NewLabel("Last used timestamp"),
		widget.NewLabelWithStyle("Timestamp to be used for relative comparison", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
		lastStamp,
		status,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 300))

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		perDocument: perDocument,
		includeTime: includeTime,
		lastStamp:   lastStamp,
		status:      status,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.perDocument.SetChecked(settings.SavePerDocument)
	prefs.includeTime.SetChecked(settings.IncludeCurrentTime)
	prefs.lastStamp.SetText(settings.LastTimeStamp)
	prefs.status.SetText("")
}

func (prefs *Window) handleSave() {
	settings := Settings{
		LastTimeStamp:      strings.TrimSpace(prefs.lastStamp.Text),
		IncludeCurrentTime: prefs.includeTime.Checked,
		SavePerDocument:    prefs.perDocument.Checked,
	}
	if err := settings.Validate(); err != nil {
		prefs.status.SetText("Last used timestamp must look like 20240101150000.")
		return
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
