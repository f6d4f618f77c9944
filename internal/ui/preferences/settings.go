package preferences

import (
	"relstamp/internal/core/model"
	"relstamp/internal/core/stamp"
)

// Settings defines editable user preferences.
type Settings struct {
	LastTimeStamp      string
	IncludeCurrentTime bool
	SavePerDocument    bool
}

// FromTrackerState copies tracker state into editable settings.
func FromTrackerState(state model.TrackerState) Settings {
	return Settings{
		LastTimeStamp:      state.Reference,
		IncludeCurrentTime: state.IncludeCurrentTime,
		SavePerDocument:    state.SavePerDocument,
	}
}

// TrackerState converts settings to tracker state.
func (settings Settings) TrackerState() model.TrackerState {
	return model.TrackerState{
		Reference:          settings.LastTimeStamp,
		IncludeCurrentTime: settings.IncludeCurrentTime,
		SavePerDocument:    settings.SavePerDocument,
	}
}

// Validate reports whether the settings can be applied.
func (settings Settings) Validate() error {
	if settings.LastTimeStamp != "" && !stamp.Valid(settings.LastTimeStamp) {
		_, err := stamp.Parse(settings.LastTimeStamp, nil)
		return err
	}
	return nil
}
