package tracker

import "time"

// EventType defines the type of Tracker event.
type EventType string

const (
	EventReset              EventType = "reset"
	EventInserted           EventType = "inserted"
	EventReferenceSaved     EventType = "reference_saved"
	EventSynced             EventType = "synced"
	EventPreferencesChanged EventType = "preferences_changed"
)

// Event represents a Tracker update for observers.
type Event struct {
	Type      EventType
	Reference string
	Document  string
	Text      string
	At        time.Time
}
