package model

// MetadataKey is the front matter key holding a document's reference timestamp.
const MetadataKey = "lasttime"

// TrackerState is the mutable state owned by the Tracker.
type TrackerState struct {
	// Reference is empty or a compact YYYYMMDDHHmmss timestamp.
	Reference string

	IncludeCurrentTime bool
	SavePerDocument    bool
}

// DefaultTrackerState returns the state used before any settings are loaded.
func DefaultTrackerState() TrackerState {
	return TrackerState{
		Reference:          "",
		IncludeCurrentTime: true,
		SavePerDocument:    true,
	}
}
