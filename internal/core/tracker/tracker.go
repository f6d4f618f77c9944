// Package tracker holds the reference timestamp state machine.
//
// The reference moves between Empty and Set(value). Reset, SaveSelection,
// SetReference and the document handlers move it explicitly; InsertRelative
// consumes it and re-arms it to the moment of insertion.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"relstamp/internal/core/model"
	"relstamp/internal/core/stamp"
)

// Ports are the host capabilities the Tracker drives.
type Ports struct {
	Editor   Editor
	Metadata Metadata
	Settings Settings
	Notifier Notifier
	Clock    stamp.Clock
}

// Options contains runtime options for Tracker.
type Options struct {
	Logger *slog.Logger
}

// Tracker owns the reference timestamp and the two preferences that shape insertion.
type Tracker struct {
	mu     sync.Mutex
	state  model.TrackerState
	ports  Ports
	logger *slog.Logger
	events []chan Event
	closed bool
}

// New creates a Tracker seeded with state. Invalid seed references are dropped.
func New(state model.TrackerState, ports Ports, options Options) *Tracker {
	if ports.Clock == nil {
		ports.Clock = stamp.SystemClock{}
	}
	if ports.Notifier == nil {
		ports.Notifier = NotifierFunc(func(string) {})
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if state.Reference != "" && !stamp.Valid(state.Reference) {
		options.Logger.Warn("dropping invalid seed reference", "reference", state.Reference)
		state.Reference = ""
	}
	return &Tracker{
		state:  state,
		ports:  ports,
		logger: options.Logger,
	}
}

// State returns a copy of the current state.
func (tracker *Tracker) State() model.TrackerState {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.state
}

// Reference returns the current reference timestamp, possibly empty.
func (tracker *Tracker) Reference() string {
	return tracker.State().Reference
}

// Now reads the tracker's clock.
func (tracker *Tracker) Now() time.Time {
	return tracker.ports.Clock.Now()
}

// Subscribe registers a new observer channel.
func (tracker *Tracker) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.closed {
		close(ch)
		return ch
	}
	tracker.events = append(tracker.events, ch)
	return ch
}

// Close closes all observer channels.
func (tracker *Tracker) Close() {
	tracker.mu.Lock()
	if tracker.closed {
		tracker.mu.Unlock()
		return
	}
	tracker.closed = true
	events := tracker.events
	tracker.events = nil
	tracker.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Reset sets the reference to now and confirms the new value.
func (tracker *Tracker) Reset(ctx context.Context) error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	now := tracker.ports.Clock.Now()
	tracker.state.Reference = stamp.Format(now)
	tracker.logger.Debug("reference reset", "reference", tracker.state.Reference)

	err := tracker.persistLocked(ctx)
	tracker.ports.Notifier.Notify("New saved time: " + tracker.state.Reference)
	tracker.emitLocked(Event{Type: EventReset, Reference: tracker.state.Reference, At: now})
	return err
}

// InsertRelative inserts the time elapsed since the reference at the editor's
// selection and re-arms the reference to now. It returns the inserted text.
func (tracker *Tracker) InsertRelative(ctx context.Context) (string, error) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	document, ok := tracker.activeDocumentLocked()
	if !ok {
		return "", ErrNoActiveDocument
	}

	now := tracker.ports.Clock.Now()
	nowStamp := stamp.Format(now)
	previous := tracker.state.Reference

	var errs []error
	if tracker.state.SavePerDocument && tracker.ports.Metadata != nil {
		err := retryOnce(func() error {
			return tracker.ports.Metadata.WriteField(ctx, document, model.MetadataKey, nowStamp)
		})
		if err != nil {
			tracker.logger.Warn("write document metadata", "document", document, "error", err)
			errs = append(errs, &PersistError{Target: "document metadata", Err: err})
		}
	}

	text := tracker.renderLocked(previous, now)
	if err := tracker.ports.Editor.ReplaceSelection(text); err != nil {
		errs = append(errs, fmt.Errorf("insert text: %w", err))
	}

	tracker.state.Reference = nowStamp
	tracker.logger.Debug("reference advanced", "previous", previous, "reference", nowStamp, "document", document)
	if err := tracker.persistLocked(ctx); err != nil {
		errs = append(errs, err)
	}

	tracker.emitLocked(Event{
		Type:      EventInserted,
		Reference: nowStamp,
		Document:  document,
		Text:      text,
		At:        now,
	})
	return text, errors.Join(errs...)
}

// SaveSelection parses the selected "hh:mm AM/PM" text as today's reference.
// Unparseable selections leave the reference unchanged.
func (tracker *Tracker) SaveSelection(ctx context.Context) error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	if _, ok := tracker.activeDocumentLocked(); !ok {
		return ErrNoActiveDocument
	}

	selection, err := tracker.ports.Editor.SelectedText()
	if err != nil {
		return fmt.Errorf("read selection: %w", err)
	}

	now := tracker.ports.Clock.Now()
	parsed, err := stamp.ParseClock(selection, now)
	if err != nil {
		return &ParseError{Input: selection, Err: err}
	}

	tracker.state.Reference = stamp.Format(parsed)
	tracker.logger.Debug("reference saved from selection", "selection", selection, "reference", tracker.state.Reference)

	persistErr := tracker.persistLocked(ctx)
	tracker.ports.Notifier.Notify("New saved time: " + tracker.state.Reference)
	tracker.emitLocked(Event{Type: EventReferenceSaved, Reference: tracker.state.Reference, At: now})
	return persistErr
}

// OnDocumentOpened re-synchronizes the reference from the document's metadata.
func (tracker *Tracker) OnDocumentOpened(ctx context.Context, document string) error {
	return tracker.sync(ctx, document)
}

// OnMetadataChanged re-synchronizes the reference after the document's metadata changed.
func (tracker *Tracker) OnMetadataChanged(ctx context.Context, document string) error {
	return tracker.sync(ctx, document)
}

// SetReference replaces the reference with value, which must be empty or a compact timestamp.
func (tracker *Tracker) SetReference(ctx context.Context, value string) error {
	if value != "" && !stamp.Valid(value) {
		return &ParseError{Input: value, Err: stamp.ErrInvalidStamp}
	}
	return tracker.update(ctx, func(state *model.TrackerState) {
		state.Reference = value
	})
}

// SetIncludeCurrentTime toggles the absolute time prefix.
func (tracker *Tracker) SetIncludeCurrentTime(ctx context.Context, include bool) error {
	return tracker.update(ctx, func(state *model.TrackerState) {
		state.IncludeCurrentTime = include
	})
}

// SetSavePerDocument toggles writing the reference into document metadata.
func (tracker *Tracker) SetSavePerDocument(ctx context.Context, enabled bool) error {
	return tracker.update(ctx, func(state *model.TrackerState) {
		state.SavePerDocument = enabled
	})
}

func (tracker *Tracker) update(ctx context.Context, apply func(*model.TrackerState)) error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	apply(&tracker.state)
	err := tracker.persistLocked(ctx)
	tracker.emitLocked(Event{
		Type:      EventPreferencesChanged,
		Reference: tracker.state.Reference,
		At:        tracker.ports.Clock.Now(),
	})
	return err
}

func (tracker *Tracker) sync(ctx context.Context, document string) error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	var readErr error
	value := ""
	if tracker.ports.Metadata != nil && document != "" {
		stored, err := tracker.ports.Metadata.ReadField(ctx, document, model.MetadataKey)
		switch {
		case errors.Is(err, ErrNoMetadata):
		case err != nil:
			readErr = fmt.Errorf("read %s metadata: %w", document, err)
		case stamp.Valid(stored):
			value = stored
		default:
			tracker.logger.Warn("ignoring invalid document timestamp", "document", document, "value", stored)
		}
	}

	tracker.state.Reference = value
	tracker.logger.Debug("reference synced", "document", document, "reference", value)
	tracker.emitLocked(Event{
		Type:      EventSynced,
		Reference: value,
		Document:  document,
		At:        tracker.ports.Clock.Now(),
	})
	return readErr
}

func (tracker *Tracker) renderLocked(reference string, now time.Time) string {
	clock := stamp.FormatClock(now)
	if reference == "" || reference == stamp.Format(now) {
		return clock
	}
	last, err := stamp.Parse(reference, now.Location())
	if err != nil {
		return clock
	}
	elapsed := stamp.Humanize(last.Sub(now))
	if tracker.state.IncludeCurrentTime {
		return clock + " (" + elapsed + ")"
	}
	return elapsed
}

func (tracker *Tracker) activeDocumentLocked() (string, bool) {
	if tracker.ports.Editor == nil {
		return "", false
	}
	return tracker.ports.Editor.ActiveDocument()
}

func (tracker *Tracker) persistLocked(ctx context.Context) error {
	if tracker.ports.Settings == nil {
		return nil
	}
	state := tracker.state
	err := retryOnce(func() error {
		return tracker.ports.Settings.SaveState(ctx, state)
	})
	if err != nil {
		tracker.logger.Warn("save settings", "error", err)
		return &PersistError{Target: "settings", Err: err}
	}
	return nil
}

func (tracker *Tracker) emitLocked(event Event) {
	for _, ch := range tracker.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func retryOnce(write func() error) error {
	if err := write(); err == nil {
		return nil
	}
	return write()
}
