package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"relstamp/internal/core/model"
	"relstamp/internal/core/stamp"
	"relstamp/internal/platform"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	LastTimeStamp      string `yaml:"last_time_stamp"`
	IncludeCurrentTime *bool  `yaml:"include_current_time"`
	SavePageTime       *bool  `yaml:"save_page_time"`
}

// Store persists tracker state as YAML inside dir.
type Store struct {
	dir string
}

// NewStore returns a Store writing to dir/settings.yaml.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the settings file path.
func (store *Store) Path() string {
	return filepath.Join(store.dir, settingsFileName)
}

// Load reads the settings file.
func (store *Store) Load() (model.TrackerState, error) {
	return LoadSettings(store.Path())
}

// SaveState implements tracker.Settings.
func (store *Store) SaveState(ctx context.Context, state model.TrackerState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return SaveSettings(store.Path(), state)
}

// LoadSettings reads tracker state from YAML.
// If the file does not exist, default state is returned.
func LoadSettings(path string) (model.TrackerState, error) {
	state := model.DefaultTrackerState()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return state, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return state, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&state, fileData)
	return state, nil
}

// SaveSettings writes tracker state to YAML.
func SaveSettings(path string, state model.TrackerState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		LastTimeStamp:      state.Reference,
		IncludeCurrentTime: &state.IncludeCurrentTime,
		SavePageTime:       &state.SavePerDocument,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	return platform.WriteFileAtomic(path, serialized, 0o644)
}

func applyYamlSettings(state *model.TrackerState, fileData yamlSettings) {
	// Seed values in other shapes, like the old hyphenated default, are not carried over.
	if stamp.Valid(fileData.LastTimeStamp) {
		state.Reference = fileData.LastTimeStamp
	}
	if fileData.IncludeCurrentTime != nil {
		state.IncludeCurrentTime = *fileData.IncludeCurrentTime
	}
	if fileData.SavePageTime != nil {
		state.SavePerDocument = *fileData.SavePageTime
	}
}
