package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const sessionFileName = "session.yaml"

// Session remembers the document relstampctl treats as open between runs.
type Session struct {
	ActiveDocument string `yaml:"active_document"`

	path string
}

func loadSession(dir string) (*Session, error) {
	session := &Session{path: filepath.Join(dir, sessionFileName)}
	raw, err := os.ReadFile(session.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return session, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	if err := yaml.Unmarshal(raw, session); err != nil {
		return nil, fmt.Errorf("parse session yaml: %w", err)
	}
	return session, nil
}

func (session *Session) save() error {
	if err := os.MkdirAll(filepath.Dir(session.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	raw, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session yaml: %w", err)
	}
	if err := os.WriteFile(session.path, raw, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
