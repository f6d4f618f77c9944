package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"relstamp/internal/platform"
)

// Read returns the front matter and body of the file at path.
// A missing file reads as an empty document.
func Read(path string) (*FrontMatter, []byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FrontMatter{}, nil, nil
		}
		return nil, nil, fmt.Errorf("read document: %w", err)
	}
	matter, body, err := Split(content)
	if err != nil {
		return nil, nil, fmt.Errorf("read document %s: %w", path, err)
	}
	return matter, body, nil
}

// Write renders matter and body into path.
func Write(path string, matter *FrontMatter, body []byte) error {
	content, err := Join(matter, body)
	if err != nil {
		return err
	}
	return platform.WriteFileAtomic(path, content, 0o644)
}

// ReadBody returns only the prose body of path.
func ReadBody(path string) (string, error) {
	_, body, err := Read(path)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// WriteBody replaces the body of path, keeping the front matter currently on disk.
func WriteBody(path, body string) error {
	matter, _, err := Read(path)
	if err != nil {
		return err
	}
	return Write(path, matter, []byte(body))
}
