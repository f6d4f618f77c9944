package document

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidFrontMatter indicates a front matter block that is not a YAML mapping.
var ErrInvalidFrontMatter = errors.New("invalid front matter")

const delimiter = "---"

// FrontMatter is the structured key/value block at the top of a document.
type FrontMatter struct {
	raw     []byte
	mapping *yaml.Node
	present bool
	dirty   bool
}

// Split separates content into its front matter and body.
func Split(content []byte) (*FrontMatter, []byte, error) {
	header, body, ok := cutFrontMatter(content)
	if !ok {
		return &FrontMatter{}, content, nil
	}

	matter := &FrontMatter{raw: header, present: true}
	var root yaml.Node
	if err := yaml.Unmarshal(header, &root); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}
	switch {
	case root.Kind == 0:
	case root.Kind == yaml.DocumentNode && len(root.Content) == 1 && root.Content[0].Kind == yaml.MappingNode:
		matter.mapping = root.Content[0]
	default:
		return nil, nil, fmt.Errorf("%w: not a mapping", ErrInvalidFrontMatter)
	}
	return matter, body, nil
}

// Join renders front matter followed by body.
func Join(matter *FrontMatter, body []byte) ([]byte, error) {
	if matter == nil || !matter.present {
		return body, nil
	}
	header, err := matter.Bytes()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.WriteString(delimiter + "\n")
	out.Write(header)
	out.WriteString(delimiter + "\n")
	out.Write(body)
	return out.Bytes(), nil
}

// Present reports whether the document had or now has a front matter block.
func (matter *FrontMatter) Present() bool {
	return matter.present
}

// Get returns the scalar stored under key.
func (matter *FrontMatter) Get(key string) (string, bool) {
	if matter.mapping == nil {
		return "", false
	}
	for i := 0; i+1 < len(matter.mapping.Content); i += 2 {
		if matter.mapping.Content[i].Value != key {
			continue
		}
		value := matter.mapping.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
			return "", false
		}
		return value.Value, true
	}
	return "", false
}

// Set stores value under key as a YAML string, keeping the other keys in order.
func (matter *FrontMatter) Set(key, value string) {
	if matter.mapping == nil {
		matter.mapping = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	matter.present = true
	matter.dirty = true

	for i := 0; i+1 < len(matter.mapping.Content); i += 2 {
		if matter.mapping.Content[i].Value == key {
			matter.mapping.Content[i+1] = stringNode(value)
			return
		}
	}
	matter.mapping.Content = append(matter.mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		stringNode(value),
	)
}

// Bytes renders the block without delimiters. Unmodified blocks keep their original text.
func (matter *FrontMatter) Bytes() ([]byte, error) {
	if !matter.dirty {
		return matter.raw, nil
	}
	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)
	if err := encoder.Encode(matter.mapping); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	return out.Bytes(), nil
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// cutFrontMatter returns the block between the opening and closing delimiter lines.
func cutFrontMatter(content []byte) ([]byte, []byte, bool) {
	first, rest, ok := cutLine(content)
	if !ok || string(trimCR(first)) != delimiter {
		return nil, content, false
	}

	offset := len(content) - len(rest)
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		trimmed := string(trimCR(line))
		if trimmed == delimiter || trimmed == "..." {
			end := len(content) - len(rest)
			return content[offset:end], next, true
		}
		rest = next
	}
	return nil, content, false
}

func cutLine(content []byte) ([]byte, []byte, bool) {
	if len(content) == 0 {
		return nil, nil, false
	}
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		return content[:i], content[i+1:], true
	}
	return content, nil, true
}

func trimCR(line []byte) []byte {
	return bytes.TrimSuffix(line, []byte("\r"))
}
