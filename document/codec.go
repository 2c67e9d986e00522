package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"coursecanvas/config"
	"coursecanvas/logging"
)

// ErrVersion is returned when a document was written by a newer format.
var ErrVersion = errors.New("unsupported document version")

// Marshal encodes d as YAML.
func Marshal(d Document) ([]byte, error) {
	if d.Version == 0 {
		d.Version = Version
	}
	return yaml.Marshal(d)
}

// Unmarshal decodes and validates a YAML document. A missing version is
// read as the current one.
func Unmarshal(data []byte) (Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if d.Version == 0 {
		d.Version = Version
	}
	if d.Version > Version {
		return Document{}, fmt.Errorf("document version %d: %w", d.Version, ErrVersion)
	}
	if d.Layout.Page == "" {
		d.Layout = config.DefaultLayout()
	}
	if err := d.Layout.Validate(); err != nil {
		return Document{}, fmt.Errorf("document layout: %w", err)
	}
	return d, nil
}

// Save writes d to path through a temporary file so a crash never leaves
// a truncated document behind.
func Save(path string, d Document) error {
	data, err := Marshal(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save document: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save document: %w", err)
	}
	logging.For("document").Info("document saved", "path", path, "nodes", len(d.Nodes))
	return nil
}

// Open reads the document at path.
func Open(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("open document: %w", err)
	}
	d, err := Unmarshal(data)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	logging.For("document").Info("document loaded", "path", path, "nodes", len(d.Nodes))
	return d, nil
}
