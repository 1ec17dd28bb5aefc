package schemas

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thorn-jmh/errorst"
	"gopkg.in/yaml.v3"
)

// FromFile reads a schema document, choosing the format by extension.
func FromFile(filePath string) (*Document, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errorst.Wrap(err, "failed to open file %s", filePath)
	}

	defer func() {
		_ = f.Close()
	}()

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".json":
		return FromJSON(f)
	case ".yaml", ".yml":
		return FromYAML(f)
	default:
		return nil, errorst.Wrap(ErrUnsupportedDocument, "unknown extension %q of %s", ext, filePath)
	}
}

// FromJSON reads from a JSON reader and returns a Document.
func FromJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errorst.Wrap(err, "failed to unmarshal JSON")
	}

	doc.normalize()
	return &doc, nil
}

// FromYAML reads from a YAML reader and returns a Document.
func FromYAML(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errorst.Wrap(err, "failed to unmarshal YAML")
	}

	doc.normalize()
	return &doc, nil
}
