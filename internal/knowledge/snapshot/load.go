package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
)

// Format is a snapshot file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported snapshot file extension: "+filepath.Ext(path))
}

// Decode reads a document in the given format. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "decode yaml snapshot")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "decode json snapshot")
		}
	default:
		return Document{}, dErrors.New(dErrors.CodeInvalidInput, "unsupported snapshot format: "+string(format))
	}
	return doc, nil
}

// Encode writes a document in the given format.
func Encode(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml snapshot: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json snapshot: %w", err)
		}
		return nil
	}
	return dErrors.New(dErrors.CodeInvalidInput, "unsupported snapshot format: "+string(format))
}

// LoadFile reads and converts a snapshot file. The format follows the
// extension (.yaml, .yml or .json).
func LoadFile(path string) (Snapshot, []Warning, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Snapshot{}, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	doc, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return Snapshot{}, nil, err
	}
	return Convert(doc)
}

// WriteFile renders s to path in the format matching its extension.
func WriteFile(path string, s Snapshot) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, FromSnapshot(s), format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}
