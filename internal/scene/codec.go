package scene

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/pkg/fileutil"
)

// Format is a scene manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedFormat, "%s (want .yaml, .yml, .json or .toml)", path)
	}
}

// Load reads and decodes a scene manifest.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scene %s", path)
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing scene %s", path)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	doc.path = path
	return doc, nil
}

// Decode parses manifest bytes in the given format.
func Decode(data []byte, format Format) (*Document, error) {
	doc := &Document{format: format}

	var err error
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(doc)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(doc)
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(doc)
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "%q", format)
	}
	if err != nil {
		return nil, errors.Wrap(err, "decoding manifest")
	}

	return doc, nil
}

// Format returns the encoding the document was read or last written in.
func (d *Document) Format() Format {
	return d.format
}

// Save writes the document back to the file it was loaded from.
func (d *Document) Save() error {
	if d.path == "" {
		return errors.New("document has no path; use SaveAs")
	}
	return d.SaveAs(d.path)
}

// SaveAs writes the document atomically to path, encoding by extension.
func (d *Document) SaveAs(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		err = fileutil.AtomicWriteJSON(path, d)
	case FormatTOML:
		err = fileutil.AtomicWriteTOML(path, d)
	default:
		err = fileutil.AtomicWriteYAML(path, d)
	}
	if err != nil {
		return errors.Wrapf(err, "writing scene %s", path)
	}

	d.path = path
	d.format = format
	return nil
}
