package manifest

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/hupe1980/gxhash/codec"
	"github.com/hupe1980/gxhash/internal/stream"
)

// Format selects the manifest encoding.
type Format uint8

const (
	// FormatText is the sha256sum-compatible text format.
	FormatText Format = iota
	// FormatJSON is the JSON format.
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// FormatFor picks the format from a file name, ignoring a trailing
// compression extension: names ending in .json are JSON, all others text.
func FormatFor(name string) Format {
	if stream.Detect(name) != stream.None {
		name = strings.TrimSuffix(name, path.Ext(name))
	}
	if strings.EqualFold(path.Ext(name), ".json") {
		return FormatJSON
	}
	return FormatText
}

// Write encodes m in format f. JSON is written with codec.Default.
func Write(w io.Writer, m *Manifest, f Format) error {
	if f == FormatJSON {
		b, err := EncodeJSON(nil, m)
		if err != nil {
			return err
		}
		b = append(b, '\n')
		_, err = w.Write(b)
		return err
	}
	return WriteText(w, m)
}

// Parse decodes a manifest in format f.
func Parse(r io.Reader, f Format) (*Manifest, error) {
	if f == FormatJSON {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return DecodeJSON(b)
	}
	return ParseText(r)
}

// EncodeJSON encodes m as indented JSON with c, recording c's name. A nil
// c selects codec.Default.
func EncodeJSON(c codec.Codec, m *Manifest) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	out := *m
	out.Version = CurrentVersion
	out.Codec = c.Name()
	if out.Entries == nil {
		out.Entries = []Entry{}
	}
	return codec.MarshalIndent(c, &out)
}

// DecodeJSON decodes a JSON manifest with the codec it names.
func DecodeJSON(data []byte) (*Manifest, error) {
	var probe struct {
		Version int    `json:"version"`
		Codec   string `json:"codec"`
	}
	if err := codec.Default.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if probe.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrIncompatibleVersion, probe.Version, CurrentVersion)
	}

	c := codec.Default
	if named, ok := codec.ByName(probe.Codec); ok {
		c = named
	}

	var m Manifest
	if err := c.Unmarshal(bytes.TrimSpace(data), &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &m, nil
}
