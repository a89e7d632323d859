package manifest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Manifest formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// FormatOf returns the manifest format named by the extension of path.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Decode parses manifest data in the given format.
func Decode(format string, data []byte) ([]PageRef, error) {
	var (
		refs []PageRef
		err  error
	)
	switch format {
	case FormatTOML:
		refs, err = decodeTOML(data)
	case FormatJSON:
		refs, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	for i, r := range refs {
		if err := r.validate(i); err != nil {
			return nil, err
		}
	}
	return refs, nil
}

// Encode renders refs in the given format.
func Encode(format string, refs []PageRef) ([]byte, error) {
	switch format {
	case FormatTOML:
		return encodeTOML(refs)
	case FormatJSON:
		return encodeJSON(refs)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ============================================================================
// TOML
// ============================================================================

type tomlManifest struct {
	Pages []PageRef `toml:"page"`
}

func decodeTOML(data []byte) ([]PageRef, error) {
	var m tomlManifest
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return m.Pages, nil
}

func encodeTOML(refs []PageRef) ([]byte, error) {
	return toml.Marshal(tomlManifest{Pages: refs})
}

// ============================================================================
// JSON
// ============================================================================

func decodeJSON(data []byte) ([]PageRef, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	pages := gjson.GetBytes(data, "pages")
	if !pages.IsArray() {
		return nil, fmt.Errorf("%w: missing pages array", ErrMalformed)
	}

	entries := pages.Array()
	refs := make([]PageRef, 0, len(entries))
	for i, value := range entries {
		if !value.IsObject() {
			return nil, &EntryError{Index: i, Reason: "not an object"}
		}

		source := value.Get("source")
		number := value.Get("number")
		if source.Type != gjson.String {
			return nil, &EntryError{Index: i, Reason: "source must be a string"}
		}
		if number.Type != gjson.Number || number.Num != float64(number.Int()) {
			return nil, &EntryError{Index: i, Reason: "number must be an integer"}
		}

		refs = append(refs, PageRef{
			Source: source.Str,
			Number: int(number.Int()),
			Label:  value.Get("label").String(),
		})
	}
	return refs, nil
}

func encodeJSON(refs []PageRef) ([]byte, error) {
	out := []byte(`{"pages":[]}`)
	for _, r := range refs {
		entry, err := sjson.SetBytes([]byte(`{}`), "source", r.Source)
		if err != nil {
			return nil, err
		}
		if entry, err = sjson.SetBytes(entry, "number", r.Number); err != nil {
			return nil, err
		}
		if r.Label != "" {
			if entry, err = sjson.SetBytes(entry, "label", r.Label); err != nil {
				return nil, err
			}
		}
		if out, err = sjson.SetRawBytes(out, "pages.-1", entry); err != nil {
			return nil, err
		}
	}
	return pretty.Pretty(out), nil
}
