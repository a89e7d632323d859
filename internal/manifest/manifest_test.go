package manifest

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/pagestorm/internal/engine"
	"github.com/dshills/pagestorm/internal/engine/page"
)

func readFrom(files map[string]string) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		data, ok := files[name]
		if !ok {
			return nil, fs.ErrNotExist
		}
		return []byte(data), nil
	}
}

type memWriter struct {
	files map[string][]byte
}

func (m *memWriter) WriteFile(name string, data []byte, _ os.FileMode) error {
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = data
	return nil
}

const tomlManifestInput = `
[[page]]
source = "scan.pdf"
number = 1
label = "Cover"

[[page]]
source = "scan.pdf"
number = 2
`

const jsonManifest = `{
  "pages": [
    {"source": "scan.pdf", "number": 1, "label": "Cover"},
    {"source": "scan.pdf", "number": 2}
  ]
}`

var wantRefs = []PageRef{
	{Source: "scan.pdf", Number: 1, Label: "Cover"},
	{Source: "scan.pdf", Number: 2},
}

// ============================================================================
// Codec
// ============================================================================

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"doc.toml", FormatTOML},
		{"dir/doc.JSON", FormatJSON},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}

	_, err := FormatOf("doc.pdf")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode(t *testing.T) {
	refs, err := Decode(FormatTOML, []byte(tomlManifestInput))
	require.NoError(t, err)
	require.Equal(t, wantRefs, refs)

	refs, err = Decode(FormatJSON, []byte(jsonManifest))
	require.NoError(t, err)
	require.Equal(t, wantRefs, refs)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
	}{
		{"toml syntax", FormatTOML, "[[page]\n"},
		{"toml unknown key", FormatTOML, "[[page]]\nsource = \"a.pdf\"\nnumber = 1\ncolor = \"red\"\n"},
		{"toml missing source", FormatTOML, "[[page]]\nnumber = 1\n"},
		{"toml zero page", FormatTOML, "[[page]]\nsource = \"a.pdf\"\nnumber = 0\n"},
		{"json syntax", FormatJSON, `{"pages": [`},
		{"json no pages", FormatJSON, `{"page": []}`},
		{"json entry type", FormatJSON, `{"pages": [1]}`},
		{"json source type", FormatJSON, `{"pages": [{"source": 3, "number": 1}]}`},
		{"json fractional number", FormatJSON, `{"pages": [{"source": "a.pdf", "number": 1.5}]}`},
		{"json negative number", FormatJSON, `{"pages": [{"source": "a.pdf", "number": -1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.format, []byte(tt.data))
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeEntryError(t *testing.T) {
	_, err := Decode(FormatJSON, []byte(`{"pages": [{"source": "a.pdf", "number": 1}, {"number": 2}]}`))

	var entryErr *EntryError
	require.ErrorAs(t, err, &entryErr)
	require.Equal(t, 1, entryErr.Index)
}

func TestEncodeDecode(t *testing.T) {
	for _, format := range []string{FormatTOML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			data, err := Encode(format, wantRefs)
			require.NoError(t, err)

			refs, err := Decode(format, data)
			require.NoError(t, err)
			require.Equal(t, wantRefs, refs)
		})
	}
}

func TestEncodeUnsupported(t *testing.T) {
	_, err := Encode("pdf", wantRefs)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPageRefString(t *testing.T) {
	require.Equal(t, "Cover", wantRefs[0].String())
	require.Equal(t, "scan.pdf#2", wantRefs[1].String())
}

func TestRange(t *testing.T) {
	refs := Range("a.pdf", 2, 4)
	require.Equal(t, []PageRef{
		{Source: "a.pdf", Number: 2},
		{Source: "a.pdf", Number: 3},
		{Source: "a.pdf", Number: 4},
	}, refs)

	require.Nil(t, Range("a.pdf", 0, 3))
	require.Nil(t, Range("a.pdf", 3, 2))
}

func TestRangeLoader(t *testing.T) {
	l, err := RangeLoader("a.pdf", 1, 2)
	require.NoError(t, err)

	contents, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []page.Content{
		PageRef{Source: "a.pdf", Number: 1},
		PageRef{Source: "a.pdf", Number: 2},
	}, contents)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, err = RangeLoader("a.pdf", 2, 1)
	require.ErrorIs(t, err, ErrMalformed)
	_, err = RangeLoader("", 1, 1)
	require.ErrorIs(t, err, ErrMalformed)
}

// ============================================================================
// Loader / Writer
// ============================================================================

func TestLoader(t *testing.T) {
	l := &Loader{
		Path:     "/docs/scan.json",
		ReadFile: readFrom(map[string]string{"/docs/scan.json": jsonManifest}),
	}

	contents, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []page.Content{wantRefs[0], wantRefs[1]}, contents)
}

func TestLoaderErrors(t *testing.T) {
	ctx := context.Background()

	_, err := (&Loader{Path: "/missing.toml", ReadFile: readFrom(nil)}).Load(ctx)
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = (&Loader{Path: "/scan.pdf", ReadFile: readFrom(nil)}).Load(ctx)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	bad := readFrom(map[string]string{"/bad.toml": "[[page]]\nnumber = 1\n"})
	_, err = (&Loader{Path: "/bad.toml", ReadFile: bad}).Load(ctx)
	require.ErrorIs(t, err, ErrMalformed)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = (&Loader{Path: "/bad.toml", ReadFile: bad}).Load(cancelled)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriter(t *testing.T) {
	mem := &memWriter{}
	w := &Writer{WriteFile: mem.WriteFile}

	contents := []page.Content{wantRefs[1], &wantRefs[0]}
	require.NoError(t, w.Write(context.Background(), "out.toml", contents))

	refs, err := Decode(FormatTOML, mem.files["out.toml"])
	require.NoError(t, err)
	require.Equal(t, []PageRef{wantRefs[1], wantRefs[0]}, refs)
}

func TestWriterInvalidDestination(t *testing.T) {
	w := &Writer{WriteFile: (&memWriter{}).WriteFile}

	for _, dest := range []string{"", "out/", "out.pdf", "out"} {
		err := w.Write(context.Background(), dest, []page.Content{wantRefs[0]})
		require.ErrorIs(t, err, engine.ErrInvalidDestination, dest)
	}
}

func TestWriterUnsupportedContent(t *testing.T) {
	w := &Writer{WriteFile: (&memWriter{}).WriteFile}

	err := w.Write(context.Background(), "out.json", []page.Content{"raw"})
	require.ErrorIs(t, err, ErrUnsupportedContent)
}

func TestWriterWriteFailure(t *testing.T) {
	diskFull := errors.New("disk full")
	w := &Writer{WriteFile: func(string, []byte, os.FileMode) error { return diskFull }}

	err := w.Write(context.Background(), "out.json", nil)
	require.ErrorIs(t, err, diskFull)
	require.NotErrorIs(t, err, engine.ErrInvalidDestination)
}

func TestEngineRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := engine.New()

	l := &Loader{Path: "a.toml", ReadFile: readFrom(map[string]string{"a.toml": tomlManifestInput})}
	require.NoError(t, e.Open(ctx, l))
	require.NoError(t, e.MoveAfter(0, 1))

	mem := &memWriter{}
	require.NoError(t, e.Export(ctx, &Writer{WriteFile: mem.WriteFile}, "b.json"))

	refs, err := Decode(FormatJSON, mem.files["b.json"])
	require.NoError(t, err)
	require.Equal(t, []PageRef{wantRefs[1], wantRefs[0]}, refs)

	err = e.Export(ctx, &Writer{WriteFile: mem.WriteFile}, "b.pdf")
	require.ErrorIs(t, err, engine.ErrInvalidDestination)
	require.NotErrorIs(t, err, engine.ErrExportFailed)
}
