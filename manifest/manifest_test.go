package manifest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gxhash/hashlib"
)

func sample() *Manifest {
	m := New()
	m.AddDigest("hello.txt", hashlib.New64([]byte("hello"), hashlib.WithSeed(42)))
	m.AddDigest("world.txt", hashlib.New64([]byte("hello world")))
	m.AddDigest("short.txt", hashlib.New32([]byte("hello")))
	m.AddDigest("wide.txt", hashlib.New128([]byte("hello world")))
	return m
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sample()))

	want := `# gxhash gxhash64 seed=42
9ffaa80003f79397  hello.txt
# gxhash gxhash64 seed=0
f31ee479d9ce0027  world.txt
# gxhash gxhash32 seed=0
9470c7ff  short.txt
# gxhash gxhash128 seed=0
f31ee479d9ce00275e1f8954e6913025  wide.txt
`
	assert.Equal(t, want, buf.String())
}

func TestParseText(t *testing.T) {
	var buf bytes.Buffer
	m := sample()
	require.NoError(t, WriteText(&buf, m))

	got, err := ParseText(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Entries, got.Entries)
}

func TestParseText_NoHeader(t *testing.T) {
	in := "9470C7FF  a\r\nf31ee479d9ce0027 *b\n\n# a comment\nf31ee479d9ce00275e1f8954e6913025  c d\n"

	m, err := ParseText(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())

	assert.Equal(t, Entry{Name: "a", Algorithm: "gxhash32", Digest: "9470c7ff"}, m.Entries[0])
	assert.Equal(t, Entry{Name: "b", Algorithm: "gxhash64", Digest: "f31ee479d9ce0027"}, m.Entries[1])
	assert.Equal(t, "c d", m.Entries[2].Name)
	assert.Equal(t, "gxhash128", m.Entries[2].Algorithm)
}

func TestText_EscapedNames(t *testing.T) {
	m := New()
	m.Add(Entry{Name: "odd\\name\nwith newline", Algorithm: "gxhash32", Digest: "9470c7ff"})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, m))
	assert.Equal(t, "# gxhash gxhash32 seed=0\n\\9470c7ff  odd\\\\name\\nwith newline\n", buf.String())

	got, err := ParseText(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Entries, got.Entries)
}

func TestParseText_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"unknown algorithm", "# gxhash md5 seed=0\n", 1},
		{"bad seed", "# gxhash gxhash64 seed=x\n", 1},
		{"missing seed", "# gxhash gxhash64\n", 1},
		{"no separator", "9470c7ff\n", 1},
		{"single space", "9470c7ff a\n", 1},
		{"empty name", "9470c7ff  \n", 1},
		{"not hex", "zz70c7ff  a\n", 1},
		{"length mismatch", "# gxhash gxhash64 seed=0\n9470c7ff  a\n", 2},
		{"uninferable length", "abcd  a\n", 1},
		{"bad escape", "\\9470c7ff  a\\x\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseText(strings.NewReader(tt.in))
			require.ErrorIs(t, err, ErrMalformed)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestJSON(t *testing.T) {
	m := sample()

	b, err := EncodeJSON(nil, m)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"codec": "go-json"`)

	got, err := DecodeJSON(b)
	require.NoError(t, err)
	assert.Equal(t, m.Entries, got.Entries)
	assert.Equal(t, CurrentVersion, got.Version)

	_, err = DecodeJSON([]byte(`{"version":99,"entries":[]}`))
	assert.ErrorIs(t, err, ErrIncompatibleVersion)

	_, err = DecodeJSON([]byte(`{`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("sums.json"))
	assert.Equal(t, FormatJSON, FormatFor("sums.JSON.zst"))
	assert.Equal(t, FormatText, FormatFor("SHA256SUMS"))
	assert.Equal(t, FormatText, FormatFor("sums.txt.gz"))
}

func TestManifest_LookupSort(t *testing.T) {
	m := sample()
	m.Sort()
	assert.Equal(t, "hello.txt", m.Entries[0].Name)
	assert.Equal(t, "world.txt", m.Entries[3].Name)

	e, ok := m.Lookup("wide.txt")
	require.True(t, ok)
	assert.Equal(t, "gxhash128", e.Algorithm)

	_, ok = m.Lookup("nope")
	assert.False(t, ok)
}
