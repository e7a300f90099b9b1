package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name   string `json:"name"`
	Digest string `json:"digest"`
	Seed   int64  `json:"seed"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)
	assert.Equal(t, "go-json", Default.Name())
}

func TestCodecsAgree(t *testing.T) {
	v := record{Name: "a.txt", Digest: "9ffaa80003f79397", Seed: -1}

	std, err := JSON{}.Marshal(v)
	require.NoError(t, err)
	goj, err := GoJSON{}.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, string(std), string(goj))

	var back record
	require.NoError(t, GoJSON{}.Unmarshal(std, &back))
	assert.Equal(t, v, back)

	out, err := GoJSON{}.Append([]byte("x"), v)
	require.NoError(t, err)
	assert.Equal(t, "x"+string(goj), string(out))
}

func TestMarshalIndent(t *testing.T) {
	v := map[string]int{"a": 1}

	b, err := MarshalIndent(nil, v)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))

	b, err = MarshalIndent(JSON{}, v)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))

	assert.Equal(t, `{"a":1}`, string(MustMarshal(nil, v)))
	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}
