package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gxhash/resource"
)

func TestBorrow_Aliases(t *testing.T) {
	b := []byte("hello")
	v := Borrow(b)

	assert.True(t, v.Borrowed())
	assert.Equal(t, Borrowed, v.Mode())
	assert.Equal(t, 5, v.Len())

	b[0] = 'j'
	assert.Equal(t, "jello", string(v.Bytes()))
}

func TestOwn_Copies(t *testing.T) {
	b := []byte("hello")
	v := Own(b)

	assert.False(t, v.Borrowed())
	b[0] = 'j'
	assert.Equal(t, "hello", string(v.Bytes()))
}

func TestOwned(t *testing.T) {
	b := []byte("abc")

	owned := Borrow(b).Owned()
	b[0] = 'x'
	assert.Equal(t, "abc", string(owned.Bytes()))
	assert.Equal(t, Owned, owned.Mode())

	again := owned.Owned()
	assert.Same(t, &owned.Bytes()[0], &again.Bytes()[0])
}

func TestEmpty(t *testing.T) {
	v := Own(nil)
	assert.Equal(t, 0, v.Len())
	assert.NotNil(t, v.Bytes())

	assert.Equal(t, 0, Borrow(nil).Len())
}

func TestDetach(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 8})
	b := []byte("12345678")

	v, release, err := Borrow(b).Detach(rc)
	require.NoError(t, err)
	assert.Equal(t, int64(8), rc.MemoryUsage())
	assert.Equal(t, Owned, v.Mode())

	b[0] = 'x'
	assert.Equal(t, "12345678", string(v.Bytes()))

	_, _, err = Borrow([]byte("9")).Detach(rc)
	require.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)

	release()
	release()
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestDetach_NilController(t *testing.T) {
	v, release, err := Borrow([]byte("abc")).Detach(nil)
	require.NoError(t, err)
	release()
	assert.Equal(t, "abc", string(v.Bytes()))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "borrowed", Borrowed.String())
	assert.Equal(t, "owned", Owned.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
