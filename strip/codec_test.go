package strip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCodec(t *testing.T) {
	assert := assert.New(t)

	c, err := lookupCodec("")
	require.NoError(t, err)
	assert.Equal("utf-8", c.name)
	assert.Nil(c.enc)

	c, err = lookupCodec("latin1")
	require.NoError(t, err)
	assert.Equal("windows-1252", c.name)

	_, err = lookupCodec("klingon")
	assert.Error(err)
}

func TestCodecUTF8(t *testing.T) {
	assert := assert.New(t)

	c, err := lookupCodec("utf-8")
	require.NoError(t, err)

	s, err := c.decode([]byte("café\n"))
	assert.NoError(err)
	assert.Equal("café\n", s)

	_, err = c.decode([]byte{'a', 0xff, 'b'})
	assert.ErrorIs(err, errInvalidUTF8)
}

func TestCodecWindows1252(t *testing.T) {
	assert := assert.New(t)

	c, err := lookupCodec("windows-1252")
	require.NoError(t, err)

	s, err := c.decode([]byte("caf\xe9 // x\n"))
	require.NoError(t, err)
	assert.Equal("café // x\n", s)

	b, err := c.encode("café\n")
	assert.NoError(err)
	assert.Equal([]byte("caf\xe9\n"), b)

	_, err = c.encode("日本\n")
	assert.Error(err)
}

func TestStripTextByteOrderMarkIsNotWhitespace(t *testing.T) {
	assert := assert.New(t)

	out, stats := StripText("\ufeff// header\nint a; // x\n")

	assert.Equal("\ufeff// header\nint a;\n", out)
	assert.Equal(0, stats.Dropped)
	assert.Equal(1, stats.Truncated)
}
