package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs(t *testing.T) {
	payload := bytes.Repeat([]byte(`{"key":"Default Alias","kind":"E","lhs":["Hobbit"],"rhs":["The Hobbit"]}`), 64)

	for _, name := range []string{"none", "gzip", "brotli", "lz4"} {
		t.Run(name, func(t *testing.T) {
			codec, err := New(name)
			require.NoError(t, err)

			encoded, err := codec.Encode(payload)
			require.NoError(t, err)
			if name != "none" {
				assert.Less(t, len(encoded), len(payload))
			}

			decoded, err := codec.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("zstd")
	assert.Error(t, err)

	codec, err := New("")
	require.NoError(t, err)
	assert.IsType(t, Nop{}, codec)
}

func TestGZip_DecodeGarbage(t *testing.T) {
	_, err := NewGZip().Decode([]byte("not gzip"))
	assert.Error(t, err)
}
