package cache

import (
	"context"
	"testing"
	"time"

	"github.com/emrgen/bookbrainz/internal/compress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID      uint     `json:"id"`
	Changes []string `json:"changes"`
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	c := Nop{}

	require.NoError(t, c.Set(ctx, "revision:1", payload{ID: 1}, time.Minute))

	var out payload
	ok, err := c.Get(ctx, "revision:1", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEncodeDecode(t *testing.T) {
	in := payload{ID: 7, Changes: []string{"Default Alias", "Aliases"}}

	for _, name := range []string{"none", "gzip", "brotli", "lz4"} {
		t.Run(name, func(t *testing.T) {
			codec, err := compress.New(name)
			require.NoError(t, err)

			buf, err := encode(codec, in)
			require.NoError(t, err)

			var out payload
			require.NoError(t, decode(codec, buf, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestDecode_CodecMismatch(t *testing.T) {
	buf, err := encode(compress.NewNop(), payload{ID: 1})
	require.NoError(t, err)

	var out payload
	assert.Error(t, decode(compress.NewGZip(), buf, &out))
}
