// Package compress provides the codecs used for cached payloads.
package compress

import "fmt"

// Compress encodes and decodes byte payloads.
type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// New returns the codec registered under name. An empty name means no compression.
func New(name string) (Compress, error) {
	switch name {
	case "", "none":
		return NewNop(), nil
	case "gzip":
		return NewGZip(), nil
	case "brotli":
		return NewBrotli(), nil
	case "lz4":
		return NewLZ4(), nil
	}
	return nil, fmt.Errorf("unknown compression %q", name)
}
