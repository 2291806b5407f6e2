package evict

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/codewandler/evict-go/internal/codec"
)

var fingerprintCodec codec.Codec = codec.JSONCodec{}

// fingerprint digests one key/value association into 8 bytes. The null key is
// tagged separately so it never collides with a present zero-value key.
func fingerprint[K comparable, V any](key Key[K], value V) uint64 {
	h, _ := blake2b.New(8, nil)

	if k, ok := key.Value(); ok {
		h.Write([]byte{1})
		h.Write(encode(k))
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte{0})
	h.Write(encode(value))

	return binary.BigEndian.Uint64(h.Sum(nil))
}

// encode falls back to Go syntax for values JSON cannot represent.
func encode(v any) []byte {
	if b, err := fingerprintCodec.Marshal(v); err == nil {
		return b
	}
	return fmt.Appendf(nil, "%#v", v)
}
