package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader is the request header carrying the hex HMAC-SHA256 of the body.
const HashHeader = "HashSHA256"

// Hasher provides keyed HMAC-SHA256 hashing of request bodies. It keeps its
// own pool of hash instances so the client and the authority can hold
// different keys in one process.
//
// A Hasher with an empty key is disabled: Enabled reports false and Sign
// returns an empty string.
type Hasher struct {
	hashKey []byte
	pool    sync.Pool
}

// NewHasher creates a Hasher for hashKey.
//
// Example usage:
//
//	h := utils.NewHasher("my-secret-key")
//	req.Header.Set(utils.HashHeader, h.Sign(body))
func NewHasher(hashKey string) *Hasher {
	h := &Hasher{hashKey: []byte(hashKey)}
	h.pool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, h.hashKey)
		},
	}

	return h
}

// Enabled reports whether a key is configured.
func (h *Hasher) Enabled() bool {
	return h != nil && len(h.hashKey) > 0
}

// Hash computes an HMAC-SHA256 digest over data using a pooled hasher.
func (h *Hasher) Hash(data []byte) []byte {
	hasher := h.pool.Get().(hash.Hash)
	hasher.Reset()

	hasher.Write(data)
	sum := hasher.Sum(nil)

	hasher.Reset()
	h.pool.Put(hasher)

	return sum
}

// Sign returns the hex-encoded digest of data, or "" when disabled.
func (h *Hasher) Sign(data []byte) string {
	if !h.Enabled() {
		return ""
	}

	return hex.EncodeToString(h.Hash(data))
}

// Verify reports whether signature is the hex digest of data. Comparison is
// constant-time.
func (h *Hasher) Verify(data []byte, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	return hmac.Equal(expected, h.Hash(data))
}

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Unlike Hasher, this function creates a new HMAC instance on each call.
// Suitable for one-off hashing such as tests and tooling.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
