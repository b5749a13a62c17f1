package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashJSON hashes the JSON encoding of v. Map keys are encoded in sorted
// order, so equal values always hash alike. JSON cannot carry NaN, which
// invalid paths contain, so such values are hashed through gob instead.
func HashJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		var buf bytes.Buffer
		if gob.NewEncoder(&buf).Encode(v) != nil {
			return Hash(fmt.Appendf(nil, "%v", v))
		}
		data = buf.Bytes()
	}
	return Hash(data)
}
