package project

import (
	"crypto/sha256"
	"io"
	"os"
)

// Digest is a fixed 256-bit content hash, the cache key for unit artifacts.
type Digest [32]byte

// IsZero reports whether the digest is unset.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}

// HashBytes digests raw content.
func HashBytes(content []byte) Digest {
	return sha256.Sum256(content)
}

// HashFile digests a file's content without loading it whole.
func HashFile(path string) (Digest, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the caller
	if err != nil {
		return Digest{}, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return Digest{}, err
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out, nil
}

// Combine builds an aggregate hash: H(content || dep1 || dep2 ...).
// The dependency order must be deterministic.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
