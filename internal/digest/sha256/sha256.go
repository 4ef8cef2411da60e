// Package sha256 computes sha256 digests.
package sha256

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/mzml2isa/mzml2isa/internal/digest"
)

// File returns the SHA256 digest of the file.
func File(path string) (*digest.Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file failed: %w", err)
	}

	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("reading file failed: %w", err)
	}

	return &digest.Digest{
		Algorithm: digest.SHA256,
		Sum:       h.Sum(nil),
	}, nil
}

// Sum returns the SHA256 digest of data.
func Sum(data []byte) *digest.Digest {
	sum := sha256.Sum256(data)

	return &digest.Digest{
		Algorithm: digest.SHA256,
		Sum:       sum[:],
	}
}
