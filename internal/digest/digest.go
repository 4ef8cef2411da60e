// Package digest provides a checksum representation for raw data files.
package digest

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Algorithm describes the digest algorithm
type Algorithm int

const (
	_ Algorithm = iota
	// SHA256 is the sha256 algorithm
	SHA256
)

// String returns the textual representation
func (t Algorithm) String() string {
	switch t {
	case SHA256:
		return "sha256"
	default:
		return "undefined"
	}
}

// Digest contains a checksum
type Digest struct {
	Sum       []byte
	Algorithm Algorithm
}

// String returns '<Algorithm>:<hash>'
func (d *Digest) String() string {
	return fmt.Sprintf("%s:%s", d.Algorithm, hex.EncodeToString(d.Sum))
}

// FromString converts a "<Algorithm>:<hash>" string to Digest
func FromString(in string) (*Digest, error) {
	spl := strings.Split(strings.TrimSpace(in), ":")
	if len(spl) != 2 {
		return nil, errors.New("invalid format, must contain exactly 1 ':'")
	}

	if a := strings.ToLower(spl[0]); a != "sha256" {
		return nil, fmt.Errorf("unsupported format %q", a)
	}

	if len(spl[1]) != 64 {
		return nil, fmt.Errorf("hash length is %d, expected length 64", len(spl[1]))
	}

	sum, err := hex.DecodeString(spl[1])
	if err != nil {
		return nil, fmt.Errorf("converting string sum to hex failed: %w", err)
	}

	return &Digest{
		Sum:       sum,
		Algorithm: SHA256,
	}, nil
}
