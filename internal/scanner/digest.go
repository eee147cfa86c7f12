package scanner

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
)

// Algorithm names accepted by NewDigester.
const (
	AlgorithmMD5    = "md5"
	AlgorithmSHA256 = "sha256"
)

// Digester hashes file contents in fixed-size chunks.
type Digester struct {
	algorithm string
	chunkSize int
}

// NewDigester returns a Digester for the named algorithm. The digest is a
// byte-equality proxy, not a security boundary, so md5 is acceptable and is
// the default for compatibility with reports produced by earlier versions.
func NewDigester(algorithm string, chunkSize int) (*Digester, error) {
	switch algorithm {
	case AlgorithmMD5, AlgorithmSHA256:
	default:
		return nil, fmt.Errorf("unknown digest algorithm %q", algorithm)
	}
	if chunkSize <= 0 {
		chunkSize = 64 * 1024
	}
	return &Digester{algorithm: algorithm, chunkSize: chunkSize}, nil
}

// Algorithm returns the configured algorithm name.
func (d *Digester) Algorithm() string {
	return d.algorithm
}

func (d *Digester) newHash() hash.Hash {
	if d.algorithm == AlgorithmSHA256 {
		return sha256.New()
	}
	return md5.New()
}

// HashFile returns the hex digest of the file at path.
func (d *Digester) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := d.newHash()
	buf := make([]byte, d.chunkSize)
	if _, err := io.CopyBuffer(h, file, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
