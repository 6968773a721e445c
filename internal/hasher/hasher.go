// Package hasher computes xxHash64 digests of canvases and output files.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Sum returns the hex xxHash64 of data. Used to compare canvases built by
// different backings without keeping both in memory.
func Sum(data []byte) string {
	return format(xxhash.Sum64(data))
}

// Reader streams r through xxHash64.
func Reader(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64()), nil
}

// File returns the digest of the file at path and its size.
func File(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := xxhash.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("hash %s: %w", path, err)
	}
	return format(h.Sum64()), n, nil
}

func format(v uint64) string {
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, v))
}
