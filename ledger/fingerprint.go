package ledger

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/go-crypt/x/blake2b"
)

// FingerprintFile computes a 64-bit BLAKE2b digest of a file's contents,
// used to tie a ledger entry to the exact bytes that were ingested.
func FingerprintFile(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(h.Sum(nil)), nil
}
