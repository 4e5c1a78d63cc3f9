package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

type Algo string

const (
	AlgoSHA256 Algo = "sha256"
	AlgoBLAKE3 Algo = "blake3"
)

// Sum returns the hash of data as a hex string using the specified algorithm.
// Supported algorithms: "sha256" and "blake3".
func Sum(data []byte, algo Algo) (string, error) {
	switch algo {
	case AlgoSHA256:
		return sumSha256(data), nil
	case AlgoBLAKE3:
		return sumBlake3(data), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

func sumSha256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func sumBlake3(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}
