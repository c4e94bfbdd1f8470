package hawala

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/cgrigis-da/hawalon/model"
	sha256 "github.com/minio/sha256-simd"
	"golang.org/x/crypto/sha3"
)

const (
	AlgorithmSHA256   = "SHA256"
	AlgorithmSHA3_256 = "SHA3-256"

	// DefaultAlgorithm : digest clients compute over the password
	DefaultAlgorithm = AlgorithmSHA256
)

var algorithms = map[string]func() hash.Hash{
	AlgorithmSHA256:   sha256.New,
	AlgorithmSHA3_256: sha3.New256,
}

// SupportedAlgorithm : true when alg can be used for hash locks
func SupportedAlgorithm(alg string) bool {
	_, ok := algorithms[alg]
	return ok
}

// NewLock : commitment to secret using alg
func NewLock(alg, secret string) (model.HashLock, error) {
	newHash, ok := algorithms[alg]
	if !ok {
		return model.HashLock{}, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidLock, alg)
	}
	return model.HashLock{
		Algorithm: alg,
		Digest:    hex.EncodeToString(digest(newHash, secret)),
	}, nil
}

// ParseLock : validates a lock computed by a client,
// digest is normalised to lowercase hex
func ParseLock(alg, digestHex string) (model.HashLock, error) {
	newHash, ok := algorithms[alg]
	if !ok {
		return model.HashLock{}, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidLock, alg)
	}
	d := strings.ToLower(strings.TrimSpace(digestHex))
	raw, err := hex.DecodeString(d)
	if err != nil {
		return model.HashLock{}, fmt.Errorf("%w: digest is not hex", ErrInvalidLock)
	}
	if len(raw) != newHash().Size() {
		return model.HashLock{}, fmt.Errorf("%w: %s digest must be %d bytes, got %d", ErrInvalidLock, alg, newHash().Size(), len(raw))
	}
	return model.HashLock{Algorithm: alg, Digest: d}, nil
}

// Matches : true when secret opens lock.
// exact digest comparison in constant time.
func Matches(lock model.HashLock, secret string) bool {
	newHash, ok := algorithms[lock.Algorithm]
	if !ok {
		return false
	}
	want, err := hex.DecodeString(lock.Digest)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(digest(newHash, secret), want) == 1
}

func digest(newHash func() hash.Hash, secret string) []byte {
	h := newHash()
	h.Write([]byte(secret))
	return h.Sum(nil)
}
