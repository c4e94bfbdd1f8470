package hawala

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const pw1Digest = "c592df4a86933b92addc9842402ddf198c638ea9be58916ee6e3734e1e3152f8"

func TestNewLock(t *testing.T) {
	is := assert.New(t)

	lock, err := NewLock(AlgorithmSHA256, "pw1")
	is.NoError(err)
	is.Equal(AlgorithmSHA256, lock.Algorithm)
	is.Equal(pw1Digest, lock.Digest)

	lock, err = NewLock(AlgorithmSHA3_256, "pw1")
	is.NoError(err)
	is.Equal("7e51aafb66da8878bbf68fe82e8f159930b6b979ea4b9ec973bf77677bb73fdf", lock.Digest)

	_, err = NewLock("MD5", "pw1")
	is.ErrorIs(err, ErrInvalidLock)
}

func TestParseLock(t *testing.T) {
	is := assert.New(t)

	lock, err := ParseLock(AlgorithmSHA256, "  "+strings.ToUpper(pw1Digest)+"\n")
	is.NoError(err)
	is.Equal(pw1Digest, lock.Digest)

	_, err = ParseLock(AlgorithmSHA256, "zz")
	is.ErrorIs(err, ErrInvalidLock)

	// right encoding, wrong size
	_, err = ParseLock(AlgorithmSHA256, pw1Digest[:32])
	is.ErrorIs(err, ErrInvalidLock)

	_, err = ParseLock("SHA1", pw1Digest)
	is.ErrorIs(err, ErrInvalidLock)
}

func TestMatches(t *testing.T) {
	is := assert.New(t)
	lock, _ := NewLock(AlgorithmSHA256, "pw1")

	is.True(Matches(lock, "pw1"))
	is.False(Matches(lock, "wrongpw"))
	is.False(Matches(lock, "pw"))
	is.False(Matches(lock, "pw1 "))
	is.False(Matches(lock, ""))

	// secret that is itself the digest must not open the lock
	is.False(Matches(lock, pw1Digest))

	truncated := lock
	truncated.Digest = lock.Digest[:62]
	is.False(Matches(truncated, "pw1"))

	unknown := lock
	unknown.Algorithm = "SHA512"
	is.False(Matches(unknown, "pw1"))
}
