// Package auth implements the credential primitives of the authentication
// pipeline: Argon2id password hashing, HS256 token issuance/verification,
// and TOTP secret generation and code checks.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters. Fixed at deployment, never caller-supplied.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashPassword derives an Argon2id digest of the plaintext and encodes it in
// the self-describing PHC format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
//
// so VerifyPassword needs no out-of-band parameter knowledge.
func HashPassword(plaintext string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt generation: %w", err)
	}

	hash := argon2.IDKey([]byte(plaintext), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))

	return encoded, nil
}

// VerifyPassword reports whether candidate matches the encoded digest.
// It fails closed: any malformed digest yields false, never an error or panic.
// The comparison is constant-time.
func VerifyPassword(encoded, candidate string) bool {
	salt, hash, time, memory, threads, ok := decodeDigest(encoded)
	if !ok {
		return false
	}

	candidateHash := argon2.IDKey([]byte(candidate), salt, time, memory, threads, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, candidateHash) == 1
}

// dummyDigest is verified against when a login lookup misses, so the response
// time does not reveal whether the username exists.
var dummyDigest = func() string {
	d, err := HashPassword("dummy-timing-equalizer")
	if err != nil {
		panic(err)
	}
	return d
}()

// VerifyDummy burns the same work as a real verification and always
// returns false.
func VerifyDummy(candidate string) bool {
	VerifyPassword(dummyDigest, candidate)
	return false
}

func decodeDigest(encoded string) (salt, hash []byte, time, memory uint32, threads uint8, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, false
	}
	if memory == 0 || time == 0 || threads == 0 {
		return nil, nil, 0, 0, 0, false
	}

	var err error
	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, false
	}
	if hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(hash) == 0 {
		return nil, nil, 0, 0, 0, false
	}

	return salt, hash, time, memory, threads, true
}
