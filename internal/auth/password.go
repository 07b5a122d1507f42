// Package auth hashes account passwords and issues the signed session
// tokens stored in the current-session slot.
package auth

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	hashScheme  = "argon2id"
	saltLen     = 16
	keyLen      = 32
	argonTime   = 1
	argonMemory = 64 * 1024
	argonLanes  = 4
)

var ErrMalformedHash = errors.New("malformed password hash")

func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonLanes, keyLen)
}

// HashPassword returns "argon2id$<salt hex>$<key hex>" for password.
func HashPassword(password string) string {
	salt := common.GenerateRandByteArray(saltLen)
	key := deriveKey([]byte(password), salt)
	return hashScheme + "$" + hex.EncodeToString(salt) + "$" + hex.EncodeToString(key)
}

// VerifyPassword reports whether password matches encoded.
// The key comparison is constant time.
func VerifyPassword(encoded, password string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != hashScheme {
		return false, ErrMalformedHash
	}

	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) != keyLen {
		return false, ErrMalformedHash
	}

	got := deriveKey([]byte(password), salt)
	defer common.WipeByteArray(got)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
