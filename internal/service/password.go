package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compares password with hash produced by any supported scheme
	Verify(password, hash string) bool
}

// NewPasswordHasher returns the hasher named by kind. Verification
// always accepts both schemes so switching kind keeps old accounts
// usable.
func NewPasswordHasher(kind string) (PasswordHasher, error) {
	switch strings.ToLower(kind) {
	case HasherBcrypt, "":
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	case HasherArgon2id:
		return Argon2Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", kind)
	}
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Verify(password, hash string) bool {
	return verifyPassword(password, hash)
}

const (
	argonPrefix   = "$argon2id$v=19$m=65536,t=3,p=2$"
	argonSaltLen  = 16
	argonKeyLen   = 32
	argonTime     = 3
	argonMemory   = 64 * 1024
	argonThreads  = 2
	argonSegments = 6
)

type Argon2Hasher struct{}

func (Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return argonPrefix +
		base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(key), nil
}

func (Argon2Hasher) Verify(password, hash string) bool {
	return verifyPassword(password, hash)
}

func verifyPassword(password, hash string) bool {
	if strings.HasPrefix(hash, "$argon2id$") {
		ok, err := verifyArgon2(password, hash)
		return err == nil && ok
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func verifyArgon2(password, hash string) (bool, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != argonSegments || parts[1] != HasherArgon2id {
		return false, errors.New("invalid hash format")
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, err
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
