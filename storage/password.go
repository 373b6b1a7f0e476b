package storage

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

// Argon2idParams configures the argon2id password hashing.
type Argon2idParams struct {
	Time        uint32 `yaml:"time"`
	MemoryKiB   uint32 `yaml:"memory_kib"`
	Parallelism uint8  `yaml:"parallelism"`
	KeyLen      uint32 `yaml:"key_len"`
	SaltLen     uint32 `yaml:"salt_len"`
}

func defaultArgon2idParams() Argon2idParams {
	return Argon2idParams{Time: 1, MemoryKiB: 64 * 1024, Parallelism: 4, KeyLen: 32, SaltLen: 16}
}

func (p Argon2idParams) equals(o Argon2idParams) bool {
	return p.Time == o.Time && p.MemoryKiB == o.MemoryKiB && p.Parallelism == o.Parallelism &&
		p.KeyLen == o.KeyLen && p.SaltLen == o.SaltLen
}

// hashPassword derives an argon2id hash of password and encodes it in PHC
// format: $argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>
func hashPassword(password string, p Argon2idParams) (string, error) {
	if p.Time == 0 {
		p = defaultArgon2idParams()
	}
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "password hashing failed")
	}
	key := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Parallelism, p.KeyLen)
	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		p.MemoryKiB, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// verifyPassword checks password against a PHC-encoded argon2id hash.
func verifyPassword(encoded, password string) (bool, error) {
	p, salt, hash, err := parsePasswordHash(encoded)
	if err != nil {
		return false, err
	}
	key := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Parallelism, uint32(len(hash)))
	return subtle.ConstantTimeCompare(key, hash) == 1, nil
}

// parsePasswordHash splits a PHC-encoded argon2id hash into its parameters,
// salt and derived key.
func parsePasswordHash(encoded string) (Argon2idParams, []byte, []byte, error) {
	var p Argon2idParams
	fields := strings.Split(encoded, "$")
	// leading separator produces an empty first field
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return p, nil, nil, errors.New("unsupported password hash format")
	}
	if fields[2] != "v=19" {
		return p, nil, nil, errors.New("unsupported argon2 version")
	}
	var parallelism uint32
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Time, &parallelism); err != nil {
		return p, nil, nil, errors.Wrap(err, "invalid argon2id parameters")
	}
	p.Parallelism = uint8(parallelism)
	salt, err := base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil {
		return p, nil, nil, errors.Wrap(err, "invalid salt encoding")
	}
	hash, err := base64.RawStdEncoding.DecodeString(fields[5])
	if err != nil {
		return p, nil, nil, errors.Wrap(err, "invalid hash encoding")
	}
	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(hash))
	return p, salt, hash, nil
}
