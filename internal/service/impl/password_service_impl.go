package impl

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrEmptyPassword   = errors.New("empty password")
	ErrBadHashEncoding = errors.New("malformed password hash")
)

type argon2Params struct {
	time    uint32
	memory  uint32 // KiB
	threads uint8
	keyLen  uint32
	saltLen uint32
}

// PasswordServiceImpl hashes with argon2id and stores the parameters in
// the encoded string so verification always replays the original cost.
type PasswordServiceImpl struct {
	cur argon2Params
}

func NewPasswordServiceArgon2id() *PasswordServiceImpl {
	return &PasswordServiceImpl{
		cur: argon2Params{
			time:    3,
			memory:  64 * 1024,
			threads: 1,
			keyLen:  32,
			saltLen: 16,
		},
	}
}

func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	salt := make([]byte, p.cur.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, p.cur.time, p.cur.memory, p.cur.threads, p.cur.keyLen)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.cur.memory, p.cur.time, p.cur.threads,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

func (p *PasswordServiceImpl) Verify(password, encoded string) (bool, error) {
	if password == "" || encoded == "" {
		return false, ErrEmptyPassword
	}
	params, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}
	calculated := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(calculated, key) == 1, nil
}

func decodeHash(encoded string) (argon2Params, []byte, []byte, error) {
	var params argon2Params
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, ErrBadHashEncoding
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, ErrBadHashEncoding
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return params, nil, nil, ErrBadHashEncoding
	}
	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, ErrBadHashEncoding
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, ErrBadHashEncoding
	}
	return params, salt, key, nil
}
