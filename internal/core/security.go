// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/carterperez-dev/traffic-registry/internal/config"
)

const (
	argonKeyLen = 32
	saltLength  = 16
	argonPrefix = "$argon2id$"
)

var errMalformedHash = errors.New("malformed password hash")

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

func (p argonParams) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen)
}

// PasswordHasher is the credential store: argon2id hashing with cost
// parameters taken from configuration. Accounts carried over from the
// legacy registry still hold bcrypt hashes; those verify and are then
// flagged for upgrade. Plaintext is never retained.
type PasswordHasher struct {
	params    argonParams
	dummyHash string
}

func NewPasswordHasher(cfg config.SecurityConfig) (*PasswordHasher, error) {
	if cfg.ArgonTime == 0 || cfg.ArgonMemory == 0 || cfg.ArgonThreads == 0 {
		return nil, fmt.Errorf("security: argon2 parameters must be positive")
	}

	h := &PasswordHasher{
		params: argonParams{
			memory:  cfg.ArgonMemory,
			time:    cfg.ArgonTime,
			threads: cfg.ArgonThreads,
			keyLen:  argonKeyLen,
		},
	}

	dummy, err := h.Hash("dummy_password_for_timing_attack_prevention")
	if err != nil {
		return nil, fmt.Errorf("security: generate dummy hash: %w", err)
	}
	h.dummyHash = dummy

	return h, nil
}

// Hash encodes password in the PHC string format.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	p := h.params
	return fmt.Sprintf(
		"%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argonPrefix,
		argon2.Version,
		p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(p.derive(password, salt)),
	), nil
}

func (h *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	if isBcrypt(encodedHash) {
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("%w: %w", errMalformedHash, err)
		}
	}

	params, salt, hash, err := decodeArgon(encodedHash)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(hash, params.derive(password, salt)) == 1, nil
}

// VerifyWithRehash also returns a fresh hash when the stored one is bcrypt
// or was made with different cost parameters. An empty string means no
// upgrade is due.
func (h *PasswordHasher) VerifyWithRehash(
	password, encodedHash string,
) (bool, string, error) {
	valid, err := h.Verify(password, encodedHash)
	if err != nil || !valid {
		return false, "", err
	}

	if !h.needsRehash(encodedHash) {
		return true, "", nil
	}

	upgraded, err := h.Hash(password)
	if err != nil {
		//nolint:nilerr // password verified successfully; rehash failure is non-critical
		return true, "", nil
	}
	return true, upgraded, nil
}

// VerifyTimingSafe burns the same work on a dummy hash when the account
// does not exist, so response time does not reveal registered emails.
func (h *PasswordHasher) VerifyTimingSafe(
	password string,
	encodedHash *string,
) (bool, string, error) {
	if encodedHash == nil || *encodedHash == "" {
		_, _, _ = h.VerifyWithRehash(password, h.dummyHash)
		return false, "", nil
	}

	return h.VerifyWithRehash(password, *encodedHash)
}

func (h *PasswordHasher) needsRehash(encodedHash string) bool {
	if isBcrypt(encodedHash) {
		return true
	}

	params, _, _, err := decodeArgon(encodedHash)
	if err != nil {
		return true
	}
	return *params != h.params
}

func isBcrypt(encodedHash string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encodedHash, prefix) {
			return true
		}
	}
	return false
}

// decodeArgon parses $argon2id$v=19$m=..,t=..,p=..$salt$hash.
func decodeArgon(encodedHash string) (*argonParams, []byte, []byte, error) {
	if !strings.HasPrefix(encodedHash, argonPrefix) {
		return nil, nil, nil, fmt.Errorf("%w: unknown scheme", errMalformedHash)
	}

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, fmt.Errorf("%w: expected 6 sections", errMalformedHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("%w: version %q", errMalformedHash, parts[2])
	}

	params := &argonParams{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: params: %w", errMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: salt: %w", errMalformedHash, err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: hash: %w", errMalformedHash, err)
	}

	//nolint:gosec // G115: argon2id keys are 32 bytes
	params.keyLen = uint32(len(hash))

	return params, salt, hash, nil
}
