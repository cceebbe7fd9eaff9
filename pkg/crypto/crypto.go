package crypto

import (
	"crypto/sha256"
	"errors"
	"log"

	"github.com/fernet/fernet-go"
)

// ErrInvalidCiphertext is returned when a blob is not a valid token for the
// configured key. Callers that stored data before a key was configured should
// treat this as "already plaintext", not as a fatal error.
var ErrInvalidCiphertext = errors.New("invalid ciphertext for configured key")

// Boundary encrypts and decrypts text blobs at rest. With no key configured
// both operations are identity functions, so persistence code can always
// compute the encrypted flag as `stored != plaintext`.
type Boundary struct {
	key *fernet.Key
}

// New creates a Boundary from the configured key string. An empty key disables
// encryption. The key may be a urlsafe-base64 fernet key; anything else is
// derived deterministically so operators can configure an arbitrary secret.
func New(key string) *Boundary {
	if key == "" {
		return &Boundary{}
	}

	keys, err := fernet.DecodeKeys(key)
	if err == nil && len(keys) > 0 {
		return &Boundary{key: keys[0]}
	}

	// Derive a fernet key from the raw secret
	var k fernet.Key
	sum := sha256.Sum256([]byte(key))
	copy(k[:], sum[:])
	log.Printf("[WARN] encryption key is not a fernet key, derived one from the configured secret")
	return &Boundary{key: &k}
}

// Enabled reports whether a key is configured.
func (b *Boundary) Enabled() bool {
	return b.key != nil
}

// Encrypt returns the ciphertext token for plaintext, or the plaintext
// unchanged when no key is configured. Output is non-deterministic (fresh IV
// per call).
func (b *Boundary) Encrypt(plaintext string) string {
	if b.key == nil {
		return plaintext
	}
	tok, err := fernet.EncryptAndSign([]byte(plaintext), b.key)
	if err != nil {
		// fernet only fails on a broken RNG; storing plaintext keeps the
		// encrypted flag truthful
		log.Printf("[ERROR] encrypt failed, storing plaintext: %v", err)
		return plaintext
	}
	return string(tok)
}

// Decrypt reverses Encrypt. When no key is configured the input is returned
// unchanged. ErrInvalidCiphertext means the blob was not produced under the
// current key.
func (b *Boundary) Decrypt(ciphertext string) (string, error) {
	if b.key == nil {
		return ciphertext, nil
	}
	msg := fernet.VerifyAndDecrypt([]byte(ciphertext), 0, []*fernet.Key{b.key})
	if msg == nil {
		return "", ErrInvalidCiphertext
	}
	return string(msg), nil
}
