package identity

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrCannotDecrypt marks a reveal attempt on a row that was stored
	// one-way only, or sealed under a different key. Callers surface it as a
	// distinct outcome, not a failure.
	ErrCannotDecrypt = errors.New("contact cannot be decrypted")

	// ErrSealDisabled is returned by Seal when no key is configured.
	ErrSealDisabled = errors.New("sealing disabled: no key configured")
)

// Sealer encrypts raw contacts with AES-256-GCM so a moderator can later
// recover them. A nil Sealer is valid and represents the one-way-only storage
// variant: Seal refuses and Open always reports ErrCannotDecrypt.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a Sealer from a 64-char hex key (32 bytes). An empty key
// returns (nil, nil): sealing disabled.
func NewSealer(hexKey string) (*Sealer, error) {
	if hexKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("seal key is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("seal key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Enabled reports whether this sealer can actually seal.
func (s *Sealer) Enabled() bool {
	return s != nil && s.aead != nil
}

// Seal encrypts the raw contact. Output layout is nonce || ciphertext.
func (s *Sealer) Seal(raw string) ([]byte, error) {
	if !s.Enabled() {
		return nil, ErrSealDisabled
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, []byte(raw), nil), nil
}

// Open recovers the raw contact from a sealed blob. Empty blobs (legacy
// one-way rows), a disabled sealer and authentication failures all map to
// ErrCannotDecrypt.
func (s *Sealer) Open(sealed []byte) (string, error) {
	if !s.Enabled() || len(sealed) == 0 {
		return "", ErrCannotDecrypt
	}
	if len(sealed) <= s.aead.NonceSize() {
		return "", ErrCannotDecrypt
	}
	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	raw, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrCannotDecrypt
	}
	return string(raw), nil
}
