// Package secret seals small payloads (the stored provider credentials) with
// a symmetric key so they never hit the database in clear text.
package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

var (
	ErrEmptyKey     = errors.New("seal key must not be empty")
	ErrOpenFailed   = errors.New("sealed payload could not be opened")
	ErrShortPayload = errors.New("sealed payload too short")
)

const nonceSize = 24

// Box seals and opens byte payloads with a key derived from a passphrase.
type Box struct {
	key [32]byte
}

// NewBox derives the secretbox key from the configured passphrase.
func NewBox(passphrase string) (*Box, error) {
	if passphrase == "" {
		return nil, ErrEmptyKey
	}
	b := &Box{key: sha256.Sum256([]byte(passphrase))}
	return b, nil
}

// Seal encrypts the plaintext with a fresh random nonce. The nonce is
// prepended to the returned ciphertext.
func (b *Box) Seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &b.key), nil
}

// Open decrypts a payload produced by Seal.
func (b *Box) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, ErrShortPayload
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &b.key)
	if !ok {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}
